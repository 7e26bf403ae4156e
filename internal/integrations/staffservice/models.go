package staffservice

// Employee модель сотрудника из StaffService
type Employee struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`     // Должность (mechanic, master, receptionist)
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
