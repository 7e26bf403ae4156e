package get_service_availability

import "time"

// Request модель запроса остатка слотов услуги на дату
type Request struct {
	ServiceID int64     // ID услуги из каталога
	Date      time.Time // Дата, на которую запрашивается остаток
}

// Response модель ответа с остатком дневного лимита услуги
type Response struct {
	ServiceID      int64
	ServiceName    string
	Date           time.Time
	MaxDailySlots  int
	UsedSlots      int
	RemainingSlots int  // Никогда не отрицательный
	IsActive       bool // Неактивная услуга недоступна для записи
}
