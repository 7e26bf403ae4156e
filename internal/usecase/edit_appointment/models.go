package edit_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на редактирование записи.
// Передаётся полный новый payload записи.
type Request struct {
	AppointmentID       int64            // ID редактируемой записи
	CustomerID          int64            // ID клиента (владельца)
	ServiceID           int64            // Новая услуга
	VehicleBrand        string           // Марка автомобиля
	VehicleModel        string           // Модель автомобиля
	VehicleLicensePlate string           // Госномер
	Notes               *string          // Заметки (опционально)
	Date                time.Time        // Новая дата
	TimeSlot            types.TimeString // Новый слот приёмки
}

// Response модель ответа с обновлённой записью
type Response struct {
	ID                  int64
	CustomerID          int64
	ServiceID           int64
	VehicleBrand        string
	VehicleModel        string
	VehicleLicensePlate string
	Notes               *string
	Date                time.Time
	TimeSlot            types.TimeString
	Status              string
	ConsumedRequestID   int64 // ID использованного запроса на изменение
	UpdatedAt           time.Time
}
