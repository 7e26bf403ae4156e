package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerID          int64            // ID клиента
	ServiceID           int64            // ID услуги из каталога
	VehicleBrand        string           // Марка автомобиля
	VehicleModel        string           // Модель автомобиля
	VehicleLicensePlate string           // Госномер
	Notes               *string          // Дополнительные заметки (опционально)
	Date                time.Time        // Дата записи (без времени)
	TimeSlot            types.TimeString // Слот приёмки (например, "10:00")
}

// Response модель ответа с созданной записью
type Response struct {
	ID                  int64            // ID созданной записи
	CustomerID          int64            // ID клиента
	ServiceID           int64            // ID услуги
	VehicleBrand        string           // Марка автомобиля
	VehicleModel        string           // Модель автомобиля
	VehicleLicensePlate string           // Госномер
	Notes               *string          // Заметки
	Date                time.Time        // Дата записи
	TimeSlot            types.TimeString // Слот приёмки
	Status              string           // Статус записи (pending)
	CreatedAt           time.Time        // Время создания
	UpdatedAt           time.Time        // Время обновления
}
