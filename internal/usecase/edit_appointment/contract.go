package edit_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	CountActiveByServiceAndDate(ctx context.Context, serviceID int64, date time.Time, excludeID *int64) (int, error)
	IsTimeSlotTaken(ctx context.Context, date time.Time, timeSlot types.TimeString, excludeID *int64) (bool, error)
	UpdateAppointmentDetails(ctx context.Context, id int64, from domain.AppointmentStatus, details appointment.UpdateDetails) (time.Time, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CatalogService, error)
}

// ChangeRequestRepository интерфейс репозитория запросов на изменение
type ChangeRequestRepository interface {
	GetConsumableByAppointment(ctx context.Context, appointmentID int64) (*domain.ChangeRequest, error)
	MarkConsumed(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
