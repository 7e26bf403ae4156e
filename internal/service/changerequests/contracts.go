package changerequests

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ChangeRequestRepository интерфейс репозитория запросов на изменение
type ChangeRequestRepository interface {
	Create(ctx context.Context, req *domain.ChangeRequest) (*domain.ChangeRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.ChangeRequest, error)
	GetPendingByAppointment(ctx context.Context, appointmentID int64) (*domain.ChangeRequest, error)
	GetConsumableByAppointment(ctx context.Context, appointmentID int64) (*domain.ChangeRequest, error)
	ListByAppointment(ctx context.Context, appointmentID int64) ([]*domain.ChangeRequest, error)
	ListByStatus(ctx context.Context, status domain.ChangeRequestStatus) ([]*domain.ChangeRequest, error)
	Resolve(ctx context.Context, id int64, status domain.ChangeRequestStatus, adminResponse *string) error
}

// AppointmentRepository интерфейс репозитория записей (только чтение)
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
