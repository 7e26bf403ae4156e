package get_appointment_change_requests

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/changerequests/models"
)

type ChangeRequestService interface {
	ListByAppointment(ctx context.Context, appointmentID, userID int64, actor domain.Actor) (*models.ChangeRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
