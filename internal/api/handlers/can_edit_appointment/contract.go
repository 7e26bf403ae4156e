package can_edit_appointment

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/changerequests/models"
)

type ChangeRequestService interface {
	CanEdit(ctx context.Context, appointmentID, userID int64, actor domain.Actor) (*models.CanEditResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
