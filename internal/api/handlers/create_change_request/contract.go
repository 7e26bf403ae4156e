package create_change_request

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/changerequests/models"
)

type ChangeRequestService interface {
	Create(ctx context.Context, userID int64, actor domain.Actor, req *models.CreateChangeRequest) (*models.ChangeRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
