package resolve_change_request

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/changerequests/models"
)

type ChangeRequestService interface {
	Resolve(ctx context.Context, actor domain.Actor, req *models.ResolveChangeRequest) (*models.ChangeRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
