package list_change_requests

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/changerequests/models"
)

type ChangeRequestService interface {
	ListByStatus(ctx context.Context, actor domain.Actor, status string) (*models.ChangeRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
