package list_change_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/changerequests"
)

const (
	msgInvalidStatus = "некорректный статус запроса на изменение"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service ChangeRequestService
	logger  Logger
}

func NewHandler(service ChangeRequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/change-requests?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetActor(r.Context())

	// По умолчанию админа интересуют неразрешённые запросы
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(domain.RequestPending)
	}

	result, err := h.service.ListByStatus(r.Context(), actor, status)
	if err != nil {
		switch {
		case errors.Is(err, changerequests.ErrAccessDenied):
			h.logger.Warn("GET /change-requests - Access denied: actor=%s", actor)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, changerequests.ErrInvalidInput):
			h.logger.Warn("GET /change-requests - Invalid status: %s", status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /change-requests - Failed to list: status=%s, error=%v", status, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /change-requests - Change requests listed: status=%s, total=%d", status, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
