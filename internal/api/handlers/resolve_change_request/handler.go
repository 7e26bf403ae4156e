package resolve_change_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/changerequests"
	"github.com/m04kA/SMC-AppointmentService/internal/service/changerequests/models"
)

const (
	msgInvalidRequestID   = "некорректный ID запроса на изменение"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запрос на изменение не найден"
	msgForbidden          = "доступ запрещен"
	msgAlreadyResolved    = "запрос на изменение уже разрешён"
	msgInvalidInput       = "некорректные данные запроса"
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

// Handle POST /api/v1/change-requests/{requestId}/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /change-requests/{id}/resolve - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req ResolveChangeRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /change-requests/{id}/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor, _ := middleware.GetActor(r.Context())

	result, err := h.service.Resolve(r.Context(), actor, &models.ResolveChangeRequest{
		RequestID: requestID,
		Decision:  req.Decision,
		Response:  req.Response,
	})
	if err != nil {
		switch {
		case errors.Is(err, changerequests.ErrRequestNotFound):
			h.logger.Warn("POST /change-requests/{id}/resolve - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, changerequests.ErrAccessDenied):
			h.logger.Warn("POST /change-requests/{id}/resolve - Access denied: request_id=%d, actor=%s",
				requestID, actor)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, changerequests.ErrAlreadyResolved):
			h.logger.Warn("POST /change-requests/{id}/resolve - Already resolved: request_id=%d", requestID)
			handlers.RespondConflict(w, msgAlreadyResolved)

		case errors.Is(err, changerequests.ErrInvalidInput):
			h.logger.Warn("POST /change-requests/{id}/resolve - Invalid input: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /change-requests/{id}/resolve - Failed to resolve: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /change-requests/{id}/resolve - Change request resolved: request_id=%d, status=%s",
		requestID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
