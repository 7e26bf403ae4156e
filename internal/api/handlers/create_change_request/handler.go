package create_change_request

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
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgNotEditable          = "запрос на изменение недоступен в текущем статусе записи"
	msgRequestPending       = "по записи уже есть неразрешённый запрос на изменение"
	msgInvalidInput         = "некорректные данные запроса"
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

// Handle POST /api/v1/appointments/{appointmentId}/change-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/change-requests - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/change-requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	actor, _ := middleware.GetActor(r.Context())

	var req CreateChangeRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/change-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), userID, actor, &models.CreateChangeRequest{
		AppointmentID: appointmentID,
		Reason:        req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, changerequests.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/change-requests - Appointment not found: appointment_id=%d",
				appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, changerequests.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/change-requests - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, changerequests.ErrNotEditable):
			h.logger.Warn("POST /appointments/{id}/change-requests - Not editable: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, changerequests.ErrRequestAlreadyPending):
			h.logger.Warn("POST /appointments/{id}/change-requests - Request already pending: appointment_id=%d",
				appointmentID)
			handlers.RespondConflict(w, msgRequestPending)

		case errors.Is(err, changerequests.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/change-requests - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/{id}/change-requests - Failed to create change request: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/change-requests - Change request created: request_id=%d, appointment_id=%d, user_id=%d",
		result.ID, appointmentID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
