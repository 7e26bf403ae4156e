package edit_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	editAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/edit_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidDate          = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgNotEditable          = "редактирование записи недоступно"
	msgServiceNotFound      = "услуга не найдена"
	msgServiceInactive      = "услуга недоступна для записи"
	msgSlotTaken            = "выбранный временной слот уже занят"
	msgCapacityExceeded     = "дневной лимит записей на услугу исчерпан"
	msgInvalidApptDate      = "некорректная дата записи"
	msgInvalidTimeSlot      = "некорректный временной слот"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase EditAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase EditAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Редактировать запись может только её владелец
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /appointments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req EditAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, userID)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, editAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, editAppointment.ErrAccessDenied):
			h.logger.Warn("PUT /appointments/{id} - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, editAppointment.ErrNotEditable):
			h.logger.Warn("PUT /appointments/{id} - Not editable: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, editAppointment.ErrServiceNotFound):
			h.logger.Warn("PUT /appointments/{id} - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, editAppointment.ErrServiceInactive):
			h.logger.Warn("PUT /appointments/{id} - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, editAppointment.ErrSlotTaken):
			h.logger.Warn("PUT /appointments/{id} - Slot taken: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, editAppointment.ErrCapacityExceeded):
			h.logger.Warn("PUT /appointments/{id} - Capacity exceeded: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, editAppointment.ErrInvalidDate):
			h.logger.Warn("PUT /appointments/{id} - Invalid appointment date: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidApptDate)

		case errors.Is(err, editAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("PUT /appointments/{id} - Invalid time slot: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, editAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - Invalid input: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /appointments/{id} - Failed to edit appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PUT /appointments/{id} - Appointment edited: appointment_id=%d, user_id=%d, consumed_request_id=%d",
		appointmentID, userID, result.ConsumedRequestID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
