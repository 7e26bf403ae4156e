package assign_employee

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidEmployeeID    = "некорректный ID сотрудника"
	msgNotFound             = "запись не найдена"
	msgEmployeeNotFound     = "сотрудник не найден"
	msgEmployeeInactive     = "сотрудник неактивен и не может быть назначен"
	msgForbidden            = "доступ запрещен"
	msgInvalidTransition    = "запись не может быть передана в работу в текущем статусе"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/assign - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req AssignEmployeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.EmployeeID <= 0 {
		h.logger.Warn("PATCH /appointments/{id}/assign - Invalid employee ID: %d", req.EmployeeID)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	actor, _ := middleware.GetActor(r.Context())

	appointment, err := h.service.AssignEmployee(r.Context(), appointmentID, req.EmployeeID, actor)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/assign - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrEmployeeNotFound):
			h.logger.Warn("PATCH /appointments/{id}/assign - Employee not found: appointment_id=%d, employee_id=%d",
				appointmentID, req.EmployeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, appointments.ErrEmployeeInactive):
			h.logger.Warn("PATCH /appointments/{id}/assign - Employee inactive: appointment_id=%d, employee_id=%d",
				appointmentID, req.EmployeeID)
			handlers.RespondConflict(w, msgEmployeeInactive)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/assign - Access denied: appointment_id=%d, actor=%s",
				appointmentID, actor)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/assign - Invalid transition: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /appointments/{id}/assign - Failed to assign employee: appointment_id=%d, employee_id=%d, error=%v",
				appointmentID, req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/assign - Employee assigned: appointment_id=%d, employee_id=%d",
		appointmentID, req.EmployeeID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
