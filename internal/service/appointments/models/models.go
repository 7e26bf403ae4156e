package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи клиентом
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// GetCustomerAppointmentsRequest запрос истории записей клиента
type GetCustomerAppointmentsRequest struct {
	CustomerID int64
	Status     *string
}

// ListAppointmentsRequest запрос админского списка записей
type ListAppointmentsRequest struct {
	Date            *time.Time
	ServiceID       *int64
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		Date:            r.Date,
		ServiceID:       r.ServiceID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                  int64   `json:"id"`
	CustomerID          int64   `json:"customerId"`
	ServiceID           int64   `json:"serviceId"`
	VehicleBrand        string  `json:"vehicleBrand"`
	VehicleModel        string  `json:"vehicleModel"`
	VehicleLicensePlate string  `json:"vehicleLicensePlate"`
	Notes               *string `json:"notes,omitempty"`
	AppointmentDate     string  `json:"appointmentDate"` // "2025-06-01"
	TimeSlot            string  `json:"timeSlot"`        // "10:00"
	Status              string  `json:"status"`
	AssignedEmployeeID  *int64  `json:"assignedEmployeeId,omitempty"`
	CancellationReason  *string `json:"cancellationReason,omitempty"`
	CancelledAt         *string `json:"cancelledAt,omitempty"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует доменную модель в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                  a.ID,
		CustomerID:          a.CustomerID,
		ServiceID:           a.ServiceID,
		VehicleBrand:        a.VehicleBrand,
		VehicleModel:        a.VehicleModel,
		VehicleLicensePlate: a.VehicleLicensePlate,
		Notes:               a.Notes,
		AppointmentDate:     a.AppointmentDate.Format(domain.DateFormat),
		TimeSlot:            a.TimeSlot.String(),
		Status:              string(a.Status),
		AssignedEmployeeID:  a.AssignedEmployeeID,
		CancellationReason:  a.CancellationReason,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           a.UpdatedAt.Format(time.RFC3339),
	}

	if a.CancelledAt != nil {
		cancelledAt := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainAppointmentList конвертирует список доменных моделей в response
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	appointments := make([]*AppointmentResponse, 0, len(list))
	for _, a := range list {
		appointments = append(appointments, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{
		Appointments: appointments,
		Total:        len(appointments),
	}
}

// ToDomainStatus конвертирует строку в доменный статус
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !domain.ValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}
