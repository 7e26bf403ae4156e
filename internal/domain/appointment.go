package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusInService AppointmentStatus = "in_service"
	StatusReady     AppointmentStatus = "ready"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a service-center appointment
type Appointment struct {
	ID         int64
	CustomerID int64
	ServiceID  int64

	// Vehicle details are opaque to the scheduling core
	VehicleBrand        string
	VehicleModel        string
	VehicleLicensePlate string
	Notes               *string

	AppointmentDate time.Time // Календарный день, время обнулено
	TimeSlot        types.TimeString
	Status          AppointmentStatus

	AssignedEmployeeID *int64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its slot and counts
// against the daily capacity of its service
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if no further transition, assignment or edit is accepted
func (a *Appointment) IsTerminal() bool {
	for _, s := range TerminalStatuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

// IsEditable returns true if the appointment payload may still be changed
// (subject to an approved change request)
func (a *Appointment) IsEditable() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsOwnedBy returns true if the appointment belongs to the given customer
func (a *Appointment) IsOwnedBy(customerID int64) bool {
	return a.CustomerID == customerID
}

// AppointmentsFilter фильтр для выборки записей администратором
type AppointmentsFilter struct {
	Date            *time.Time         // Фильтр по дате (опционально)
	ServiceID       *int64             // Фильтр по услуге (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные записи
}
