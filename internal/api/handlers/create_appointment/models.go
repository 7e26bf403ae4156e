package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID           int64   `json:"serviceId"`
	VehicleBrand        string  `json:"vehicleBrand"`
	VehicleModel        string  `json:"vehicleModel"`
	VehicleLicensePlate string  `json:"vehicleLicensePlate"`
	Notes               *string `json:"notes,omitempty"`
	AppointmentDate     string  `json:"appointmentDate"` // "2026-09-15"
	TimeSlot            string  `json:"timeSlot"`        // "10:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                  int64   `json:"id"`
	CustomerID          int64   `json:"customerId"`
	ServiceID           int64   `json:"serviceId"`
	VehicleBrand        string  `json:"vehicleBrand"`
	VehicleModel        string  `json:"vehicleModel"`
	VehicleLicensePlate string  `json:"vehicleLicensePlate"`
	Notes               *string `json:"notes,omitempty"`
	AppointmentDate     string  `json:"appointmentDate"`
	TimeSlot            string  `json:"timeSlot"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(customerID int64) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	// Парсим слот приёмки
	timeSlot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		CustomerID:          customerID,
		ServiceID:           r.ServiceID,
		VehicleBrand:        r.VehicleBrand,
		VehicleModel:        r.VehicleModel,
		VehicleLicensePlate: r.VehicleLicensePlate,
		Notes:               r.Notes,
		Date:                date,
		TimeSlot:            timeSlot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                  resp.ID,
		CustomerID:          resp.CustomerID,
		ServiceID:           resp.ServiceID,
		VehicleBrand:        resp.VehicleBrand,
		VehicleModel:        resp.VehicleModel,
		VehicleLicensePlate: resp.VehicleLicensePlate,
		Notes:               resp.Notes,
		AppointmentDate:     resp.Date.Format(domain.DateFormat),
		TimeSlot:            resp.TimeSlot.String(),
		Status:              resp.Status,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}
