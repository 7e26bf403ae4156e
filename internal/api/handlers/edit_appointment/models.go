package edit_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	editAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/edit_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// EditAppointmentRequest HTTP request model.
// Передаётся полный новый payload записи.
type EditAppointmentRequest struct {
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
	ConsumedRequestID   int64   `json:"consumedRequestId"`
	UpdatedAt           string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EditAppointmentRequest) ToUseCaseRequest(appointmentID, customerID int64) (*editAppointment.Request, error) {
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

	return &editAppointment.Request{
		AppointmentID:       appointmentID,
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
func FromUseCaseResponse(resp *editAppointment.Response) *AppointmentResponse {
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
		ConsumedRequestID:   resp.ConsumedRequestID,
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}
