package get_service_availability

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getServiceAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_service_availability"
)

// ServiceAvailabilityResponse HTTP response model
type ServiceAvailabilityResponse struct {
	ServiceID      int64  `json:"serviceId"`
	ServiceName    string `json:"serviceName"`
	Date           string `json:"date"`
	MaxDailySlots  int    `json:"maxDailySlots"`
	UsedSlots      int    `json:"usedSlots"`
	RemainingSlots int    `json:"remainingSlots"`
	IsActive       bool   `json:"isActive"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getServiceAvailability.Response) *ServiceAvailabilityResponse {
	return &ServiceAvailabilityResponse{
		ServiceID:      resp.ServiceID,
		ServiceName:    resp.ServiceName,
		Date:           resp.Date.Format(domain.DateFormat),
		MaxDailySlots:  resp.MaxDailySlots,
		UsedSlots:      resp.UsedSlots,
		RemainingSlots: resp.RemainingSlots,
		IsActive:       resp.IsActive,
	}
}
