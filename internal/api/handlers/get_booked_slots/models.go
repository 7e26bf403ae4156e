package get_booked_slots

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getBookedSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_booked_slots"
)

// BookedSlotsResponse HTTP response model
type BookedSlotsResponse struct {
	Date        string   `json:"date"`
	BookedSlots []string `json:"bookedSlots"`
	FreeSlots   []string `json:"freeSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBookedSlots.Response) *BookedSlotsResponse {
	booked := make([]string, 0, len(resp.BookedSlots))
	for _, slot := range resp.BookedSlots {
		booked = append(booked, slot.String())
	}

	free := make([]string, 0, len(resp.FreeSlots))
	for _, slot := range resp.FreeSlots {
		free = append(free, slot.String())
	}

	return &BookedSlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		BookedSlots: booked,
		FreeSlots:   free,
	}
}
