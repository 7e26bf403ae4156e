package get_booked_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case получения расписания занятости слотов приёмки на дату.
// Слот приёмки общий для всех услуг: занятым считается слот любой
// неотменённой записи.
type UseCase struct {
	apptRepo AppointmentRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(apptRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		apptRepo: apptRepo,
		logger:   logger,
	}
}

// Execute выполняет use case получения расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := normalizeDate(req.Date)

	uc.logger.Info("GetBookedSlots: date=%s", date.Format(domain.DateFormat))

	booked, err := uc.apptRepo.GetBookedSlots(ctx, date)
	if err != nil {
		uc.logger.Error("GetBookedSlots: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}

	bookedSet := make(map[types.TimeString]struct{}, len(booked))
	for _, slot := range booked {
		bookedSet[slot] = struct{}{}
	}

	free := make([]types.TimeString, 0, len(domain.AllTimeSlots))
	for _, slot := range domain.AllTimeSlots {
		if _, ok := bookedSet[slot]; !ok {
			free = append(free, slot)
		}
	}

	uc.logger.Info("GetBookedSlots: date=%s, booked=%d, free=%d",
		date.Format(domain.DateFormat), len(booked), len(free))

	return &Response{
		Date:        date,
		BookedSlots: booked,
		FreeSlots:   free,
	}, nil
}

// normalizeDate обнуляет компонент времени даты
func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
