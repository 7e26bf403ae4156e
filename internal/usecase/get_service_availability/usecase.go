package get_service_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
)

// UseCase use case получения остатка дневного лимита услуги на дату.
// Остаток считается по неотменённым записям: отмена возвращает слот в пул.
type UseCase struct {
	apptRepo    AppointmentRepository
	catalogRepo CatalogRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(apptRepo AppointmentRepository, catalogRepo CatalogRepository, logger Logger) *UseCase {
	return &UseCase{
		apptRepo:    apptRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения остатка слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date := normalizeDate(req.Date)

	uc.logger.Info("GetServiceAvailability: service=%d, date=%s", req.ServiceID, date.Format(domain.DateFormat))

	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetServiceAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetServiceAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	used, err := uc.apptRepo.CountActiveByServiceAndDate(ctx, req.ServiceID, date, nil)
	if err != nil {
		uc.logger.Error("GetServiceAvailability: failed to count appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to count appointments: %v", ErrInternal, err)
	}

	remaining := service.MaxDailySlots - used
	if remaining < 0 {
		remaining = 0
	}

	uc.logger.Info("GetServiceAvailability: service=%d, date=%s, used=%d/%d",
		req.ServiceID, date.Format(domain.DateFormat), used, service.MaxDailySlots)

	return &Response{
		ServiceID:      service.ID,
		ServiceName:    service.Name,
		Date:           date,
		MaxDailySlots:  service.MaxDailySlots,
		UsedSlots:      used,
		RemainingSlots: remaining,
		IsActive:       service.IsActive,
	}, nil
}

// normalizeDate обнуляет компонент времени даты
func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
