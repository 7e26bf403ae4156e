package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
)

// isSlotTaken проверяет ошибку нарушения уникальности слота из репозитория
func isSlotTaken(err error) bool {
	return errors.Is(err, apptStorage.ErrSlotTaken)
}

// UseCase use case создания записи на обслуживание.
// Проверка дневного лимита услуги, проверка занятости слота и вставка
// выполняются одной сериализуемой транзакцией: два конкурентных запроса
// на один слот не могут оба увидеть его свободным и оба закоммититься.
type UseCase struct {
	apptRepo     AppointmentRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, service=%d, date=%s, slot=%s",
		req.CustomerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	date := normalizeDate(req.Date)

	// 3. Услуга должна существовать и быть активной
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if !service.IsBookable() {
		uc.logger.Warn("CreateAppointment: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	var result *domain.Appointment

	// 4. Проверки аллокатора и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Дневной лимит услуги
		count, err := uc.apptRepo.CountActiveByServiceAndDate(txCtx, req.ServiceID, date, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count appointments: %v", err)
			return fmt.Errorf("%w: failed to count appointments: %w", ErrInternal, err)
		}

		if count >= service.MaxDailySlots {
			uc.logger.Warn("CreateAppointment: capacity exceeded for service=%d on %s (%d/%d)",
				req.ServiceID, date.Format(domain.DateFormat), count, service.MaxDailySlots)
			return ErrCapacityExceeded
		}

		// 4.2. Слот приёмки общий для всех услуг
		taken, err := uc.apptRepo.IsTimeSlotTaken(txCtx, date, req.TimeSlot, nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check time slot: %v", err)
			return fmt.Errorf("%w: failed to check time slot: %w", ErrInternal, err)
		}

		if taken {
			uc.logger.Warn("CreateAppointment: slot %s on %s already taken",
				req.TimeSlot, date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		uc.logger.Info("CreateAppointment: slot available, %d/%d daily slots used",
			count, service.MaxDailySlots)

		// 4.3. Создаем запись в статусе pending
		created, err := uc.apptRepo.Create(txCtx, &domain.Appointment{
			CustomerID:          req.CustomerID,
			ServiceID:           req.ServiceID,
			VehicleBrand:        req.VehicleBrand,
			VehicleModel:        req.VehicleModel,
			VehicleLicensePlate: req.VehicleLicensePlate,
			Notes:               req.Notes,
			AppointmentDate:     date,
			TimeSlot:            req.TimeSlot,
			Status:              domain.StatusPending,
		})
		if err != nil {
			return uc.mapCreateError(err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:                  result.ID,
		CustomerID:          result.CustomerID,
		ServiceID:           result.ServiceID,
		VehicleBrand:        result.VehicleBrand,
		VehicleModel:        result.VehicleModel,
		VehicleLicensePlate: result.VehicleLicensePlate,
		Notes:               result.Notes,
		Date:                result.AppointmentDate,
		TimeSlot:            result.TimeSlot,
		Status:              string(result.Status),
		CreatedAt:           result.CreatedAt,
		UpdatedAt:           result.UpdatedAt,
	}, nil
}

// mapCreateError конвертирует ошибку вставки.
// Нарушение уникального индекса (date, time_slot) — проигранная гонка
// за слот, для вызывающего это тот же ErrSlotTaken.
func (uc *UseCase) mapCreateError(err error) error {
	if isSlotTaken(err) {
		uc.logger.Warn("CreateAppointment: lost slot race: %v", err)
		return ErrSlotTaken
	}
	uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
	return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
}
