package edit_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	crStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/changerequest"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case редактирования записи по одобренному запросу на изменение.
// Редактирование — это новая аллокация: дата и слот могли измениться, поэтому
// проверки дневного лимита и занятости слота выполняются заново (без учёта
// собственной текущей брони записи). Проверка окна редактирования, обновление
// payload и пометка одобрения использованным — одна сериализуемая транзакция:
// одно одобрение не может быть потрачено дважды.
type UseCase struct {
	apptRepo     AppointmentRepository
	catalogRepo  CatalogRepository
	crRepo       ChangeRequestRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	crRepo ChangeRequestRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		catalogRepo:  catalogRepo,
		crRepo:       crRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case редактирования записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EditAppointment: appointment=%d, customer=%d, service=%d, date=%s, slot=%s",
		req.AppointmentID, req.CustomerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EditAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("EditAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	date := normalizeDate(req.Date)

	// 2. Новая услуга должна существовать и быть активной
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("EditAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("EditAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if !service.IsBookable() {
		uc.logger.Warn("EditAppointment: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	var result *Response

	// 3. Окно редактирования, проверки аллокатора, обновление и
	// использование одобрения — одна сериализуемая транзакция
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Запись существует, принадлежит клиенту и ещё редактируема
		appt, err := uc.apptRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptStorage.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("EditAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if !appt.IsOwnedBy(req.CustomerID) {
			uc.logger.Warn("EditAppointment: access denied for customer=%d to appointment id=%d",
				req.CustomerID, req.AppointmentID)
			return ErrAccessDenied
		}

		if !appt.IsEditable() {
			uc.logger.Warn("EditAppointment: appointment id=%d is not editable (status=%s)",
				req.AppointmentID, appt.Status)
			return ErrNotEditable
		}

		// 3.2. Должно быть одобренное и ещё не использованное разрешение
		approval, err := uc.crRepo.GetConsumableByAppointment(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, crStorage.ErrRequestNotFound) {
				uc.logger.Warn("EditAppointment: no consumable approval for appointment id=%d", req.AppointmentID)
				return ErrNotEditable
			}
			uc.logger.Error("EditAppointment: failed to get approval: %v", err)
			return fmt.Errorf("%w: failed to get approval: %w", ErrInternal, err)
		}

		// 3.3. Проверки аллокатора заново, исключая собственную бронь записи
		excludeID := ptr.Ptr(appt.ID)

		count, err := uc.apptRepo.CountActiveByServiceAndDate(txCtx, req.ServiceID, date, excludeID)
		if err != nil {
			uc.logger.Error("EditAppointment: failed to count appointments: %v", err)
			return fmt.Errorf("%w: failed to count appointments: %w", ErrInternal, err)
		}

		if count >= service.MaxDailySlots {
			uc.logger.Warn("EditAppointment: capacity exceeded for service=%d on %s (%d/%d)",
				req.ServiceID, date.Format(domain.DateFormat), count, service.MaxDailySlots)
			return ErrCapacityExceeded
		}

		taken, err := uc.apptRepo.IsTimeSlotTaken(txCtx, date, req.TimeSlot, excludeID)
		if err != nil {
			uc.logger.Error("EditAppointment: failed to check time slot: %v", err)
			return fmt.Errorf("%w: failed to check time slot: %w", ErrInternal, err)
		}

		if taken {
			uc.logger.Warn("EditAppointment: slot %s on %s already taken", req.TimeSlot, date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 3.4. Обновляем payload записи (compare-and-swap по статусу)
		details := apptStorage.UpdateDetails{
			ServiceID:           req.ServiceID,
			VehicleBrand:        req.VehicleBrand,
			VehicleModel:        req.VehicleModel,
			VehicleLicensePlate: req.VehicleLicensePlate,
			Notes:               req.Notes,
			AppointmentDate:     date,
			TimeSlot:            req.TimeSlot,
		}

		updatedAt, err := uc.apptRepo.UpdateAppointmentDetails(txCtx, appt.ID, appt.Status, details)
		if err != nil {
			switch {
			case errors.Is(err, apptStorage.ErrSlotTaken):
				uc.logger.Warn("EditAppointment: lost slot race for appointment id=%d", appt.ID)
				return ErrSlotTaken
			case errors.Is(err, apptStorage.ErrStatusConflict):
				uc.logger.Warn("EditAppointment: status changed concurrently for appointment id=%d", appt.ID)
				return ErrNotEditable
			default:
				uc.logger.Error("EditAppointment: failed to update appointment id=%d: %v", appt.ID, err)
				return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
			}
		}

		// 3.5. Одобрение потрачено: следующее редактирование потребует
		// нового запроса на изменение
		if err := uc.crRepo.MarkConsumed(txCtx, approval.ID); err != nil {
			if errors.Is(err, crStorage.ErrNotConsumable) {
				uc.logger.Warn("EditAppointment: approval id=%d consumed concurrently", approval.ID)
				return ErrNotEditable
			}
			uc.logger.Error("EditAppointment: failed to consume approval id=%d: %v", approval.ID, err)
			return fmt.Errorf("%w: failed to consume approval: %w", ErrInternal, err)
		}

		result = &Response{
			ID:                  appt.ID,
			CustomerID:          appt.CustomerID,
			ServiceID:           req.ServiceID,
			VehicleBrand:        req.VehicleBrand,
			VehicleModel:        req.VehicleModel,
			VehicleLicensePlate: req.VehicleLicensePlate,
			Notes:               req.Notes,
			Date:                date,
			TimeSlot:            req.TimeSlot,
			Status:              string(appt.Status),
			ConsumedRequestID:   approval.ID,
			UpdatedAt:           updatedAt,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("EditAppointment: successfully updated appointment id=%d (consumed request id=%d)",
		result.ID, result.ConsumedRequestID)

	return result, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.VehicleBrand) == "" {
		return fmt.Errorf("%w: vehicleBrand is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.VehicleModel) == "" {
		return fmt.Errorf("%w: vehicleModel is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.VehicleLicensePlate) == "" {
		return fmt.Errorf("%w: vehicleLicensePlate is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes is too long", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !domain.ValidTimeSlot(req.TimeSlot) {
		return fmt.Errorf("%w: %q is not a valid time slot", ErrInvalidTimeSlot, req.TimeSlot)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// normalizeDate обнуляет компонент времени даты записи
func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
