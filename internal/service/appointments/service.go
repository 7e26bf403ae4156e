package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	staffClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис жизненного цикла записей на обслуживание.
// Все переходы статусов идут через закрытый граф domain.CanTransition
// и условные обновления в репозитории: конкурентный переход по той же
// записи получает ErrInvalidTransition, состояние не портится.
type Service struct {
	apptRepo    AppointmentRepository
	staffClient StaffServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:    apptRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// GetByID получает запись по ID.
// Клиент видит только свои записи; администратор и сотрудники — любые.
func (s *Service) GetByID(ctx context.Context, id, userID int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsStaff() && !appt.IsOwnedBy(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// GetCustomerAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerAppointments(ctx context.Context, userID int64, actor domain.Actor, req *models.GetCustomerAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if !actor.IsStaff() && req.CustomerID != userID {
		s.logger.Warn("GetCustomerAppointments: access denied for user=%d to customer=%d", userID, req.CustomerID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.apptRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: fetched %d appointments for customer=%d", len(appointments), req.CustomerID)
	return models.FromDomainAppointmentList(appointments), nil
}

// ListWithFilter получает записи с фильтрацией по дате/услуге/статусу.
// Доступно только персоналу сервисного центра.
func (s *Service) ListWithFilter(ctx context.Context, actor domain.Actor, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if !actor.IsStaff() {
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointments, err := s.apptRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListWithFilter: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListWithFilter - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments), nil
}

// Approve подтверждает запись (pending -> confirmed, только администратор)
func (s *Service) Approve(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "Approve", id, domain.StatusConfirmed, actor)
}

// Reject отклоняет запись (pending -> cancelled, только администратор)
func (s *Service) Reject(ctx context.Context, id int64, actor domain.Actor, reason string) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor != domain.ActorAdmin {
		return nil, ErrAccessDenied
	}

	if !domain.CanTransition(appt.Status, domain.StatusCancelled, actor) {
		s.logger.Warn("Reject: invalid transition %s -> %s by %s for appointment id=%d",
			appt.Status, domain.StatusCancelled, actor, id)
		return nil, invalidTransition(appt.Status, domain.StatusCancelled)
	}

	if reason == "" {
		reason = "rejected by service center"
	}

	if err := s.apptRepo.Cancel(ctx, id, appt.Status, reason); err != nil {
		return nil, s.mapUpdateError("Reject", id, appt.Status, domain.StatusCancelled, err)
	}

	s.logger.Info("Reject: appointment id=%d rejected", id)
	return s.reload(ctx, id)
}

// AssignEmployee назначает сотрудника на запись и переводит её в in_service.
// Назначение и смена статуса выполняются одним атомарным обновлением.
func (s *Service) AssignEmployee(ctx context.Context, id, employeeID int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(appt.Status, domain.StatusInService, actor) {
		s.logger.Warn("AssignEmployee: invalid transition %s -> %s by %s for appointment id=%d",
			appt.Status, domain.StatusInService, actor, id)
		return nil, invalidTransition(appt.Status, domain.StatusInService)
	}

	// Назначаемый сотрудник должен быть активен
	employee, err := s.staffClient.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, staffClient.ErrEmployeeNotFound) {
			s.logger.Warn("AssignEmployee: employee id=%d not found", employeeID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("AssignEmployee: failed to get employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}
	if !employee.IsActive {
		s.logger.Warn("AssignEmployee: employee id=%d is not active", employeeID)
		return nil, ErrEmployeeInactive
	}

	if err := s.apptRepo.AssignEmployee(ctx, id, employeeID, appt.Status, domain.StatusInService); err != nil {
		return nil, s.mapUpdateError("AssignEmployee", id, appt.Status, domain.StatusInService, err)
	}

	s.logger.Info("AssignEmployee: appointment id=%d assigned to employee=%d", id, employeeID)
	return s.reload(ctx, id)
}

// MarkReady отмечает автомобиль готовым к выдаче (in_service -> ready)
func (s *Service) MarkReady(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "MarkReady", id, domain.StatusReady, actor)
}

// MarkCompleted завершает обслуживание (ready -> completed)
func (s *Service) MarkCompleted(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	return s.transition(ctx, "MarkCompleted", id, domain.StatusCompleted, actor)
}

// Cancel отменяет запись клиентом. Разрешено только владельцу и только
// из статуса pending: после подтверждения отмена — через сервисный центр.
func (s *Service) Cancel(ctx context.Context, id, userID int64, actor domain.Actor, reason string) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor == domain.ActorCustomer && !appt.IsOwnedBy(userID) {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	if !domain.CanTransition(appt.Status, domain.StatusCancelled, actor) {
		s.logger.Warn("Cancel: invalid transition %s -> %s by %s for appointment id=%d",
			appt.Status, domain.StatusCancelled, actor, id)
		return nil, invalidTransition(appt.Status, domain.StatusCancelled)
	}

	if err := s.apptRepo.Cancel(ctx, id, appt.Status, reason); err != nil {
		return nil, s.mapUpdateError("Cancel", id, appt.Status, domain.StatusCancelled, err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled by user=%d", id, userID)
	return s.reload(ctx, id)
}

// transition общий путь простого перехода статуса
func (s *Service) transition(ctx context.Context, op string, id int64, to domain.AppointmentStatus, actor domain.Actor) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(appt.Status, to, actor) {
		s.logger.Warn("%s: invalid transition %s -> %s by %s for appointment id=%d",
			op, appt.Status, to, actor, id)
		return nil, invalidTransition(appt.Status, to)
	}

	if err := s.apptRepo.UpdateStatusFrom(ctx, id, appt.Status, to); err != nil {
		return nil, s.mapUpdateError(op, id, appt.Status, to, err)
	}

	s.logger.Info("%s: appointment id=%d moved %s -> %s", op, id, appt.Status, to)
	return s.reload(ctx, id)
}

func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return appt, nil
}

func (s *Service) reload(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appt), nil
}

// mapUpdateError конвертирует ошибку условного обновления.
// Потерянная гонка (статус сменился между чтением и записью) — это
// тот же недопустимый переход с точки зрения вызывающего.
func (s *Service) mapUpdateError(op string, id int64, from, to domain.AppointmentStatus, err error) error {
	if errors.Is(err, apptRepo.ErrStatusConflict) {
		s.logger.Warn("%s: lost concurrent transition race for appointment id=%d (%s -> %s)", op, id, from, to)
		return invalidTransition(from, to)
	}
	s.logger.Error("%s: failed to update appointment id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func invalidTransition(from, to domain.AppointmentStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
