package changerequests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	crRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/changerequest"
	"github.com/m04kA/SMC-AppointmentService/internal/service/changerequests/models"
)

// Service шлюз запросов на изменение записи.
// Одобренный запрос открывает ровно одно окно редактирования;
// само редактирование (и пометка consumed) выполняется usecase'ом
// edit_appointment в одной транзакции с проверками аллокатора.
type Service struct {
	crRepo   ChangeRequestRepository
	apptRepo AppointmentRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса запросов на изменение
func NewService(
	crRepo ChangeRequestRepository,
	apptRepo AppointmentRepository,
	logger Logger,
) *Service {
	return &Service{
		crRepo:   crRepo,
		apptRepo: apptRepo,
		logger:   logger,
	}
}

// Create создает запрос на изменение.
// Разрешено только владельцу записи и только пока запись в pending/confirmed.
// Не более одного неразрешённого запроса на запись.
func (s *Service) Create(ctx context.Context, userID int64, actor domain.Actor, req *models.CreateChangeRequest) (*models.ChangeRequestResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	appt, err := s.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}

	if actor == domain.ActorCustomer && !appt.IsOwnedBy(userID) {
		s.logger.Warn("Create: access denied for user=%d to appointment id=%d", userID, req.AppointmentID)
		return nil, ErrAccessDenied
	}

	if !appt.IsEditable() {
		s.logger.Warn("Create: appointment id=%d is not editable (status=%s)", req.AppointmentID, appt.Status)
		return nil, ErrNotEditable
	}

	// Предварительная проверка; гонку двух одновременных созданий
	// всё равно ловит частичный уникальный индекс
	_, err = s.crRepo.GetPendingByAppointment(ctx, req.AppointmentID)
	if err == nil {
		s.logger.Warn("Create: active request already exists for appointment id=%d", req.AppointmentID)
		return nil, ErrRequestAlreadyPending
	}
	if !errors.Is(err, crRepo.ErrRequestNotFound) {
		s.logger.Error("Create: failed to check pending request for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	created, err := s.crRepo.Create(ctx, &domain.ChangeRequest{
		AppointmentID: req.AppointmentID,
		Reason:        reason,
		Status:        domain.RequestPending,
	})
	if err != nil {
		if errors.Is(err, crRepo.ErrActiveRequestExists) {
			s.logger.Warn("Create: active request already exists for appointment id=%d", req.AppointmentID)
			return nil, ErrRequestAlreadyPending
		}
		s.logger.Error("Create: failed to create change request for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: change request id=%d created for appointment id=%d", created.ID, created.AppointmentID)
	return models.FromDomainChangeRequest(created), nil
}

// Resolve разрешает запрос на изменение (только администратор).
// Решение финально: повторное разрешение, включая проигрыш в конкурентной
// гонке, возвращает ErrAlreadyResolved.
func (s *Service) Resolve(ctx context.Context, actor domain.Actor, req *models.ResolveChangeRequest) (*models.ChangeRequestResponse, error) {
	if actor != domain.ActorAdmin {
		return nil, ErrAccessDenied
	}

	status, ok := domain.StatusForDecision(domain.ChangeRequestDecision(req.Decision))
	if !ok {
		return nil, fmt.Errorf("%w: decision must be approve or reject", ErrInvalidInput)
	}

	if req.Response != nil && len(*req.Response) > domain.MaxAdminResponseLength {
		return nil, fmt.Errorf("%w: response is too long", ErrInvalidInput)
	}

	// Существование проверяем до условного обновления, чтобы отличить
	// "не найден" от "уже разрешён"
	if _, err := s.getRequest(ctx, req.RequestID); err != nil {
		return nil, err
	}

	if err := s.crRepo.Resolve(ctx, req.RequestID, status, req.Response); err != nil {
		if errors.Is(err, crRepo.ErrNotPending) {
			s.logger.Warn("Resolve: change request id=%d already resolved", req.RequestID)
			return nil, ErrAlreadyResolved
		}
		s.logger.Error("Resolve: failed to resolve change request id=%d: %v", req.RequestID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	resolved, err := s.getRequest(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Resolve: change request id=%d resolved to %s", req.RequestID, status)
	return models.FromDomainChangeRequest(resolved), nil
}

// CanEdit возвращает true, если запись можно редактировать прямо сейчас:
// она в pending/confirmed и по ней есть одобренный неиспользованный запрос
func (s *Service) CanEdit(ctx context.Context, appointmentID, userID int64, actor domain.Actor) (*models.CanEditResponse, error) {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if actor == domain.ActorCustomer && !appt.IsOwnedBy(userID) {
		return nil, ErrAccessDenied
	}

	resp := &models.CanEditResponse{AppointmentID: appointmentID}

	if !appt.IsEditable() {
		return resp, nil
	}

	_, err = s.crRepo.GetConsumableByAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, crRepo.ErrRequestNotFound) {
			return resp, nil
		}
		s.logger.Error("CanEdit: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: CanEdit - repository error: %v", ErrInternal, err)
	}

	resp.CanEdit = true
	return resp, nil
}

// ListByAppointment возвращает историю запросов по записи
func (s *Service) ListByAppointment(ctx context.Context, appointmentID, userID int64, actor domain.Actor) (*models.ChangeRequestListResponse, error) {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if actor == domain.ActorCustomer && !appt.IsOwnedBy(userID) {
		return nil, ErrAccessDenied
	}

	requests, err := s.crRepo.ListByAppointment(ctx, appointmentID)
	if err != nil {
		s.logger.Error("ListByAppointment: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: ListByAppointment - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainChangeRequestList(requests), nil
}

// ListByStatus возвращает запросы в указанном статусе (админский список)
func (s *Service) ListByStatus(ctx context.Context, actor domain.Actor, status string) (*models.ChangeRequestListResponse, error) {
	if actor != domain.ActorAdmin {
		return nil, ErrAccessDenied
	}

	requestStatus := domain.ChangeRequestStatus(status)
	switch requestStatus {
	case domain.RequestPending, domain.RequestApproved, domain.RequestRejected:
	default:
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, status)
	}

	requests, err := s.crRepo.ListByStatus(ctx, requestStatus)
	if err != nil {
		s.logger.Error("ListByStatus: repository error for status=%s: %v", status, err)
		return nil, fmt.Errorf("%w: ListByStatus - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainChangeRequestList(requests), nil
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

func (s *Service) getRequest(ctx context.Context, id int64) (*domain.ChangeRequest, error) {
	req, err := s.crRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, crRepo.ErrRequestNotFound) {
			s.logger.Warn("change request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("repository error for change request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return req, nil
}
