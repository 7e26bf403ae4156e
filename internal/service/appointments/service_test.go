package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// fakeAppointmentRepo stateful фейк репозитория записей
type fakeAppointmentRepo struct {
	appointments        map[int64]*domain.Appointment
	forceStatusConflict bool
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, apptStorage.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appointments {
		if a.CustomerID != customerID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		copied := *a
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appointments {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.ServiceID != nil && a.ServiceID != *filter.ServiceID {
			continue
		}
		if filter.Date != nil && !a.AppointmentDate.Equal(*filter.Date) {
			continue
		}
		if !filter.IncludeInactive && !a.IsActive() {
			continue
		}
		copied := *a
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetBookedSlots(_ context.Context, date time.Time) ([]types.TimeString, error) {
	var slots []types.TimeString
	for _, a := range f.appointments {
		if a.AppointmentDate.Equal(date) && a.IsActive() {
			slots = append(slots, a.TimeSlot)
		}
	}
	return slots, nil
}

func (f *fakeAppointmentRepo) UpdateStatusFrom(_ context.Context, id int64, from, to domain.AppointmentStatus) error {
	if f.forceStatusConflict {
		return apptStorage.ErrStatusConflict
	}
	appt, ok := f.appointments[id]
	if !ok || appt.Status != from {
		return apptStorage.ErrStatusConflict
	}
	appt.Status = to
	return nil
}

func (f *fakeAppointmentRepo) AssignEmployee(_ context.Context, id, employeeID int64, from, to domain.AppointmentStatus) error {
	appt, ok := f.appointments[id]
	if !ok || appt.Status != from {
		return apptStorage.ErrStatusConflict
	}
	appt.Status = to
	appt.AssignedEmployeeID = &employeeID
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64, from domain.AppointmentStatus, reason string) error {
	appt, ok := f.appointments[id]
	if !ok || appt.Status != from {
		return apptStorage.ErrStatusConflict
	}
	now := time.Now()
	appt.Status = domain.StatusCancelled
	appt.CancellationReason = &reason
	appt.CancelledAt = &now
	return nil
}

// fakeStaffClient фейк клиента StaffService
type fakeStaffClient struct {
	employees map[int64]*staffservice.Employee
}

func (f *fakeStaffClient) GetEmployee(_ context.Context, employeeID int64) (*staffservice.Employee, error) {
	employee, ok := f.employees[employeeID]
	if !ok {
		return nil, staffservice.ErrEmployeeNotFound
	}
	return employee, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(statuses map[int64]domain.AppointmentStatus) (*Service, *fakeAppointmentRepo) {
	repo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}}
	for id, status := range statuses {
		repo.appointments[id] = &domain.Appointment{
			ID:                  id,
			CustomerID:          10,
			ServiceID:           1,
			VehicleBrand:        "Toyota",
			VehicleModel:        "Camry",
			VehicleLicensePlate: "A123BC77",
			AppointmentDate:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			TimeSlot:            "10:00",
			Status:              status,
		}
	}
	staff := &fakeStaffClient{employees: map[int64]*staffservice.Employee{
		1: {ID: 1, Name: "Иван Мастеров", Role: "mechanic", IsActive: true},
		2: {ID: 2, Name: "Пётр Бывший", Role: "mechanic", IsActive: false},
	}}
	return NewService(repo, staff, noopLogger{}), repo
}

func TestApprove(t *testing.T) {
	svc, repo := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusPending})

	resp, err := svc.Approve(context.Background(), 1, domain.ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.appointments[1].Status)
}

func TestApprove_CustomerDenied(t *testing.T) {
	svc, _ := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusPending})

	_, err := svc.Approve(context.Background(), 1, domain.ActorCustomer)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApprove_AlreadyConfirmed(t *testing.T) {
	svc, _ := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusConfirmed})

	_, err := svc.Approve(context.Background(), 1, domain.ActorAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReject(t *testing.T) {
	svc, repo := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusPending})

	resp, err := svc.Reject(context.Background(), 1, domain.ActorAdmin, "нет свободных мастеров")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, repo.appointments[1].CancellationReason)
	assert.Equal(t, "нет свободных мастеров", *repo.appointments[1].CancellationReason)
}

func TestReject_NonAdminDenied(t *testing.T) {
	svc, _ := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusPending})

	_, err := svc.Reject(context.Background(), 1, domain.ActorEmployee, "")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReject_ConfirmedNotRejectable(t *testing.T) {
	svc, _ := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusConfirmed})

	_, err := svc.Reject(context.Background(), 1, domain.ActorAdmin, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAssignEmployee(t *testing.T) {
	svc, repo := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusConfirmed})

	resp, err := svc.AssignEmployee(context.Background(), 1, 1, domain.ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInService), resp.Status)
	require.NotNil(t, repo.appointments[1].AssignedEmployeeID)
	assert.Equal(t, int64(1), *repo.appointments[1].AssignedEmployeeID)
}

func TestAssignEmployee_FromPendingDenied(t *testing.T) {
	svc, _ := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusPending})

	_, err := svc.AssignEmployee(context.Background(), 1, 1, domain.ActorAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAssignEmployee_InactiveEmployee(t *testing.T) {
	svc, repo := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusConfirmed})

	_, err := svc.AssignEmployee(context.Background(), 1, 2, domain.ActorAdmin)
	assert.ErrorIs(t, err, ErrEmployeeInactive)
	// Запись не тронута
	assert.Equal(t, domain.StatusConfirmed, repo.appointments[1].Status)
}

func TestAssignEmployee_EmployeeNotFound(t *testing.T) {
	svc, _ := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusConfirmed})

	_, err := svc.AssignEmployee(context.Background(), 1, 99, domain.ActorAdmin)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestMarkReadyAndCompleted(t *testing.T) {
	svc, _ := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusInService})

	resp, err := svc.MarkReady(context.Background(), 1, domain.ActorEmployee)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusReady), resp.Status)

	resp, err = svc.MarkCompleted(context.Background(), 1, domain.ActorEmployee)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	// Из completed переходов нет
	_, err = svc.MarkReady(context.Background(), 1, domain.ActorAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_OwnerFromPending(t *testing.T) {
	svc, repo := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusPending})

	resp, err := svc.Cancel(context.Background(), 1, 10, domain.ActorCustomer, "передумал")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.NotNil(t, repo.appointments[1].CancelledAt)
}

func TestCancel_NotOwnerDenied(t *testing.T) {
	svc, _ := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusPending})

	_, err := svc.Cancel(context.Background(), 1, 77, domain.ActorCustomer, "")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_ConfirmedDenied(t *testing.T) {
	// После подтверждения отмена — только через сервисный центр
	svc, _ := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusConfirmed})

	_, err := svc.Cancel(context.Background(), 1, 10, domain.ActorCustomer, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetByID_OwnershipCheck(t *testing.T) {
	svc, _ := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusPending})

	_, err := svc.GetByID(context.Background(), 1, 10, domain.ActorCustomer)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, 77, domain.ActorCustomer)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Персонал видит любые записи
	_, err = svc.GetByID(context.Background(), 1, 77, domain.ActorEmployee)
	assert.NoError(t, err)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.GetByID(context.Background(), 99, 10, domain.ActorAdmin)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestLostTransitionRaceMapsToInvalidTransition(t *testing.T) {
	svc, repo := newTestService(map[int64]domain.AppointmentStatus{1: domain.StatusPending})

	// Статус сменился между чтением и условным обновлением
	repo.forceStatusConflict = true

	_, err := svc.Approve(context.Background(), 1, domain.ActorAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusPending, repo.appointments[1].Status)
}
