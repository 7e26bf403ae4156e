package edit_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	crStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/changerequest"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// fakeAppointmentRepo stateful фейк репозитория записей
type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, apptStorage.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) CountActiveByServiceAndDate(_ context.Context, serviceID int64, date time.Time, excludeID *int64) (int, error) {
	count := 0
	for _, a := range f.appointments {
		if a.ServiceID != serviceID || !a.AppointmentDate.Equal(date) || !a.IsActive() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeAppointmentRepo) IsTimeSlotTaken(_ context.Context, date time.Time, timeSlot types.TimeString, excludeID *int64) (bool, error) {
	for _, a := range f.appointments {
		if !a.AppointmentDate.Equal(date) || a.TimeSlot != timeSlot || !a.IsActive() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeAppointmentRepo) UpdateAppointmentDetails(_ context.Context, id int64, from domain.AppointmentStatus, details apptStorage.UpdateDetails) (time.Time, error) {
	appt, ok := f.appointments[id]
	if !ok || appt.Status != from {
		return time.Time{}, apptStorage.ErrStatusConflict
	}
	appt.ServiceID = details.ServiceID
	appt.VehicleBrand = details.VehicleBrand
	appt.VehicleModel = details.VehicleModel
	appt.VehicleLicensePlate = details.VehicleLicensePlate
	appt.Notes = details.Notes
	appt.AppointmentDate = details.AppointmentDate
	appt.TimeSlot = details.TimeSlot
	appt.UpdatedAt = dbUpdatedAt
	return appt.UpdatedAt, nil
}

// fakeCatalogRepo фейк каталога услуг
type fakeCatalogRepo struct {
	services map[int64]*domain.CatalogService
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*domain.CatalogService, error) {
	service, ok := f.services[id]
	if !ok {
		return nil, catalogStorage.ErrServiceNotFound
	}
	return service, nil
}

// fakeChangeRequestRepo stateful фейк репозитория запросов на изменение
type fakeChangeRequestRepo struct {
	requests map[int64]*domain.ChangeRequest
}

func (f *fakeChangeRequestRepo) GetConsumableByAppointment(_ context.Context, appointmentID int64) (*domain.ChangeRequest, error) {
	for _, r := range f.requests {
		if r.AppointmentID == appointmentID && r.IsConsumable() {
			copied := *r
			return &copied, nil
		}
	}
	return nil, crStorage.ErrRequestNotFound
}

func (f *fakeChangeRequestRepo) MarkConsumed(_ context.Context, id int64) error {
	r, ok := f.requests[id]
	if !ok || !r.IsConsumable() {
		return crStorage.ErrNotConsumable
	}
	r.Consumed = true
	return nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

// dbUpdatedAt имитирует серверный NOW(): заведомо отличается от часов приложения
var dbUpdatedAt = testNow.Add(3 * time.Second)

func testDate(daysAhead int) time.Time {
	d := testNow.AddDate(0, 0, daysAhead)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	uc       *UseCase
	apptRepo *fakeAppointmentRepo
	crRepo   *fakeChangeRequestRepo
}

func newFixture() *fixture {
	apptRepo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
		1: {
			ID:                  1,
			CustomerID:          10,
			ServiceID:           1,
			VehicleBrand:        "Toyota",
			VehicleModel:        "Camry",
			VehicleLicensePlate: "A123BC77",
			AppointmentDate:     testDate(1),
			TimeSlot:            "10:00",
			Status:              domain.StatusConfirmed,
		},
		2: {
			ID:                  2,
			CustomerID:          11,
			ServiceID:           1,
			VehicleBrand:        "Lada",
			VehicleModel:        "Vesta",
			VehicleLicensePlate: "B456DE77",
			AppointmentDate:     testDate(1),
			TimeSlot:            "11:00",
			Status:              domain.StatusPending,
		},
	}}
	catalogRepo := &fakeCatalogRepo{services: map[int64]*domain.CatalogService{
		1: {ID: 1, Name: "Замена масла", MaxDailySlots: 5, IsActive: true},
		2: {ID: 2, Name: "Диагностика", MaxDailySlots: 1, IsActive: true},
	}}
	crRepo := &fakeChangeRequestRepo{requests: map[int64]*domain.ChangeRequest{
		100: {ID: 100, AppointmentID: 1, Status: domain.RequestApproved, Consumed: false},
	}}

	uc := NewUseCase(apptRepo, catalogRepo, crRepo, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	return &fixture{uc: uc, apptRepo: apptRepo, crRepo: crRepo}
}

func editRequest() *Request {
	return &Request{
		AppointmentID:       1,
		CustomerID:          10,
		ServiceID:           1,
		VehicleBrand:        "Toyota",
		VehicleModel:        "Camry",
		VehicleLicensePlate: "A123BC77",
		Date:                testDate(2),
		TimeSlot:            "14:00",
	}
}

func TestExecute_SuccessConsumesApproval(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), editRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ConsumedRequestID)
	assert.Equal(t, types.TimeString("14:00"), resp.TimeSlot)
	assert.True(t, resp.Date.Equal(testDate(2)))

	// Одобрение потрачено, payload обновлён
	assert.True(t, f.crRepo.requests[100].Consumed)
	assert.Equal(t, types.TimeString("14:00"), f.apptRepo.appointments[1].TimeSlot)

	// В ответе updated_at строки, а не часы приложения
	assert.True(t, resp.UpdatedAt.Equal(dbUpdatedAt))
}

func TestExecute_SecondEditRequiresNewApproval(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), editRequest())
	require.NoError(t, err)

	// Повторное редактирование без нового одобрения невозможно
	second := editRequest()
	second.TimeSlot = "15:00"
	_, err = f.uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestExecute_NoApproval(t *testing.T) {
	f := newFixture()
	delete(f.crRepo.requests, 100)

	_, err := f.uc.Execute(context.Background(), editRequest())
	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestExecute_NotEditableStatus(t *testing.T) {
	f := newFixture()
	f.apptRepo.appointments[1].Status = domain.StatusInService

	_, err := f.uc.Execute(context.Background(), editRequest())
	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	f := newFixture()

	req := editRequest()
	req.AppointmentID = 99
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	f := newFixture()

	req := editRequest()
	req.CustomerID = 11
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_NewSlotTaken(t *testing.T) {
	f := newFixture()

	// Слот 11:00 занят чужой записью на ту же дату
	req := editRequest()
	req.Date = testDate(1)
	req.TimeSlot = "11:00"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_OwnSlotExcluded(t *testing.T) {
	f := newFixture()

	// Перенос на собственные дату и слот не конфликтует сам с собой
	req := editRequest()
	req.Date = testDate(1)
	req.TimeSlot = "10:00"
	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CapacityExceededOnNewService(t *testing.T) {
	f := newFixture()

	// Услуга 2 с лимитом 1 уже занята чужой записью на эту дату
	f.apptRepo.appointments[2].ServiceID = 2

	req := editRequest()
	req.ServiceID = 2
	req.Date = testDate(1)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_DateInPast(t *testing.T) {
	f := newFixture()

	req := editRequest()
	req.Date = testNow.AddDate(0, 0, -1)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidTimeSlot(t *testing.T) {
	f := newFixture()

	req := editRequest()
	req.TimeSlot = "21:00"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}
