package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// fakeAppointmentRepo stateful фейк репозитория записей
type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	nextID       int64
	createErr    error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	created := *appt
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.appointments = append(f.appointments, &created)
	return &created, nil
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

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedTimeProvider фиксированное "сейчас" для тестов
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

func newTestUseCase(apptRepo *fakeAppointmentRepo, catalogRepo *fakeCatalogRepo) *UseCase {
	uc := NewUseCase(apptRepo, catalogRepo, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func defaultCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{services: map[int64]*domain.CatalogService{
		1: {ID: 1, Name: "Замена масла", Category: "maintenance", MaxDailySlots: 2, IsActive: true},
		2: {ID: 2, Name: "Диагностика", Category: "diagnostics", MaxDailySlots: 5, IsActive: false},
	}}
}

func validRequest() *Request {
	return &Request{
		CustomerID:          10,
		ServiceID:           1,
		VehicleBrand:        "Toyota",
		VehicleModel:        "Camry",
		VehicleLicensePlate: "A123BC77",
		Date:                testNow.AddDate(0, 0, 1),
		TimeSlot:            "10:00",
	}
}

func TestExecute_Success(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{}
	uc := newTestUseCase(apptRepo, defaultCatalog())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(10), resp.CustomerID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.TimeSlot)
	assert.Len(t, apptRepo.appointments, 1)
}

func TestExecute_SlotTaken(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{}
	uc := newTestUseCase(apptRepo, defaultCatalog())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Та же дата и слот, другая услуга: слот приёмки общий
	req := validRequest()
	req.CustomerID = 11
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{}
	uc := newTestUseCase(apptRepo, defaultCatalog())

	first := validRequest()
	first.TimeSlot = "09:00"
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	second := validRequest()
	second.TimeSlot = "09:30"
	_, err = uc.Execute(context.Background(), second)
	require.NoError(t, err)

	// MaxDailySlots=2 исчерпан, хотя свободные слоты приёмки ещё есть
	third := validRequest()
	third.TimeSlot = "10:30"
	_, err = uc.Execute(context.Background(), third)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{}
	uc := newTestUseCase(apptRepo, defaultCatalog())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Отмена возвращает и слот, и место в дневном лимите
	apptRepo.appointments[0].Status = domain.StatusCancelled

	req := validRequest()
	req.CustomerID = 11
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, defaultCatalog())

	req := validRequest()
	req.ServiceID = 99
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceInactive(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, defaultCatalog())

	req := validRequest()
	req.ServiceID = 2
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, defaultCatalog())

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SameDayAllowed(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, defaultCatalog())

	req := validRequest()
	req.Date = testNow
	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_InvalidTimeSlot(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, defaultCatalog())

	req := validRequest()
	req.TimeSlot = "10:15"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, defaultCatalog())

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero customer", func(r *Request) { r.CustomerID = 0 }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"empty brand", func(r *Request) { r.VehicleBrand = "  " }},
		{"empty model", func(r *Request) { r.VehicleModel = "" }},
		{"empty plate", func(r *Request) { r.VehicleLicensePlate = "" }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_LostSlotRaceMapsToSlotTaken(t *testing.T) {
	// Уникальный индекс сработал уже на вставке
	apptRepo := &fakeAppointmentRepo{createErr: apptStorage.ErrSlotTaken}
	uc := newTestUseCase(apptRepo, defaultCatalog())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}
