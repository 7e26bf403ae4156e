package get_service_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogStorage "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
)

type fakeAppointmentRepo struct {
	count int
}

func (f *fakeAppointmentRepo) CountActiveByServiceAndDate(_ context.Context, _ int64, _ time.Time, _ *int64) (int, error) {
	return f.count, nil
}

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

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func defaultCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{services: map[int64]*domain.CatalogService{
		1: {ID: 1, Name: "Замена масла", MaxDailySlots: 8, IsActive: true},
	}}
}

func TestExecute(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{count: 3}, defaultCatalog(), noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ServiceID)
	assert.Equal(t, 8, resp.MaxDailySlots)
	assert.Equal(t, 3, resp.UsedSlots)
	assert.Equal(t, 5, resp.RemainingSlots)
	assert.True(t, resp.IsActive)
}

func TestExecute_RemainingNeverNegative(t *testing.T) {
	// Лимит услуги мог быть уменьшен уже после бронирований
	uc := NewUseCase(&fakeAppointmentRepo{count: 10}, defaultCatalog(), noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.RemainingSlots)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, defaultCatalog(), noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: 99,
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, defaultCatalog(), noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
