package get_booked_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeAppointmentRepo struct {
	booked []types.TimeString
}

func (f *fakeAppointmentRepo) GetBookedSlots(_ context.Context, _ time.Time) ([]types.TimeString, error) {
	return f.booked, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestExecute(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{booked: []types.TimeString{"10:00", "14:30"}}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 9, 2, 15, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Len(t, resp.BookedSlots, 2)
	assert.Len(t, resp.FreeSlots, len(domain.AllTimeSlots)-2)
	assert.NotContains(t, resp.FreeSlots, types.TimeString("10:00"))
	assert.NotContains(t, resp.FreeSlots, types.TimeString("14:30"))
	assert.Contains(t, resp.FreeSlots, types.TimeString("09:00"))

	// Время в запросе отбрасывается до даты
	assert.True(t, resp.Date.Equal(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, resp.FreeSlots, len(domain.AllTimeSlots))
}

func TestExecute_MissingDate(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
