package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxReasonLength             = 500
	MaxAdminResponseLength      = 500
	MaxCancellationReasonLength = 500
)

// AllTimeSlots закрытый набор временных слотов приёмки: каждые полчаса
// с 09:00 до 17:30. Один слот — одно взаимодействие с клиентом на приёмке,
// поэтому слот общий для всех услуг.
var AllTimeSlots = []types.TimeString{
	"09:00", "09:30",
	"10:00", "10:30",
	"11:00", "11:30",
	"12:00", "12:30",
	"13:00", "13:30",
	"14:00", "14:30",
	"15:00", "15:30",
	"16:00", "16:30",
	"17:00", "17:30",
}

// ValidTimeSlot reports whether t is a member of the enumerated slot grid
func ValidTimeSlot(t types.TimeString) bool {
	for _, slot := range AllTimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatuses статусы, при которых запись занимает слот и место
// в дневном лимите услуги
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInService,
	StatusReady,
	StatusCompleted,
}
