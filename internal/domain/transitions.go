package domain

// Actor is the kind of principal performing an operation on an appointment
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
	ActorEmployee Actor = "employee"
)

// IsStaff returns true for principals with access to all appointments
func (a Actor) IsStaff() bool {
	return a == ActorAdmin || a == ActorEmployee
}

// transitions закрытый граф переходов статусов: from -> to -> кто имеет право.
// Клиент может отменить только свою запись и только из pending;
// всё после подтверждения — зона ответственности сервисного центра.
var transitions = map[AppointmentStatus]map[AppointmentStatus][]Actor{
	StatusPending: {
		StatusConfirmed: {ActorAdmin},
		StatusCancelled: {ActorAdmin, ActorCustomer},
	},
	StatusConfirmed: {
		StatusInService: {ActorAdmin},
	},
	StatusInService: {
		StatusReady: {ActorAdmin, ActorEmployee},
	},
	StatusReady: {
		StatusCompleted: {ActorAdmin, ActorEmployee},
	},
}

// TransitionAllowed reports whether the edge from -> to exists in the graph,
// regardless of the actor
func TransitionAllowed(from, to AppointmentStatus) bool {
	targets, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// CanTransition reports whether the given actor may move an appointment
// from one status to another
func CanTransition(from, to AppointmentStatus, actor Actor) bool {
	targets, ok := transitions[from]
	if !ok {
		return false
	}
	actors, ok := targets[to]
	if !ok {
		return false
	}
	for _, a := range actors {
		if a == actor {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a member of the closed status enumeration
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInService, StatusReady, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
