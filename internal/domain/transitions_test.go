package domain

import "testing"

func TestTransitionAllowed(t *testing.T) {
	if !TransitionAllowed(StatusPending, StatusConfirmed) {
		t.Fatal("expected pending -> confirmed to be allowed")
	}
	if !TransitionAllowed(StatusPending, StatusCancelled) {
		t.Fatal("expected pending -> cancelled to be allowed")
	}
	if !TransitionAllowed(StatusConfirmed, StatusInService) {
		t.Fatal("expected confirmed -> in_service to be allowed")
	}
	if !TransitionAllowed(StatusInService, StatusReady) {
		t.Fatal("expected in_service -> ready to be allowed")
	}
	if !TransitionAllowed(StatusReady, StatusCompleted) {
		t.Fatal("expected ready -> completed to be allowed")
	}
	if TransitionAllowed(StatusPending, StatusInService) {
		t.Fatal("unexpected pending -> in_service allowed")
	}
	if TransitionAllowed(StatusConfirmed, StatusCancelled) {
		t.Fatal("unexpected confirmed -> cancelled allowed")
	}
	if TransitionAllowed(StatusConfirmed, StatusReady) {
		t.Fatal("unexpected confirmed -> ready allowed")
	}
	if TransitionAllowed(StatusCompleted, StatusPending) {
		t.Fatal("unexpected transition out of completed allowed")
	}
	if TransitionAllowed(StatusCancelled, StatusPending) {
		t.Fatal("unexpected transition out of cancelled allowed")
	}
}

func TestCanTransitionActorPermissions(t *testing.T) {
	// Подтверждение — только администратор
	if !CanTransition(StatusPending, StatusConfirmed, ActorAdmin) {
		t.Fatal("expected admin to confirm pending appointment")
	}
	if CanTransition(StatusPending, StatusConfirmed, ActorCustomer) {
		t.Fatal("unexpected customer confirmation allowed")
	}
	if CanTransition(StatusPending, StatusConfirmed, ActorEmployee) {
		t.Fatal("unexpected employee confirmation allowed")
	}

	// Отмена из pending — администратор или владелец
	if !CanTransition(StatusPending, StatusCancelled, ActorCustomer) {
		t.Fatal("expected customer to cancel pending appointment")
	}
	if !CanTransition(StatusPending, StatusCancelled, ActorAdmin) {
		t.Fatal("expected admin to cancel pending appointment")
	}
	if CanTransition(StatusPending, StatusCancelled, ActorEmployee) {
		t.Fatal("unexpected employee cancellation allowed")
	}

	// Передача в работу — только администратор
	if !CanTransition(StatusConfirmed, StatusInService, ActorAdmin) {
		t.Fatal("expected admin to move confirmed appointment to in_service")
	}
	if CanTransition(StatusConfirmed, StatusInService, ActorEmployee) {
		t.Fatal("unexpected employee move to in_service allowed")
	}

	// Готовность и завершение — администратор или сотрудник
	if !CanTransition(StatusInService, StatusReady, ActorEmployee) {
		t.Fatal("expected employee to mark appointment ready")
	}
	if !CanTransition(StatusInService, StatusReady, ActorAdmin) {
		t.Fatal("expected admin to mark appointment ready")
	}
	if CanTransition(StatusInService, StatusReady, ActorCustomer) {
		t.Fatal("unexpected customer mark ready allowed")
	}
	if !CanTransition(StatusReady, StatusCompleted, ActorEmployee) {
		t.Fatal("expected employee to complete appointment")
	}
	if CanTransition(StatusReady, StatusCompleted, ActorCustomer) {
		t.Fatal("unexpected customer completion allowed")
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []AppointmentStatus{
		StatusPending, StatusConfirmed, StatusInService,
		StatusReady, StatusCompleted, StatusCancelled,
	} {
		if !ValidStatus(status) {
			t.Fatalf("expected %s to be a valid status", status)
		}
	}
	if ValidStatus("unknown") {
		t.Fatal("unexpected unknown status accepted")
	}
	if ValidStatus("") {
		t.Fatal("unexpected empty status accepted")
	}
}

func TestActorIsStaff(t *testing.T) {
	if !ActorAdmin.IsStaff() {
		t.Fatal("expected admin to be staff")
	}
	if !ActorEmployee.IsStaff() {
		t.Fatal("expected employee to be staff")
	}
	if ActorCustomer.IsStaff() {
		t.Fatal("unexpected customer staff flag")
	}
}
