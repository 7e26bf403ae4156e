package domain

import "testing"

func TestChangeRequestIsResolved(t *testing.T) {
	pending := ChangeRequest{Status: RequestPending}
	if pending.IsResolved() {
		t.Fatal("unexpected pending request resolved")
	}

	approved := ChangeRequest{Status: RequestApproved}
	if !approved.IsResolved() {
		t.Fatal("expected approved request to be resolved")
	}

	rejected := ChangeRequest{Status: RequestRejected}
	if !rejected.IsResolved() {
		t.Fatal("expected rejected request to be resolved")
	}
}

func TestChangeRequestIsConsumable(t *testing.T) {
	fresh := ChangeRequest{Status: RequestApproved, Consumed: false}
	if !fresh.IsConsumable() {
		t.Fatal("expected approved un-consumed request to be consumable")
	}

	spent := ChangeRequest{Status: RequestApproved, Consumed: true}
	if spent.IsConsumable() {
		t.Fatal("unexpected consumed request consumable")
	}

	pending := ChangeRequest{Status: RequestPending}
	if pending.IsConsumable() {
		t.Fatal("unexpected pending request consumable")
	}

	rejected := ChangeRequest{Status: RequestRejected}
	if rejected.IsConsumable() {
		t.Fatal("unexpected rejected request consumable")
	}
}

func TestStatusForDecision(t *testing.T) {
	status, ok := StatusForDecision(DecisionApprove)
	if !ok || status != RequestApproved {
		t.Fatalf("expected approve -> approved, got %s (ok=%t)", status, ok)
	}

	status, ok = StatusForDecision(DecisionReject)
	if !ok || status != RequestRejected {
		t.Fatalf("expected reject -> rejected, got %s (ok=%t)", status, ok)
	}

	if _, ok := StatusForDecision("maybe"); ok {
		t.Fatal("unexpected unknown decision accepted")
	}
}
