package domain

import "testing"

func TestAppointmentIsEditable(t *testing.T) {
	editable := []AppointmentStatus{StatusPending, StatusConfirmed}
	for _, status := range editable {
		appt := Appointment{Status: status}
		if !appt.IsEditable() {
			t.Fatalf("expected %s appointment to be editable", status)
		}
	}

	notEditable := []AppointmentStatus{StatusInService, StatusReady, StatusCompleted, StatusCancelled}
	for _, status := range notEditable {
		appt := Appointment{Status: status}
		if appt.IsEditable() {
			t.Fatalf("unexpected %s appointment editable", status)
		}
	}
}

func TestAppointmentIsTerminal(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusCompleted, StatusCancelled} {
		appt := Appointment{Status: status}
		if !appt.IsTerminal() {
			t.Fatalf("expected %s to be terminal", status)
		}
	}
	for _, status := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusInService, StatusReady} {
		appt := Appointment{Status: status}
		if appt.IsTerminal() {
			t.Fatalf("unexpected %s terminal", status)
		}
	}
}

func TestAppointmentIsActive(t *testing.T) {
	// Завершённая запись остаётся активной: слот был реально использован
	for _, status := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusInService, StatusReady, StatusCompleted} {
		appt := Appointment{Status: status}
		if !appt.IsActive() {
			t.Fatalf("expected %s appointment to be active", status)
		}
	}

	cancelled := Appointment{Status: StatusCancelled}
	if cancelled.IsActive() {
		t.Fatal("unexpected cancelled appointment active")
	}
}

func TestAppointmentIsOwnedBy(t *testing.T) {
	appt := Appointment{CustomerID: 42}
	if !appt.IsOwnedBy(42) {
		t.Fatal("expected owner match")
	}
	if appt.IsOwnedBy(7) {
		t.Fatal("unexpected owner match")
	}
}

func TestValidTimeSlot(t *testing.T) {
	if !ValidTimeSlot("09:00") {
		t.Fatal("expected 09:00 to be a valid slot")
	}
	if !ValidTimeSlot("17:30") {
		t.Fatal("expected 17:30 to be a valid slot")
	}
	if ValidTimeSlot("08:30") {
		t.Fatal("unexpected slot before opening accepted")
	}
	if ValidTimeSlot("18:00") {
		t.Fatal("unexpected slot after closing accepted")
	}
	if ValidTimeSlot("10:15") {
		t.Fatal("unexpected off-grid slot accepted")
	}
}
