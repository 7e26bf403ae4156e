package types

import (
	"errors"
	"testing"
	"time"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("10:30")
	if err != nil {
		t.Fatalf("NewTimeStringFromString: %v", err)
	}
	if ts.String() != "10:30" {
		t.Fatalf("expected 10:30, got %s", ts)
	}

	for _, bad := range []string{"25:00", "10:70", "1030", "10-30", ""} {
		if _, err := NewTimeStringFromString(bad); !errors.Is(err, ErrInvalidTimeString) {
			t.Fatalf("expected ErrInvalidTimeString for %q, got %v", bad, err)
		}
	}
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 15, 14, 5, 59, 0, time.UTC))
	if ts.String() != "14:05" {
		t.Fatalf("expected 14:05, got %s", ts)
	}
}

func TestTimeStringOrdering(t *testing.T) {
	if !TimeString("09:00").IsBefore("17:30") {
		t.Fatal("expected 09:00 before 17:30")
	}
	if !TimeString("17:30").IsAfter("09:00") {
		t.Fatal("expected 17:30 after 09:00")
	}
	if TimeString("10:00").IsBefore("10:00") {
		t.Fatal("unexpected strict before for equal values")
	}
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(90)
	if err != nil {
		t.Fatalf("AddMinutes: %v", err)
	}
	if ts.String() != "11:30" {
		t.Fatalf("expected 11:30, got %s", ts)
	}

	// Слоты не пересекают границу дня
	if _, err := TimeString("23:30").AddMinutes(60); !errors.Is(err, ErrInvalidTimeString) {
		t.Fatalf("expected midnight crossing error, got %v", err)
	}
}

func TestTimeStringMinutes(t *testing.T) {
	minutes, err := TimeString("10:30").Minutes()
	if err != nil {
		t.Fatalf("Minutes: %v", err)
	}
	if minutes != 630 {
		t.Fatalf("expected 630 minutes, got %d", minutes)
	}

	if _, err := TimeString("bad").Minutes(); !errors.Is(err, ErrInvalidTimeString) {
		t.Fatalf("expected ErrInvalidTimeString, got %v", err)
	}
}

func TestTimeStringValidate(t *testing.T) {
	if err := TimeString("09:00").Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := TimeString("9am").Validate(); !errors.Is(err, ErrInvalidTimeString) {
		t.Fatalf("expected ErrInvalidTimeString, got %v", err)
	}
	if !TimeString("").IsZero() {
		t.Fatal("expected empty TimeString to be zero")
	}
}
