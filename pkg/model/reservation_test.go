package model

import "testing"

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusRejected, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestReservationStatus_Terminal(t *testing.T) {
	for _, s := range []ReservationStatus{StatusRejected, StatusCancelled, StatusCompleted} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
		if s.Active() {
			t.Errorf("%s should not count toward capacity", s)
		}
	}
	for _, s := range []ReservationStatus{StatusPending, StatusConfirmed} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
		if !s.Active() {
			t.Errorf("%s should count toward capacity", s)
		}
	}
}

func TestReservation_Overlaps(t *testing.T) {
	base := &Reservation{Date: "2024-06-01", StartHour: 10, DurationHours: 2} // [10, 12)

	tests := []struct {
		name     string
		other    *Reservation
		overlaps bool
	}{
		{"identical interval", &Reservation{Date: "2024-06-01", StartHour: 10, DurationHours: 2}, true},
		{"partial from below", &Reservation{Date: "2024-06-01", StartHour: 9, DurationHours: 2}, true},
		{"partial from above", &Reservation{Date: "2024-06-01", StartHour: 11, DurationHours: 3}, true},
		{"containing", &Reservation{Date: "2024-06-01", StartHour: 8, DurationHours: 8}, true},
		{"touching below", &Reservation{Date: "2024-06-01", StartHour: 8, DurationHours: 2}, false},
		{"touching above", &Reservation{Date: "2024-06-01", StartHour: 12, DurationHours: 1}, false},
		{"other date", &Reservation{Date: "2024-06-02", StartHour: 10, DurationHours: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.overlaps {
				t.Errorf("Overlaps() = %v, want %v", got, tt.overlaps)
			}
			if got := tt.other.Overlaps(base); got != tt.overlaps {
				t.Errorf("Overlaps() should be symmetric, reversed = %v, want %v", got, tt.overlaps)
			}
		})
	}
}

func TestParseVehicleClass(t *testing.T) {
	if _, ok := ParseVehicleClass("2-wheeler"); !ok {
		t.Errorf("2-wheeler should parse")
	}
	if _, ok := ParseVehicleClass("4-wheeler"); !ok {
		t.Errorf("4-wheeler should parse")
	}
	for _, bad := range []string{"truck", "two-wheeler", "", "4-WHEELER"} {
		if _, ok := ParseVehicleClass(bad); ok {
			t.Errorf("%q should not parse", bad)
		}
	}
}

func TestParseDecision(t *testing.T) {
	if _, err := ParseDecision("confirmed"); err != nil {
		t.Errorf("confirmed should parse: %v", err)
	}
	if _, err := ParseDecision("rejected"); err != nil {
		t.Errorf("rejected should parse: %v", err)
	}
	if _, err := ParseDecision("maybe"); err == nil {
		t.Errorf("unrecognized decision should fail")
	}
}
