package model

import (
	"fmt"
	"time"
)

type VehicleClass string

const (
	TwoWheeler  VehicleClass = "2-wheeler"
	FourWheeler VehicleClass = "4-wheeler"
)

// VehicleClasses lists every recognized class. Capacity maps must not carry
// keys outside this set; unrecognized values are rejected at the boundary.
var VehicleClasses = []VehicleClass{TwoWheeler, FourWheeler}

func ParseVehicleClass(s string) (VehicleClass, bool) {
	for _, c := range VehicleClasses {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

type ChargingType string

const (
	ChargingAC ChargingType = "AC"
	ChargingDC ChargingType = "DC"
)

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted:
		return ReservationStatus(s), true
	}
	return "", false
}

// Terminal reports whether the status admits no further transitions.
func (s ReservationStatus) Terminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Active reports whether the reservation counts toward station capacity,
// the rider cap, and the one-active-per-vehicle rule.
func (s ReservationStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo implements the reservation state machine. Terminal states
// admit nothing; invalid transitions must fail loudly, never silently succeed.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reservation is one admitted booking request. Slot arithmetic is whole-hour:
// the reservation occupies the half-open interval
// [StartHour, StartHour+DurationHours) on Date.
type Reservation struct {
	ID             string            `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	StationID      string            `json:"station_id" bson:"station_id" validate:"required,mongodb"`
	RiderID        string            `json:"rider_id" bson:"rider_id" validate:"required"`
	RiderName      string            `json:"rider_name" bson:"rider_name" validate:"required,min=2,max=100"`
	VehicleNumber  string            `json:"vehicle_number" bson:"vehicle_number" validate:"required,min=2,max=20"`
	VehicleClass   VehicleClass      `json:"vehicle_class" bson:"vehicle_class" validate:"required,vehicle_class"`
	ChargingType   ChargingType      `json:"charging_type" bson:"charging_type" validate:"required,oneof=AC DC"`
	Date           string            `json:"date" bson:"date" validate:"required,slot_date"`
	StartHour      int               `json:"start_hour" bson:"start_hour" validate:"min=0,max=23"`
	DurationHours  int               `json:"duration_hours" bson:"duration_hours" validate:"required,min=1"`
	Status         ReservationStatus `json:"status" bson:"status" validate:"required,oneof=pending confirmed rejected cancelled completed"`
	IdempotencyKey string            `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time         `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// EndHour is the exclusive end of the occupied interval. It may exceed 23
// when a long reservation runs toward midnight; the value stays on the date
// axis of Date and is never normalized into the next day.
func (r *Reservation) EndHour() int {
	return r.StartHour + r.DurationHours
}

// Overlaps applies the single half-open interval rule: two reservations on
// the same date overlap when existing.start < candidate.end and
// candidate.start < existing.end. Touching intervals do not overlap.
func (r *Reservation) Overlaps(other *Reservation) bool {
	if r.Date != other.Date {
		return false
	}
	return other.StartHour < r.EndHour() && r.StartHour < other.EndHour()
}

// Decision is an operator's response to a pending reservation.
type Decision string

const (
	DecisionConfirm Decision = "confirmed"
	DecisionReject  Decision = "rejected"
)

func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionConfirm, DecisionReject:
		return Decision(s), nil
	}
	return "", fmt.Errorf("unrecognized decision %q", s)
}
