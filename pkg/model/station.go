package model

import "time"

type StationStatus string

const (
	StationActive   StationStatus = "active"
	StationInactive StationStatus = "inactive"
)

// Station is one charging / battery-swap site. Capacity is tracked per
// vehicle class; the two pools never contend with each other.
type Station struct {
	ID        string              `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string              `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Location  string              `json:"location" bson:"location" validate:"required,min=2,max=200"`
	OwnerID   string              `json:"owner_id" bson:"owner_id" validate:"required"`
	Capacity  map[VehicleClass]int `json:"capacity" bson:"capacity" validate:"required,capacity_map"`
	Status    StationStatus       `json:"status" bson:"status" validate:"required,oneof=active inactive"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Bookable reports whether the station admits new reservations at all.
func (s *Station) Bookable() bool {
	return s != nil && s.Status == StationActive
}

// ClassCapacity returns the slot count for a vehicle class and whether the
// class is offered at this station.
func (s *Station) ClassCapacity(class VehicleClass) (int, bool) {
	if s == nil {
		return 0, false
	}
	n, ok := s.Capacity[class]
	return n, ok
}

type StationUpdate struct {
	Name     string               `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Location string               `json:"location,omitempty" validate:"omitempty,min=2,max=200"`
	Capacity *map[VehicleClass]int `json:"capacity,omitempty" validate:"omitempty,capacity_map"`
	Status   StationStatus        `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}
