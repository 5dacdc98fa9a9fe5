package model

import "time"

// WaitlistEntry records a rider asking to be told when a slot frees up at a
// station. When a reject or cancel releases capacity, a slot.freed event is
// published for the external notifier; this service never delivers
// notifications itself.
type WaitlistEntry struct {
	ID           string       `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	StationID    string       `json:"station_id" bson:"station_id" validate:"required,mongodb"`
	RiderID      string       `json:"rider_id" bson:"rider_id" validate:"required"`
	VehicleClass VehicleClass `json:"vehicle_class" bson:"vehicle_class" validate:"required,vehicle_class"`
	Date         string       `json:"date" bson:"date" validate:"required,slot_date"`
	StartHour    int          `json:"start_hour" bson:"start_hour" validate:"min=0,max=23"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at" validate:"omitempty"`
}
