package service

import (
	"context"

	"voltslot/pkg/kafka"
	"voltslot/pkg/logger"
	"voltslot/pkg/model"
)

// Event types published on the reservation events topic. Downstream
// consumers (the notification collaborator among them) branch on these.
const (
	EventReservationRequested = "reservation.requested"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationRejected  = "reservation.rejected"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationCompleted = "reservation.completed"
	EventSlotFreed            = "slot.freed"
)

const eventSchemaVersion = "1"

// Notifier publishes reservation lifecycle events. Publishing is
// best-effort: a failed publish never fails the admission or transition
// that triggered it.
type Notifier interface {
	ReservationEvent(ctx context.Context, eventType string, reservation *model.Reservation)
	SlotFreed(ctx context.Context, reservation *model.Reservation)
	Close() error
}

type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaNotifier struct {
	producer Publisher
	source   string
	log      *logger.Logger
}

func NewKafkaNotifier(producer Publisher, source string, log *logger.Logger) Notifier {
	return &kafkaNotifier{
		producer: producer,
		source:   source,
		log:      log,
	}
}

type reservationEvent struct {
	ReservationID string                  `json:"reservation_id"`
	StationID     string                  `json:"station_id"`
	RiderID       string                  `json:"rider_id"`
	VehicleClass  model.VehicleClass      `json:"vehicle_class"`
	Date          string                  `json:"date"`
	StartHour     int                     `json:"start_hour"`
	DurationHours int                     `json:"duration_hours"`
	Status        model.ReservationStatus `json:"status"`
}

func (n *kafkaNotifier) ReservationEvent(ctx context.Context, eventType string, reservation *model.Reservation) {
	n.publish(ctx, eventType, reservation)
}

// SlotFreed announces released capacity so waitlisted riders can be told a
// slot opened up. Delivery to riders is the notification collaborator's
// job, not ours.
func (n *kafkaNotifier) SlotFreed(ctx context.Context, reservation *model.Reservation) {
	n.publish(ctx, EventSlotFreed, reservation)
}

func (n *kafkaNotifier) publish(ctx context.Context, eventType string, reservation *model.Reservation) {
	msg := kafka.NewMessage().
		WithKey(reservation.StationID).
		WithEventType(eventType).
		WithSchemaVersion(eventSchemaVersion).
		WithSource(n.source).
		WithValue(reservationEvent{
			ReservationID: reservation.ID,
			StationID:     reservation.StationID,
			RiderID:       reservation.RiderID,
			VehicleClass:  reservation.VehicleClass,
			Date:          reservation.Date,
			StartHour:     reservation.StartHour,
			DurationHours: reservation.DurationHours,
			Status:        reservation.Status,
		}).
		Build()

	if err := n.producer.Publish(ctx, msg); err != nil {
		n.log.Error("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", reservation.ID,
			"error", err,
		)
	}
}

func (n *kafkaNotifier) Close() error {
	return n.producer.Close()
}

// noopNotifier keeps the reservation flow running when no broker is
// configured (local development, tests).
type noopNotifier struct{}

func NewNoopNotifier() Notifier { return noopNotifier{} }

func (noopNotifier) ReservationEvent(context.Context, string, *model.Reservation) {}
func (noopNotifier) SlotFreed(context.Context, *model.Reservation)                {}
func (noopNotifier) Close() error                                                 { return nil }
