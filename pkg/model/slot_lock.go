package model

import "time"

// SlotLock is an advisory lock for a (station, class, date, hour) slot,
// held while an admission decision runs its overlap check and insert.
// It narrows the read-then-write race between concurrent requests; the
// operator confirmation step remains the authoritative serialization point.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
