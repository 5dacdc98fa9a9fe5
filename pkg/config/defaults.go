package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "voltslot"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Admission knobs. A reservation spans 1 to MaxDurationHours whole hours;
	// a rider holds at most RiderActiveLimit non-terminal reservations across
	// all stations.
	DefaultMaxDurationHours = 4
	DefaultRiderActiveLimit = 3

	// Advisory slot locks auto-expire so a crashed request cannot wedge a slot.
	DefaultSlotLockTTL = 10 * time.Second

	// Store reads are the only retryable failure; retries are bounded.
	DefaultStoreRetryAttempts = 2
	DefaultStoreRetryBackoff  = 100 * time.Millisecond

	DefaultReservationEventsTopic = "reservation-events"
	DefaultReservationEventsDLQ   = "dlq-reservations"

	DefaultPaginationLimit = 100
)
