package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voltslot/internal/migrations/mongo/validators"
)

var (
	StationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	ReservationsIndexes = []mongo.IndexModel{
		// The admission hot path: active reservations for one class pool.
		{Keys: bson.D{
			{Key: "station_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "vehicle_class", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "rider_id", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "vehicle_number", Value: 1},
			{Key: "status", Value: 1},
		}},
		// One reservation per (rider, idempotency key); the partial filter
		// keeps documents without a key out of the unique constraint.
		{
			Keys: bson.D{
				{Key: "rider_id", Value: 1},
				{Key: "idempotency_key", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"idempotency_key": bson.M{"$exists": true},
				}),
		},
	}

	WaitlistIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "station_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "created_at", Value: 1},
		}},
		// One waitlist entry per rider per slot.
		{
			Keys: bson.D{
				{Key: "station_id", Value: 1},
				{Key: "rider_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "start_hour", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	// Slot locks expire on their own; a crashed request never wedges a slot.
	SlotLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("Running voltslot Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Stations": {
			Indexes:   StationsIndexes,
			Validator: validators.StationValidator,
		},
		"Reservations": {
			Indexes:   ReservationsIndexes,
			Validator: validators.ReservationValidator,
		},
		"Waitlist": {
			Indexes:   WaitlistIndexes,
			Validator: validators.WaitlistValidator,
		},
		"Slot_locks": {
			Indexes: SlotLocksIndexes,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("Creating collection: %s\n", name)
		opts := options.CreateCollection()
		if validator != nil {
			opts = opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	if validator != nil {
		fmt.Printf("Collection %s already exists, updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}

	coll := db.Collection(name)
	opts := options.CreateIndexes().SetMaxTime(30 * time.Second)
	_, err := coll.Indexes().CreateMany(ctx, models, opts)
	if err != nil {
		return err
	}
	fmt.Printf("Ensured indexes for %s\n", name)
	return nil
}
