package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	stationserrors "voltslot/internal/stations/errors"
	"voltslot/pkg/config"
	"voltslot/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Stations"
)

type mongoStationRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type StationRepository interface {
	Create(ctx context.Context, station *model.Station) error
	FindByID(ctx context.Context, id string) (*model.Station, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Station, error)
	FindByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Station, error)
	Update(ctx context.Context, id string, station *model.Station) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}

func NewMongoStationRepository(cfg *config.Config) StationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStationRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel, as wrapping a SessionContext breaks
// transaction semantics.
func (r *mongoStationRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoStationRepository) Create(ctx context.Context, station *model.Station) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	station.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, station)
	if err != nil {
		return fmt.Errorf("failed to create station: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		station.ID = oid.Hex()
	}
	return nil
}

func (r *mongoStationRepository) FindByID(ctx context.Context, id string) (*model.Station, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", stationserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}

	var station model.Station
	err = r.collection.FindOne(ctx, filter).Decode(&station)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, stationserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find station: %w", err)
	}

	return &station, nil
}

func (r *mongoStationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Station, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find stations: %w", err)
	}
	defer cursor.Close(ctx)

	var stations []*model.Station
	if err = cursor.All(ctx, &stations); err != nil {
		return nil, fmt.Errorf("failed to decode stations: %w", err)
	}

	return stations, nil
}

func (r *mongoStationRepository) FindByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Station, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find stations by owner: %w", err)
	}
	defer cursor.Close(ctx)

	var stations []*model.Station
	if err = cursor.All(ctx, &stations); err != nil {
		return nil, fmt.Errorf("failed to decode stations: %w", err)
	}

	return stations, nil
}

func (r *mongoStationRepository) Update(ctx context.Context, id string, station *model.Station) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", stationserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"name":     station.Name,
			"location": station.Location,
			"capacity": station.Capacity,
			"status":   station.Status,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update station: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, stationserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoStationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", stationserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete station: %w", err)
	}

	if result.DeletedCount == 0 {
		return stationserrors.ErrNotFound
	}

	return nil
}

func (r *mongoStationRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count stations: %w", err)
	}

	return count, nil
}

func (r *mongoStationRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("failed to count stations by owner: %w", err)
	}

	return count, nil
}
