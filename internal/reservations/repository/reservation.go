package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationserrors "voltslot/internal/reservations/errors"
	"voltslot/pkg/config"
	mongotx "voltslot/pkg/db/mongo"
	"voltslot/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Reservations"
)

// activeStatuses are the statuses that occupy capacity. Rejected, cancelled
// and completed reservations release their slots.
var activeStatuses = []model.ReservationStatus{model.StatusPending, model.StatusConfirmed}

type mongoReservationRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error)
	FindByRider(ctx context.Context, riderID string, limit int, offset int64) ([]*model.Reservation, error)
	FindByStation(ctx context.Context, stationID string, limit int, offset int64) ([]*model.Reservation, error)
	FindActiveByStationDateClass(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error)
	CountActiveByRider(ctx context.Context, riderID string) (int64, error)
	FindActiveByVehicle(ctx context.Context, vehicleNumber string) (*model.Reservation, error)
	FindByIdempotencyKey(ctx context.Context, riderID, key string) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status model.ReservationStatus) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByRider(ctx context.Context, riderID string) (int64, error)
	CountByStation(ctx context.Context, stationID string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel, as wrapping a SessionContext breaks
// transaction semantics.
func (r *mongoReservationRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	reservation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, reservation)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reservation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reservationserrors.ErrInvalidID, id)
	}

	var reservation model.Reservation
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	return &reservation, nil
}

func (r *mongoReservationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error) {
	return r.findPaginated(ctx, bson.M{}, limit, offset)
}

func (r *mongoReservationRepository) FindByRider(ctx context.Context, riderID string, limit int, offset int64) ([]*model.Reservation, error) {
	return r.findPaginated(ctx, bson.M{"rider_id": riderID}, limit, offset)
}

func (r *mongoReservationRepository) FindByStation(ctx context.Context, stationID string, limit int, offset int64) ([]*model.Reservation, error) {
	return r.findPaginated(ctx, bson.M{"station_id": stationID}, limit, offset)
}

func (r *mongoReservationRepository) findPaginated(ctx context.Context, filter bson.M, limit int, offset int64) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_hour", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

// FindActiveByStationDateClass returns every capacity-holding reservation in
// the candidate's contention pool: same station, same date, same vehicle
// class. This is the read half of the admission overlap check.
func (r *mongoReservationRepository) FindActiveByStationDateClass(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"station_id":    stationID,
		"date":          date,
		"vehicle_class": class,
		"status":        bson.M{"$in": activeStatuses},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_hour", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find active reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode active reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) CountActiveByRider(ctx context.Context, riderID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"rider_id": riderID,
		"status":   bson.M{"$in": activeStatuses},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count active reservations by rider: %w", err)
	}
	return count, nil
}

func (r *mongoReservationRepository) FindActiveByVehicle(ctx context.Context, vehicleNumber string) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"vehicle_number": vehicleNumber,
		"status":         bson.M{"$in": activeStatuses},
	}

	var reservation model.Reservation
	err := r.collection.FindOne(ctx, filter).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active reservation by vehicle: %w", err)
	}

	return &reservation, nil
}

func (r *mongoReservationRepository) FindByIdempotencyKey(ctx context.Context, riderID, key string) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"rider_id":        riderID,
		"idempotency_key": key,
	}

	var reservation model.Reservation
	err := r.collection.FindOne(ctx, filter).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservationserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation by idempotency key: %w", err)
	}

	return &reservation, nil
}

func (r *mongoReservationRepository) UpdateStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reservationserrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{"status": status}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	if result.MatchedCount == 0 {
		return reservationserrors.ErrNotFound
	}

	return nil
}

func (r *mongoReservationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reservationserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	if result.DeletedCount == 0 {
		return reservationserrors.ErrNotFound
	}

	return nil
}

func (r *mongoReservationRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{})
}

func (r *mongoReservationRepository) CountByRider(ctx context.Context, riderID string) (int64, error) {
	return r.count(ctx, bson.M{"rider_id": riderID})
}

func (r *mongoReservationRepository) CountByStation(ctx context.Context, stationID string) (int64, error) {
	return r.count(ctx, bson.M{"station_id": stationID})
}

func (r *mongoReservationRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	return count, nil
}

func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
