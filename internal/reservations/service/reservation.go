package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	reservationserrors "voltslot/internal/reservations/errors"
	"voltslot/internal/reservations/repository"
	"voltslot/internal/reservations/validator"
	stationserrors "voltslot/internal/stations/errors"
	stationsrepository "voltslot/internal/stations/repository"
	"voltslot/pkg/config"
	apperrors "voltslot/pkg/errors"
	"voltslot/pkg/model"
	"voltslot/pkg/sanitizer"
	"voltslot/pkg/timeslot"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotAvailability is one bookable hour option annotated with how much of
// the station's per-class pool it has left.
type SlotAvailability struct {
	timeslot.Option
	Capacity  int `json:"capacity"`
	Used      int `json:"used"`
	Available int `json:"available"`
}

type ReservationService interface {
	Request(ctx context.Context, actor model.Actor, reservation *model.Reservation) (*model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	GetAll(ctx context.Context, actor model.Actor, limit int, offset int64) ([]*model.Reservation, int64, error)
	GetByRider(ctx context.Context, actor model.Actor, riderID string, limit int, offset int64) ([]*model.Reservation, int64, error)
	GetByStation(ctx context.Context, stationID string, limit int, offset int64) ([]*model.Reservation, int64, error)
	Respond(ctx context.Context, actor model.Actor, id string, decision model.Decision) (*model.Reservation, error)
	Cancel(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error)
	Complete(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error)
	Delete(ctx context.Context, actor model.Actor, id string) error
	Search(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error)
	GetSlotAvailability(ctx context.Context, stationID string, class model.VehicleClass, now time.Time) ([]SlotAvailability, error)
	JoinWaitlist(ctx context.Context, actor model.Actor, entry *model.WaitlistEntry) error
	GetWaitlist(ctx context.Context, actor model.Actor, stationID, date string) ([]*model.WaitlistEntry, error)
}

type reservationService struct {
	repo         repository.ReservationRepository
	lockRepo     repository.SlotLockRepository
	waitlistRepo repository.WaitlistRepository
	stationRepo  stationsrepository.StationRepository
	validator    *validator.ReservationValidator
	notifier     Notifier
	cfg          *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.SlotLockRepository,
	waitlistRepo repository.WaitlistRepository,
	stationRepo stationsrepository.StationRepository,
	validator *validator.ReservationValidator,
	notifier Notifier,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:         repo,
		lockRepo:     lockRepo,
		waitlistRepo: waitlistRepo,
		stationRepo:  stationRepo,
		validator:    validator,
		notifier:     notifier,
		cfg:          cfg,
	}
}

// Request runs the admission algorithm: structural checks, station checks,
// overlap count against the per-class pool, rider cap, duplicate vehicle,
// idempotency, then persist as pending. Order matters; the first failing
// check determines the rejection code.
func (s *reservationService) Request(ctx context.Context, actor model.Actor, reservation *model.Reservation) (*model.Reservation, error) {
	if !actor.IsRider() && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Only riders may request reservations")
	}
	if !actor.IsAdmin() || reservation.RiderID == "" {
		reservation.RiderID = actor.ID
	}

	s.applyDefaults(reservation)
	s.sanitize(reservation)
	if err := s.validate(reservation); err != nil {
		return nil, err
	}

	// A re-submitted key returns the reservation the first submission
	// produced; exactly one reservation per key.
	if reservation.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, reservation.RiderID, reservation.IdempotencyKey)
		if err == nil {
			s.cfg.Log.Info("Idempotent resubmission, returning existing reservation",
				"reservation_id", existing.ID,
				"idempotency_key", reservation.IdempotencyKey,
			)
			return existing, nil
		}
		if !errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, s.mapStoreError("Failed to check idempotency key", err)
		}
	}

	station, err := s.stationRepo.FindByID(ctx, reservation.StationID)
	if err != nil {
		return nil, s.mapAdmissionStationError(reservation.StationID, err)
	}

	if err := s.admissibility(reservation, station); err != nil {
		return nil, err
	}

	lockID, err := s.acquireSlotLock(ctx, reservation)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	capacity, _ := station.ClassCapacity(reservation.VehicleClass)

	err = s.withStoreRetry(ctx, func() error {
		return s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			if err := s.verifyAdmission(sessCtx, reservation, capacity); err != nil {
				return err
			}
			if err := s.repo.Create(sessCtx, reservation); err != nil {
				return err
			}
			return nil
		})
	})
	if err != nil {
		s.cfg.Log.Error("Failed to admit reservation", "error", err)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("Failed to create reservation", err)
	}

	s.notifier.ReservationEvent(ctx, EventReservationRequested, reservation)

	s.cfg.Log.Info("Reservation admitted as pending",
		"id", reservation.ID,
		"station_id", reservation.StationID,
		"rider_id", reservation.RiderID,
		"date", reservation.Date,
		"start_hour", reservation.StartHour,
	)
	return reservation, nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reservationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid reservation ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve reservation", err)
	}

	return reservation, nil
}

// GetAll is the cross-station listing; it exposes rider IDs and plates, so
// only admins may call it. Riders list their own via GetByRider.
func (s *reservationService) GetAll(ctx context.Context, actor model.Actor, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, apperrors.Forbidden("Only admins may list all reservations")
	}

	return s.paginated(ctx, limit, offset,
		func(ctx context.Context) (int64, error) { return s.repo.Count(ctx) },
		func(ctx context.Context) ([]*model.Reservation, error) { return s.repo.FindAll(ctx, limit, offset) },
	)
}

func (s *reservationService) GetByRider(ctx context.Context, actor model.Actor, riderID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if riderID == "" {
		return nil, 0, apperrors.InvalidInput("Rider ID cannot be empty")
	}
	if actor.IsRider() && actor.ID != riderID {
		return nil, 0, apperrors.Forbidden("Riders may only list their own reservations")
	}

	return s.paginated(ctx, limit, offset,
		func(ctx context.Context) (int64, error) { return s.repo.CountByRider(ctx, riderID) },
		func(ctx context.Context) ([]*model.Reservation, error) {
			return s.repo.FindByRider(ctx, riderID, limit, offset)
		},
	)
}

func (s *reservationService) GetByStation(ctx context.Context, stationID string, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if stationID == "" {
		return nil, 0, apperrors.InvalidInput("Station ID cannot be empty")
	}

	return s.paginated(ctx, limit, offset,
		func(ctx context.Context) (int64, error) { return s.repo.CountByStation(ctx, stationID) },
		func(ctx context.Context) ([]*model.Reservation, error) {
			return s.repo.FindByStation(ctx, stationID, limit, offset)
		},
	)
}

// Respond applies the operator's confirm/reject decision. This is the
// authoritative serialization point: optimistic admission may let competing
// pendings through, the operator resolves them here.
func (s *reservationService) Respond(ctx context.Context, actor model.Actor, id string, decision model.Decision) (*model.Reservation, error) {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeStationMutation(ctx, actor, reservation.StationID); err != nil {
		return nil, err
	}

	next := model.ReservationStatus(decision)
	updated, err := s.transition(ctx, reservation, next)
	if err != nil {
		return nil, err
	}

	switch next {
	case model.StatusConfirmed:
		s.notifier.ReservationEvent(ctx, EventReservationConfirmed, updated)
	case model.StatusRejected:
		s.notifier.ReservationEvent(ctx, EventReservationRejected, updated)
		s.notifier.SlotFreed(ctx, updated)
	}

	s.cfg.Log.Info("Reservation decision applied", "id", id, "decision", decision, "operator_id", actor.ID)
	return updated, nil
}

func (s *reservationService) Cancel(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error) {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && reservation.RiderID != actor.ID {
		return nil, apperrors.Forbidden("Only the owning rider or an admin may cancel this reservation")
	}

	updated, err := s.transition(ctx, reservation, model.StatusCancelled)
	if err != nil {
		return nil, err
	}

	s.notifier.ReservationEvent(ctx, EventReservationCancelled, updated)
	s.notifier.SlotFreed(ctx, updated)

	s.cfg.Log.Info("Reservation cancelled", "id", id, "actor_id", actor.ID)
	return updated, nil
}

func (s *reservationService) Complete(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error) {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeStationMutation(ctx, actor, reservation.StationID); err != nil {
		return nil, err
	}

	updated, err := s.transition(ctx, reservation, model.StatusCompleted)
	if err != nil {
		return nil, err
	}

	s.notifier.ReservationEvent(ctx, EventReservationCompleted, updated)

	s.cfg.Log.Info("Reservation completed", "id", id, "operator_id", actor.ID)
	return updated, nil
}

// Delete removes a reservation outright. Only pending reservations may be
// deleted, and only by the owning rider or an admin; anything past pending
// goes through the state machine instead.
func (s *reservationService) Delete(ctx context.Context, actor model.Actor, id string) error {
	reservation, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && reservation.RiderID != actor.ID {
		return apperrors.Forbidden("Only the owning rider or an admin may delete this reservation")
	}
	if reservation.Status != model.StatusPending {
		return reservationserrors.InvalidStateTransition(reservation.Status, model.StatusCancelled)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		return apperrors.Internal("Failed to delete reservation", err)
	}

	reservation.Status = model.StatusCancelled
	s.notifier.SlotFreed(ctx, reservation)

	s.cfg.Log.Info("Reservation deleted", "id", id, "actor_id", actor.ID)
	return nil
}

// Search lists the active (pending or confirmed) reservations occupying a
// station's pool for one class on one date.
func (s *reservationService) Search(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error) {
	if stationID == "" {
		return nil, apperrors.InvalidInput("Station ID cannot be empty")
	}
	if _, err := timeslot.ParseDate(date); err != nil {
		return nil, reservationserrors.InvalidDate(date)
	}
	if _, ok := model.ParseVehicleClass(string(class)); !ok {
		return nil, reservationserrors.InvalidVehicleClass(string(class))
	}

	reservations, err := s.repo.FindActiveByStationDateClass(ctx, stationID, date, class)
	if err != nil {
		return nil, apperrors.Internal("Failed to search reservations", err)
	}
	return reservations, nil
}

// GetSlotAvailability lists the rider-facing slot options with remaining
// per-class capacity. Hours already past today roll into tomorrow.
func (s *reservationService) GetSlotAvailability(ctx context.Context, stationID string, class model.VehicleClass, now time.Time) ([]SlotAvailability, error) {
	if stationID == "" {
		return nil, apperrors.InvalidInput("Station ID cannot be empty")
	}
	if _, ok := model.ParseVehicleClass(string(class)); !ok {
		return nil, reservationserrors.InvalidVehicleClass(string(class))
	}

	station, err := s.stationRepo.FindByID(ctx, stationID)
	if err != nil {
		return nil, s.mapStationLookupError(stationID, err)
	}

	capacity, ok := station.ClassCapacity(class)
	if !ok {
		return nil, reservationserrors.InvalidVehicleClass(string(class))
	}

	options := timeslot.Options(now)

	// The options span at most two calendar dates.
	activeByDate := map[string][]*model.Reservation{}
	for _, date := range []string{timeslot.Date(now), timeslot.Date(now.AddDate(0, 0, 1))} {
		active, err := s.repo.FindActiveByStationDateClass(ctx, stationID, date, class)
		if err != nil {
			return nil, apperrors.Internal("Failed to load active reservations", err)
		}
		activeByDate[date] = active
	}

	availability := make([]SlotAvailability, 0, len(options))
	for _, option := range options {
		used := 0
		for _, r := range activeByDate[option.Date] {
			if r.StartHour <= option.Hour && option.Hour < r.EndHour() {
				used++
			}
		}
		availability = append(availability, SlotAvailability{
			Option:    option,
			Capacity:  capacity,
			Used:      used,
			Available: max(0, capacity-used),
		})
	}

	return availability, nil
}

func (s *reservationService) JoinWaitlist(ctx context.Context, actor model.Actor, entry *model.WaitlistEntry) error {
	if !actor.IsRider() && !actor.IsAdmin() {
		return apperrors.Forbidden("Only riders may join a waitlist")
	}
	if !actor.IsAdmin() || entry.RiderID == "" {
		entry.RiderID = actor.ID
	}

	if err := s.validator.ValidateWaitlistEntry(entry); err != nil {
		s.cfg.Log.Warn("Waitlist entry validation failed", "error", err)
		return apperrors.Validation("Waitlist entry validation failed", map[string]any{"error": err.Error()})
	}

	station, err := s.stationRepo.FindByID(ctx, entry.StationID)
	if err != nil {
		return s.mapAdmissionStationError(entry.StationID, err)
	}
	if _, ok := station.ClassCapacity(entry.VehicleClass); !ok {
		return reservationserrors.InvalidVehicleClass(string(entry.VehicleClass))
	}

	if err := s.waitlistRepo.Create(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("Rider is already on the waitlist for this slot")
		}
		return apperrors.Internal("Failed to join waitlist", err)
	}

	s.cfg.Log.Info("Rider joined waitlist",
		"station_id", entry.StationID,
		"rider_id", entry.RiderID,
		"date", entry.Date,
		"start_hour", entry.StartHour,
	)
	return nil
}

func (s *reservationService) GetWaitlist(ctx context.Context, actor model.Actor, stationID, date string) ([]*model.WaitlistEntry, error) {
	if stationID == "" {
		return nil, apperrors.InvalidInput("Station ID cannot be empty")
	}
	if _, err := timeslot.ParseDate(date); err != nil {
		return nil, reservationserrors.InvalidDate(date)
	}
	if err := s.authorizeStationMutation(ctx, actor, stationID); err != nil {
		return nil, err
	}

	entries, err := s.waitlistRepo.FindByStationDate(ctx, stationID, date)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve waitlist", err)
	}
	return entries, nil
}

// --- Helpers ---

func (s *reservationService) applyDefaults(r *model.Reservation) {
	r.Status = model.StatusPending
	if r.DurationHours == 0 {
		r.DurationHours = 1
	}
	if r.ChargingType == "" {
		r.ChargingType = model.ChargingAC
	}
	// An omitted date means "the next occurrence of this hour": today when
	// the hour is still ahead, tomorrow when it has already passed.
	if r.Date == "" {
		r.Date, r.StartHour = timeslot.Resolve(time.Now(), r.StartHour)
	}
}

func (s *reservationService) sanitize(r *model.Reservation) {
	r.RiderName = sanitizer.SanitizeLabel(r.RiderName)
	r.VehicleNumber = sanitizer.NormalizePlate(r.VehicleNumber)
}

func (s *reservationService) validate(r *model.Reservation) error {
	if err := s.validator.Validate(r); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// admissibility runs the station-level checks in their fixed order:
// station bookable, class served, date not past, duration in range.
func (s *reservationService) admissibility(r *model.Reservation, station *model.Station) error {
	if !station.Bookable() {
		return reservationserrors.StationUnavailable(r.StationID)
	}

	if _, ok := station.ClassCapacity(r.VehicleClass); !ok {
		return reservationserrors.InvalidVehicleClass(string(r.VehicleClass))
	}

	past, err := timeslot.IsPast(r.Date, time.Now())
	if err != nil || past {
		return reservationserrors.InvalidDate(r.Date)
	}

	if r.DurationHours < 1 || r.DurationHours > s.cfg.MaxDurationHours {
		return reservationserrors.InvalidDuration(r.DurationHours, s.cfg.MaxDurationHours)
	}

	return nil
}

// verifyAdmission runs the contention checks inside the transaction:
// overlap count against the class pool, rider cap, duplicate vehicle.
func (s *reservationService) verifyAdmission(ctx context.Context, r *model.Reservation, capacity int) error {
	existing, err := s.repo.FindActiveByStationDateClass(ctx, r.StationID, r.Date, r.VehicleClass)
	if err != nil {
		return err
	}

	overlapping := 0
	for _, e := range existing {
		if e.Overlaps(r) {
			overlapping++
		}
	}
	if overlapping >= capacity {
		return reservationserrors.SlotFull(overlapping, capacity)
	}

	activeCount, err := s.repo.CountActiveByRider(ctx, r.RiderID)
	if err != nil {
		return err
	}
	if activeCount >= int64(s.cfg.RiderActiveLimit) {
		return reservationserrors.RiderBookingLimitExceeded(s.cfg.RiderActiveLimit)
	}

	_, err = s.repo.FindActiveByVehicle(ctx, r.VehicleNumber)
	if err == nil {
		return reservationserrors.DuplicateVehicleBooking(r.VehicleNumber)
	}
	if !errors.Is(err, reservationserrors.ErrNotFound) {
		return err
	}

	return nil
}

// transition applies the state machine and persists the new status. An
// invalid transition fails loudly; it never silently succeeds.
func (s *reservationService) transition(ctx context.Context, reservation *model.Reservation, next model.ReservationStatus) (*model.Reservation, error) {
	if !reservation.Status.CanTransitionTo(next) {
		return nil, reservationserrors.InvalidStateTransition(reservation.Status, next)
	}

	err := s.withStoreRetry(ctx, func() error {
		return s.repo.UpdateStatus(ctx, reservation.ID, next)
	})
	if err != nil {
		if errors.Is(err, reservationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Reservation", reservation.ID)
		}
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("Failed to update reservation status", err)
	}

	updated := *reservation
	updated.Status = next
	return &updated, nil
}

func (s *reservationService) authorizeStationMutation(ctx context.Context, actor model.Actor, stationID string) error {
	if actor.IsAdmin() {
		return nil
	}
	if !actor.IsOperator() {
		return apperrors.Forbidden("Only the station operator or an admin may perform this action")
	}

	station, err := s.stationRepo.FindByID(ctx, stationID)
	if err != nil {
		return s.mapStationLookupError(stationID, err)
	}
	if station.OwnerID != actor.ID {
		return apperrors.Forbidden("Only the station operator or an admin may perform this action")
	}
	return nil
}

func (s *reservationService) paginated(
	ctx context.Context,
	limit int, offset int64,
	count func(ctx context.Context) (int64, error),
	find func(ctx context.Context) ([]*model.Reservation, error),
) ([]*model.Reservation, int64, error) {
	var total int64
	var reservations []*model.Reservation
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		total, errCount = count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reservations", "error", errCount)
			errCount = apperrors.Internal("Failed to count reservations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reservations, errFind = find(ctx)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reservations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reservations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reservations, total, nil
}

// withStoreRetry retries the operation on store timeouts with exponential
// backoff, up to the configured attempt budget. Timeouts are the only
// retryable failure; every other rejection is final for this request.
func (s *reservationService) withStoreRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = op()
		if err == nil || !isStoreTimeout(err) {
			return err
		}
		if attempt >= s.cfg.StoreRetryAttempts {
			return reservationserrors.StoreTimeout(err)
		}

		backoff := s.cfg.StoreRetryBackoff * time.Duration(1<<attempt)
		s.cfg.Log.Warn("Store timed out, retrying",
			"attempt", attempt+1,
			"max_attempts", s.cfg.StoreRetryAttempts,
			"backoff", backoff,
		)
		select {
		case <-ctx.Done():
			return reservationserrors.StoreTimeout(err)
		case <-time.After(backoff):
		}
	}
}

func isStoreTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err)
}

func (s *reservationService) mapStoreError(message string, err error) error {
	if isStoreTimeout(err) {
		return reservationserrors.StoreTimeout(err)
	}
	return apperrors.Internal(message, err)
}

// mapAdmissionStationError translates station lookups on the admission
// path. A rider requesting a slot cannot tell a deleted station from an
// inactive one; both reject with StationUnavailable. Plain station reads
// keep their NOT_FOUND semantics via mapStationLookupError.
func (s *reservationService) mapAdmissionStationError(stationID string, err error) error {
	if errors.Is(err, stationserrors.ErrNotFound) {
		return reservationserrors.StationUnavailable(stationID)
	}
	return s.mapStationLookupError(stationID, err)
}

func (s *reservationService) mapStationLookupError(stationID string, err error) error {
	if isStoreTimeout(err) {
		return reservationserrors.StoreTimeout(err)
	}
	if errors.Is(err, stationserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Station", stationID)
	}
	if errors.Is(err, stationserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid station ID format")
	}
	return apperrors.Internal("Failed to retrieve station", err)
}

func (s *reservationService) acquireSlotLock(ctx context.Context, r *model.Reservation) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s_%s_%d", r.StationID, r.VehicleClass, r.Date, r.StartHour)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
		}
		return "", s.mapStoreError("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *reservationService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
