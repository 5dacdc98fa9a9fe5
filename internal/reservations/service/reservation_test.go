package service

import (
	"context"
	"testing"
	"time"

	reservationserrors "voltslot/internal/reservations/errors"
	"voltslot/internal/reservations/validator"
	stationserrors "voltslot/internal/stations/errors"
	"voltslot/pkg/config"
	mongotx "voltslot/pkg/db/mongo"
	apperrors "voltslot/pkg/errors"
	"voltslot/pkg/logger"
	"voltslot/pkg/model"
	"voltslot/pkg/timeslot"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	testStationID = "507f1f77bcf86cd799439011"
	testRiderID   = "rider-1"
)

// Mock repositories for testing

type mockReservationRepository struct {
	createFunc                       func(ctx context.Context, r *model.Reservation) error
	findByIDFunc                     func(ctx context.Context, id string) (*model.Reservation, error)
	findActiveByStationDateClassFunc func(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error)
	countActiveByRiderFunc           func(ctx context.Context, riderID string) (int64, error)
	findActiveByVehicleFunc          func(ctx context.Context, vehicleNumber string) (*model.Reservation, error)
	findByIdempotencyKeyFunc         func(ctx context.Context, riderID, key string) (*model.Reservation, error)
	updateStatusFunc                 func(ctx context.Context, id string, status model.ReservationStatus) error
	deleteFunc                       func(ctx context.Context, id string) error
	executeTransactionFunc           func(ctx context.Context, fn mongotx.TransactionFunc) error
}

func (m *mockReservationRepository) Create(ctx context.Context, r *model.Reservation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, r)
	}
	r.ID = "507f1f77bcf86cd799439099"
	return nil
}

func (m *mockReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, reservationserrors.ErrNotFound
}

func (m *mockReservationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, error) {
	return []*model.Reservation{}, nil
}

func (m *mockReservationRepository) FindByRider(ctx context.Context, riderID string, limit int, offset int64) ([]*model.Reservation, error) {
	return []*model.Reservation{}, nil
}

func (m *mockReservationRepository) FindByStation(ctx context.Context, stationID string, limit int, offset int64) ([]*model.Reservation, error) {
	return []*model.Reservation{}, nil
}

func (m *mockReservationRepository) FindActiveByStationDateClass(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error) {
	if m.findActiveByStationDateClassFunc != nil {
		return m.findActiveByStationDateClassFunc(ctx, stationID, date, class)
	}
	return []*model.Reservation{}, nil
}

func (m *mockReservationRepository) CountActiveByRider(ctx context.Context, riderID string) (int64, error) {
	if m.countActiveByRiderFunc != nil {
		return m.countActiveByRiderFunc(ctx, riderID)
	}
	return 0, nil
}

func (m *mockReservationRepository) FindActiveByVehicle(ctx context.Context, vehicleNumber string) (*model.Reservation, error) {
	if m.findActiveByVehicleFunc != nil {
		return m.findActiveByVehicleFunc(ctx, vehicleNumber)
	}
	return nil, reservationserrors.ErrNotFound
}

func (m *mockReservationRepository) FindByIdempotencyKey(ctx context.Context, riderID, key string) (*model.Reservation, error) {
	if m.findByIdempotencyKeyFunc != nil {
		return m.findByIdempotencyKeyFunc(ctx, riderID, key)
	}
	return nil, reservationserrors.ErrNotFound
}

func (m *mockReservationRepository) UpdateStatus(ctx context.Context, id string, status model.ReservationStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockReservationRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockReservationRepository) Count(ctx context.Context) (int64, error) { return 0, nil }

func (m *mockReservationRepository) CountByRider(ctx context.Context, riderID string) (int64, error) {
	return 0, nil
}

func (m *mockReservationRepository) CountByStation(ctx context.Context, stationID string) (int64, error) {
	return 0, nil
}

func (m *mockReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	if m.executeTransactionFunc != nil {
		return m.executeTransactionFunc(ctx, fn)
	}
	return fn(nil)
}

type mockSlotLockRepository struct {
	createFunc func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)
	deleteFunc func(ctx context.Context, lockID string) error
}

func (m *mockSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, lockID)
	}
	return nil
}

type mockWaitlistRepository struct {
	createFunc            func(ctx context.Context, entry *model.WaitlistEntry) error
	findByStationDateFunc func(ctx context.Context, stationID, date string) ([]*model.WaitlistEntry, error)
}

func (m *mockWaitlistRepository) Create(ctx context.Context, entry *model.WaitlistEntry) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, entry)
	}
	return nil
}

func (m *mockWaitlistRepository) FindByStationDate(ctx context.Context, stationID, date string) ([]*model.WaitlistEntry, error) {
	if m.findByStationDateFunc != nil {
		return m.findByStationDateFunc(ctx, stationID, date)
	}
	return []*model.WaitlistEntry{}, nil
}

func (m *mockWaitlistRepository) DeleteByRiderAndSlot(ctx context.Context, riderID, stationID, date string, startHour int) error {
	return nil
}

type mockStationRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Station, error)
}

func (m *mockStationRepository) Create(ctx context.Context, station *model.Station) error {
	return nil
}

func (m *mockStationRepository) FindByID(ctx context.Context, id string) (*model.Station, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, stationserrors.ErrNotFound
}

func (m *mockStationRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Station, error) {
	return []*model.Station{}, nil
}

func (m *mockStationRepository) FindByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Station, error) {
	return []*model.Station{}, nil
}

func (m *mockStationRepository) Update(ctx context.Context, id string, station *model.Station) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (m *mockStationRepository) Delete(ctx context.Context, id string) error { return nil }

func (m *mockStationRepository) Count(ctx context.Context) (int64, error) { return 0, nil }

func (m *mockStationRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	return 0, nil
}

// recordingNotifier captures published events for assertions.
type recordingNotifier struct {
	events    []string
	slotFreed int
}

func (n *recordingNotifier) ReservationEvent(_ context.Context, eventType string, _ *model.Reservation) {
	n.events = append(n.events, eventType)
}

func (n *recordingNotifier) SlotFreed(context.Context, *model.Reservation) {
	n.slotFreed++
}

func (n *recordingNotifier) Close() error { return nil }

// --- Test fixtures ---

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		MaxDurationHours:   4,
		RiderActiveLimit:   3,
		SlotLockTTL:        10 * time.Second,
		StoreRetryAttempts: 2,
		StoreRetryBackoff:  time.Millisecond,
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       5 * time.Second,
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func activeStation() *model.Station {
	return &model.Station{
		ID:       testStationID,
		Name:     "Central Swap Hub",
		Location: "12 Hill Road",
		OwnerID:  "operator-1",
		Status:   model.StationActive,
		Capacity: map[model.VehicleClass]int{
			model.FourWheeler: 2,
			model.TwoWheeler:  3,
		},
	}
}

func tomorrowDate() string {
	return timeslot.Date(time.Now().AddDate(0, 0, 1))
}

func validRequest() *model.Reservation {
	return &model.Reservation{
		StationID:     testStationID,
		RiderName:     "Asha Rao",
		VehicleNumber: "KA01AB1234",
		VehicleClass:  model.FourWheeler,
		ChargingType:  model.ChargingAC,
		Date:          tomorrowDate(),
		StartHour:     10,
		DurationHours: 2,
	}
}

type serviceFixture struct {
	repo        *mockReservationRepository
	lockRepo    *mockSlotLockRepository
	stationRepo *mockStationRepository
	notifier    *recordingNotifier
	svc         ReservationService
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	cfg := testConfig(t)
	f := &serviceFixture{
		repo:        &mockReservationRepository{},
		lockRepo:    &mockSlotLockRepository{},
		stationRepo: &mockStationRepository{},
		notifier:    &recordingNotifier{},
	}
	f.stationRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Station, error) {
		return activeStation(), nil
	}
	f.svc = NewReservationService(
		f.repo,
		f.lockRepo,
		&mockWaitlistRepository{},
		f.stationRepo,
		validator.NewReservationValidator(cfg.Log),
		f.notifier,
		cfg,
	)
	return f
}

func rider() model.Actor    { return model.Actor{ID: testRiderID, Role: model.RoleRider} }
func operator() model.Actor { return model.Actor{ID: "operator-1", Role: model.RoleOperator} }

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != code {
		t.Fatalf("expected error code %s, got %s (%v)", code, appErr.Code, err)
	}
}

// --- Admission ---

func TestRequest_AdmitsPending(t *testing.T) {
	f := newFixture(t)

	reservation, err := f.svc.Request(context.Background(), rider(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reservation.Status != model.StatusPending {
		t.Errorf("expected pending status, got %s", reservation.Status)
	}
	if reservation.RiderID != testRiderID {
		t.Errorf("expected rider ID %s, got %s", testRiderID, reservation.RiderID)
	}
	if reservation.ID == "" {
		t.Error("expected persisted reservation to carry an ID")
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0] != EventReservationRequested {
		t.Errorf("expected a single %s event, got %v", EventReservationRequested, f.notifier.events)
	}
}

func TestRequest_SlotFullAtBoundary(t *testing.T) {
	existing := func(n int) []*model.Reservation {
		rs := make([]*model.Reservation, 0, n)
		for i := 0; i < n; i++ {
			rs = append(rs, &model.Reservation{
				StationID:     testStationID,
				VehicleClass:  model.FourWheeler,
				Date:          tomorrowDate(),
				StartHour:     10,
				DurationHours: 1,
				Status:        model.StatusPending,
			})
		}
		return rs
	}

	// Capacity is 2 for 4-wheelers: one occupant leaves room, two do not.
	f := newFixture(t)
	f.repo.findActiveByStationDateClassFunc = func(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error) {
		return existing(1), nil
	}
	if _, err := f.svc.Request(context.Background(), rider(), validRequest()); err != nil {
		t.Fatalf("expected admission with one slot used, got %v", err)
	}

	f = newFixture(t)
	f.repo.findActiveByStationDateClassFunc = func(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error) {
		return existing(2), nil
	}
	_, err := f.svc.Request(context.Background(), rider(), validRequest())
	assertCode(t, err, reservationserrors.CodeSlotFull)

	appErr := apperrors.AsAppError(err)
	if appErr.Details["used"] != 2 || appErr.Details["capacity"] != 2 {
		t.Errorf("expected used=2 capacity=2 details, got %v", appErr.Details)
	}
}

func TestRequest_ClassPoolsAreIndependent(t *testing.T) {
	f := newFixture(t)
	// The 4-wheeler pool is saturated; a 2-wheeler request must not see it.
	f.repo.findActiveByStationDateClassFunc = func(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error) {
		if class == model.FourWheeler {
			t.Fatalf("2-wheeler admission queried the 4-wheeler pool")
		}
		return []*model.Reservation{}, nil
	}

	req := validRequest()
	req.VehicleClass = model.TwoWheeler
	if _, err := f.svc.Request(context.Background(), rider(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequest_TouchingIntervalsDoNotOverlap(t *testing.T) {
	f := newFixture(t)
	f.repo.findActiveByStationDateClassFunc = func(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error) {
		// Both pool slots end exactly when the candidate starts.
		return []*model.Reservation{
			{Date: tomorrowDate(), StartHour: 8, DurationHours: 2, Status: model.StatusPending},
			{Date: tomorrowDate(), StartHour: 8, DurationHours: 2, Status: model.StatusConfirmed},
		}, nil
	}

	if _, err := f.svc.Request(context.Background(), rider(), validRequest()); err != nil {
		t.Fatalf("touching intervals must not count as overlap: %v", err)
	}
}

func TestRequest_RiderCapRejectsFourth(t *testing.T) {
	f := newFixture(t)
	f.repo.countActiveByRiderFunc = func(ctx context.Context, riderID string) (int64, error) {
		return 3, nil
	}

	_, err := f.svc.Request(context.Background(), rider(), validRequest())
	assertCode(t, err, reservationserrors.CodeRiderBookingLimitExceeded)
}

func TestRequest_DuplicateVehicle(t *testing.T) {
	f := newFixture(t)
	f.repo.findActiveByVehicleFunc = func(ctx context.Context, vehicleNumber string) (*model.Reservation, error) {
		return &model.Reservation{ID: "other", VehicleNumber: vehicleNumber, Status: model.StatusConfirmed}, nil
	}

	_, err := f.svc.Request(context.Background(), rider(), validRequest())
	assertCode(t, err, reservationserrors.CodeDuplicateVehicleBooking)
}

func TestRequest_PlateNormalizationCatchesVariants(t *testing.T) {
	f := newFixture(t)
	var lookedUp string
	f.repo.findActiveByVehicleFunc = func(ctx context.Context, vehicleNumber string) (*model.Reservation, error) {
		lookedUp = vehicleNumber
		return &model.Reservation{ID: "other", Status: model.StatusPending}, nil
	}

	req := validRequest()
	req.VehicleNumber = " ka-01 ab 1234 "
	_, err := f.svc.Request(context.Background(), rider(), req)
	assertCode(t, err, reservationserrors.CodeDuplicateVehicleBooking)

	if lookedUp != "KA01AB1234" {
		t.Errorf("expected normalized plate KA01AB1234 in lookup, got %q", lookedUp)
	}
}

func TestRequest_StationChecks(t *testing.T) {
	t.Run("inactive station", func(t *testing.T) {
		f := newFixture(t)
		f.stationRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Station, error) {
			s := activeStation()
			s.Status = model.StationInactive
			return s, nil
		}
		_, err := f.svc.Request(context.Background(), rider(), validRequest())
		assertCode(t, err, reservationserrors.CodeStationUnavailable)
	})

	t.Run("missing station", func(t *testing.T) {
		// A deleted station rejects the same way an inactive one does.
		f := newFixture(t)
		f.stationRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Station, error) {
			return nil, stationserrors.ErrNotFound
		}
		_, err := f.svc.Request(context.Background(), rider(), validRequest())
		assertCode(t, err, reservationserrors.CodeStationUnavailable)
	})

	t.Run("class not offered", func(t *testing.T) {
		f := newFixture(t)
		f.stationRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Station, error) {
			s := activeStation()
			s.Capacity = map[model.VehicleClass]int{model.TwoWheeler: 3}
			return s, nil
		}
		_, err := f.svc.Request(context.Background(), rider(), validRequest())
		assertCode(t, err, reservationserrors.CodeInvalidVehicleClass)
	})

	t.Run("past date", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Date = timeslot.Date(time.Now().AddDate(0, 0, -1))
		_, err := f.svc.Request(context.Background(), rider(), req)
		assertCode(t, err, reservationserrors.CodeInvalidDate)
	})

	t.Run("duration above limit", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.DurationHours = 5
		_, err := f.svc.Request(context.Background(), rider(), req)
		assertCode(t, err, reservationserrors.CodeInvalidDuration)
	})
}

func TestRequest_IdempotentResubmission(t *testing.T) {
	f := newFixture(t)
	stored := &model.Reservation{
		ID:             "507f1f77bcf86cd799439055",
		StationID:      testStationID,
		RiderID:        testRiderID,
		Status:         model.StatusPending,
		IdempotencyKey: "key-1",
	}
	f.repo.findByIdempotencyKeyFunc = func(ctx context.Context, riderID, key string) (*model.Reservation, error) {
		if riderID == testRiderID && key == "key-1" {
			return stored, nil
		}
		return nil, reservationserrors.ErrNotFound
	}
	created := false
	f.repo.createFunc = func(ctx context.Context, r *model.Reservation) error {
		created = true
		return nil
	}

	req := validRequest()
	req.IdempotencyKey = "key-1"
	got, err := f.svc.Request(context.Background(), rider(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != stored.ID {
		t.Errorf("expected the original reservation back, got %s", got.ID)
	}
	if created {
		t.Error("resubmission must not create a second reservation")
	}
	if len(f.notifier.events) != 0 {
		t.Errorf("resubmission must not publish events, got %v", f.notifier.events)
	}
}

func TestRequest_StoreTimeoutRetriesThenFails(t *testing.T) {
	f := newFixture(t)
	attempts := 0
	f.repo.executeTransactionFunc = func(ctx context.Context, fn mongotx.TransactionFunc) error {
		attempts++
		return context.DeadlineExceeded
	}

	_, err := f.svc.Request(context.Background(), rider(), validRequest())
	assertCode(t, err, apperrors.CodeTimeout)

	// Initial attempt plus the configured retries.
	if attempts != 3 {
		t.Errorf("expected 3 store attempts, got %d", attempts)
	}
}

func TestRequest_StoreTimeoutRecoversOnRetry(t *testing.T) {
	f := newFixture(t)
	attempts := 0
	f.repo.executeTransactionFunc = func(ctx context.Context, fn mongotx.TransactionFunc) error {
		attempts++
		if attempts == 1 {
			return context.DeadlineExceeded
		}
		return fn(nil)
	}

	reservation, err := f.svc.Request(context.Background(), rider(), validRequest())
	if err != nil {
		t.Fatalf("expected recovery on retry, got %v", err)
	}
	if reservation.Status != model.StatusPending {
		t.Errorf("expected pending status, got %s", reservation.Status)
	}
}

func TestRequest_SlotLockContention(t *testing.T) {
	f := newFixture(t)
	f.lockRepo.createFunc = func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
		return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}

	_, err := f.svc.Request(context.Background(), rider(), validRequest())
	assertCode(t, err, apperrors.CodeConflict)
}

func TestRequest_OperatorForbidden(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Request(context.Background(), operator(), validRequest())
	assertCode(t, err, apperrors.CodeForbidden)
}

// --- State machine ---

func pendingReservation() *model.Reservation {
	return &model.Reservation{
		ID:            "507f1f77bcf86cd799439055",
		StationID:     testStationID,
		RiderID:       testRiderID,
		VehicleClass:  model.FourWheeler,
		Date:          tomorrowDate(),
		StartHour:     10,
		DurationHours: 1,
		Status:        model.StatusPending,
	}
}

func fixtureWithReservation(t *testing.T, r *model.Reservation) *serviceFixture {
	t.Helper()
	f := newFixture(t)
	f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.Reservation, error) {
		if id == r.ID {
			return r, nil
		}
		return nil, reservationserrors.ErrNotFound
	}
	return f
}

func TestRespond_ConfirmPending(t *testing.T) {
	f := fixtureWithReservation(t, pendingReservation())

	updated, err := f.svc.Respond(context.Background(), operator(), "507f1f77bcf86cd799439055", model.DecisionConfirm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != model.StatusConfirmed {
		t.Errorf("expected confirmed, got %s", updated.Status)
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0] != EventReservationConfirmed {
		t.Errorf("expected %s event, got %v", EventReservationConfirmed, f.notifier.events)
	}
	if f.notifier.slotFreed != 0 {
		t.Error("confirmation must not free a slot")
	}
}

func TestRespond_RejectFreesSlot(t *testing.T) {
	f := fixtureWithReservation(t, pendingReservation())

	updated, err := f.svc.Respond(context.Background(), operator(), "507f1f77bcf86cd799439055", model.DecisionReject)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != model.StatusRejected {
		t.Errorf("expected rejected, got %s", updated.Status)
	}
	if f.notifier.slotFreed != 1 {
		t.Errorf("expected one slot.freed event, got %d", f.notifier.slotFreed)
	}
}

func TestRespond_WrongOperatorForbidden(t *testing.T) {
	f := fixtureWithReservation(t, pendingReservation())

	other := model.Actor{ID: "operator-2", Role: model.RoleOperator}
	_, err := f.svc.Respond(context.Background(), other, "507f1f77bcf86cd799439055", model.DecisionConfirm)
	assertCode(t, err, apperrors.CodeForbidden)
}

func TestRespond_TerminalStateRejected(t *testing.T) {
	r := pendingReservation()
	r.Status = model.StatusCompleted
	f := fixtureWithReservation(t, r)

	_, err := f.svc.Respond(context.Background(), operator(), r.ID, model.DecisionConfirm)
	assertCode(t, err, reservationserrors.CodeInvalidStateTransition)
}

func TestCancel_ConfirmedReservation(t *testing.T) {
	r := pendingReservation()
	r.Status = model.StatusConfirmed
	f := fixtureWithReservation(t, r)

	updated, err := f.svc.Cancel(context.Background(), rider(), r.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != model.StatusCancelled {
		t.Errorf("expected cancelled, got %s", updated.Status)
	}
	if f.notifier.slotFreed != 1 {
		t.Errorf("expected one slot.freed event, got %d", f.notifier.slotFreed)
	}
}

func TestCancel_CompletedReservationFails(t *testing.T) {
	r := pendingReservation()
	r.Status = model.StatusCompleted
	f := fixtureWithReservation(t, r)

	_, err := f.svc.Cancel(context.Background(), rider(), r.ID)
	assertCode(t, err, reservationserrors.CodeInvalidStateTransition)
}

func TestCancel_OtherRiderForbidden(t *testing.T) {
	f := fixtureWithReservation(t, pendingReservation())

	other := model.Actor{ID: "rider-2", Role: model.RoleRider}
	_, err := f.svc.Cancel(context.Background(), other, "507f1f77bcf86cd799439055")
	assertCode(t, err, apperrors.CodeForbidden)
}

func TestComplete_ConfirmedReservation(t *testing.T) {
	r := pendingReservation()
	r.Status = model.StatusConfirmed
	f := fixtureWithReservation(t, r)

	updated, err := f.svc.Complete(context.Background(), operator(), r.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != model.StatusCompleted {
		t.Errorf("expected completed, got %s", updated.Status)
	}
}

func TestComplete_PendingReservationFails(t *testing.T) {
	f := fixtureWithReservation(t, pendingReservation())

	_, err := f.svc.Complete(context.Background(), operator(), "507f1f77bcf86cd799439055")
	assertCode(t, err, reservationserrors.CodeInvalidStateTransition)
}

func TestDelete_OnlyWhilePending(t *testing.T) {
	f := fixtureWithReservation(t, pendingReservation())
	if err := f.svc.Delete(context.Background(), rider(), "507f1f77bcf86cd799439055"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.notifier.slotFreed != 1 {
		t.Errorf("expected one slot.freed event, got %d", f.notifier.slotFreed)
	}

	r := pendingReservation()
	r.Status = model.StatusConfirmed
	f = fixtureWithReservation(t, r)
	err := f.svc.Delete(context.Background(), rider(), r.ID)
	assertCode(t, err, reservationserrors.CodeInvalidStateTransition)
}

func TestReject_FreesCapacityForResubmission(t *testing.T) {
	// Station capacity 2 for 4-wheelers, pool saturated by two pendings.
	// Rejecting one frees the slot; an identical request is then admitted.
	pool := []*model.Reservation{
		{ID: "507f1f77bcf86cd799439001", StationID: testStationID, RiderID: "rider-a", VehicleClass: model.FourWheeler, Date: tomorrowDate(), StartHour: 10, DurationHours: 1, Status: model.StatusPending},
		{ID: "507f1f77bcf86cd799439002", StationID: testStationID, RiderID: "rider-b", VehicleClass: model.FourWheeler, Date: tomorrowDate(), StartHour: 10, DurationHours: 1, Status: model.StatusPending},
	}

	f := newFixture(t)
	f.repo.findByIDFunc = func(ctx context.Context, id string) (*model.Reservation, error) {
		for _, r := range pool {
			if r.ID == id {
				return r, nil
			}
		}
		return nil, reservationserrors.ErrNotFound
	}
	f.repo.updateStatusFunc = func(ctx context.Context, id string, status model.ReservationStatus) error {
		for _, r := range pool {
			if r.ID == id {
				r.Status = status
			}
		}
		return nil
	}
	f.repo.findActiveByStationDateClassFunc = func(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error) {
		var active []*model.Reservation
		for _, r := range pool {
			if r.Status == model.StatusPending || r.Status == model.StatusConfirmed {
				active = append(active, r)
			}
		}
		return active, nil
	}

	_, err := f.svc.Request(context.Background(), rider(), validRequest())
	assertCode(t, err, reservationserrors.CodeSlotFull)

	if _, err := f.svc.Respond(context.Background(), operator(), "507f1f77bcf86cd799439001", model.DecisionReject); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	if _, err := f.svc.Request(context.Background(), rider(), validRequest()); err != nil {
		t.Fatalf("expected admission after capacity freed, got %v", err)
	}
}

// --- Availability ---

func TestGetSlotAvailability_CountsOccupiedHours(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	today := timeslot.Date(now)
	hour := now.Hour()

	f.repo.findActiveByStationDateClassFunc = func(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error) {
		if date != today {
			return []*model.Reservation{}, nil
		}
		return []*model.Reservation{
			{Date: today, StartHour: hour, DurationHours: 1, Status: model.StatusPending},
		}, nil
	}

	availability, err := f.svc.GetSlotAvailability(context.Background(), testStationID, model.FourWheeler, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(availability) != timeslot.HoursPerDay {
		t.Fatalf("expected %d options, got %d", timeslot.HoursPerDay, len(availability))
	}

	first := availability[0]
	if first.Hour != hour || first.Date != today {
		t.Fatalf("expected first option to be the current hour today, got %+v", first.Option)
	}
	if first.Used != 1 || first.Available != 1 {
		t.Errorf("expected used=1 available=1 for the occupied hour, got used=%d available=%d", first.Used, first.Available)
	}

	for _, slot := range availability[1:] {
		if slot.Date == today && slot.Used != 0 {
			t.Errorf("hour %d should be free, got used=%d", slot.Hour, slot.Used)
		}
	}
}

func TestGetAll_AdminOnly(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.GetAll(context.Background(), rider(), 10, 0)
	assertCode(t, err, apperrors.CodeForbidden)

	_, _, err = f.svc.GetAll(context.Background(), operator(), 10, 0)
	assertCode(t, err, apperrors.CodeForbidden)

	admin := model.Actor{ID: "admin-1", Role: model.RoleAdmin}
	if _, _, err := f.svc.GetAll(context.Background(), admin, 10, 0); err != nil {
		t.Fatalf("unexpected error for admin: %v", err)
	}
}

func TestJoinWaitlist_MissingStation(t *testing.T) {
	f := newFixture(t)
	f.stationRepo.findByIDFunc = func(ctx context.Context, id string) (*model.Station, error) {
		return nil, stationserrors.ErrNotFound
	}

	entry := &model.WaitlistEntry{
		StationID:    testStationID,
		VehicleClass: model.TwoWheeler,
		Date:         tomorrowDate(),
		StartHour:    9,
	}
	err := f.svc.JoinWaitlist(context.Background(), rider(), entry)
	assertCode(t, err, reservationserrors.CodeStationUnavailable)
}

func TestSearch_ValidatesInputs(t *testing.T) {
	f := newFixture(t)
	f.repo.findActiveByStationDateClassFunc = func(ctx context.Context, stationID, date string, class model.VehicleClass) ([]*model.Reservation, error) {
		return []*model.Reservation{{StationID: stationID, Date: date, VehicleClass: class}}, nil
	}

	results, err := f.svc.Search(context.Background(), testStationID, tomorrowDate(), model.TwoWheeler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}

	_, err = f.svc.Search(context.Background(), testStationID, "not-a-date", model.TwoWheeler)
	assertCode(t, err, reservationserrors.CodeInvalidDate)

	_, err = f.svc.Search(context.Background(), testStationID, tomorrowDate(), "3-wheeler")
	assertCode(t, err, reservationserrors.CodeInvalidVehicleClass)
}

func TestGetSlotAvailability_UnknownClass(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetSlotAvailability(context.Background(), testStationID, "3-wheeler", time.Now())
	assertCode(t, err, reservationserrors.CodeInvalidVehicleClass)
}
