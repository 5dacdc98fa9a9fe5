package service

import (
	"context"
	"errors"
	"sync"

	stationserrors "voltslot/internal/stations/errors"
	"voltslot/internal/stations/repository"
	"voltslot/internal/stations/validator"
	"voltslot/pkg/config"
	apperrors "voltslot/pkg/errors"
	"voltslot/pkg/model"
	"voltslot/pkg/sanitizer"
)

type StationService interface {
	Create(ctx context.Context, actor model.Actor, station *model.Station) error
	GetByID(ctx context.Context, id string) (*model.Station, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Station, int64, error)
	GetByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Station, int64, error)
	Update(ctx context.Context, actor model.Actor, id string, updates *model.StationUpdate) error
	Delete(ctx context.Context, actor model.Actor, id string) error
}

type stationService struct {
	repo      repository.StationRepository
	validator *validator.StationValidator
	cfg       *config.Config
}

func NewStationService(
	repo repository.StationRepository,
	validator *validator.StationValidator,
	cfg *config.Config,
) StationService {
	return &stationService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *stationService) Create(ctx context.Context, actor model.Actor, station *model.Station) error {
	if !actor.IsOperator() && !actor.IsAdmin() {
		return apperrors.Forbidden("Only operators may register stations")
	}

	// Operators always own the stations they register; only admins may
	// register on someone else's behalf.
	if !actor.IsAdmin() || station.OwnerID == "" {
		station.OwnerID = actor.ID
	}

	s.applyDefaults(station)
	s.sanitize(station)
	if err := s.validate(station); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, station); err != nil {
		s.cfg.Log.Error("Failed to create station", "error", err)
		return apperrors.Internal("Failed to create station", err)
	}

	s.cfg.Log.Info("Station created successfully",
		"id", station.ID,
		"owner_id", station.OwnerID,
		"name", station.Name,
	)
	return nil
}

func (s *stationService) GetByID(ctx context.Context, id string) (*model.Station, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Station ID cannot be empty")
	}

	station, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, stationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Station", id)
		}
		if errors.Is(err, stationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid station ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve station", err)
	}

	return station, nil
}

func (s *stationService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Station, int64, error) {
	var count int64
	var stations []*model.Station
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count stations", "error", errCount)
			errCount = apperrors.Internal("Failed to count stations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		stations, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list stations", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve stations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return stations, count, nil
}

func (s *stationService) GetByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.Station, int64, error) {
	if ownerID == "" {
		return nil, 0, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	var count int64
	var stations []*model.Station
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByOwner(ctx, ownerID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count stations by owner", "owner_id", ownerID, "error", errCount)
			errCount = apperrors.Internal("Failed to count stations", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		stations, errFind = s.repo.FindByOwner(ctx, ownerID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list stations by owner", "owner_id", ownerID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve stations", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return stations, count, nil
}

func (s *stationService) Update(ctx context.Context, actor model.Actor, id string, updates *model.StationUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Station ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizeMutation(actor, existing); err != nil {
		return err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Station update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeStationUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, stationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Station", id)
		}
		s.cfg.Log.Error("Failed to update station", "id", id, "error", err)
		return apperrors.Internal("Failed to update station", err)
	}

	s.cfg.Log.Info("Station updated successfully", "id", id, "status", merged.Status)
	return nil
}

func (s *stationService) Delete(ctx context.Context, actor model.Actor, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Station ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizeMutation(actor, existing); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, stationserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Station", id)
		}
		if errors.Is(err, stationserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid station ID format")
		}
		return apperrors.Internal("Failed to delete station", err)
	}

	s.cfg.Log.Info("Station deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *stationService) authorizeMutation(actor model.Actor, station *model.Station) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.IsOperator() && station.OwnerID == actor.ID {
		return nil
	}
	return apperrors.Forbidden("Only the owning operator or an admin may modify this station")
}

func (s *stationService) applyDefaults(station *model.Station) {
	if station.Status == "" {
		station.Status = model.StationActive
	}
}

func (s *stationService) sanitize(station *model.Station) {
	station.Name = sanitizer.SanitizeLabel(station.Name)
	station.Location = sanitizer.SanitizeLabel(station.Location)
}

func (s *stationService) mergeStationUpdates(existing *model.Station, updates *model.StationUpdate) *model.Station {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Location != "" {
		merged.Location = updates.Location
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}

	return &merged
}

func (s *stationService) validate(station *model.Station) error {
	if err := s.validator.Validate(station); err != nil {
		s.cfg.Log.Warn("Station validation failed", "error", err)
		return apperrors.Validation("Station validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
