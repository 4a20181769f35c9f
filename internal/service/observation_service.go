package service

import (
	"context"
	"fmt"

	"skyguide/internal/domain"
	"skyguide/internal/repository"
)

// ObservationView is an observation joined with the object it refers to.
// Object is nil when the object has since been removed from the catalog.
type ObservationView struct {
	domain.Observation
	Object *domain.CelestialObject
}

// ObservationService manages a caller's observing list. Every method takes the id of the
// caller on whose behalf it acts.
type ObservationService interface {
	List(ctx context.Context, userID int64) ([]ObservationView, error)
	Create(ctx context.Context, userID int64, obs domain.Observation) (*domain.Observation, error)
	Update(ctx context.Context, userID, id int64, patch domain.ObservationPatch) (*domain.Observation, error)
	Delete(ctx context.Context, userID, id int64) error
}

type observationService struct {
	observations repository.ObservationRepository
	objects      repository.CelestialObjectRepository
}

func NewObservationService(store *repository.Store) ObservationService {
	return &observationService{
		observations: store.Observations,
		objects:      store.Objects,
	}
}

func (s *observationService) List(ctx context.Context, userID int64) ([]ObservationView, error) {
	observations, err := s.observations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ObservationView, len(observations))
	for i := range observations {
		obj, err := s.objects.Get(ctx, observations[i].ObjectID)
		if err != nil {
			return nil, err
		}
		views[i] = ObservationView{Observation: observations[i], Object: obj}
	}
	return views, nil
}

func (s *observationService) Create(ctx context.Context, userID int64, obs domain.Observation) (*domain.Observation, error) {
	if obs.ObjectID <= 0 {
		return nil, domain.NewValidationError("objectId", "is required")
	}
	obj, err := s.objects.Get(ctx, obs.ObjectID)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, domain.NewNotFoundError("celestial object", obs.ObjectID)
	}

	obs.ID = 0
	obs.UserID = userID
	if _, err := s.observations.Create(ctx, &obs); err != nil {
		return nil, err
	}
	return &obs, nil
}

func (s *observationService) Update(ctx context.Context, userID, id int64, patch domain.ObservationPatch) (*domain.Observation, error) {
	obs, err := s.owned(ctx, userID, id, "update")
	if err != nil {
		return nil, err
	}

	patch.Apply(obs)
	ok, err := s.observations.Update(ctx, obs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewNotFoundError("observation", id)
	}
	return obs, nil
}

func (s *observationService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, userID, id, "delete"); err != nil {
		return err
	}
	ok, err := s.observations.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewNotFoundError("observation", id)
	}
	return nil
}

func (s *observationService) owned(ctx context.Context, userID, id int64, action string) (*domain.Observation, error) {
	obs, err := s.observations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if obs == nil {
		return nil, domain.NewNotFoundError("observation", id)
	}
	if obs.UserID != userID {
		return nil, fmt.Errorf("not authorized to %s this observation: %w", action, domain.ErrForbidden)
	}
	return obs, nil
}
