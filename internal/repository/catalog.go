package repository

import (
	"context"

	"skyguide/internal/domain"
)

// Get methods return (nil, nil) when the id is unknown. Update and Delete report
// whether a record was touched instead of failing on a missing id.

// CelestialObjectRepository exposes storage operations for catalog entries.
type CelestialObjectRepository interface {
	Create(ctx context.Context, obj *domain.CelestialObject) (int64, error)
	Get(ctx context.Context, id int64) (*domain.CelestialObject, error)
	List(ctx context.Context) ([]domain.CelestialObject, error)
	Update(ctx context.Context, obj *domain.CelestialObject) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ObservationRepository manages users' observing lists.
type ObservationRepository interface {
	Create(ctx context.Context, obs *domain.Observation) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Observation, error)
	List(ctx context.Context) ([]domain.Observation, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Observation, error)
	Update(ctx context.Context, obs *domain.Observation) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// MonthlyGuideRepository manages monthly viewing guides.
type MonthlyGuideRepository interface {
	Create(ctx context.Context, guide *domain.MonthlyGuide) (int64, error)
	Get(ctx context.Context, id int64) (*domain.MonthlyGuide, error)
	List(ctx context.Context) ([]domain.MonthlyGuide, error)
	Update(ctx context.Context, guide *domain.MonthlyGuide) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// TelescopeTipRepository manages telescope tips.
type TelescopeTipRepository interface {
	Create(ctx context.Context, tip *domain.TelescopeTip) (int64, error)
	Get(ctx context.Context, id int64) (*domain.TelescopeTip, error)
	List(ctx context.Context) ([]domain.TelescopeTip, error)
	ListByCategory(ctx context.Context, category string) ([]domain.TelescopeTip, error)
	Update(ctx context.Context, tip *domain.TelescopeTip) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Store bundles every collection the app works with.
type Store struct {
	Objects      CelestialObjectRepository
	Observations ObservationRepository
	Guides       MonthlyGuideRepository
	Tips         TelescopeTipRepository
	Users        UserRepository
}
