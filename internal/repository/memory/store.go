// Package memory keeps the catalog in process memory for the lifetime of the server.
package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"skyguide/internal/domain"
	"skyguide/internal/repository"
)

// NewStore returns an empty in-memory store.
func NewStore() *repository.Store {
	return &repository.Store{
		Objects:      NewCelestialObjectRepository(),
		Observations: NewObservationRepository(),
		Guides:       NewMonthlyGuideRepository(),
		Tips:         NewTelescopeTipRepository(),
		Users:        NewUserRepository(),
	}
}

type CelestialObjectRepository struct {
	rows *collection[domain.CelestialObject]
}

func NewCelestialObjectRepository() repository.CelestialObjectRepository {
	return &CelestialObjectRepository{rows: newCollection(
		func(o *domain.CelestialObject) int64 { return o.ID },
		func(o *domain.CelestialObject, id int64) { o.ID = id },
		nil,
	)}
}

func (r *CelestialObjectRepository) Create(_ context.Context, obj *domain.CelestialObject) (int64, error) {
	return r.rows.create(obj), nil
}

func (r *CelestialObjectRepository) Get(_ context.Context, id int64) (*domain.CelestialObject, error) {
	obj, _ := r.rows.get(id)
	return obj, nil
}

func (r *CelestialObjectRepository) List(_ context.Context) ([]domain.CelestialObject, error) {
	return r.rows.list(nil), nil
}

func (r *CelestialObjectRepository) Update(_ context.Context, obj *domain.CelestialObject) (bool, error) {
	return r.rows.update(obj), nil
}

func (r *CelestialObjectRepository) Delete(_ context.Context, id int64) (bool, error) {
	return r.rows.delete(id), nil
}

type ObservationRepository struct {
	rows *collection[domain.Observation]
}

func NewObservationRepository() repository.ObservationRepository {
	return &ObservationRepository{rows: newCollection(
		func(o *domain.Observation) int64 { return o.ID },
		func(o *domain.Observation, id int64) { o.ID = id },
		nil,
	)}
}

func (r *ObservationRepository) Create(_ context.Context, obs *domain.Observation) (int64, error) {
	if obs.DateAdded.IsZero() {
		obs.DateAdded = time.Now().UTC()
	}
	return r.rows.create(obs), nil
}

func (r *ObservationRepository) Get(_ context.Context, id int64) (*domain.Observation, error) {
	obs, _ := r.rows.get(id)
	return obs, nil
}

func (r *ObservationRepository) List(_ context.Context) ([]domain.Observation, error) {
	return r.rows.list(nil), nil
}

func (r *ObservationRepository) ListByUser(_ context.Context, userID int64) ([]domain.Observation, error) {
	return r.rows.list(func(o *domain.Observation) bool { return o.UserID == userID }), nil
}

func (r *ObservationRepository) Update(_ context.Context, obs *domain.Observation) (bool, error) {
	return r.rows.update(obs), nil
}

func (r *ObservationRepository) Delete(_ context.Context, id int64) (bool, error) {
	return r.rows.delete(id), nil
}

type MonthlyGuideRepository struct {
	rows *collection[domain.MonthlyGuide]
}

func NewMonthlyGuideRepository() repository.MonthlyGuideRepository {
	return &MonthlyGuideRepository{rows: newCollection(
		func(g *domain.MonthlyGuide) int64 { return g.ID },
		func(g *domain.MonthlyGuide, id int64) { g.ID = id },
		func(g domain.MonthlyGuide) domain.MonthlyGuide {
			g.FeaturedObjects = slices.Clone(g.FeaturedObjects)
			return g
		},
	)}
}

func (r *MonthlyGuideRepository) Create(_ context.Context, guide *domain.MonthlyGuide) (int64, error) {
	return r.rows.create(guide), nil
}

func (r *MonthlyGuideRepository) Get(_ context.Context, id int64) (*domain.MonthlyGuide, error) {
	guide, _ := r.rows.get(id)
	return guide, nil
}

func (r *MonthlyGuideRepository) List(_ context.Context) ([]domain.MonthlyGuide, error) {
	return r.rows.list(nil), nil
}

func (r *MonthlyGuideRepository) Update(_ context.Context, guide *domain.MonthlyGuide) (bool, error) {
	return r.rows.update(guide), nil
}

func (r *MonthlyGuideRepository) Delete(_ context.Context, id int64) (bool, error) {
	return r.rows.delete(id), nil
}

type TelescopeTipRepository struct {
	rows *collection[domain.TelescopeTip]
}

func NewTelescopeTipRepository() repository.TelescopeTipRepository {
	return &TelescopeTipRepository{rows: newCollection(
		func(t *domain.TelescopeTip) int64 { return t.ID },
		func(t *domain.TelescopeTip, id int64) { t.ID = id },
		nil,
	)}
}

func (r *TelescopeTipRepository) Create(_ context.Context, tip *domain.TelescopeTip) (int64, error) {
	return r.rows.create(tip), nil
}

func (r *TelescopeTipRepository) Get(_ context.Context, id int64) (*domain.TelescopeTip, error) {
	tip, _ := r.rows.get(id)
	return tip, nil
}

func (r *TelescopeTipRepository) List(_ context.Context) ([]domain.TelescopeTip, error) {
	return r.rows.list(nil), nil
}

func (r *TelescopeTipRepository) ListByCategory(_ context.Context, category string) ([]domain.TelescopeTip, error) {
	return r.rows.list(func(t *domain.TelescopeTip) bool { return t.Category == category }), nil
}

func (r *TelescopeTipRepository) Update(_ context.Context, tip *domain.TelescopeTip) (bool, error) {
	return r.rows.update(tip), nil
}

func (r *TelescopeTipRepository) Delete(_ context.Context, id int64) (bool, error) {
	return r.rows.delete(id), nil
}

type UserRepository struct {
	rows *collection[domain.User]
}

func NewUserRepository() repository.UserRepository {
	return &UserRepository{rows: newCollection(
		func(u *domain.User) int64 { return u.ID },
		func(u *domain.User, id int64) { u.ID = id },
		nil,
	)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (int64, error) {
	return r.rows.create(user), nil
}

func (r *UserRepository) Get(_ context.Context, id int64) (*domain.User, error) {
	user, _ := r.rows.get(id)
	return user, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	matches := r.rows.list(func(u *domain.User) bool { return strings.EqualFold(u.Username, username) })
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	return r.rows.list(nil), nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) (bool, error) {
	return r.rows.update(user), nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) (bool, error) {
	return r.rows.delete(id), nil
}
