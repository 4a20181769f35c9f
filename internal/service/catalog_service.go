package service

import (
	"context"
	"strings"
	"time"

	"skyguide/internal/domain"
	"skyguide/internal/repository"
)

// PlaceholderImageURL is shown for custom objects created without an image.
const PlaceholderImageURL = "https://images.unsplash.com/photo-1462331940025-496dfbfc7564?auto=format&fit=crop&w=800&h=500"

const (
	defaultVisibilityRating = "Custom"
	defaultInformation      = "Custom celestial object"
	notSpecified            = "Not specified"
)

// GuideQuery selects a monthly guide. Zero values fall back to the current month and year
// and the northern hemisphere.
type GuideQuery struct {
	Month      string
	Year       int
	Hemisphere string
}

// CatalogService serves the read-mostly reference content.
type CatalogService interface {
	ListObjects(ctx context.Context, filter ObjectFilter) ([]domain.CelestialObject, error)
	GetObject(ctx context.Context, id int64) (*domain.CelestialObject, error)
	CreateObject(ctx context.Context, obj domain.CelestialObject) (*domain.CelestialObject, error)
	ObjectTypes() []domain.ObjectType
	MonthlyGuide(ctx context.Context, q GuideQuery) (*domain.MonthlyGuide, error)
	CreateGuide(ctx context.Context, guide domain.MonthlyGuide) (*domain.MonthlyGuide, error)
	ListTips(ctx context.Context, category string) ([]domain.TelescopeTip, error)
}

type catalogService struct {
	store *repository.Store
	now   func() time.Time
}

func NewCatalogService(store *repository.Store) CatalogService {
	return newCatalogService(store, time.Now)
}

func newCatalogService(store *repository.Store, now func() time.Time) *catalogService {
	return &catalogService{store: store, now: now}
}

func (s *catalogService) ListObjects(ctx context.Context, filter ObjectFilter) ([]domain.CelestialObject, error) {
	objects, err := s.store.Objects.List(ctx)
	if err != nil {
		return nil, err
	}
	filter.Month = CanonicalMonth(filter.Month)
	return FilterObjects(objects, filter), nil
}

func (s *catalogService) GetObject(ctx context.Context, id int64) (*domain.CelestialObject, error) {
	obj, err := s.store.Objects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, domain.NewNotFoundError("celestial object", id)
	}
	return obj, nil
}

func (s *catalogService) CreateObject(ctx context.Context, obj domain.CelestialObject) (*domain.CelestialObject, error) {
	obj.Name = strings.TrimSpace(obj.Name)
	if obj.Name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	if strings.TrimSpace(obj.Description) == "" {
		return nil, domain.NewValidationError("description", "is required")
	}
	if strings.TrimSpace(obj.Coordinates) == "" {
		return nil, domain.NewValidationError("coordinates", "is required")
	}
	if !obj.Type.Valid() {
		return nil, domain.NewValidationError("type", "must be one of planet, galaxy, nebula, star_cluster, double_star, moon, other")
	}

	obj.Month = CanonicalMonth(obj.Month)
	withDefault(&obj.VisibilityRating, defaultVisibilityRating)
	withDefault(&obj.Information, defaultInformation)
	withDefault(&obj.ImageURL, PlaceholderImageURL)
	withDefault(&obj.Constellation, notSpecified)
	withDefault(&obj.Magnitude, notSpecified)
	withDefault(&obj.RecommendedEyepiece, notSpecified)

	obj.ID = 0
	if _, err := s.store.Objects.Create(ctx, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

func withDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}

func (s *catalogService) ObjectTypes() []domain.ObjectType {
	out := make([]domain.ObjectType, len(domain.ObjectTypes))
	copy(out, domain.ObjectTypes)
	return out
}

func (s *catalogService) MonthlyGuide(ctx context.Context, q GuideQuery) (*domain.MonthlyGuide, error) {
	now := s.now()
	month := CanonicalMonth(q.Month)
	if month == "" {
		month = now.Month().String()
	}
	year := q.Year
	if year == 0 {
		year = now.Year()
	}
	hemisphere := strings.TrimSpace(q.Hemisphere)
	if hemisphere == "" {
		hemisphere = domain.HemisphereNorthern
	}

	guides, err := s.store.Guides.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range guides {
		g := guides[i]
		if g.Month == month && g.Year == year && (g.Hemisphere == hemisphere || g.Hemisphere == domain.HemisphereBoth) {
			return &g, nil
		}
	}
	return nil, domain.NewNotFoundError("monthly guide", nil)
}

func (s *catalogService) CreateGuide(ctx context.Context, guide domain.MonthlyGuide) (*domain.MonthlyGuide, error) {
	if !domain.ValidGuideHemisphere(guide.Hemisphere) {
		return nil, domain.NewValidationError("hemisphere", "must be Northern, Southern or both")
	}
	guide.Month = CanonicalMonth(guide.Month)
	if guide.Month == "" {
		return nil, domain.NewValidationError("month", "is required")
	}
	guide.ID = 0
	if _, err := s.store.Guides.Create(ctx, &guide); err != nil {
		return nil, err
	}
	return &guide, nil
}

func (s *catalogService) ListTips(ctx context.Context, category string) ([]domain.TelescopeTip, error) {
	if category == "" {
		return s.store.Tips.List(ctx)
	}
	return s.store.Tips.ListByCategory(ctx, category)
}
