package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyguide/internal/apod"
	"skyguide/internal/domain"
	"skyguide/internal/repository/memory"
	"skyguide/internal/service"
)

type fakeFetcher struct {
	record  *domain.APOD
	records []domain.APOD
	err     error
}

func (f *fakeFetcher) Fetch(context.Context, string) (*domain.APOD, error) {
	return f.record, f.err
}

func (f *fakeFetcher) FetchRange(context.Context, string, string) ([]domain.APOD, error) {
	return f.records, f.err
}

type fakeResolver struct {
	result domain.ImageResult
}

func (f fakeResolver) Resolve(_ context.Context, name string) domain.ImageResult {
	res := f.result
	res.ObjectName = name
	return res
}

type testServer struct {
	router  *gin.Engine
	fetcher *fakeFetcher
}

func newTestServer(t *testing.T, images ImageResolver, usingDemoKey bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, service.Seed(ctx, store))

	users := service.NewUserService(store.Users)
	_, err := users.EnsureDemoUser(ctx, service.DemoUser{Username: "demo", Email: "demo@example.com", Password: "secret"})
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	fetcher := &fakeFetcher{}
	if images == nil {
		images = fakeResolver{}
	}
	handler := NewHandler(
		service.NewCatalogService(store),
		service.NewObservationService(store),
		users,
		fetcher,
		images,
		usingDemoKey,
		1,
		log,
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return &testServer{router: router, fetcher: fetcher}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestCreateObjectThenGet(t *testing.T) {
	srv := newTestServer(t, nil, true)

	rec := srv.do(t, http.MethodPost, "/api/celestial-objects", map[string]string{
		"name":        "Test",
		"type":        "planet",
		"description": "d",
		"coordinates": "c",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[CelestialObjectResponse](t, rec)

	assert.Equal(t, int64(6), created.ID)
	assert.Equal(t, "Custom", created.VisibilityRating)
	assert.Equal(t, "Custom celestial object", created.Information)
	assert.Equal(t, service.PlaceholderImageURL, created.ImageURL)
	assert.Equal(t, "Not specified", created.Constellation)
	assert.Equal(t, "Not specified", created.Magnitude)
	assert.Equal(t, "Not specified", created.RecommendedEyepiece)
	assert.Nil(t, created.Month)

	rec = srv.do(t, http.MethodGet, "/api/celestial-objects/"+strconv.FormatInt(created.ID, 10), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[CelestialObjectResponse](t, rec))
}

func TestCreatedObjectMatchesMonthFilter(t *testing.T) {
	srv := newTestServer(t, nil, true)

	rec := srv.do(t, http.MethodPost, "/api/celestial-objects", map[string]string{
		"name":        "Regulus",
		"type":        "other",
		"description": "d",
		"coordinates": "c",
		"month":       "april",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[CelestialObjectResponse](t, rec)
	require.NotNil(t, created.Month)
	assert.Equal(t, "April", *created.Month)

	for _, month := range []string{"april", "April", "APRIL"} {
		rec = srv.do(t, http.MethodGet, "/api/celestial-objects?type=other&month="+month, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var names []string
		for _, obj := range decode[[]CelestialObjectResponse](t, rec) {
			names = append(names, obj.Name)
		}
		assert.Contains(t, names, "Regulus", month)
	}
}

func TestCreateObjectValidationErrors(t *testing.T) {
	srv := newTestServer(t, nil, true)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"type": "planet", "description": "d", "coordinates": "c"}},
		{"unknown type", map[string]string{"name": "X", "type": "comet", "description": "d", "coordinates": "c"}},
		{"missing coordinates", map[string]string{"name": "X", "type": "planet", "description": "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/api/celestial-objects", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}
}

func TestGetObjectErrors(t *testing.T) {
	srv := newTestServer(t, nil, true)

	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, "/api/celestial-objects/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/api/celestial-objects/abc", nil).Code)
}

func TestListObjectsWithFilters(t *testing.T) {
	srv := newTestServer(t, nil, true)

	rec := srv.do(t, http.MethodGet, "/api/celestial-objects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]CelestialObjectResponse](t, rec), 5)

	rec = srv.do(t, http.MethodGet, "/api/celestial-objects?type=planet&month=april", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	planets := decode[[]CelestialObjectResponse](t, rec)
	require.Len(t, planets, 2)
	assert.Equal(t, "Jupiter", planets[0].Name)
	assert.Equal(t, "Saturn", planets[1].Name)

	rec = srv.do(t, http.MethodGet, "/api/celestial-objects?hemisphere=Southern", nil)
	for _, obj := range decode[[]CelestialObjectResponse](t, rec) {
		assert.NotEqual(t, "Andromeda Galaxy (M31)", obj.Name)
	}

	rec = srv.do(t, http.MethodGet, "/api/celestial-objects?hemisphere=BOTH", nil)
	assert.Len(t, decode[[]CelestialObjectResponse](t, rec), 5)
}

func TestObjectTypes(t *testing.T) {
	srv := newTestServer(t, nil, true)

	rec := srv.do(t, http.MethodGet, "/api/celestial-object-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		[]string{"planet", "galaxy", "nebula", "star_cluster", "double_star", "moon", "other"},
		decode[[]string](t, rec))
}

func TestMonthlyGuide(t *testing.T) {
	srv := newTestServer(t, nil, true)

	rec := srv.do(t, http.MethodGet, "/api/monthly-guide?month=April&year=2025&hemisphere=Southern", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	guide := decode[MonthlyGuideResponse](t, rec)
	assert.Equal(t, "Southern", guide.Hemisphere)
	assert.Equal(t, 2025, guide.Year)

	rec = srv.do(t, http.MethodGet, "/api/monthly-guide?month=april&year=2025", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Northern", decode[MonthlyGuideResponse](t, rec).Hemisphere)

	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, "/api/monthly-guide?month=May&year=2025", nil).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/api/monthly-guide?year=soon", nil).Code)
}

func TestCreateMonthlyGuide(t *testing.T) {
	srv := newTestServer(t, nil, true)

	rec := srv.do(t, http.MethodPost, "/api/monthly-guide", map[string]any{
		"month":           "may",
		"year":            2025,
		"headline":        "May 2025",
		"hemisphere":      "both",
		"featuredObjects": []int64{1, 2},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "May", decode[MonthlyGuideResponse](t, rec).Month)

	rec = srv.do(t, http.MethodGet, "/api/monthly-guide?month=May&year=2025&hemisphere=Southern", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{1, 2}, decode[MonthlyGuideResponse](t, rec).FeaturedObjects)

	rec = srv.do(t, http.MethodPost, "/api/monthly-guide", map[string]any{
		"month": "May", "year": 2025, "headline": "h", "hemisphere": "Eastern",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTelescopeTips(t *testing.T) {
	srv := newTestServer(t, nil, true)

	rec := srv.do(t, http.MethodGet, "/api/telescope-tips", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]TelescopeTipResponse](t, rec), 3)

	rec = srv.do(t, http.MethodGet, "/api/telescope-tips?category=observing", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tips := decode[[]TelescopeTipResponse](t, rec)
	require.Len(t, tips, 2)
	for _, tip := range tips {
		assert.Equal(t, "observing", tip.Category)
	}
}

func TestObservationLifecycle(t *testing.T) {
	srv := newTestServer(t, nil, true)

	rec := srv.do(t, http.MethodPost, "/api/observations", map[string]any{
		"objectId":         1,
		"observationNotes": "bring the 25mm",
		"plannedDate":      "2025-04-20",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[ObservationResponse](t, rec)
	assert.Equal(t, int64(1), created.UserID)
	assert.False(t, created.IsObserved)
	assert.NotEmpty(t, created.DateAdded)

	path := "/api/observations/" + strconv.FormatInt(created.ID, 10)

	rec = srv.do(t, http.MethodPatch, path, map[string]any{"isObserved": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[ObservationResponse](t, rec)
	assert.True(t, updated.IsObserved)
	require.NotNil(t, updated.ObservationNotes)
	assert.Equal(t, "bring the 25mm", *updated.ObservationNotes)
	require.NotNil(t, updated.PlannedDate)
	assert.Equal(t, "2025-04-20", *updated.PlannedDate)

	rec = srv.do(t, http.MethodGet, "/api/observations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]ObservationResponse](t, rec)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].CelestialObject)
	assert.Equal(t, "Jupiter", list[0].CelestialObject.Name)

	rec = srv.do(t, http.MethodGet, "/api/observations", nil, userIDHeader, "2")
	assert.Empty(t, decode[[]ObservationResponse](t, rec))

	assert.Equal(t, http.StatusNoContent, srv.do(t, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodPatch, path, map[string]any{"isObserved": false}).Code)
}

func TestObservationForeignCaller(t *testing.T) {
	srv := newTestServer(t, nil, true)

	rec := srv.do(t, http.MethodPost, "/api/observations", map[string]any{"objectId": 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	path := "/api/observations/" + strconv.FormatInt(decode[ObservationResponse](t, rec).ID, 10)

	rec = srv.do(t, http.MethodPatch, path, map[string]any{"isObserved": true}, userIDHeader, "2")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "not authorized to update")

	rec = srv.do(t, http.MethodDelete, path, nil, userIDHeader, "2")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Equal(t, http.StatusNoContent, srv.do(t, http.MethodDelete, path, nil, userIDHeader, "1").Code)
}

func TestCreateObservationErrors(t *testing.T) {
	srv := newTestServer(t, nil, true)

	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodPost, "/api/observations", map[string]any{"objectId": 999}).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodPost, "/api/observations", map[string]any{}).Code)
}

func TestCurrentUser(t *testing.T) {
	srv := newTestServer(t, nil, true)

	rec := srv.do(t, http.MethodGet, "/api/users/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	user := decode[UserResponse](t, rec)
	assert.Equal(t, "demo", user.Username)

	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, "/api/users/me", nil, userIDHeader, "42").Code)
}

func TestAPODErrors(t *testing.T) {
	srv := newTestServer(t, nil, true)

	srv.fetcher.err = &domain.UpstreamError{
		Service:    "NASA APOD",
		Kind:       domain.UpstreamRateLimited,
		StatusCode: http.StatusTooManyRequests,
		Message:    "NASA API rate limit exceeded. Please try again later or use a personal API key.",
	}
	rec := srv.do(t, http.MethodGet, "/api/apod", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "NASA API rate limit exceeded. Please try again later or use a personal API key.",
		decode[map[string]string](t, rec)["error"])

	srv.fetcher.err = apod.ErrNoMedia
	assert.Equal(t, http.StatusBadGateway, srv.do(t, http.MethodGet, "/api/apod?date=2024-01-05", nil).Code)

	srv.fetcher.err = domain.NewValidationError("end_date", "must not be before start_date")
	assert.Equal(t, http.StatusBadRequest,
		srv.do(t, http.MethodGet, "/api/apod/range?start_date=2024-02-01&end_date=2024-01-01", nil).Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/api/apod/range?start_date=2024-02-01", nil).Code)
}

func TestAPODSuccess(t *testing.T) {
	srv := newTestServer(t, nil, true)
	srv.fetcher.record = &domain.APOD{Date: "2024-01-05", Title: "Orion Deep", URL: "u", MediaType: "image", ServiceVersion: "v1"}

	rec := srv.do(t, http.MethodGet, "/api/apod?date=2024-01-05", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Orion Deep", body["title"])
	assert.Equal(t, "image", body["media_type"])
	assert.NotContains(t, body, "hdurl")

	rec = srv.do(t, http.MethodGet, "/api/apod/range?start_date=2024-01-01&end_date=2024-01-02", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestInfo(t *testing.T) {
	rec := newTestServer(t, nil, true).do(t, http.MethodGet, "/api/info", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[InfoResponse](t, rec)
	assert.Equal(t, "1.0.0", info.Version)
	assert.True(t, info.NASAAPI.UsingDemoKey)
	assert.Equal(t, 30, info.NASAAPI.Limitations.HourlyLimit)
	assert.Equal(t, 50, info.NASAAPI.Limitations.DailyLimit)

	rec = newTestServer(t, nil, false).do(t, http.MethodGet, "/api/info", nil)
	info = decode[InfoResponse](t, rec)
	assert.False(t, info.NASAAPI.UsingDemoKey)
	assert.Equal(t, 1000, info.NASAAPI.Limitations.HourlyLimit)
	assert.Equal(t, 10000, info.NASAAPI.Limitations.DailyLimit)
}

func TestObjectImage(t *testing.T) {
	srv := newTestServer(t, fakeResolver{result: domain.ImageResult{Error: "no image found for Xyzzy"}}, true)

	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/api/object-image", nil).Code)

	rec := srv.do(t, http.MethodGet, "/api/object-image?name=Xyzzy", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": false,
		"objectName": "Xyzzy",
		"imageUrl": null,
		"source": null,
		"error": "no image found for Xyzzy"
	}`, rec.Body.String())

	srv = newTestServer(t, fakeResolver{result: domain.ImageResult{
		Success:  true,
		ImageURL: "https://upload.wikimedia.org/m31.jpg",
		Source:   domain.ImageSourceWikipedia,
		Metadata: domain.ImageMetadata{Title: "Andromeda Galaxy"},
	}}, true)
	rec = srv.do(t, http.MethodGet, "/api/object-image?name=M31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[ImageResultResponse](t, rec)
	assert.True(t, res.Success)
	require.NotNil(t, res.ImageURL)
	assert.Equal(t, "https://upload.wikimedia.org/m31.jpg", *res.ImageURL)
	require.NotNil(t, res.Metadata)
	assert.Equal(t, "Andromeda Galaxy", res.Metadata.Title)
}

func TestRequestIDAndCORS(t *testing.T) {
	srv := newTestServer(t, nil, true)

	rec := srv.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = srv.do(t, http.MethodGet, "/api/health", nil, requestIDHeader, "abc-123")
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

	rec = srv.do(t, http.MethodOptions, "/api/observations", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	allowed := rec.Header().Get("Access-Control-Allow-Headers")
	assert.Contains(t, allowed, userIDHeader)
	assert.Contains(t, allowed, requestIDHeader)
}
