package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skyguide/internal/apod"
	"skyguide/internal/domain"
	"skyguide/internal/service"
)

type CelestialObjectResponse struct {
	ID                  int64             `json:"id"`
	Name                string            `json:"name"`
	Type                domain.ObjectType `json:"type"`
	Description         string            `json:"description"`
	Coordinates         string            `json:"coordinates"`
	Month               *string           `json:"month"`
	BestViewingTime     *string           `json:"bestViewingTime"`
	ImageURL            string            `json:"imageUrl"`
	VisibilityRating    string            `json:"visibilityRating"`
	Information         string            `json:"information"`
	Constellation       string            `json:"constellation"`
	Magnitude           string            `json:"magnitude"`
	Hemisphere          *string           `json:"hemisphere"`
	RecommendedEyepiece string            `json:"recommendedEyepiece"`
}

type ObservationResponse struct {
	ID               int64                    `json:"id"`
	UserID           int64                    `json:"userId"`
	ObjectID         int64                    `json:"objectId"`
	DateAdded        string                   `json:"dateAdded"`
	IsObserved       bool                     `json:"isObserved"`
	ObservationNotes *string                  `json:"observationNotes"`
	PlannedDate      *string                  `json:"plannedDate"`
	CelestialObject  *CelestialObjectResponse `json:"celestialObject,omitempty"`
}

type MonthlyGuideResponse struct {
	ID              int64   `json:"id"`
	Month           string  `json:"month"`
	Year            int     `json:"year"`
	Headline        string  `json:"headline"`
	Content         string  `json:"content"`
	Hemisphere      string  `json:"hemisphere"`
	FeaturedObjects []int64 `json:"featuredObjects"`
}

type TelescopeTipResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ImageMetadataResponse struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	DateCreated string `json:"dateCreated,omitempty"`
	Center      string `json:"center,omitempty"`
	AssetID     string `json:"assetId,omitempty"`
}

type ImageResultResponse struct {
	Success    bool                   `json:"success"`
	ObjectName string                 `json:"objectName"`
	ImageURL   *string                `json:"imageUrl"`
	Source     *string                `json:"source"`
	Metadata   *ImageMetadataResponse `json:"metadata,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

type NASALimitsResponse struct {
	HourlyLimit int `json:"hourly_limit"`
	DailyLimit  int `json:"daily_limit"`
}

type NASAInfoResponse struct {
	UsingDemoKey bool               `json:"using_demo_key"`
	Limitations  NASALimitsResponse `json:"limitations"`
	APIKeyInfo   string             `json:"api_key_info"`
}

type InfoResponse struct {
	Version string           `json:"version"`
	NASAAPI NASAInfoResponse `json:"nasa_api"`
}

type createObjectRequest struct {
	Name                string `json:"name"`
	Type                string `json:"type"`
	Description         string `json:"description"`
	Coordinates         string `json:"coordinates"`
	Month               string `json:"month"`
	BestViewingTime     string `json:"bestViewingTime"`
	ImageURL            string `json:"imageUrl"`
	VisibilityRating    string `json:"visibilityRating"`
	Information         string `json:"information"`
	Constellation       string `json:"constellation"`
	Magnitude           string `json:"magnitude"`
	Hemisphere          string `json:"hemisphere"`
	RecommendedEyepiece string `json:"recommendedEyepiece"`
}

func (r createObjectRequest) toDomain() domain.CelestialObject {
	return domain.CelestialObject{
		Name:                r.Name,
		Type:                domain.ObjectType(r.Type),
		Description:         r.Description,
		Coordinates:         r.Coordinates,
		Month:               r.Month,
		BestViewingTime:     r.BestViewingTime,
		ImageURL:            r.ImageURL,
		VisibilityRating:    r.VisibilityRating,
		Information:         r.Information,
		Constellation:       r.Constellation,
		Magnitude:           r.Magnitude,
		Hemisphere:          r.Hemisphere,
		RecommendedEyepiece: r.RecommendedEyepiece,
	}
}

type createGuideRequest struct {
	Month           string  `json:"month" binding:"required"`
	Year            int     `json:"year" binding:"required"`
	Headline        string  `json:"headline" binding:"required"`
	Content         string  `json:"content"`
	Hemisphere      string  `json:"hemisphere" binding:"required"`
	FeaturedObjects []int64 `json:"featuredObjects"`
}

func (r createGuideRequest) toDomain() domain.MonthlyGuide {
	return domain.MonthlyGuide{
		Month:           r.Month,
		Year:            r.Year,
		Headline:        r.Headline,
		Content:         r.Content,
		Hemisphere:      r.Hemisphere,
		FeaturedObjects: r.FeaturedObjects,
	}
}

type createObservationRequest struct {
	ObjectID         int64  `json:"objectId" binding:"required"`
	IsObserved       bool   `json:"isObserved"`
	ObservationNotes string `json:"observationNotes"`
	PlannedDate      string `json:"plannedDate"`
}

// updateObservationRequest leaves absent (or null) fields untouched.
type updateObservationRequest struct {
	IsObserved       *bool   `json:"isObserved"`
	ObservationNotes *string `json:"observationNotes"`
	PlannedDate      *string `json:"plannedDate"`
}

func (r updateObservationRequest) toPatch() domain.ObservationPatch {
	return domain.ObservationPatch{
		IsObserved:       r.IsObserved,
		ObservationNotes: r.ObservationNotes,
		PlannedDate:      r.PlannedDate,
	}
}

func objectToResponse(obj domain.CelestialObject) CelestialObjectResponse {
	return CelestialObjectResponse{
		ID:                  obj.ID,
		Name:                obj.Name,
		Type:                obj.Type,
		Description:         obj.Description,
		Coordinates:         obj.Coordinates,
		Month:               nullable(obj.Month),
		BestViewingTime:     nullable(obj.BestViewingTime),
		ImageURL:            obj.ImageURL,
		VisibilityRating:    obj.VisibilityRating,
		Information:         obj.Information,
		Constellation:       obj.Constellation,
		Magnitude:           obj.Magnitude,
		Hemisphere:          nullable(obj.Hemisphere),
		RecommendedEyepiece: obj.RecommendedEyepiece,
	}
}

func observationToResponse(obs domain.Observation) ObservationResponse {
	return ObservationResponse{
		ID:               obs.ID,
		UserID:           obs.UserID,
		ObjectID:         obs.ObjectID,
		DateAdded:        obs.DateAdded.UTC().Format(time.RFC3339),
		IsObserved:       obs.IsObserved,
		ObservationNotes: nullable(obs.ObservationNotes),
		PlannedDate:      nullable(obs.PlannedDate),
	}
}

func observationViewToResponse(view service.ObservationView) ObservationResponse {
	resp := observationToResponse(view.Observation)
	if view.Object != nil {
		obj := objectToResponse(*view.Object)
		resp.CelestialObject = &obj
	}
	return resp
}

func guideToResponse(g domain.MonthlyGuide) MonthlyGuideResponse {
	featured := g.FeaturedObjects
	if featured == nil {
		featured = []int64{}
	}
	return MonthlyGuideResponse{
		ID:              g.ID,
		Month:           g.Month,
		Year:            g.Year,
		Headline:        g.Headline,
		Content:         g.Content,
		Hemisphere:      g.Hemisphere,
		FeaturedObjects: featured,
	}
}

func tipToResponse(t domain.TelescopeTip) TelescopeTipResponse {
	return TelescopeTipResponse{
		ID:       t.ID,
		Title:    t.Title,
		Content:  t.Content,
		Category: t.Category,
		ImageURL: t.ImageURL,
	}
}

func userToResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

func imageResultToResponse(res domain.ImageResult) ImageResultResponse {
	resp := ImageResultResponse{
		Success:    res.Success,
		ObjectName: res.ObjectName,
		ImageURL:   nullable(res.ImageURL),
		Source:     nullable(string(res.Source)),
		Error:      res.Error,
	}
	if res.Success {
		resp.Metadata = &ImageMetadataResponse{
			Title:       res.Metadata.Title,
			Description: res.Metadata.Description,
			DateCreated: res.Metadata.DateCreated,
			Center:      res.Metadata.Center,
			AssetID:     res.Metadata.AssetID,
		}
	}
	return resp
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// writeError translates service and upstream errors into the {"error": ...} body.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var upstream *domain.UpstreamError
	switch {
	case errors.As(err, &upstream):
		msg := upstream.Message
		if msg == "" {
			msg = upstream.Error()
		}
		c.JSON(upstream.HTTPStatus(), gin.H{"error": msg})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apod.ErrNoMedia), errors.Is(err, apod.ErrScrape):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
