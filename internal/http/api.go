package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"skyguide/internal/apod"
	"skyguide/internal/domain"
	"skyguide/internal/service"
)

// Version is reported by /api/info.
const Version = "1.0.0"

// ImageResolver finds a picture for a free-text object name.
type ImageResolver interface {
	Resolve(ctx context.Context, name string) domain.ImageResult
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	catalog      service.CatalogService
	observations service.ObservationService
	users        service.UserService
	apod         apod.Fetcher
	images       ImageResolver
	usingDemoKey bool
	demoUserID   int64
	log          *logrus.Logger
}

func NewHandler(
	catalog service.CatalogService,
	observations service.ObservationService,
	users service.UserService,
	fetcher apod.Fetcher,
	images ImageResolver,
	usingDemoKey bool,
	demoUserID int64,
	log *logrus.Logger,
) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{
		catalog:      catalog,
		observations: observations,
		users:        users,
		apod:         fetcher,
		images:       images,
		usingDemoKey: usingDemoKey,
		demoUserID:   demoUserID,
		log:          log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.log), recoveryLogger(h.log), corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/apod", h.getAPOD)
		api.GET("/apod/range", h.getAPODRange)
		api.GET("/celestial-objects", h.listObjects)
		api.POST("/celestial-objects", h.createObject)
		api.GET("/celestial-objects/:id", h.getObject)
		api.GET("/celestial-object-types", h.listObjectTypes)
		api.GET("/monthly-guide", h.getMonthlyGuide)
		api.POST("/monthly-guide", h.createMonthlyGuide)
		api.GET("/telescope-tips", h.listTips)
		api.GET("/object-image", h.getObjectImage)
		api.GET("/info", h.getInfo)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		caller := api.Group("", callerIdentity(h.demoUserID))
		caller.GET("/users/me", h.getCurrentUser)
		caller.GET("/observations", h.listObservations)
		caller.POST("/observations", h.createObservation)
		caller.PATCH("/observations/:id", h.updateObservation)
		caller.DELETE("/observations/:id", h.deleteObservation)
	}
}

func (h *Handler) listObjects(c *gin.Context) {
	objects, err := h.catalog.ListObjects(c.Request.Context(), service.ObjectFilter{
		Type:       strings.TrimSpace(c.Query("type")),
		Month:      c.Query("month"),
		Hemisphere: strings.TrimSpace(c.Query("hemisphere")),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]CelestialObjectResponse, len(objects))
	for i := range objects {
		resp[i] = objectToResponse(objects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getObject(c *gin.Context) {
	id, ok := parseID(c, "celestial object")
	if !ok {
		return
	}

	obj, err := h.catalog.GetObject(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, objectToResponse(*obj))
}

func (h *Handler) createObject(c *gin.Context) {
	var req createObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	obj, err := h.catalog.CreateObject(c.Request.Context(), req.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, objectToResponse(*obj))
}

func (h *Handler) listObjectTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.ObjectTypes())
}

func (h *Handler) getMonthlyGuide(c *gin.Context) {
	q := service.GuideQuery{
		Month:      c.Query("month"),
		Hemisphere: c.Query("hemisphere"),
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		q.Year = year
	}

	guide, err := h.catalog.MonthlyGuide(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, guideToResponse(*guide))
}

func (h *Handler) createMonthlyGuide(c *gin.Context) {
	var req createGuideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guide, err := h.catalog.CreateGuide(c.Request.Context(), req.toDomain())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, guideToResponse(*guide))
}

func (h *Handler) listTips(c *gin.Context) {
	tips, err := h.catalog.ListTips(c.Request.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]TelescopeTipResponse, len(tips))
	for i := range tips {
		resp[i] = tipToResponse(tips[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getCurrentUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}

func parseID(c *gin.Context, resource string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + resource + " id"})
		return 0, false
	}
	return id, true
}
