package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	demoHourlyLimit     = 30
	demoDailyLimit      = 50
	personalHourlyLimit = 1000
	personalDailyLimit  = 10000
)

func (h *Handler) getAPOD(c *gin.Context) {
	record, err := h.apod.Fetch(c.Request.Context(), strings.TrimSpace(c.Query("date")))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *Handler) getAPODRange(c *gin.Context) {
	start := strings.TrimSpace(c.Query("start_date"))
	end := strings.TrimSpace(c.Query("end_date"))
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}

	records, err := h.apod.FetchRange(c.Request.Context(), start, end)
	if err != nil {
		writeError(c, err)
		return
	}
	if records == nil {
		c.JSON(http.StatusOK, []any{})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *Handler) getObjectImage(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	c.JSON(http.StatusOK, imageResultToResponse(h.images.Resolve(c.Request.Context(), name)))
}

func (h *Handler) getInfo(c *gin.Context) {
	info := NASAInfoResponse{
		UsingDemoKey: h.usingDemoKey,
		Limitations:  NASALimitsResponse{HourlyLimit: personalHourlyLimit, DailyLimit: personalDailyLimit},
		APIKeyInfo:   "Using custom NASA API key",
	}
	if h.usingDemoKey {
		info.Limitations = NASALimitsResponse{HourlyLimit: demoHourlyLimit, DailyLimit: demoDailyLimit}
		info.APIKeyInfo = "Get your free NASA API key at https://api.nasa.gov/"
	}

	c.JSON(http.StatusOK, InfoResponse{Version: Version, NASAAPI: info})
}
