package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skyguide/internal/domain"
)

func (h *Handler) listObservations(c *gin.Context) {
	views, err := h.observations.List(c.Request.Context(), callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]ObservationResponse, len(views))
	for i := range views {
		resp[i] = observationViewToResponse(views[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createObservation(c *gin.Context) {
	var req createObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	obs, err := h.observations.Create(c.Request.Context(), callerID(c), domain.Observation{
		ObjectID:         req.ObjectID,
		IsObserved:       req.IsObserved,
		ObservationNotes: req.ObservationNotes,
		PlannedDate:      req.PlannedDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, observationToResponse(*obs))
}

func (h *Handler) updateObservation(c *gin.Context) {
	id, ok := parseID(c, "observation")
	if !ok {
		return
	}

	var req updateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	obs, err := h.observations.Update(c.Request.Context(), callerID(c), id, req.toPatch())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, observationToResponse(*obs))
}

func (h *Handler) deleteObservation(c *gin.Context) {
	id, ok := parseID(c, "observation")
	if !ok {
		return
	}

	if err := h.observations.Delete(c.Request.Context(), callerID(c), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
