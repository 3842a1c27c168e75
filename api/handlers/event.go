package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"example.com/gatherly/services/planning/internal/models"
	"example.com/gatherly/services/planning/internal/service"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	events    service.EventService
	lifecycle service.LifecycleService
	log       *logrus.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(events service.EventService, lifecycle service.LifecycleService, log *logrus.Logger) *EventHandler {
	return &EventHandler{
		events:    events,
		lifecycle: lifecycle,
		log:       log,
	}
}

// CreateEvent handles POST /api/v1/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.events.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvent handles GET /api/v1/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.events.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// transitionRequest is the body for POST /api/v1/events/:id/transition
type transitionRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
	Reason       string `json:"reason"`
}

// TransitionEvent handles POST /api/v1/events/:id/transition
func (h *EventHandler) TransitionEvent(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target := models.StatusFromString(req.TargetStatus)
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown target status: " + req.TargetStatus})
		return
	}

	event, err := h.lifecycle.TransitionTo(c.Request.Context(), c.Param("id"), target, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// ListAudit handles GET /api/v1/events/:id/audit
func (h *EventHandler) ListAudit(c *gin.Context) {
	entries, err := h.events.ListAudit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audit": entries})
}
