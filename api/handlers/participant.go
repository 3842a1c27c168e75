package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"example.com/gatherly/services/planning/internal/service"
)

// ParticipantHandler handles invitation and RSVP HTTP requests
type ParticipantHandler struct {
	events service.EventService
	log    *logrus.Logger
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(events service.EventService, log *logrus.Logger) *ParticipantHandler {
	return &ParticipantHandler{events: events, log: log}
}

// inviteRequest is the body for POST /api/v1/events/:id/participants
type inviteRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// Invite handles POST /api/v1/events/:id/participants
func (h *ParticipantHandler) Invite(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.events.Invite(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// respondRequest is the body for PATCH /api/v1/events/:id/participants/:userID
type respondRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// Respond handles PATCH /api/v1/events/:id/participants/:userID
func (h *ParticipantHandler) Respond(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.events.Respond(c.Request.Context(), c.Param("id"), c.Param("userID"), *req.Accept)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// List handles GET /api/v1/events/:id/participants
func (h *ParticipantHandler) List(c *gin.Context) {
	participants, err := h.events.ListParticipants(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": participants})
}
