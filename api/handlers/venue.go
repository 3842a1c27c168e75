package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"example.com/gatherly/services/planning/internal/models"
	"example.com/gatherly/services/planning/internal/repository"
)

// VenueHandler handles venue catalog HTTP requests
type VenueHandler struct {
	venues repository.VenueRepository
	log    *logrus.Logger
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(venues repository.VenueRepository, log *logrus.Logger) *VenueHandler {
	return &VenueHandler{venues: venues, log: log}
}

// createVenueRequest is the body for POST /api/v1/venues
type createVenueRequest struct {
	Name      string  `json:"name" binding:"required"`
	Category  string  `json:"category" binding:"required"`
	Rating    float64 `json:"rating"`
	PriceTier float64 `json:"price_tier"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	Verified  bool    `json:"verified"`
}

// Create handles POST /api/v1/venues
func (h *VenueHandler) Create(c *gin.Context) {
	var req createVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	venue := &models.Venue{
		Base:      models.Base{UUID: uuid.NewString()},
		Name:      req.Name,
		Category:  req.Category,
		Rating:    req.Rating,
		PriceTier: req.PriceTier,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
		Verified:  req.Verified,
	}

	created, err := h.venues.Create(c.Request.Context(), venue)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get handles GET /api/v1/venues/:id
func (h *VenueHandler) Get(c *gin.Context) {
	venue, err := h.venues.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, venue)
}

// Delete handles DELETE /api/v1/venues/:id
func (h *VenueHandler) Delete(c *gin.Context) {
	if err := h.venues.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
