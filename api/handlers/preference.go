package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"example.com/gatherly/services/planning/internal/models"
	"example.com/gatherly/services/planning/internal/service"
)

// PreferenceHandler handles preference profile HTTP requests
type PreferenceHandler struct {
	preferences service.PreferenceService
	log         *logrus.Logger
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(preferences service.PreferenceService, log *logrus.Logger) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences, log: log}
}

// upsertPreferenceRequest is the body for PUT /api/v1/preferences/:userID
type upsertPreferenceRequest struct {
	CuisinePreferences  string   `json:"cuisine_preferences"`
	BudgetPerPerson     *float64 `json:"budget_per_person"`
	MaxDistanceKm       *float64 `json:"max_distance_km"`
	DietaryRestrictions string   `json:"dietary_restrictions"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
}

// Upsert handles PUT /api/v1/preferences/:userID
func (h *PreferenceHandler) Upsert(c *gin.Context) {
	var req upsertPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preference := &models.UserPreference{
		UserID:              c.Param("userID"),
		CuisinePreferences:  req.CuisinePreferences,
		BudgetPerPerson:     req.BudgetPerPerson,
		MaxDistanceKm:       req.MaxDistanceKm,
		DietaryRestrictions: req.DietaryRestrictions,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
	}

	saved, err := h.preferences.Upsert(c.Request.Context(), preference)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// Get handles GET /api/v1/preferences/:userID
func (h *PreferenceHandler) Get(c *gin.Context) {
	preference, err := h.preferences.Get(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, preference)
}

// Aggregate handles GET /api/v1/events/:id/preferences/aggregate
func (h *PreferenceHandler) Aggregate(c *gin.Context) {
	aggregated, err := h.preferences.Aggregate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, aggregated)
}
