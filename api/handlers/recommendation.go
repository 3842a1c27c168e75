package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"example.com/gatherly/services/planning/internal/models"
	"example.com/gatherly/services/planning/internal/service"
)

// RecommendationHandler handles venue recommendation HTTP requests
type RecommendationHandler struct {
	recommendations service.RecommendationService
	preferences     service.PreferenceService
	log             *logrus.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(
	recommendations service.RecommendationService,
	preferences service.PreferenceService,
	log *logrus.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		preferences:     preferences,
		log:             log,
	}
}

// generateRequest is the body for POST /api/v1/events/:id/recommendations
type generateRequest struct {
	SearchLocation *models.Coordinate `json:"search_location"`
}

// Generate handles POST /api/v1/events/:id/recommendations. The consensus
// profile is aggregated fresh for each run.
func (h *RecommendationHandler) Generate(c *gin.Context) {
	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	eventID := c.Param("id")
	aggregated, err := h.preferences.Aggregate(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	options, err := h.recommendations.Generate(c.Request.Context(), eventID, aggregated, req.SearchLocation)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"recommendations": options,
		"preferences":     aggregated,
	})
}

// List handles GET /api/v1/events/:id/recommendations
func (h *RecommendationHandler) List(c *gin.Context) {
	options, err := h.recommendations.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": options})
}
