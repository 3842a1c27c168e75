package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/gatherly/services/planning/internal/repository"
	"example.com/gatherly/services/planning/internal/rules"
	"example.com/gatherly/services/planning/internal/service"
)

// respondError maps domain errors onto HTTP status codes
func respondError(c *gin.Context, err error) {
	var violation *rules.Violation
	if errors.As(err, &violation) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": violation.Message,
			"rule":  violation.Rule,
		})
		return
	}

	var invalid *service.InvalidTransitionError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusConflict, gin.H{
			"error": invalid.Error(),
			"from":  invalid.From,
			"to":    invalid.To,
		})
		return
	}

	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if errors.Is(err, repository.ErrDuplicateKey) {
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
