package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"

	"example.com/gatherly/services/planning/internal/metrics"
)

// HealthCheck handles GET /health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "planning",
	})
}

// Metrics handles GET /metrics
func Metrics(c *gin.Context) {
	snapshot := metrics.GetMetricsCollector().Snapshot()
	snapshot["goroutines"] = runtime.NumGoroutine()
	c.JSON(http.StatusOK, snapshot)
}
