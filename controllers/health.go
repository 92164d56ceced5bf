package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barnaud18/AgriScienceCrop-API/storage"
)

type HealthController struct {
	store   storage.Storage
	version string
	started time.Time
}

func NewHealthController(store storage.Storage, version string) *HealthController {
	return &HealthController{store: store, version: version, started: time.Now()}
}

// Health reports liveness plus store reachability.
func (hc *HealthController) Health(c *gin.Context) {
	if err := hc.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"error":     err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(hc.started).Seconds(),
		"version":   hc.version,
	})
}
