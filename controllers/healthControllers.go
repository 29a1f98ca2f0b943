package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency the health check probes.
type Pinger func(ctx context.Context) error

type HealthController struct {
	checks  map[string]Pinger
	version string
}

func NewHealthController(version string, checks map[string]Pinger) *HealthController {
	return &HealthController{checks: checks, version: version}
}

// Health reports 503 when any dependency is unreachable.
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	results := gin.H{}
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}
	c.JSON(status, gin.H{"version": h.version, "checks": results})
}
