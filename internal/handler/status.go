package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Configurable reports whether an upstream client has a usable API key.
type Configurable interface {
	Configured() bool
}

type StatusHandler struct {
	Rainforest Configurable
	SerpWow    Configurable
	OpenRouter Configurable
}

func (h *StatusHandler) Register(r *gin.Engine) {
	r.GET("/api/status", h.status)
}

// @Summary Service status and upstream key availability
// @Tags status
// @Success 200 {object} handler.apiResponse
// @Router /api/status [get]
func (h *StatusHandler) status(c *gin.Context) {
	Ok(c, gin.H{
		"status": "online",
		"apis": gin.H{
			"rainforest": configured(h.Rainforest),
			"serpwow":    configured(h.SerpWow),
			"openrouter": configured(h.OpenRouter),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, nil)
}

func configured(c Configurable) bool {
	return c != nil && c.Configured()
}
