package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buybox/internal/service"
)

// TrackerHandler exposes a manual sweep trigger so the dashboard can
// refresh tracked products without waiting for the cron schedule.
type TrackerHandler struct {
	Service *service.TrackerService
}

func (h *TrackerHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/tracker/sweep", h.sweep)
}

// @Summary Run a tracker sweep now
// @Tags tracker
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/tracker/sweep [post]
func (h *TrackerHandler) sweep(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusServiceUnavailable, "tracker not configured", nil)
		return
	}
	result, err := h.Service.Sweep(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}
