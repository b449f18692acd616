package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"buybox/internal/advisor"
	"buybox/internal/repository"
	"buybox/internal/service"
)

type AdvisorHandler struct {
	Advisor *advisor.Advisor
	Repo    repository.Repository
	Logger  *zap.Logger
}

func (h *AdvisorHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/advisor")
	group.POST("/recommend", h.recommend)
	group.GET("/decisions", h.recentDecisions)
	group.GET("/log", h.decisionLog)
}

type recommendRequest struct {
	ASIN     string                `json:"asin"`
	Snapshot advisor.OfferSnapshot `json:"snapshot"`
	Metrics  advisor.SellerMetrics `json:"metrics"`
}

// @Summary Recommend a pricing strategy for a market snapshot
// @Tags advisor
// @Accept json
// @Param body body handler.recommendRequest true "offer snapshot and seller metrics"
// @Success 200 {object} handler.apiResponse
// @Failure 422 {object} handler.apiResponse
// @Router /api/v1/advisor/recommend [post]
func (h *AdvisorHandler) recommend(c *gin.Context) {
	if h.Advisor == nil {
		Error(c, http.StatusInternalServerError, "advisor unavailable", nil)
		return
	}
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}

	strategy, err := h.Advisor.Recommend(req.Snapshot, req.Metrics)
	if err != nil {
		var invalid *advisor.InvalidInputError
		if errors.As(err, &invalid) {
			Error(c, http.StatusUnprocessableEntity, invalid.Error(), nil)
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	if h.Repo != nil {
		row := service.DecisionRow(strings.TrimSpace(req.ASIN), strategy)
		if err := h.Repo.InsertDecision(c.Request.Context(), row); err != nil && h.Logger != nil {
			h.Logger.Warn("persist decision failed", zap.Error(err))
		}
	}
	Ok(c, strategy, nil)
}

// @Summary Recent in-memory advisor decisions
// @Tags advisor
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/advisor/decisions [get]
func (h *AdvisorHandler) recentDecisions(c *gin.Context) {
	if h.Advisor == nil {
		Error(c, http.StatusInternalServerError, "advisor unavailable", nil)
		return
	}
	Ok(c, h.Advisor.RecentDecisions(), nil)
}

// @Summary Persisted decision log
// @Tags advisor
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Param asin query string false "filter by ASIN"
// @Param action query string false "filter by action"
// @Param since query string false "RFC3339 lower bound"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/advisor/log [get]
func (h *AdvisorHandler) decisionLog(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	params := repository.ListDecisionsParams{Limit: limit, Offset: offset}
	if asin := strings.TrimSpace(c.Query("asin")); asin != "" {
		params.ASIN = &asin
	}
	if action := strings.TrimSpace(c.Query("action")); action != "" {
		params.Action = &action
	}
	if since := strings.TrimSpace(c.Query("since")); since != "" {
		if parsed, err := time.Parse(time.RFC3339, since); err == nil {
			parsed = parsed.UTC()
			params.Since = &parsed
		}
	}

	items, err := h.Repo.ListDecisions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountDecisions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}
