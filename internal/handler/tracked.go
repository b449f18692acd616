package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"buybox/internal/models"
	"buybox/internal/repository"
)

type TrackedHandler struct {
	Repo repository.Repository

	DefaultMarketplace string
}

func (h *TrackedHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/tracked")
	group.GET("", h.list)
	group.POST("", h.create)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.remove)
	group.GET("/:id/history", h.priceHistory)
}

type trackedRequest struct {
	ASIN         string   `json:"asin"`
	Marketplace  string   `json:"marketplace"`
	Title        string   `json:"title"`
	Notes        string   `json:"notes"`
	TargetPrice  *float64 `json:"target_price"`
	AlertEnabled *bool    `json:"alert_enabled"`
}

// @Summary List tracked products
// @Tags tracked
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/tracked [get]
func (h *TrackedHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListTrackedProducts(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary Track a product
// @Tags tracked
// @Accept json
// @Param body body handler.trackedRequest true "product to track"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/tracked [post]
func (h *TrackedHandler) create(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req trackedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	asin := strings.ToUpper(strings.TrimSpace(req.ASIN))
	if !asinPattern.MatchString(asin) {
		Error(c, http.StatusBadRequest, "missing or invalid asin", nil)
		return
	}
	marketplace := strings.TrimSpace(req.Marketplace)
	if marketplace == "" {
		marketplace = h.DefaultMarketplace
	}
	item := &models.TrackedProduct{
		ASIN:        asin,
		Marketplace: marketplace,
		Title:       strings.TrimSpace(req.Title),
		Notes:       req.Notes,
	}
	if req.TargetPrice != nil && *req.TargetPrice > 0 {
		price := decimal.NewFromFloat(*req.TargetPrice).Round(2)
		item.TargetPrice = &price
	}
	if req.AlertEnabled != nil {
		item.AlertEnabled = *req.AlertEnabled
	}
	if err := h.Repo.CreateTrackedProduct(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Update a tracked product
// @Tags tracked
// @Accept json
// @Param id path int true "tracked product id"
// @Param body body handler.trackedRequest true "fields to update"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/tracked/{id} [put]
func (h *TrackedHandler) update(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	existing, err := h.Repo.GetTrackedProductByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if existing == nil {
		Error(c, http.StatusNotFound, "tracked product not found", nil)
		return
	}
	var req trackedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	updates := map[string]any{}
	if strings.TrimSpace(req.Title) != "" {
		updates["title"] = strings.TrimSpace(req.Title)
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if req.TargetPrice != nil {
		updates["target_price"] = decimal.NewFromFloat(*req.TargetPrice).Round(2)
	}
	if req.AlertEnabled != nil {
		updates["alert_enabled"] = *req.AlertEnabled
	}
	if err := h.Repo.UpdateTrackedProduct(c.Request.Context(), id, updates); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"updated": true}, nil)
}

// @Summary Stop tracking a product
// @Tags tracked
// @Param id path int true "tracked product id"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/tracked/{id} [delete]
func (h *TrackedHandler) remove(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Repo.DeleteTrackedProduct(c.Request.Context(), id); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"deleted": true}, nil)
}

// @Summary Price history for a tracked product
// @Tags tracked
// @Param id path int true "tracked product id"
// @Param days query int false "lookback window in days (default 30)"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/tracked/{id}/history [get]
func (h *TrackedHandler) priceHistory(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	product, err := h.Repo.GetTrackedProductByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if product == nil {
		Error(c, http.StatusNotFound, "tracked product not found", nil)
		return
	}
	days := intQuery(c, "days", 30)
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	items, err := h.Repo.ListPricePointsByASIN(c.Request.Context(), product.ASIN, since, 0)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
