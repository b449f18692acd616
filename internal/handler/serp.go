package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"buybox/internal/client/serpwow"
	"buybox/internal/models"
	"buybox/internal/repository"
)

type SerpHandler struct {
	Client *serpwow.Client
	Repo   repository.Repository
	Logger *zap.Logger
}

func (h *SerpHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/serp")
	group.GET("/search", h.search)
	group.GET("/history", h.history)
}

// @Summary SERP search passthrough
// @Tags serp
// @Param q query string true "search query"
// @Param engine query string false "search engine (default google)"
// @Param location query string false "geographic location"
// @Param device query string false "desktop or mobile"
// @Param num query int false "result count"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/serp/search [get]
func (h *SerpHandler) search(c *gin.Context) {
	if h.Client == nil || !h.Client.Configured() {
		Error(c, http.StatusServiceUnavailable, "serpwow API key not configured", nil)
		return
	}
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		Error(c, http.StatusBadRequest, "missing query parameter: q", nil)
		return
	}
	params := serpwow.SearchParams{
		Query:        query,
		Engine:       c.Query("engine"),
		Location:     c.Query("location"),
		Device:       c.Query("device"),
		Num:          intQuery(c, "num", 0),
		SearchType:   c.Query("search_type"),
		GoogleDomain: c.Query("google_domain"),
		HL:           c.Query("hl"),
		GL:           c.Query("gl"),
		TimePeriod:   c.Query("time_period"),
		Safe:         c.Query("safe"),
		Page:         intQuery(c, "page", 0),
	}

	raw, err := h.Client.Search(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}

	if h.Repo != nil {
		recorded, _ := json.Marshal(gin.H{
			"engine":   params.Engine,
			"location": params.Location,
			"device":   params.Device,
		})
		record := &models.SearchRecord{
			SearchType: "serp",
			Query:      query,
			Params:     datatypes.JSON(recorded),
		}
		if err := h.Repo.InsertSearchRecord(c.Request.Context(), record); err != nil && h.Logger != nil {
			h.Logger.Warn("record search failed", zap.Error(err))
		}
	}
	Ok(c, raw, nil)
}

// @Summary Recent search history across all proxied endpoints
// @Tags serp
// @Param limit query int false "max rows (default 50)"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/serp/history [get]
func (h *SerpHandler) history(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListRecentSearchRecords(c.Request.Context(), intQuery(c, "limit", 50))
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
