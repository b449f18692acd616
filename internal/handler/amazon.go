package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"buybox/internal/advisor"
	"buybox/internal/client/rainforest"
	"buybox/internal/market"
	"buybox/internal/models"
	"buybox/internal/repository"
	"buybox/internal/service"
)

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("price must not be negative")
	}
	return price, nil
}

// AmazonHandler fronts the Rainforest product-data endpoints and the
// composite analyze flow the Buy Box panel drives.
type AmazonHandler struct {
	Client  *rainforest.Client
	Advisor *advisor.Advisor
	Repo    repository.Repository
	Logger  *zap.Logger

	DefaultDomain string
}

var asinPattern = regexp.MustCompile(`^[A-Z0-9]{10}$`)

func (h *AmazonHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/amazon")
	group.GET("/product", h.product)
	group.GET("/offers", h.offers)
	group.GET("/reviews", h.reviews)
	group.GET("/analyze", h.analyze)
}

func (h *AmazonHandler) requireASIN(c *gin.Context) (asin, domain string, ok bool) {
	if h.Client == nil || !h.Client.Configured() {
		Error(c, http.StatusServiceUnavailable, "rainforest API key not configured", nil)
		return "", "", false
	}
	asin = strings.ToUpper(strings.TrimSpace(c.Query("asin")))
	if !asinPattern.MatchString(asin) {
		Error(c, http.StatusBadRequest, "missing or invalid query parameter: asin", nil)
		return "", "", false
	}
	domain = strings.TrimSpace(c.Query("amazon_domain"))
	if domain == "" {
		domain = h.DefaultDomain
	}
	return asin, domain, true
}

func (h *AmazonHandler) recordSearch(c *gin.Context, searchType, asin, domain, summary string) {
	if h.Repo == nil {
		return
	}
	params, _ := json.Marshal(gin.H{"asin": asin, "amazon_domain": domain})
	record := &models.SearchRecord{
		SearchType:      searchType,
		Query:           asin,
		Params:          datatypes.JSON(params),
		ResponseSummary: summary,
	}
	if err := h.Repo.InsertSearchRecord(c.Request.Context(), record); err != nil && h.Logger != nil {
		h.Logger.Warn("record search failed", zap.String("type", searchType), zap.Error(err))
	}
}

// @Summary Product lookup by ASIN
// @Tags amazon
// @Param asin query string true "10-character ASIN"
// @Param amazon_domain query string false "marketplace domain"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/amazon/product [get]
func (h *AmazonHandler) product(c *gin.Context) {
	asin, domain, ok := h.requireASIN(c)
	if !ok {
		return
	}
	resp, err := h.Client.GetProduct(c.Request.Context(), asin, domain)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	h.recordSearch(c, "product", asin, domain, resp.Product.Title)
	Ok(c, resp, nil)
}

// @Summary Live offer listing by ASIN
// @Tags amazon
// @Param asin query string true "10-character ASIN"
// @Param amazon_domain query string false "marketplace domain"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/amazon/offers [get]
func (h *AmazonHandler) offers(c *gin.Context) {
	asin, domain, ok := h.requireASIN(c)
	if !ok {
		return
	}
	resp, err := h.Client.GetOffers(c.Request.Context(), asin, domain)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	h.recordSearch(c, "offers", asin, domain, fmt.Sprintf("%d offers", len(resp.Offers)))
	Ok(c, gin.H{
		"offers":      resp.Offers,
		"competition": market.Analyze(resp.Offers),
	}, nil)
}

// @Summary Product reviews by ASIN
// @Tags amazon
// @Param asin query string true "10-character ASIN"
// @Param amazon_domain query string false "marketplace domain"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/amazon/reviews [get]
func (h *AmazonHandler) reviews(c *gin.Context) {
	asin, domain, ok := h.requireASIN(c)
	if !ok {
		return
	}
	raw, err := h.Client.GetReviews(c.Request.Context(), asin, domain)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	h.recordSearch(c, "reviews", asin, domain, "")
	Ok(c, raw, nil)
}

// @Summary Full Buy Box analysis: product, competition, and strategy
// @Tags amazon
// @Param asin query string true "10-character ASIN"
// @Param amazon_domain query string false "marketplace domain"
// @Param current_price query number false "advised seller's current price"
// @Param fulfillment query string false "FBA or FBM (default FBA)"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/amazon/analyze [get]
func (h *AmazonHandler) analyze(c *gin.Context) {
	asin, domain, ok := h.requireASIN(c)
	if !ok {
		return
	}
	if h.Advisor == nil {
		Error(c, http.StatusInternalServerError, "advisor unavailable", nil)
		return
	}

	resp, err := h.Client.GetProduct(c.Request.Context(), asin, domain)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	offers := resp.Offers
	if len(offers) == 0 {
		offersResp, err := h.Client.GetOffers(c.Request.Context(), asin, domain)
		if err == nil {
			offers = offersResp.Offers
		}
	}

	comp := market.Analyze(offers)
	snapshot := comp.OfferSnapshot(&resp.Product)

	metrics := advisor.SellerMetrics{Fulfillment: advisor.FulfillmentFBA}
	if f := strings.ToUpper(strings.TrimSpace(c.Query("fulfillment"))); f == string(advisor.FulfillmentFBM) {
		metrics.Fulfillment = advisor.FulfillmentFBM
	}
	if raw := strings.TrimSpace(c.Query("current_price")); raw != "" {
		if price, err := parsePrice(raw); err == nil {
			metrics.CurrentPrice = price
		}
	}

	strategy, err := h.Advisor.Recommend(snapshot, metrics)
	if err != nil {
		Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	if h.Repo != nil {
		if err := h.Repo.InsertDecision(c.Request.Context(), service.DecisionRow(asin, strategy)); err != nil && h.Logger != nil {
			h.Logger.Warn("persist decision failed", zap.Error(err))
		}
	}
	h.recordSearch(c, "analyze", asin, domain, string(strategy.Action))

	Ok(c, gin.H{
		"product":     resp.Product,
		"competition": comp,
		"strategy":    strategy,
	}, nil)
}
