package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"buybox/internal/advisor"
	"buybox/internal/client/rainforest"
	"buybox/internal/config"
	"buybox/internal/market"
	"buybox/internal/models"
	"buybox/internal/repository"
)

// TrackerService sweeps the tracked ASIN list: it refreshes the offer
// listing for each product, records a price point, and for alert-enabled
// products runs the advisor and persists the decision.
type TrackerService struct {
	Repo       repository.Repository
	Rainforest *rainforest.Client
	Advisor    *advisor.Advisor
	Logger     *zap.Logger
	Config     config.TrackerConfig
}

type SweepResult struct {
	Products    int `json:"products"`
	PricePoints int `json:"price_points"`
	Decisions   int `json:"decisions"`
	Errors      int `json:"errors"`
}

func (s *TrackerService) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult
	if s == nil || s.Repo == nil || s.Rainforest == nil {
		return result, nil
	}
	if !s.Rainforest.Configured() {
		if s.Logger != nil {
			s.Logger.Debug("tracker sweep skipped: rainforest key not configured")
		}
		return result, nil
	}

	products, err := s.Repo.ListTrackedProducts(ctx)
	if err != nil {
		return result, err
	}
	result.Products = len(products)

	for _, product := range products {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if err := s.sweepOne(ctx, product, &result); err != nil {
			result.Errors++
			if s.Logger != nil {
				s.Logger.Warn("tracker sweep product failed",
					zap.String("asin", product.ASIN),
					zap.Error(err),
				)
			}
		}
	}
	return result, nil
}

func (s *TrackerService) sweepOne(ctx context.Context, product models.TrackedProduct, result *SweepResult) error {
	marketplace := product.Marketplace
	if marketplace == "" {
		marketplace = s.Config.Marketplace
	}

	offers, err := s.Rainforest.GetOffers(ctx, product.ASIN, marketplace)
	if err != nil {
		return err
	}
	comp := market.Analyze(offers.Offers)

	observed := comp.BuyboxPrice
	if !observed.IsPositive() && comp.PriceRange != nil {
		observed = comp.PriceRange.Min
	}
	if observed.IsPositive() {
		point := &models.PricePoint{
			ASIN:         product.ASIN,
			Marketplace:  marketplace,
			Price:        observed,
			BuyboxSeller: comp.BuyboxSeller,
			BuyboxPrice:  comp.BuyboxPrice,
		}
		if err := s.Repo.InsertPricePoint(ctx, point); err != nil {
			return err
		}
		result.PricePoints++
	}

	if s.Config.AdviseOnSweep && product.AlertEnabled && s.Advisor != nil {
		metrics := advisor.SellerMetrics{Fulfillment: advisor.FulfillmentFBA}
		if product.TargetPrice != nil {
			metrics.CurrentPrice = *product.TargetPrice
		}
		strategy, err := s.Advisor.Recommend(comp.OfferSnapshot(nil), metrics)
		if err != nil {
			return err
		}
		if err := s.Repo.InsertDecision(ctx, DecisionRow(product.ASIN, strategy)); err != nil {
			return err
		}
		result.Decisions++
		if s.Logger != nil {
			s.Logger.Info("tracked product advised",
				zap.String("asin", product.ASIN),
				zap.String("action", string(strategy.Action)),
				zap.String("target_price", strategy.TargetPrice.StringFixed(2)),
				zap.Int("confidence", strategy.Confidence),
			)
		}
	}

	return s.Repo.TouchTrackedProductChecked(ctx, product.ID, time.Now().UTC())
}

// DecisionRow flattens a strategy into its persisted form.
func DecisionRow(asin string, strategy advisor.Strategy) *models.Decision {
	factors, _ := json.Marshal(strategy.Factors)
	alternatives, _ := json.Marshal(strategy.Alternatives)
	return &models.Decision{
		ASIN:                asin,
		Action:              string(strategy.Action),
		TargetPrice:         strategy.TargetPrice,
		CurrentPrice:        strategy.CurrentPrice,
		PriceDelta:          strategy.PriceDelta,
		Confidence:          strategy.Confidence,
		Risk:                string(strategy.Risk),
		Reasoning:           strategy.Reasoning,
		ExpectedCaptureTime: strategy.ExpectedCaptureTime,
		IsFBA:               strategy.IsFBA,
		Factors:             datatypes.JSON(factors),
		Alternatives:        datatypes.JSON(alternatives),
	}
}
