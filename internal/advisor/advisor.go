package advisor

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"buybox/internal/config"
)

// Action is the recommended pricing move for the advised seller.
type Action string

const (
	ActionHold        Action = "HOLD"
	ActionMinorAdjust Action = "MINOR_ADJUST"
	ActionUndercut    Action = "UNDERCUT"
	ActionAggressive  Action = "AGGRESSIVE_PRICE"
	ActionWatch       Action = "WATCH"
)

type Risk string

const (
	RiskLow    Risk = "LOW"
	RiskMedium Risk = "MEDIUM"
	RiskHigh   Risk = "HIGH"
)

type Fulfillment string

const (
	FulfillmentFBA Fulfillment = "FBA"
	FulfillmentFBM Fulfillment = "FBM"
)

// DefaultReferencePrice is the last-resort buybox price when the snapshot
// carries no usable price at all.
var DefaultReferencePrice = decimal.RequireFromString("29.99")

type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// OfferSnapshot is a point-in-time view of a product's competitive landscape,
// produced by the market aggregation layer. Zero prices mean "unknown".
type OfferSnapshot struct {
	BuyboxPrice decimal.Decimal `json:"buybox_price"`
	// WinnerPrice is the product page's buybox_winner price, used as a
	// fallback when the offer listing carried no buybox offer.
	WinnerPrice decimal.Decimal `json:"winner_price"`
	// ListPrice is the product's own listed price, the next fallback.
	ListPrice decimal.Decimal `json:"list_price"`

	PriceRange      *PriceRange `json:"price_range,omitempty"`
	CompetitorCount int         `json:"competitor_count"`
	PrimeOfferCount int         `json:"prime_offer_count"`
	FBAOfferCount   int         `json:"fba_offer_count"`

	CapturedAt time.Time `json:"captured_at,omitempty"`
}

// SellerMetrics describes the seller being advised.
type SellerMetrics struct {
	CurrentPrice decimal.Decimal `json:"current_price"`
	Fulfillment  Fulfillment     `json:"fulfillment"`
	// Rating is accepted for forward compatibility; the decision logic
	// does not read it yet (see the fixed Seller Rating factor).
	Rating float64 `json:"rating,omitempty"`
}

type Factor struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Weight string `json:"weight"`
}

type Alternative struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Risk  string          `json:"risk"`
	Note  string          `json:"note"`
}

// Strategy is one pricing recommendation. Immutable once produced.
type Strategy struct {
	Action              Action          `json:"action"`
	TargetPrice         decimal.Decimal `json:"target_price"`
	CurrentPrice        decimal.Decimal `json:"current_price"`
	PriceDelta          decimal.Decimal `json:"price_delta"`
	Confidence          int             `json:"confidence"`
	Reasoning           string          `json:"reasoning"`
	Risk                Risk            `json:"risk"`
	ExpectedCaptureTime string          `json:"expected_capture_time"`
	IsFBA               bool            `json:"is_fba"`
	Factors             []Factor        `json:"factors"`
	Alternatives        []Alternative   `json:"alternatives"`
	CreatedAt           time.Time       `json:"created_at"`
}

// FloatSource supplies the market-noise perturbation. *math/rand.Rand
// satisfies it; tests inject a fixed source to pin confidence.
type FloatSource interface {
	Float64() float64
}

type Advisor struct {
	cfg    config.AdvisorConfig
	rand   FloatSource
	logger *zap.Logger

	mu        sync.Mutex
	decisions []DecisionLogEntry
}

func New(cfg config.AdvisorConfig, src FloatSource, logger *zap.Logger) *Advisor {
	if cfg.MaxLogSize <= 0 {
		cfg.MaxLogSize = 50
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = 20
	}
	if src == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		// rand.Rand is not safe for concurrent use; Recommend runs on
		// request goroutines, so the default source takes a lock.
		src = &lockedSource{rand: rand.New(rand.NewSource(seed))}
	}
	return &Advisor{cfg: cfg, rand: src, logger: logger}
}

type lockedSource struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Float64()
}

// Recommend maps a market snapshot into one pricing recommendation and
// appends it to the decision log.
//
// In the default mode the function is total: every missing or zero price
// falls through the defaulting chain below and no input combination fails.
// That is a deliberate robustness-over-correctness tradeoff carried over
// from the dashboard this advisor grew out of, where a half-populated
// upstream response must never blank the page. With strict_validation on,
// negative or NaN inputs return *InvalidInputError instead.
func (a *Advisor) Recommend(snap OfferSnapshot, metrics SellerMetrics) (Strategy, error) {
	if a.cfg.StrictValidation {
		if err := validateInputs(snap, metrics); err != nil {
			return Strategy{}, err
		}
	}

	buybox := resolveBuyboxPrice(snap)
	minPrice := buybox
	if snap.PriceRange != nil && snap.PriceRange.Min.IsPositive() {
		minPrice = snap.PriceRange.Min
	}
	current := metrics.CurrentPrice
	if !current.IsPositive() {
		current = buybox
	}
	isFBA := metrics.Fulfillment == FulfillmentFBA

	base := a.baseConfidence(snap, isFBA)

	var (
		action Action
		target decimal.Decimal
		conf   int
		risk   Risk
	)
	switch {
	case current.LessThanOrEqual(minPrice) && isFBA:
		action = ActionHold
		target = current
		conf = clampRound(base+20, 75, 98)
		risk = RiskLow
	case current.LessThanOrEqual(buybox.Mul(ratio102)) && isFBA:
		action = ActionMinorAdjust
		target = buybox.Sub(oneCent)
		conf = clampRound(base+10, 70, 95)
		risk = RiskLow
	case current.GreaterThan(buybox) && isFBA:
		action = ActionUndercut
		target = buybox.Mul(ratio98)
		conf = clampRound(base, 60, 90)
		risk = RiskMedium
	case !isFBA && current.LessThanOrEqual(minPrice.Mul(ratio95)):
		action = ActionAggressive
		target = minPrice.Mul(ratio93)
		conf = clampRound(base-10, 45, 80)
		risk = RiskMedium
	default:
		action = ActionWatch
		target = buybox.Mul(ratio97)
		conf = clampRound(base-20, 35, 70)
		risk = RiskHigh
	}

	target = target.Round(2)
	strategy := Strategy{
		Action:              action,
		TargetPrice:         target,
		CurrentPrice:        current,
		PriceDelta:          current.Sub(target).Round(2),
		Confidence:          conf,
		Reasoning:           reasoningFor(action),
		Risk:                risk,
		ExpectedCaptureTime: estimateCaptureTime(conf, isFBA),
		IsFBA:               isFBA,
		Factors:             factorBreakdown(isFBA, current, buybox),
		Alternatives:        alternativesFor(buybox),
		CreatedAt:           time.Now().UTC(),
	}
	a.logDecision(strategy)
	if a.logger != nil {
		a.logger.Debug("strategy recommended",
			zap.String("action", string(action)),
			zap.String("target_price", target.StringFixed(2)),
			zap.Int("confidence", conf),
			zap.String("risk", string(risk)),
		)
	}
	return strategy, nil
}

var (
	oneCent  = decimal.RequireFromString("0.01")
	ratio102 = decimal.RequireFromString("1.02")
	ratio98  = decimal.RequireFromString("0.98")
	ratio97  = decimal.RequireFromString("0.97")
	ratio95  = decimal.RequireFromString("0.95")
	ratio93  = decimal.RequireFromString("0.93")
)

func resolveBuyboxPrice(snap OfferSnapshot) decimal.Decimal {
	switch {
	case snap.BuyboxPrice.IsPositive():
		return snap.BuyboxPrice
	case snap.WinnerPrice.IsPositive():
		return snap.WinnerPrice
	case snap.ListPrice.IsPositive():
		return snap.ListPrice
	case snap.PriceRange != nil && snap.PriceRange.Min.IsPositive():
		return snap.PriceRange.Min
	default:
		return DefaultReferencePrice
	}
}

// baseConfidence produces the pre-clamp score in roughly [0,100].
func (a *Advisor) baseConfidence(snap OfferSnapshot, isFBA bool) float64 {
	competitors := snap.CompetitorCount
	if competitors <= 0 {
		competitors = 1
	}
	spread := 5.0
	if snap.PriceRange != nil && snap.PriceRange.Min.IsPositive() {
		spread, _ = snap.PriceRange.Max.Sub(snap.PriceRange.Min).
			Div(snap.PriceRange.Min).
			Mul(decimal.NewFromInt(100)).
			Float64()
	}

	base := 50.0
	base += math.Max(0, 30-float64(competitors)*3)
	if isFBA {
		base += 15
	}
	if snap.PrimeOfferCount < 3 {
		base += 10
	}
	base -= math.Min(15, spread)
	base += a.rand.Float64()*16 - 8
	return base
}

func clampRound(x, lo, hi float64) int {
	return int(math.Round(math.Min(hi, math.Max(lo, x))))
}

func estimateCaptureTime(confidence int, isFBA bool) string {
	baseMinutes := 30.0
	if isFBA {
		baseMinutes = 10.0
	}
	multiplier := float64(100-confidence) / 10
	minutes := int(math.Round(baseMinutes * (1 + multiplier)))
	if minutes < 60 {
		return fmtMinutes(minutes)
	}
	return fmtHours(int(math.Round(float64(minutes) / 60)))
}
