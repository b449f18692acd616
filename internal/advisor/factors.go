package advisor

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Factor names and weights are fixed; the breakdown always has exactly
// these five entries in this order.
const (
	FactorPrice       = "Price Competitiveness"
	FactorFulfillment = "Fulfillment (FBA/FBM)"
	FactorRating      = "Seller Rating"
	FactorShipping    = "Shipping Speed"
	FactorInventory   = "Inventory Availability"
)

func factorBreakdown(isFBA bool, currentPrice, buyboxPrice decimal.Decimal) []Factor {
	priceScore := 100
	if currentPrice.IsPositive() {
		ratio, _ := buyboxPrice.Div(currentPrice).Mul(decimal.NewFromInt(100)).Float64()
		priceScore = int(math.Min(100, math.Round(ratio)))
	}
	fulfillmentScore := 60
	shippingScore := 70
	if isFBA {
		fulfillmentScore = 95
		shippingScore = 95
	}
	// Seller Rating (85) and Inventory Availability (90) are fixed: the
	// upstream feeds never carried per-seller rating or stock depth, so
	// these two sub-scores were never wired to real inputs. Kept constant
	// rather than silently inventing a formula.
	return []Factor{
		{Name: FactorPrice, Score: priceScore, Weight: "35%"},
		{Name: FactorFulfillment, Score: fulfillmentScore, Weight: "25%"},
		{Name: FactorRating, Score: 85, Weight: "20%"},
		{Name: FactorShipping, Score: shippingScore, Weight: "15%"},
		{Name: FactorInventory, Score: 90, Weight: "5%"},
	}
}

const (
	AlternativeConservative = "Conservative"
	AlternativeAggressive   = "Aggressive"
	AlternativeMatch        = "Match"
)

var (
	ratioConservative = decimal.RequireFromString("0.995")
	ratioAggressive   = decimal.RequireFromString("0.95")
)

func alternativesFor(buyboxPrice decimal.Decimal) []Alternative {
	return []Alternative{
		{
			Name:  AlternativeConservative,
			Price: buyboxPrice.Mul(ratioConservative).Round(2),
			Risk:  "Lower",
			Note:  "Lower win probability, higher margin",
		},
		{
			Name:  AlternativeAggressive,
			Price: buyboxPrice.Mul(ratioAggressive).Round(2),
			Risk:  "Higher",
			Note:  "Higher win probability, lower margin",
		},
		{
			Name:  AlternativeMatch,
			Price: buyboxPrice.Round(2),
			Risk:  "Moderate",
			Note:  "Relies on other factors (rating, FBA, etc.)",
		},
	}
}

// reasoningTemplates is exhaustive over Action; reasoningFor falls back to
// the WATCH text for anything unknown so the output string is never empty.
var reasoningTemplates = map[Action]string{
	ActionHold:        "Optimal position achieved. Price is lowest with FBA advantage.",
	ActionMinorAdjust: "Small price adjustment recommended. FBA status provides algorithm boost.",
	ActionUndercut:    "Undercut current winner by 2%. FBA fulfillment will help close the gap.",
	ActionAggressive:  "FBM seller needs aggressive pricing to compete. 7% undercut recommended.",
	ActionWatch:       "Market conditions uncertain. Recommend monitoring before action.",
}

func reasoningFor(action Action) string {
	if text, ok := reasoningTemplates[action]; ok {
		return text
	}
	return reasoningTemplates[ActionWatch]
}

func fmtMinutes(minutes int) string {
	return fmt.Sprintf("~%d minutes", minutes)
}

func fmtHours(hours int) string {
	return fmt.Sprintf("~%d hours", hours)
}
