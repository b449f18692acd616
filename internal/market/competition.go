package market

import (
	"time"

	"github.com/shopspring/decimal"

	"buybox/internal/advisor"
	"buybox/internal/client/rainforest"
)

// Competition is the aggregated view of a product's live offer listing,
// the shape the dashboard's competitor panel renders.
type Competition struct {
	Competitors int                 `json:"competitors"`
	PriceRange  *advisor.PriceRange `json:"price_range,omitempty"`
	PriceAvg    decimal.Decimal     `json:"price_avg"`

	BuyboxPrice  decimal.Decimal `json:"buybox_price"`
	BuyboxSeller string          `json:"buybox_seller"`

	PrimeOffers int `json:"prime_offers"`
	FBAOffers   int `json:"fba_offers"`
	FBMOffers   int `json:"fbm_offers"`

	// PriceToBeat is buybox minus one cent, or the lowest offer when the
	// buybox is suppressed.
	PriceToBeat decimal.Decimal `json:"price_to_beat"`
}

var oneCent = decimal.RequireFromString("0.01")

// Analyze folds an offer listing into a Competition. Offers without a
// price are counted but excluded from the price statistics.
func Analyze(offers []rainforest.Offer) Competition {
	comp := Competition{Competitors: len(offers)}
	if len(offers) == 0 {
		return comp
	}

	var (
		sum    decimal.Decimal
		priced int
		min    decimal.Decimal
		max    decimal.Decimal
	)
	for _, offer := range offers {
		if offer.IsPrime {
			comp.PrimeOffers++
		}
		if fulfillmentType(offer) == "FBA" {
			comp.FBAOffers++
		} else {
			comp.FBMOffers++
		}
		if offer.Price == nil || offer.Price.Value <= 0 {
			continue
		}
		price := decimal.NewFromFloat(offer.Price.Value)
		if priced == 0 || price.LessThan(min) {
			min = price
		}
		if priced == 0 || price.GreaterThan(max) {
			max = price
		}
		sum = sum.Add(price)
		priced++
		if offer.IsBuyboxWinner {
			comp.BuyboxPrice = price
			if offer.Seller != nil {
				comp.BuyboxSeller = offer.Seller.Name
			}
		}
	}
	if priced > 0 {
		comp.PriceRange = &advisor.PriceRange{Min: min, Max: max}
		comp.PriceAvg = sum.Div(decimal.NewFromInt(int64(priced))).Round(2)
	}
	switch {
	case comp.BuyboxPrice.IsPositive():
		comp.PriceToBeat = comp.BuyboxPrice.Sub(oneCent)
	case priced > 0:
		comp.PriceToBeat = min
	}
	return comp
}

// OfferSnapshot converts the aggregation into advisor input, carrying the
// product-page fallbacks for the buybox reference price.
func (c Competition) OfferSnapshot(product *rainforest.Product) advisor.OfferSnapshot {
	snap := advisor.OfferSnapshot{
		BuyboxPrice:     c.BuyboxPrice,
		PriceRange:      c.PriceRange,
		CompetitorCount: c.Competitors,
		PrimeOfferCount: c.PrimeOffers,
		FBAOfferCount:   c.FBAOffers,
		CapturedAt:      time.Now().UTC(),
	}
	if product != nil {
		if product.BuyboxWinner != nil && product.BuyboxWinner.Price != nil && product.BuyboxWinner.Price.Value > 0 {
			snap.WinnerPrice = decimal.NewFromFloat(product.BuyboxWinner.Price.Value)
		}
		if product.Price != nil && product.Price.Value > 0 {
			snap.ListPrice = decimal.NewFromFloat(product.Price.Value)
		}
	}
	return snap
}

// fulfillmentType mirrors the upstream convention: prime offers without an
// explicit fulfillment block are treated as FBA.
func fulfillmentType(offer rainforest.Offer) string {
	if offer.Fulfillment != nil && offer.Fulfillment.Type != "" {
		return offer.Fulfillment.Type
	}
	if offer.IsPrime {
		return "FBA"
	}
	return "FBM"
}
