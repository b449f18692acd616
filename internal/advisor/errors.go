package advisor

import (
	"fmt"
	"math"
)

// InvalidInputError is returned from Recommend when strict validation is
// enabled and an input is numerically nonsensical. In the default mode the
// same inputs are papered over by the defaulting chain instead.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

func validateInputs(snap OfferSnapshot, metrics SellerMetrics) error {
	if snap.BuyboxPrice.IsNegative() {
		return &InvalidInputError{Field: "buybox_price", Reason: "negative"}
	}
	if snap.WinnerPrice.IsNegative() {
		return &InvalidInputError{Field: "winner_price", Reason: "negative"}
	}
	if snap.ListPrice.IsNegative() {
		return &InvalidInputError{Field: "list_price", Reason: "negative"}
	}
	if snap.PriceRange != nil {
		if snap.PriceRange.Min.IsNegative() {
			return &InvalidInputError{Field: "price_range.min", Reason: "negative"}
		}
		if snap.PriceRange.Max.LessThan(snap.PriceRange.Min) {
			return &InvalidInputError{Field: "price_range.max", Reason: "below min"}
		}
	}
	if snap.CompetitorCount < 0 {
		return &InvalidInputError{Field: "competitor_count", Reason: "negative"}
	}
	if snap.PrimeOfferCount < 0 {
		return &InvalidInputError{Field: "prime_offer_count", Reason: "negative"}
	}
	if metrics.CurrentPrice.IsNegative() {
		return &InvalidInputError{Field: "current_price", Reason: "negative"}
	}
	if math.IsNaN(metrics.Rating) || metrics.Rating < 0 {
		return &InvalidInputError{Field: "rating", Reason: "negative or NaN"}
	}
	switch metrics.Fulfillment {
	case FulfillmentFBA, FulfillmentFBM, "":
	default:
		return &InvalidInputError{Field: "fulfillment", Reason: "unknown type"}
	}
	return nil
}
