// Package pricing computes booking amounts. Everything here is pure: safe to
// call repeatedly while the user changes duration or plan before committing.
package pricing

import (
	"errors"
	"math"

	"github.com/hanqt132-beep/kost-versi2/model"
)

// Amounts are rupiah, whole units. Promo discount applies from 3 months up.
const (
	AdminFee            int64 = 5000
	ServiceFee          int64 = 2500 // waived for pay-on-location
	DefaultPromoPercent       = 10
	MinPromoMonths            = 3
)

var (
	ErrInvalidPrice  = errors.New("pricing: price must not be negative")
	ErrInvalidMonths = errors.New("pricing: months must be positive")
	ErrUnknownPlan   = errors.New("pricing: unknown payment plan")
)

type Quote struct {
	Subtotal   int64 `json:"subtotal"`
	Discount   int64 `json:"discount"`
	AdminFee   int64 `json:"admin_fee"`
	ServiceFee int64 `json:"service_fee"`
	Total      int64 `json:"total"`
}

// Compute derives the full price breakdown for a rental of the given length.
// promoPercent falls back to DefaultPromoPercent when unset; the discount only
// applies when the listing is on promo and the stay is at least MinPromoMonths.
func Compute(price int64, months int, promo bool, promoPercent int, plan model.PaymentPlan) (Quote, error) {
	if price < 0 {
		return Quote{}, ErrInvalidPrice
	}
	if months <= 0 {
		return Quote{}, ErrInvalidMonths
	}
	if !plan.Valid() {
		return Quote{}, ErrUnknownPlan
	}

	subtotal := price * int64(months)

	var discount int64
	if promo && months >= MinPromoMonths {
		pct := promoPercent
		if pct <= 0 {
			pct = DefaultPromoPercent
		}
		discount = int64(math.Round(float64(subtotal) * float64(pct) / 100))
	}

	serviceFee := ServiceFee
	if plan == model.PlanPayOnLocation {
		serviceFee = 0
	}

	return Quote{
		Subtotal:   subtotal,
		Discount:   discount,
		AdminFee:   AdminFee,
		ServiceFee: serviceFee,
		Total:      subtotal - discount + AdminFee + serviceFee,
	}, nil
}
