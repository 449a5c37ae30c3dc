package pricing

import "math"

// Money represents a monetary value stored in minor units.
type Money = int64

// DiscountKind distinguishes how a coupon discount is expressed.
type DiscountKind string

const (
	// DiscountAmount subtracts a fixed amount from the cart total.
	DiscountAmount DiscountKind = "amount"
	// DiscountPercentage subtracts a percentage of the cart total.
	DiscountPercentage DiscountKind = "percentage"
)

const (
	bulkPurchaseThreshold = 10
	bulkPurchaseBonus     = 0.05
	maxDiscountRate       = 0.5
)

// Tier grants a discount rate once a line reaches the quantity threshold.
type Tier struct {
	Quantity int     `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// Line is the minimal view of a cart line needed for price calculation.
type Line struct {
	ProductID string
	UnitPrice Money
	Quantity  int
	Tiers     []Tier
}

// CouponTerms carries the discount terms of an applied coupon.
type CouponTerms struct {
	Kind  DiscountKind
	Value Money
}

// Summary aggregates computed cart totals.
type Summary struct {
	TotalBeforeDiscount Money `json:"totalBeforeDiscount"`
	TotalAfterDiscount  Money `json:"totalAfterDiscount"`
	TotalDiscount       Money `json:"totalDiscount"`
}

// QuantityDiscountRate returns the highest tier rate the quantity qualifies
// for, regardless of tier order. Zero when no tier is satisfied.
func QuantityDiscountRate(tiers []Tier, quantity int) float64 {
	var best float64
	for _, t := range tiers {
		if quantity >= t.Quantity && t.Rate > best {
			best = t.Rate
		}
	}
	return best
}

// HasBulkPurchase reports whether any line in the cart reaches the bulk
// purchase threshold. The bonus it unlocks applies cart-wide.
func HasBulkPurchase(lines []Line) bool {
	for _, l := range lines {
		if l.Quantity >= bulkPurchaseThreshold {
			return true
		}
	}
	return false
}

// EffectiveRate computes the discount rate applied to a single line: its best
// tier rate, plus the bulk bonus when the cart qualifies, capped at the
// maximum rate.
func EffectiveRate(line Line, lines []Line) float64 {
	rate := QuantityDiscountRate(line.Tiers, line.Quantity)
	if HasBulkPurchase(lines) {
		rate += bulkPurchaseBonus
	}
	return math.Min(rate, maxDiscountRate)
}

// LineTotal returns the discounted total of a line. Rounding happens once on
// the final product, half away from zero.
func LineTotal(line Line, lines []Line) Money {
	rate := EffectiveRate(line, lines)
	return roundHalfAway(float64(line.UnitPrice) * float64(line.Quantity) * (1 - rate))
}

// Totals computes cart totals with per-item discounts and an optional coupon.
// The coupon discount is clamped so the final total stays within
// [0, item-discounted total]; a nil coupon leaves the total unchanged.
func Totals(lines []Line, coupon *CouponTerms) Summary {
	var before float64
	for _, l := range lines {
		before += float64(l.UnitPrice) * float64(l.Quantity)
	}
	totalBefore := roundHalfAway(before)

	var itemTotal Money
	for _, l := range lines {
		itemTotal += LineTotal(l, lines)
	}

	after := itemTotal
	if coupon != nil {
		switch coupon.Kind {
		case DiscountPercentage:
			after = roundHalfAway(float64(itemTotal) * (1 - float64(coupon.Value)/100))
		default:
			after = itemTotal - coupon.Value
		}
		if after > itemTotal {
			after = itemTotal
		}
		if after < 0 {
			after = 0
		}
	}

	return Summary{
		TotalBeforeDiscount: totalBefore,
		TotalAfterDiscount:  after,
		TotalDiscount:       totalBefore - after,
	}
}

func roundHalfAway(v float64) Money {
	return Money(math.Round(v))
}
