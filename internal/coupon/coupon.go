package coupon

import (
	"errors"
	"fmt"

	"github.com/noah-isme/keranjang/internal/cart"
	"github.com/noah-isme/keranjang/internal/pricing"
)

// MinimumSpendForPercentage gates percentage coupons behind a minimum
// item-discounted cart total. Amount coupons have no gate.
const MinimumSpendForPercentage pricing.Money = 10_000

var (
	// ErrDuplicateCode indicates a coupon with the same code already exists.
	ErrDuplicateCode = errors.New("coupon code already exists")
	// ErrNotFound indicates the requested coupon could not be located.
	ErrNotFound = errors.New("coupon not found")
	// ErrMinimumNotMet is returned when the cart total is below the
	// percentage-coupon minimum spend.
	ErrMinimumNotMet = errors.New("minimum spend not met")
)

// Coupon is a cart-level discount, applied after per-item discounts.
type Coupon struct {
	Name          string               `json:"name" validate:"required"`
	Code          string               `json:"code" validate:"required"`
	DiscountType  pricing.DiscountKind `json:"discountType" validate:"required,oneof=amount percentage"`
	DiscountValue pricing.Money        `json:"discountValue"`
}

// Terms returns the discount terms consumed by the pricing engine.
func (c Coupon) Terms() pricing.CouponTerms {
	return pricing.CouponTerms{Kind: c.DiscountType, Value: c.DiscountValue}
}

// FindByCode returns the coupon with the given code, or false when absent.
// Codes match case-sensitively.
func FindByCode(code string, coupons []Coupon) (Coupon, bool) {
	for _, c := range coupons {
		if c.Code == code {
			return c, true
		}
	}
	return Coupon{}, false
}

// Add appends the coupon, rejecting duplicate codes.
func Add(newCoupon Coupon, coupons []Coupon) ([]Coupon, error) {
	if _, exists := FindByCode(newCoupon.Code, coupons); exists {
		return nil, fmt.Errorf("code %q: %w", newCoupon.Code, ErrDuplicateCode)
	}
	out := make([]Coupon, 0, len(coupons)+1)
	out = append(out, coupons...)
	return append(out, newCoupon), nil
}

// Remove filters the matching coupon out. Clearing a selection that
// references the removed code is the caller's responsibility.
func Remove(code string, coupons []Coupon) ([]Coupon, error) {
	if _, exists := FindByCode(code, coupons); !exists {
		return nil, ErrNotFound
	}
	out := make([]Coupon, 0, len(coupons)-1)
	for _, c := range coupons {
		if c.Code != code {
			out = append(out, c)
		}
	}
	return out, nil
}

// ValidateApplication checks coupon eligibility against the cart's
// item-discounted total, without applying the coupon.
func ValidateApplication(c Coupon, lines []cart.Line) error {
	totals := cart.Totals(lines, nil)
	if totals.TotalAfterDiscount < MinimumSpendForPercentage && c.DiscountType == pricing.DiscountPercentage {
		return fmt.Errorf("percentage coupons require a total of at least %s: %w",
			pricing.FormatPrice(MinimumSpendForPercentage, pricing.NotationSymbol), ErrMinimumNotMet)
	}
	return nil
}
