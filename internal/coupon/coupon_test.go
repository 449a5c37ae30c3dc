package coupon_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/keranjang/internal/cart"
	"github.com/noah-isme/keranjang/internal/catalog"
	"github.com/noah-isme/keranjang/internal/coupon"
	"github.com/noah-isme/keranjang/internal/pricing"
)

func TestAddRejectsDuplicateCode(t *testing.T) {
	coupons := []coupon.Coupon{{Name: "Welcome", Code: "WELCOME10", DiscountType: pricing.DiscountPercentage, DiscountValue: 10}}

	_, err := coupon.Add(coupon.Coupon{Name: "Other", Code: "WELCOME10", DiscountType: pricing.DiscountAmount, DiscountValue: 5_000}, coupons)
	require.ErrorIs(t, err, coupon.ErrDuplicateCode)

	// case-sensitive exact match: a different casing is a different code
	updated, err := coupon.Add(coupon.Coupon{Name: "Lower", Code: "welcome10", DiscountType: pricing.DiscountAmount, DiscountValue: 5_000}, coupons)
	require.NoError(t, err)
	require.Len(t, updated, 2)
}

func TestRemove(t *testing.T) {
	coupons := []coupon.Coupon{
		{Name: "Welcome", Code: "WELCOME10", DiscountType: pricing.DiscountPercentage, DiscountValue: 10},
		{Name: "Flat", Code: "FLAT5000", DiscountType: pricing.DiscountAmount, DiscountValue: 5_000},
	}

	updated, err := coupon.Remove("WELCOME10", coupons)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	require.Equal(t, "FLAT5000", updated[0].Code)

	_, err = coupon.Remove("WELCOME10", updated)
	require.ErrorIs(t, err, coupon.ErrNotFound)
}

func TestValidateApplicationMinimumSpendGate(t *testing.T) {
	below := []cart.Line{{
		Product:  catalog.Product{ID: "p1", Name: "Cheap", Price: 9_999, Stock: 10},
		Quantity: 1,
	}}
	percentage := coupon.Coupon{Name: "Ten", Code: "TEN", DiscountType: pricing.DiscountPercentage, DiscountValue: 10}
	amount := coupon.Coupon{Name: "Flat", Code: "FLAT", DiscountType: pricing.DiscountAmount, DiscountValue: 1_000}

	err := coupon.ValidateApplication(percentage, below)
	require.ErrorIs(t, err, coupon.ErrMinimumNotMet)
	require.NoError(t, coupon.ValidateApplication(amount, below))

	at := []cart.Line{{
		Product:  catalog.Product{ID: "p1", Name: "Exact", Price: 10_000, Stock: 10},
		Quantity: 1,
	}}
	require.NoError(t, coupon.ValidateApplication(percentage, at))
}

func TestValidateApplicationUsesItemDiscountedTotal(t *testing.T) {
	// 11000 before discounts, 9350 after the tier and bulk discounts: the
	// gate reads the discounted value.
	lines := []cart.Line{{
		Product: catalog.Product{
			ID: "p1", Name: "Tiered", Price: 1_100, Stock: 20,
			Discounts: []pricing.Tier{{Quantity: 10, Rate: 0.1}},
		},
		Quantity: 10,
	}}
	percentage := coupon.Coupon{Name: "Ten", Code: "TEN", DiscountType: pricing.DiscountPercentage, DiscountValue: 10}

	err := coupon.ValidateApplication(percentage, lines)
	require.ErrorIs(t, err, coupon.ErrMinimumNotMet)
}
