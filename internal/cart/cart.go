package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/keranjang/internal/catalog"
	"github.com/noah-isme/keranjang/internal/pricing"
)

var (
	// ErrOutOfStock indicates the product has no remaining stock to add.
	ErrOutOfStock = errors.New("out of stock")
	// ErrStockExceeded indicates the requested quantity exceeds the stock.
	ErrStockExceeded = errors.New("stock exceeded")
	// ErrLineNotFound indicates no cart line references the product.
	ErrLineNotFound = errors.New("cart line not found")
)

// Line pairs a product snapshot with a quantity. A quantity of zero never
// exists in a cart; removal deletes the line.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// RemainingStock returns how much of the product's stock is not yet claimed
// by the cart. A negative value is transient and never authoritative.
func RemainingStock(product catalog.Product, lines []Line) int {
	for _, l := range lines {
		if l.Product.ID == product.ID {
			return product.Stock - l.Quantity
		}
	}
	return product.Stock
}

// TotalItemCount sums the quantities of every line.
func TotalItemCount(lines []Line) int {
	var total int
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// AddItem adds one unit of the product, incrementing an existing line or
// appending a new one in insertion order.
func AddItem(product catalog.Product, lines []Line) ([]Line, error) {
	if RemainingStock(product, lines) <= 0 {
		return nil, ErrOutOfStock
	}

	for i, l := range lines {
		if l.Product.ID == product.ID {
			newQuantity := l.Quantity + 1
			if newQuantity > product.Stock {
				return nil, fmt.Errorf("only %d in stock: %w", product.Stock, ErrStockExceeded)
			}
			out := append([]Line(nil), lines...)
			out[i].Quantity = newQuantity
			return out, nil
		}
	}

	out := make([]Line, 0, len(lines)+1)
	out = append(out, lines...)
	return append(out, Line{Product: product, Quantity: 1}), nil
}

// RemoveItem deletes the matching line. Removing an absent product is a
// no-op, not an error.
func RemoveItem(productID string, lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Product.ID != productID {
			out = append(out, l)
		}
	}
	return out
}

// UpdateQuantity sets the line's quantity to an absolute value. A
// non-positive quantity is a delete intent and delegates to RemoveItem.
func UpdateQuantity(productID string, newQuantity int, lines []Line) ([]Line, error) {
	if newQuantity <= 0 {
		return RemoveItem(productID, lines), nil
	}

	for i, l := range lines {
		if l.Product.ID == productID {
			if newQuantity > l.Product.Stock {
				return nil, fmt.Errorf("only %d in stock: %w", l.Product.Stock, ErrStockExceeded)
			}
			out := append([]Line(nil), lines...)
			out[i].Quantity = newQuantity
			return out, nil
		}
	}
	return nil, ErrLineNotFound
}

// PricingLines converts cart lines to the discount engine's view.
func PricingLines(lines []Line) []pricing.Line {
	out := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, pricing.Line{
			ProductID: l.Product.ID,
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
			Tiers:     l.Product.Discounts,
		})
	}
	return out
}

// Totals computes the cart totals with an optional coupon applied.
func Totals(lines []Line, coupon *pricing.CouponTerms) pricing.Summary {
	return pricing.Totals(PricingLines(lines), coupon)
}

// NewOrderID generates an order identifier unique within and across sessions.
func NewOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString())
}
