package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/keranjang/internal/pricing"
)

var (
	// ErrNotFound indicates the requested product could not be located.
	ErrNotFound = errors.New("product not found")
	// ErrInvalidName is returned when the product name is empty or whitespace.
	ErrInvalidName = errors.New("product name is required")
	// ErrInvalidPrice is returned when the product price is negative.
	ErrInvalidPrice = errors.New("product price must be zero or positive")
	// ErrInvalidStock is returned when the product stock is negative.
	ErrInvalidStock = errors.New("product stock must be zero or positive")
	// ErrInvalidTierQuantity is returned when a tier threshold is not positive.
	ErrInvalidTierQuantity = errors.New("discount tier quantity must be at least 1")
	// ErrInvalidTierRate is returned when a tier rate falls outside (0, 1].
	ErrInvalidTierRate = errors.New("discount tier rate must be between 0 and 1")
	// ErrDuplicateTierQuantity indicates a tier with the same threshold exists.
	ErrDuplicateTierQuantity = errors.New("discount tier quantity already exists")
	// ErrIndexOutOfRange indicates the tier index does not exist on the product.
	ErrIndexOutOfRange = errors.New("discount tier index out of range")
)

// Product is a catalog entry. Cart lines hold an immutable snapshot of it;
// later catalog edits never reach existing lines.
type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Price         pricing.Money  `json:"price"`
	Stock         int            `json:"stock"`
	Discounts     []pricing.Tier `json:"discounts"`
	Description   string         `json:"description,omitempty"`
	IsRecommended bool           `json:"isRecommended,omitempty"`
}

// Draft carries the caller-supplied fields of a new product.
type Draft struct {
	Name          string         `json:"name"`
	Price         pricing.Money  `json:"price"`
	Stock         int            `json:"stock"`
	Discounts     []pricing.Tier `json:"discounts"`
	Description   string         `json:"description,omitempty"`
	IsRecommended bool           `json:"isRecommended,omitempty"`
}

// Update carries a partial product edit; nil fields are left untouched.
type Update struct {
	Name          *string         `json:"name,omitempty"`
	Price         *pricing.Money  `json:"price,omitempty"`
	Stock         *int            `json:"stock,omitempty"`
	Discounts     *[]pricing.Tier `json:"discounts,omitempty"`
	Description   *string         `json:"description,omitempty"`
	IsRecommended *bool           `json:"isRecommended,omitempty"`
}

// FindByID returns the product with the given id, or false when absent.
func FindByID(id string, products []Product) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// AddProduct validates the draft, assigns a fresh id and appends the product.
func AddProduct(draft Draft, products []Product) ([]Product, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, ErrInvalidName
	}
	if draft.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if draft.Stock < 0 {
		return nil, ErrInvalidStock
	}

	product := Product{
		ID:            uuid.NewString(),
		Name:          draft.Name,
		Price:         draft.Price,
		Stock:         draft.Stock,
		Discounts:     append([]pricing.Tier(nil), draft.Discounts...),
		Description:   draft.Description,
		IsRecommended: draft.IsRecommended,
	}
	out := make([]Product, 0, len(products)+1)
	out = append(out, products...)
	return append(out, product), nil
}

// UpdateProduct applies a shallow merge of the update onto the matching
// product, re-validating only the fields present.
func UpdateProduct(id string, update Update, products []Product) ([]Product, error) {
	if _, ok := FindByID(id, products); !ok {
		return nil, ErrNotFound
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, ErrInvalidName
	}
	if update.Price != nil && *update.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if update.Stock != nil && *update.Stock < 0 {
		return nil, ErrInvalidStock
	}

	out := make([]Product, len(products))
	for i, p := range products {
		if p.ID == id {
			if update.Name != nil {
				p.Name = *update.Name
			}
			if update.Price != nil {
				p.Price = *update.Price
			}
			if update.Stock != nil {
				p.Stock = *update.Stock
			}
			if update.Discounts != nil {
				p.Discounts = append([]pricing.Tier(nil), (*update.Discounts)...)
			}
			if update.Description != nil {
				p.Description = *update.Description
			}
			if update.IsRecommended != nil {
				p.IsRecommended = *update.IsRecommended
			}
		}
		out[i] = p
	}
	return out, nil
}

// RemoveProduct filters the matching product out. Existing cart lines keep
// their snapshot.
func RemoveProduct(id string, products []Product) ([]Product, error) {
	if _, ok := FindByID(id, products); !ok {
		return nil, ErrNotFound
	}
	out := make([]Product, 0, len(products)-1)
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out, nil
}

// UpdateStock replaces a product's stock level.
func UpdateStock(id string, newStock int, products []Product) ([]Product, error) {
	if newStock < 0 {
		return nil, ErrInvalidStock
	}
	return UpdateProduct(id, Update{Stock: &newStock}, products)
}

// AddDiscountTier validates and inserts a tier, keeping the tier list sorted
// ascending by quantity for presentation. Calculation does not depend on the
// order.
func AddDiscountTier(id string, tier pricing.Tier, products []Product) ([]Product, error) {
	product, ok := FindByID(id, products)
	if !ok {
		return nil, ErrNotFound
	}
	if tier.Quantity <= 0 {
		return nil, ErrInvalidTierQuantity
	}
	if tier.Rate <= 0 || tier.Rate > 1 {
		return nil, ErrInvalidTierRate
	}
	for _, existing := range product.Discounts {
		if existing.Quantity == tier.Quantity {
			return nil, fmt.Errorf("quantity %d: %w", tier.Quantity, ErrDuplicateTierQuantity)
		}
	}

	tiers := append(append([]pricing.Tier(nil), product.Discounts...), tier)
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].Quantity < tiers[j].Quantity })
	return UpdateProduct(id, Update{Discounts: &tiers}, products)
}

// RemoveDiscountTier removes the tier at the given position.
func RemoveDiscountTier(id string, index int, products []Product) ([]Product, error) {
	product, ok := FindByID(id, products)
	if !ok {
		return nil, ErrNotFound
	}
	if index < 0 || index >= len(product.Discounts) {
		return nil, ErrIndexOutOfRange
	}
	tiers := make([]pricing.Tier, 0, len(product.Discounts)-1)
	for i, t := range product.Discounts {
		if i != index {
			tiers = append(tiers, t)
		}
	}
	return UpdateProduct(id, Update{Discounts: &tiers}, products)
}

// FilterBySearch returns products whose name or description contains the term,
// case-insensitive. A blank term returns the input unchanged.
func FilterBySearch(products []Product, term string) []Product {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}
