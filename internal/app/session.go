// Package app wires the engine packages to the snapshot store and the
// notification hub. It is the single writer over the shared state
// containers; every mutation validates through the engine, swaps the
// snapshot whole and persists the result.
package app

import (
	"context"
	"errors"
	"fmt"

	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/keranjang/internal/cart"
	"github.com/noah-isme/keranjang/internal/catalog"
	"github.com/noah-isme/keranjang/internal/common"
	"github.com/noah-isme/keranjang/internal/config"
	"github.com/noah-isme/keranjang/internal/coupon"
	"github.com/noah-isme/keranjang/internal/notify"
	"github.com/noah-isme/keranjang/internal/pricing"
	"github.com/noah-isme/keranjang/internal/state"
	"github.com/noah-isme/keranjang/internal/store"
)

// ErrInvalidInput is returned when an inbound payload fails shape validation.
var ErrInvalidInput = errors.New("invalid input")

// Config groups Session dependencies.
type Config struct {
	Store         store.Store
	Keys          config.StoreKeys
	Validate      *validator.Validate
	Notifications *notify.Hub
	Logger        zerolog.Logger
}

// Session orchestrates the cart, catalog and coupon state of one user
// session. Calls are expected from a single goroutine; the engine packages
// it delegates to are pure.
type Session struct {
	products *state.Container[[]catalog.Product]
	lines    *state.Container[[]cart.Line]
	coupons  *state.Container[[]coupon.Coupon]
	// selected holds only the coupon code; the coupon is resolved through
	// the ledger on read so the selection cannot outlive its referent.
	selected *state.Container[string]

	store    store.Store
	keys     config.StoreKeys
	validate *validator.Validate
	hub      *notify.Hub
	logger   zerolog.Logger
}

// NewSession loads snapshots from the store and constructs a session.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.Store == nil {
		return nil, errors.New("app: store is required")
	}
	if cfg.Validate == nil {
		cfg.Validate = validator.New()
	}

	s := &Session{
		store:    cfg.Store,
		keys:     cfg.Keys,
		validate: cfg.Validate,
		hub:      cfg.Notifications,
		logger:   cfg.Logger,
	}

	var products []catalog.Product
	if _, err := cfg.Store.GetJSON(ctx, cfg.Keys.Products, &products); err != nil {
		return nil, fmt.Errorf("app: load products: %w", err)
	}
	var lines []cart.Line
	if _, err := cfg.Store.GetJSON(ctx, cfg.Keys.Cart, &lines); err != nil {
		return nil, fmt.Errorf("app: load cart: %w", err)
	}
	var coupons []coupon.Coupon
	if _, err := cfg.Store.GetJSON(ctx, cfg.Keys.Coupons, &coupons); err != nil {
		return nil, fmt.Errorf("app: load coupons: %w", err)
	}
	var selected string
	if _, err := cfg.Store.GetJSON(ctx, cfg.Keys.SelectedCoupon, &selected); err != nil {
		return nil, fmt.Errorf("app: load selected coupon: %w", err)
	}

	s.products = state.New(products)
	s.lines = state.New(lines)
	s.coupons = state.New(coupons)
	s.selected = state.New(selected)
	return s, nil
}

// Products returns the current catalog snapshot.
func (s *Session) Products() []catalog.Product { return s.products.Get() }

// Cart returns the current cart snapshot.
func (s *Session) Cart() []cart.Line { return s.lines.Get() }

// Coupons returns the current coupon ledger snapshot.
func (s *Session) Coupons() []coupon.Coupon { return s.coupons.Get() }

// SelectedCoupon resolves the selected code through the ledger.
func (s *Session) SelectedCoupon() (coupon.Coupon, bool) {
	code := s.selected.Get()
	if code == "" {
		return coupon.Coupon{}, false
	}
	return coupon.FindByCode(code, s.coupons.Get())
}

// SubscribeCart registers a callback invoked on every cart snapshot swap.
func (s *Session) SubscribeCart(fn func([]cart.Line)) func() {
	return s.lines.Subscribe(fn)
}

// SubscribeProducts registers a callback invoked on every catalog swap.
func (s *Session) SubscribeProducts(fn func([]catalog.Product)) func() {
	return s.products.Subscribe(fn)
}

// Totals computes the totals of the current cart with the selected coupon.
func (s *Session) Totals() pricing.Summary {
	var terms *pricing.CouponTerms
	if c, ok := s.SelectedCoupon(); ok {
		t := c.Terms()
		terms = &t
	}
	return cart.Totals(s.lines.Get(), terms)
}

// TotalItemCount sums the quantities in the current cart.
func (s *Session) TotalItemCount() int {
	return cart.TotalItemCount(s.lines.Get())
}

// RemainingStock reports the product's stock minus its cart quantity.
// Queries do not emit notifications.
func (s *Session) RemainingStock(productID string) (int, error) {
	product, ok := catalog.FindByID(productID, s.products.Get())
	if !ok {
		return 0, common.NewAppError(classify(catalog.ErrNotFound), catalog.ErrNotFound.Error(), catalog.ErrNotFound)
	}
	return cart.RemainingStock(product, s.lines.Get()), nil
}

// AddToCart adds one unit of the product to the cart.
func (s *Session) AddToCart(ctx context.Context, productID string) error {
	product, ok := catalog.FindByID(productID, s.products.Get())
	if !ok {
		return s.fail(catalog.ErrNotFound)
	}
	lines, err := cart.AddItem(product, s.lines.Get())
	if err != nil {
		return s.fail(err)
	}
	s.setCart(ctx, lines)
	s.success("Added to cart.")
	return nil
}

// RemoveFromCart deletes the product's line. Absent lines are a no-op.
func (s *Session) RemoveFromCart(ctx context.Context, productID string) {
	s.setCart(ctx, cart.RemoveItem(productID, s.lines.Get()))
}

// UpdateQuantity sets a line's quantity; non-positive values delete the line.
func (s *Session) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	lines, err := cart.UpdateQuantity(productID, quantity, s.lines.Get())
	if err != nil {
		return s.fail(err)
	}
	s.setCart(ctx, lines)
	return nil
}

// ApplyCoupon validates eligibility and selects the coupon by code.
func (s *Session) ApplyCoupon(ctx context.Context, code string) error {
	c, ok := coupon.FindByCode(code, s.coupons.Get())
	if !ok {
		return s.fail(coupon.ErrNotFound)
	}
	if err := coupon.ValidateApplication(c, s.lines.Get()); err != nil {
		return s.fail(err)
	}
	s.setSelected(ctx, c.Code)
	s.success("Coupon applied.")
	return nil
}

// RemoveSelectedCoupon clears the coupon selection.
func (s *Session) RemoveSelectedCoupon(ctx context.Context) {
	s.setSelected(ctx, "")
}

// ClearCart empties the cart and clears the coupon selection together.
func (s *Session) ClearCart(ctx context.Context) {
	s.setCart(ctx, nil)
	s.setSelected(ctx, "")
}

// CompleteOrder finishes the purchase: it generates an order identifier and
// resets cart and coupon selection in one step.
func (s *Session) CompleteOrder(ctx context.Context) string {
	orderID := cart.NewOrderID()
	s.setCart(ctx, nil)
	s.setSelected(ctx, "")
	s.success(fmt.Sprintf("Order completed. Order number: %s", orderID))
	s.logger.Info().Str("order_id", orderID).Msg("order_completed")
	return orderID
}

// AddProduct validates the draft and appends it to the catalog.
func (s *Session) AddProduct(ctx context.Context, draft catalog.Draft) error {
	products, err := catalog.AddProduct(draft, s.products.Get())
	if err != nil {
		return s.fail(err)
	}
	s.setProducts(ctx, products)
	s.success("Product added.")
	return nil
}

// UpdateProduct applies a partial edit to the matching product.
func (s *Session) UpdateProduct(ctx context.Context, id string, update catalog.Update) error {
	products, err := catalog.UpdateProduct(id, update, s.products.Get())
	if err != nil {
		return s.fail(err)
	}
	s.setProducts(ctx, products)
	s.success("Product updated.")
	return nil
}

// RemoveProduct deletes the product from the catalog. Cart lines keep their
// snapshot.
func (s *Session) RemoveProduct(ctx context.Context, id string) error {
	products, err := catalog.RemoveProduct(id, s.products.Get())
	if err != nil {
		return s.fail(err)
	}
	s.setProducts(ctx, products)
	s.success("Product removed.")
	return nil
}

// UpdateStock replaces the product's stock level.
func (s *Session) UpdateStock(ctx context.Context, id string, newStock int) error {
	products, err := catalog.UpdateStock(id, newStock, s.products.Get())
	if err != nil {
		return s.fail(err)
	}
	s.setProducts(ctx, products)
	return nil
}

// AddDiscountTier attaches a quantity discount tier to the product.
func (s *Session) AddDiscountTier(ctx context.Context, id string, tier pricing.Tier) error {
	products, err := catalog.AddDiscountTier(id, tier, s.products.Get())
	if err != nil {
		return s.fail(err)
	}
	s.setProducts(ctx, products)
	return nil
}

// RemoveDiscountTier removes the product's tier at the given position.
func (s *Session) RemoveDiscountTier(ctx context.Context, id string, index int) error {
	products, err := catalog.RemoveDiscountTier(id, index, s.products.Get())
	if err != nil {
		return s.fail(err)
	}
	s.setProducts(ctx, products)
	return nil
}

// SearchProducts filters the catalog by name or description.
func (s *Session) SearchProducts(term string) []catalog.Product {
	return catalog.FilterBySearch(s.products.Get(), term)
}

// AddCoupon validates the coupon shape and appends it to the ledger.
func (s *Session) AddCoupon(ctx context.Context, c coupon.Coupon) error {
	if err := s.validate.Struct(c); err != nil {
		return s.fail(fmt.Errorf("%v: %w", err, ErrInvalidInput))
	}
	coupons, err := coupon.Add(c, s.coupons.Get())
	if err != nil {
		return s.fail(err)
	}
	s.setCoupons(ctx, coupons)
	s.success("Coupon added.")
	return nil
}

// RemoveCoupon deletes the coupon and clears a matching selection.
func (s *Session) RemoveCoupon(ctx context.Context, code string) error {
	coupons, err := coupon.Remove(code, s.coupons.Get())
	if err != nil {
		return s.fail(err)
	}
	s.setCoupons(ctx, coupons)
	if s.selected.Get() == code {
		s.setSelected(ctx, "")
	}
	s.success("Coupon removed.")
	return nil
}

func (s *Session) setCart(ctx context.Context, lines []cart.Line) {
	s.lines.Set(lines)
	s.persist(ctx, s.keys.Cart, lines)
}

func (s *Session) setProducts(ctx context.Context, products []catalog.Product) {
	s.products.Set(products)
	s.persist(ctx, s.keys.Products, products)
}

func (s *Session) setCoupons(ctx context.Context, coupons []coupon.Coupon) {
	s.coupons.Set(coupons)
	s.persist(ctx, s.keys.Coupons, coupons)
}

func (s *Session) setSelected(ctx context.Context, code string) {
	s.selected.Set(code)
	s.persist(ctx, s.keys.SelectedCoupon, code)
}

// persist is best-effort: the in-memory snapshot is authoritative for the
// session and the store is last-write-wins.
func (s *Session) persist(ctx context.Context, key string, v any) {
	if err := s.store.SetJSON(ctx, key, v); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("persist snapshot failed")
	}
}

func (s *Session) success(message string) {
	s.hub.Push(message, notify.SeveritySuccess)
}

// fail wraps the engine error with its taxonomy code and mirrors it to the
// notification hub. Prior state is untouched by the caller at this point.
func (s *Session) fail(err error) error {
	appErr := common.NewAppError(classify(err), err.Error(), err)
	s.hub.Push(appErr.Message, notify.SeverityError)
	return appErr
}

func classify(err error) string {
	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		return "OUT_OF_STOCK"
	case errors.Is(err, cart.ErrStockExceeded):
		return "STOCK_EXCEEDED"
	case errors.Is(err, cart.ErrLineNotFound):
		return "LINE_NOT_FOUND"
	case errors.Is(err, coupon.ErrDuplicateCode):
		return "DUPLICATE_CODE"
	case errors.Is(err, coupon.ErrMinimumNotMet):
		return "MINIMUM_NOT_MET"
	case errors.Is(err, coupon.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, catalog.ErrInvalidName):
		return "INVALID_NAME"
	case errors.Is(err, catalog.ErrInvalidPrice):
		return "INVALID_PRICE"
	case errors.Is(err, catalog.ErrInvalidStock):
		return "INVALID_STOCK"
	case errors.Is(err, catalog.ErrInvalidTierQuantity):
		return "INVALID_TIER_QUANTITY"
	case errors.Is(err, catalog.ErrInvalidTierRate):
		return "INVALID_TIER_RATE"
	case errors.Is(err, catalog.ErrDuplicateTierQuantity):
		return "DUPLICATE_TIER_QUANTITY"
	case errors.Is(err, catalog.ErrIndexOutOfRange):
		return "INDEX_OUT_OF_RANGE"
	default:
		return "INVALID_INPUT"
	}
}
