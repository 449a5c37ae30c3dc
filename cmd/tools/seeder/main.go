// Seeder loads demo catalog and coupon data into the snapshot store. Keys
// that already hold data are left untouched.
package main

import (
	"context"

	"github.com/joho/godotenv"
	redis "github.com/redis/go-redis/v9"

	"github.com/noah-isme/keranjang/internal/catalog"
	"github.com/noah-isme/keranjang/internal/config"
	"github.com/noah-isme/keranjang/internal/coupon"
	"github.com/noah-isme/keranjang/internal/obs"
	"github.com/noah-isme/keranjang/internal/pricing"
	"github.com/noah-isme/keranjang/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fallback := obs.NewLogger("console", "info")
		fallback.Fatal().Err(err).Msg("load config")
	}
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel)

	if cfg.RedisURL == "" {
		logger.Fatal().Msg("REDIS_URL is required for seeding")
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse REDIS_URL")
	}
	client := redis.NewClient(opts)
	defer func() { _ = client.Close() }()

	ctx := context.Background()
	kv := store.NewRedis(client)

	if err := seedProducts(ctx, kv, cfg.Keys.Products); err != nil {
		logger.Fatal().Err(err).Msg("seed products")
	}
	if err := seedCoupons(ctx, kv, cfg.Keys.Coupons); err != nil {
		logger.Fatal().Err(err).Msg("seed coupons")
	}

	logger.Info().Msg("seeding completed")
}

func seedProducts(ctx context.Context, kv store.Store, key string) error {
	var existing []catalog.Product
	found, err := kv.GetJSON(ctx, key, &existing)
	if err != nil {
		return err
	}
	if found && len(existing) > 0 {
		return nil
	}

	drafts := []catalog.Draft{
		{
			Name:        "Kaos Hitam Polos",
			Price:       149_000,
			Stock:       20,
			Description: "Katun combed 30s",
			Discounts:   []pricing.Tier{{Quantity: 10, Rate: 0.1}},
		},
		{
			Name:          "Sepatu Lari Ringan",
			Price:         899_000,
			Stock:         8,
			Description:   "Untuk lari harian",
			IsRecommended: true,
			Discounts:     []pricing.Tier{{Quantity: 5, Rate: 0.1}, {Quantity: 10, Rate: 0.2}},
		},
		{
			Name:  "Topi Baseball",
			Price: 59_000,
			Stock: 50,
		},
	}

	var products []catalog.Product
	for _, d := range drafts {
		products, err = catalog.AddProduct(d, products)
		if err != nil {
			return err
		}
	}
	return kv.SetJSON(ctx, key, products)
}

func seedCoupons(ctx context.Context, kv store.Store, key string) error {
	var existing []coupon.Coupon
	found, err := kv.GetJSON(ctx, key, &existing)
	if err != nil {
		return err
	}
	if found && len(existing) > 0 {
		return nil
	}

	seeds := []coupon.Coupon{
		{Name: "Diskon 5000", Code: "AMOUNT5000", DiscountType: pricing.DiscountAmount, DiscountValue: 5_000},
		{Name: "Diskon 10%", Code: "PERCENT10", DiscountType: pricing.DiscountPercentage, DiscountValue: 10},
	}

	var coupons []coupon.Coupon
	for _, c := range seeds {
		coupons, err = coupon.Add(c, coupons)
		if err != nil {
			return err
		}
	}
	return kv.SetJSON(ctx, key, coupons)
}
