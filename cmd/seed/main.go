package main

import (
	"time"

	"github.com/kickslife/storefront/internal/config"
	"github.com/kickslife/storefront/internal/constants"
	"github.com/kickslife/storefront/internal/logger"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/repository"
	"github.com/kickslife/storefront/internal/service"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var defaultSizes = []string{"6", "6.5", "7", "7.5", "8", "8.5", "9", "9.5", "10", "10.5", "11", "12"}

var jordanSizes = []string{"7", "7.5", "8", "8.5", "9", "9.5", "10", "10.5", "11", "11.5", "12"}

var sneakers = []service.ProductInput{
	{
		Name:          "Air Jordan 1 Retro High",
		Description:   "Classic basketball sneaker with premium leather construction and iconic design.",
		Price:         decimal.RequireFromString("170.00"),
		ImageURL:      "/air-jordan-1-basketball-sneaker.jpg",
		Category:      "Basketball",
		Brand:         "Jordan",
		Sizes:         jordanSizes,
		Colors:        []string{"Black/Red", "White/Black", "Royal Blue"},
		StockQuantity: 25,
		Featured:      true,
	},
	{
		Name:          "Nike Air Max 90",
		Description:   "Iconic running shoe with visible Air cushioning and retro styling.",
		Price:         decimal.RequireFromString("120.00"),
		ImageURL:      "/nike-air-max-90-running-shoe.jpg",
		Category:      "Running",
		Brand:         "Nike",
		Sizes:         defaultSizes,
		Colors:        []string{"White/Grey", "Black/White", "Navy/White"},
		StockQuantity: 30,
		Featured:      true,
	},
	{
		Name:          "Adidas Stan Smith",
		Description:   "Minimalist tennis shoe with clean white leather upper and green accents.",
		Price:         decimal.RequireFromString("80.00"),
		ImageURL:      "/adidas-stan-smith-white-tennis-shoe.jpg",
		Category:      "Lifestyle",
		Brand:         "Adidas",
		Sizes:         defaultSizes,
		Colors:        []string{"White/Green", "White/Navy", "All White"},
		StockQuantity: 40,
	},
	{
		Name:          "Travis Scott x Air Jordan 1",
		Description:   "Limited edition collaboration with reverse swoosh and premium materials.",
		Price:         decimal.RequireFromString("450.00"),
		ImageURL:      "/travis-scott-air-jordan-1-brown-sneaker.jpg",
		Category:      "Basketball",
		Brand:         "Jordan",
		Sizes:         jordanSizes,
		Colors:        []string{"Brown/Black", "Mocha"},
		StockQuantity: 5,
		Featured:      true,
	},
	{
		Name:          "Nike Dunk Low",
		Description:   "Classic basketball silhouette reimagined for everyday wear.",
		Price:         decimal.RequireFromString("100.00"),
		ImageURL:      "/nike-dunk-low-sneaker.jpg",
		Category:      "Lifestyle",
		Brand:         "Nike",
		Sizes:         defaultSizes,
		Colors:        []string{"White/Black", "Black/White", "University Blue"},
		StockQuantity: 20,
	},
	{
		Name:          "Yeezy Boost 350 V2",
		Description:   "Innovative knit upper with Boost cushioning technology.",
		Price:         decimal.RequireFromString("220.00"),
		ImageURL:      "/yeezy-boost-350-v2-sneaker.jpg",
		Category:      "Lifestyle",
		Brand:         "Adidas",
		Sizes:         defaultSizes,
		Colors:        []string{"Zebra", "Cream White", "Black Red"},
		StockQuantity: 15,
		Featured:      true,
	},
}

func intPtr(v int) *int { return &v }

func promoCodes(expiresAt time.Time) []models.PromoCode {
	return []models.PromoCode{
		{
			Code:           "WELCOME10",
			DiscountType:   constants.PromoDiscountTypePercentage,
			DiscountValue:  models.MustMoney("10"),
			MinOrderAmount: models.MustMoney("50"),
			MaxUses:        intPtr(100),
			Active:         true,
			ExpiresAt:      &expiresAt,
		},
		{
			Code:           "SAVE20",
			DiscountType:   constants.PromoDiscountTypeFixed,
			DiscountValue:  models.MustMoney("20"),
			MinOrderAmount: models.MustMoney("100"),
			MaxUses:        intPtr(50),
			Active:         true,
			ExpiresAt:      &expiresAt,
		},
		{
			Code:           "NEWCUSTOMER",
			DiscountType:   constants.PromoDiscountTypePercentage,
			DiscountValue:  models.MustMoney("15"),
			MinOrderAmount: models.MustMoney("75"),
			MaxUses:        intPtr(200),
			Active:         true,
			ExpiresAt:      &expiresAt,
		},
	}
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	productRepo := repository.NewProductRepository(models.DB)
	productService := service.NewProductService(productRepo)
	for _, input := range sneakers {
		existing, err := productRepo.GetBySlug(slug.Make(input.Name))
		if err != nil {
			stdLog.Fatalf("Failed to look up product %s: %v", input.Name, err)
		}
		if existing != nil {
			logger.Infow("seed_product_exists", "name", input.Name, "product_id", existing.ID)
			continue
		}
		if _, err := productService.Create(input); err != nil {
			stdLog.Fatalf("Failed to create product %s: %v", input.Name, err)
		}
	}

	// 种子优惠码有效期到明年年底
	now := time.Now().UTC()
	expiresAt := time.Date(now.Year()+1, time.December, 31, 23, 59, 59, 0, time.UTC)
	promoRepo := repository.NewPromoCodeRepository(models.DB)
	for _, promo := range promoCodes(expiresAt) {
		existing, err := promoRepo.GetByCode(promo.Code)
		if err != nil {
			stdLog.Fatalf("Failed to look up promo code %s: %v", promo.Code, err)
		}
		if existing != nil {
			logger.Infow("seed_promo_code_exists", "code", promo.Code)
			continue
		}
		if err := promoRepo.Create(&promo); err != nil {
			stdLog.Fatalf("Failed to create promo code %s: %v", promo.Code, err)
		}
		logger.Infow("seed_promo_code_created", "code", promo.Code, "promo_code_id", promo.ID)
	}

	stdLog.Printf("Seed completed: %d products, %d promo codes", len(sneakers), len(promoCodes(expiresAt)))
}
