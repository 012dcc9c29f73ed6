package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kickslife/storefront/internal/config"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/queue"
	"github.com/kickslife/storefront/internal/repository"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type storeFixture struct {
	db        *gorm.DB
	promos    *PromoService
	orders    *OrderService
	products  *ProductService
	carts     *CartService
	promoRepo *repository.GormPromoCodeRepository
}

func setupStoreTest(t *testing.T) *storeFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	productRepo := repository.NewProductRepository(db)
	promoRepo := repository.NewPromoCodeRepository(db)
	promos := NewPromoService(promoRepo, &config.PromoConfig{}, nil)
	queueClient, _ := queue.NewClient(&config.QueueConfig{Enabled: false})
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node failed: %v", err)
	}
	orders := NewOrderService(
		repository.NewOrderRepository(db),
		productRepo,
		promos,
		queueClient,
		NewEmailService(&config.EmailConfig{Enabled: false}),
		nil,
		node,
	)
	return &storeFixture{
		db:        db,
		promos:    promos,
		orders:    orders,
		products:  NewProductService(productRepo),
		carts:     NewCartService(repository.NewCartRepository(db), productRepo, config.CartConfig{}),
		promoRepo: promoRepo,
	}
}

func seedSneaker(t *testing.T, db *gorm.DB, name, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:          strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Name:          name,
		Price:         models.MustMoney(price),
		Category:      "Lifestyle",
		Brand:         "Nike",
		Sizes:         models.StringArray{"9", "10", "11"},
		Colors:        models.StringArray{"White", "Black"},
		StockQuantity: stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedPromo(t *testing.T, db *gorm.DB, promo models.PromoCode) *models.PromoCode {
	t.Helper()
	if err := db.Create(&promo).Error; err != nil {
		t.Fatalf("create promo failed: %v", err)
	}
	return &promo
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func intPtr(v int) *int {
	return &v
}

func reloadPromo(t *testing.T, db *gorm.DB, id uint) models.PromoCode {
	t.Helper()
	var row models.PromoCode
	if err := db.First(&row, id).Error; err != nil {
		t.Fatalf("reload promo failed: %v", err)
	}
	return row
}

func reloadStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var row models.Product
	if err := db.First(&row, id).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return row.StockQuantity
}
