package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateGeneratesUniqueSlug(t *testing.T) {
	fx := setupStoreTest(t)
	first, err := fx.products.Create(ProductInput{
		Name:          "Air Jordan 1 Retro High",
		Price:         dec("180"),
		Sizes:         []string{"9", " 10 ", "9", ""},
		Colors:        []string{"Chicago", "chicago"},
		StockQuantity: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, "air-jordan-1-retro-high", first.Slug)
	assert.Equal(t, models.StringArray{"9", "10"}, first.Sizes)
	assert.Equal(t, models.StringArray{"Chicago"}, first.Colors)

	second, err := fx.products.Create(ProductInput{Name: "Air Jordan 1 Retro High", Price: dec("190")})
	require.NoError(t, err)
	assert.Equal(t, "air-jordan-1-retro-high-2", second.Slug)

	renamed := "Air Jordan 1 Mid"
	updated, err := fx.products.Update(second.ID, ProductPatch{Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, "air-jordan-1-mid", updated.Slug)
	assert.Equal(t, "190.00", updated.Price.String())
}

func TestProductValidationAndDelete(t *testing.T) {
	fx := setupStoreTest(t)
	_, err := fx.products.Create(ProductInput{Name: " ", Price: dec("10")})
	assert.ErrorIs(t, err, ErrProductNameRequired)
	_, err = fx.products.Create(ProductInput{Name: "Slide", Price: dec("-1")})
	assert.ErrorIs(t, err, ErrProductPriceInvalid)
	_, err = fx.products.Create(ProductInput{Name: "Slide", Price: dec("25"), StockQuantity: -2})
	assert.ErrorIs(t, err, ErrProductStockInvalid)

	assert.ErrorIs(t, fx.products.Delete(999), ErrProductNotFound)
	_, err = fx.products.GetByID(999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartReplaceAndGetUsesDatabaseFallback(t *testing.T) {
	fx := setupStoreTest(t)
	shoe := seedSneaker(t, fx.db, "Gazelle", "100.00", 10)
	token := NewCartToken()

	cart, err := fx.carts.Replace(context.Background(), token, []CartItemInput{
		{ProductID: shoe.ID, Quantity: 1, Size: "9", Color: "White"},
		{ProductID: shoe.ID, Quantity: 2, Size: "9", Color: "White"},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, "300.00", cart.Subtotal.String())

	loaded, err := fx.carts.Get(context.Background(), token)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "300.00", loaded.Subtotal.String())

	require.NoError(t, fx.carts.Clear(context.Background(), token))
	empty, err := fx.carts.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Equal(t, "0.00", empty.Subtotal.String())
}

func TestCartRejectsBadInput(t *testing.T) {
	fx := setupStoreTest(t)
	shoe := seedSneaker(t, fx.db, "Old Skool", "70.00", 10)

	_, err := fx.carts.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrCartTokenInvalid)

	token := NewCartToken()
	_, err = fx.carts.Replace(context.Background(), token, []CartItemInput{{ProductID: shoe.ID, Quantity: 11}})
	assert.ErrorIs(t, err, ErrInvalidOrderItem)
	_, err = fx.carts.Replace(context.Background(), token, []CartItemInput{{ProductID: shoe.ID, Quantity: 1, Color: "Purple"}})
	assert.ErrorIs(t, err, ErrProductOptionInvalid)
	_, err = fx.carts.Replace(context.Background(), token, []CartItemInput{{ProductID: 404, Quantity: 1}})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

type stubDashboardRepo struct {
	trends []repository.DashboardOrderTrendRow
	start  time.Time
	end    time.Time
}

func (s *stubDashboardRepo) GetOrderStats() (repository.DashboardOrderStatsRow, error) {
	return repository.DashboardOrderStatsRow{TotalOrders: 3, TotalRevenue: decimal.RequireFromString("410.5"), PendingOrders: 1, CompletedOrders: 2}, nil
}

func (s *stubDashboardRepo) GetTopProducts(limit int) ([]repository.DashboardProductRankingRow, error) {
	return nil, errors.New("not used")
}

func (s *stubDashboardRepo) GetOrderTrends(startAt, endAt time.Time) ([]repository.DashboardOrderTrendRow, error) {
	s.start, s.end = startAt, endAt
	return s.trends, nil
}

func (s *stubDashboardRepo) GetPromoUsage(limit int) ([]repository.DashboardPromoUsageRow, error) {
	return []repository.DashboardPromoUsageRow{{PromoCodeID: 1, Code: "WELCOME10", Orders: 4, TotalDiscount: decimal.RequireFromString("31.2")}}, nil
}

func TestDashboardTrendsFillsMissingDays(t *testing.T) {
	repo := &stubDashboardRepo{trends: []repository.DashboardOrderTrendRow{
		{Day: "2026-05-02", Orders: 2, Revenue: decimal.RequireFromString("199.9")},
	}}
	svc := NewDashboardService(repo)
	now := time.Date(2026, 5, 3, 15, 0, 0, 0, time.UTC)

	points, err := svc.Trends(context.Background(), 3, now)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, "2026-05-01", points[0].Date)
	assert.Equal(t, int64(0), points[0].Orders)
	assert.Equal(t, "199.90", points[1].Revenue.String())
	assert.Equal(t, "2026-05-03", points[2].Date)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), repo.end)

	long, err := svc.Trends(context.Background(), 365, now)
	require.NoError(t, err)
	assert.Len(t, long, 90)
}

func TestDashboardStatsAndPromoUsage(t *testing.T) {
	svc := NewDashboardService(&stubDashboardRepo{})
	stats, err := svc.Stats(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, "410.50", stats.TotalRevenue.String())

	usage, err := svc.PromoUsage(context.Background())
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, "31.20", usage[0].TotalDiscount.String())
}
