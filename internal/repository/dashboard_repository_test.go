package repository

import (
	"testing"
	"time"

	"github.com/kickslife/storefront/internal/constants"
	"github.com/kickslife/storefront/internal/models"
)

func TestDashboardOrderStatsAndTopProducts(t *testing.T) {
	db := openTestDB(t)
	repo := NewDashboardRepository(db)
	orders := NewOrderRepository(db)

	jordan := createProduct(t, db, models.Product{Name: "Air Jordan 1", Price: money("170")})
	dunk := createProduct(t, db, models.Product{Name: "Nike Dunk Low", Price: money("100")})
	createProduct(t, db, models.Product{Name: "Stan Smith", Price: money("80")})

	mk := func(no, status, total, discount string, promoID *uint, items []models.OrderItem) {
		o := &models.Order{
			OrderNo:         no,
			CustomerName:    "x",
			CustomerEmail:   "x@example.com",
			ShippingAddress: "addr",
			Status:          status,
			Subtotal:        money(total),
			DiscountAmount:  money(discount),
			TotalAmount:     money(total),
			PromoCodeID:     promoID,
			PromoCode:       "WELCOME10",
		}
		if err := orders.Create(o, items); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}
	promoID := uint(7)
	mk("O1", constants.OrderStatusDelivered, "340", "0", nil, []models.OrderItem{{ProductID: jordan.ID, Quantity: 2, Price: money("170")}})
	mk("O2", constants.OrderStatusShipped, "90", "10", &promoID, []models.OrderItem{{ProductID: dunk.ID, Quantity: 1, Price: money("100")}})
	mk("O3", constants.OrderStatusPending, "100", "0", nil, []models.OrderItem{{ProductID: dunk.ID, Quantity: 5, Price: money("100")}})

	stats, err := repo.GetOrderStats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalOrders != 3 || stats.PendingOrders != 1 || stats.CompletedOrders != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !stats.TotalRevenue.Equal(money("530").Decimal) {
		t.Fatalf("revenue want 530 got %s", stats.TotalRevenue)
	}

	rows, err := repo.GetTopProducts(5)
	if err != nil {
		t.Fatalf("top products failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected every product to be ranked, got %d", len(rows))
	}
	if rows[0].ProductID != jordan.ID || rows[0].TotalSold != 2 {
		t.Fatalf("jordan should lead with 2, got %+v", rows[0])
	}
	if rows[1].ProductID != dunk.ID || rows[1].TotalSold != 1 {
		t.Fatalf("pending order quantity must not count, got %+v", rows[1])
	}
	if rows[2].TotalSold != 0 {
		t.Fatalf("unsold product should report 0, got %+v", rows[2])
	}

	usage, err := repo.GetPromoUsage(10)
	if err != nil {
		t.Fatalf("promo usage failed: %v", err)
	}
	if len(usage) != 1 || usage[0].PromoCodeID != promoID || usage[0].Orders != 1 {
		t.Fatalf("unexpected promo usage: %+v", usage)
	}

	now := time.Now()
	trends, err := repo.GetOrderTrends(now.Add(-24*time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("trends failed: %v", err)
	}
	var count int64
	for _, row := range trends {
		count += row.Orders
	}
	if count != 3 {
		t.Fatalf("trend orders want 3 got %d", count)
	}
}
