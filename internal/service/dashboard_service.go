package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kickslife/storefront/internal/cache"
	"github.com/kickslife/storefront/internal/logger"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/repository"
)

const (
	dashboardCacheTTL       = 45 * time.Second
	dashboardTopProducts    = 5
	dashboardDefaultDays    = 30
	dashboardMaxTrendDays   = 90
	dashboardPromoUsageSize = 10
)

// DashboardService 仪表盘服务
// 说明：聚合后台首页核心经营数据。
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardStats 仪表盘总览
type DashboardStats struct {
	TotalOrders     int64        `json:"total_orders"`
	TotalRevenue    models.Money `json:"total_revenue"`
	TotalDiscount   models.Money `json:"total_discount"`
	PendingOrders   int64        `json:"pending_orders"`
	CompletedOrders int64        `json:"completed_orders"`
}

// DashboardProductRanking 商品排行项
type DashboardProductRanking struct {
	ProductID uint         `json:"product_id"`
	Name      string       `json:"name"`
	Brand     string       `json:"brand"`
	Category  string       `json:"category"`
	ImageURL  string       `json:"image_url"`
	Price     models.Money `json:"price"`
	TotalSold int64        `json:"total_sold"`
}

// DashboardTrendPoint 趋势点
type DashboardTrendPoint struct {
	Date    string       `json:"date"`
	Orders  int64        `json:"orders"`
	Revenue models.Money `json:"revenue"`
}

// DashboardPromoUsage 优惠码使用统计
type DashboardPromoUsage struct {
	PromoCodeID   uint         `json:"promo_code_id"`
	Code          string       `json:"code"`
	Orders        int64        `json:"orders"`
	TotalDiscount models.Money `json:"total_discount"`
}

// Stats 订单总览
func (s *DashboardService) Stats(ctx context.Context, forceRefresh bool) (*DashboardStats, error) {
	const key = "dashboard:stats"
	var cached DashboardStats
	if s.readCache(ctx, key, forceRefresh, &cached) {
		return &cached, nil
	}
	row, err := s.repo.GetOrderStats()
	if err != nil {
		return nil, err
	}
	stats := &DashboardStats{
		TotalOrders:     row.TotalOrders,
		TotalRevenue:    models.NewMoneyFromDecimal(row.TotalRevenue),
		TotalDiscount:   models.NewMoneyFromDecimal(row.TotalDiscount),
		PendingOrders:   row.PendingOrders,
		CompletedOrders: row.CompletedOrders,
	}
	s.writeCache(ctx, key, stats)
	return stats, nil
}

// TopProducts 商品销量排行
func (s *DashboardService) TopProducts(ctx context.Context, forceRefresh bool) ([]DashboardProductRanking, error) {
	key := fmt.Sprintf("dashboard:top_products:%d", dashboardTopProducts)
	var cached []DashboardProductRanking
	if s.readCache(ctx, key, forceRefresh, &cached) {
		return cached, nil
	}
	rows, err := s.repo.GetTopProducts(dashboardTopProducts)
	if err != nil {
		return nil, err
	}
	result := make([]DashboardProductRanking, 0, len(rows))
	for _, row := range rows {
		result = append(result, DashboardProductRanking{
			ProductID: row.ProductID,
			Name:      row.Name,
			Brand:     row.Brand,
			Category:  row.Category,
			ImageURL:  row.ImageURL,
			Price:     models.NewMoneyFromDecimal(row.Price),
			TotalSold: row.TotalSold,
		})
	}
	s.writeCache(ctx, key, result)
	return result, nil
}

// Trends 最近若干天的订单趋势，缺失日期补零
func (s *DashboardService) Trends(ctx context.Context, days int, now time.Time) ([]DashboardTrendPoint, error) {
	if days <= 0 {
		days = dashboardDefaultDays
	}
	if days > dashboardMaxTrendDays {
		days = dashboardMaxTrendDays
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startAt := today.AddDate(0, 0, -(days - 1))
	endAt := today.AddDate(0, 0, 1)

	rows, err := s.repo.GetOrderTrends(startAt, endAt)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]repository.DashboardOrderTrendRow, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}
	points := make([]DashboardTrendPoint, 0, days)
	for day := startAt; day.Before(endAt); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		row := byDay[key]
		points = append(points, DashboardTrendPoint{
			Date:    key,
			Orders:  row.Orders,
			Revenue: models.NewMoneyFromDecimal(row.Revenue),
		})
	}
	return points, nil
}

// PromoUsage 优惠码使用排行
func (s *DashboardService) PromoUsage(ctx context.Context) ([]DashboardPromoUsage, error) {
	rows, err := s.repo.GetPromoUsage(dashboardPromoUsageSize)
	if err != nil {
		return nil, err
	}
	result := make([]DashboardPromoUsage, 0, len(rows))
	for _, row := range rows {
		result = append(result, DashboardPromoUsage{
			PromoCodeID:   row.PromoCodeID,
			Code:          row.Code,
			Orders:        row.Orders,
			TotalDiscount: models.NewMoneyFromDecimal(row.TotalDiscount),
		})
	}
	return result, nil
}

func (s *DashboardService) readCache(ctx context.Context, key string, forceRefresh bool, dest interface{}) bool {
	if forceRefresh {
		return false
	}
	hit, err := cache.GetJSON(ctx, key, dest)
	if err != nil {
		logger.Warnw("dashboard_cache_get_failed", "key", key, "error", err)
		return false
	}
	return hit
}

func (s *DashboardService) writeCache(ctx context.Context, key string, value interface{}) {
	if err := cache.SetJSON(ctx, key, value, dashboardCacheTTL); err != nil {
		logger.Warnw("dashboard_cache_set_failed", "key", key, "error", err)
	}
}
