package repository

import (
	"fmt"
	"time"

	"github.com/kickslife/storefront/internal/constants"
	"github.com/kickslife/storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOrderStats() (DashboardOrderStatsRow, error)
	GetTopProducts(limit int) ([]DashboardProductRankingRow, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
	GetPromoUsage(limit int) ([]DashboardPromoUsageRow, error)
}

// DashboardOrderStatsRow 订单总览统计
type DashboardOrderStatsRow struct {
	TotalOrders     int64
	TotalRevenue    decimal.Decimal
	TotalDiscount   decimal.Decimal
	PendingOrders   int64
	CompletedOrders int64
}

// DashboardProductRankingRow 商品销量排行原始行
type DashboardProductRankingRow struct {
	ProductID uint
	Name      string
	Brand     string
	Category  string
	ImageURL  string
	Price     decimal.Decimal
	TotalSold int64
}

// DashboardOrderTrendRow 按天统计的订单趋势
type DashboardOrderTrendRow struct {
	Day     string
	Orders  int64
	Revenue decimal.Decimal
}

// DashboardPromoUsageRow 优惠码使用统计
type DashboardPromoUsageRow struct {
	PromoCodeID   uint
	Code          string
	Orders        int64
	TotalDiscount decimal.Decimal
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOrderStats 获取订单总览
func (r *GormDashboardRepository) GetOrderStats() (DashboardOrderStatsRow, error) {
	result := DashboardOrderStatsRow{}
	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{})
	}

	if err := orderBase().Count(&result.TotalOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusPending).Count(&result.PendingOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status IN ?", constants.CompletedOrderStatuses).Count(&result.CompletedOrders).Error; err != nil {
		return result, err
	}

	var sums struct {
		Revenue  decimal.Decimal
		Discount decimal.Decimal
	}
	if err := orderBase().
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(discount_amount), 0) AS discount").
		Scan(&sums).Error; err != nil {
		return result, err
	}
	result.TotalRevenue = sums.Revenue.Round(2)
	result.TotalDiscount = sums.Discount.Round(2)
	return result, nil
}

// GetTopProducts 获取销量排行（仅统计已发货/已送达订单）
func (r *GormDashboardRepository) GetTopProducts(limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]DashboardProductRankingRow, 0, limit)
	err := r.db.Table("products AS p").
		Select("p.id AS product_id, p.name, p.brand, p.category, p.image_url, p.price, "+
			"COALESCE(SUM(CASE WHEN o.id IS NOT NULL THEN oi.quantity ELSE 0 END), 0) AS total_sold").
		Joins("LEFT JOIN order_items AS oi ON oi.product_id = p.id").
		Joins("LEFT JOIN orders AS o ON o.id = oi.order_id AND o.deleted_at IS NULL AND o.status IN ?", constants.CompletedOrderStatuses).
		Where("p.deleted_at IS NULL").
		Group("p.id, p.name, p.brand, p.category, p.image_url, p.price").
		Order("total_sold DESC, p.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetOrderTrends 获取按天聚合的订单数与收入
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	dayExpr := dayExprByDialect(dbDialectName(r.db), "created_at")
	rows := make([]DashboardOrderTrendRow, 0)
	if err := r.db.Model(&models.Order{}).
		Select(fmt.Sprintf("%s AS day, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue", dayExpr)).
		Where("created_at >= ? AND created_at < ? AND status <> ?", startAt, endAt, constants.OrderStatusCancelled).
		Group(dayExpr).
		Order("day asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetPromoUsage 获取优惠码带来的订单数与优惠总额
func (r *GormDashboardRepository) GetPromoUsage(limit int) ([]DashboardPromoUsageRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows := make([]DashboardPromoUsageRow, 0, limit)
	if err := r.db.Model(&models.Order{}).
		Select("promo_code_id, MAX(promo_code) AS code, COUNT(*) AS orders, COALESCE(SUM(discount_amount), 0) AS total_discount").
		Where("promo_code_id IS NOT NULL").
		Group("promo_code_id").
		Order("orders DESC, promo_code_id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
