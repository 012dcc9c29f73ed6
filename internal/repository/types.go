package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page     int
	PageSize int
	Category string
	Brand    string
	Search   string
	Featured *bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	Status        string
	Keyword       string
	CustomerEmail string
	PromoCodeID   uint
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// PromoCodeListFilter 查询优惠码列表的过滤条件
type PromoCodeListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Active   *bool
}
