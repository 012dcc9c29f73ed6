package models

import (
	"time"
)

// CartItem 购物车项（Redis 不可用时的持久化存储）
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                        // 主键
	CartToken string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_line" json:"-"`                // 购物车令牌
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_line" json:"product_id"`                        // 商品ID
	Size      string    `gorm:"type:varchar(32);not null;default:'';uniqueIndex:idx_cart_line" json:"size"`  // 尺码
	Color     string    `gorm:"type:varchar(64);not null;default:'';uniqueIndex:idx_cart_line" json:"color"` // 配色
	Quantity  int       `gorm:"not null" json:"quantity"`                                                    // 数量
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                                     // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                                     // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
