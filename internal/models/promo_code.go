package models

import (
	"time"
)

// PromoCode 优惠码表
type PromoCode struct {
	ID             uint       `gorm:"primarykey" json:"id"`                                          // 主键
	Code           string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`             // 优惠码（统一大写）
	DiscountType   string     `gorm:"type:varchar(20);not null" json:"discount_type"`                // 折扣类型（percentage/fixed）
	DiscountValue  Money      `gorm:"type:decimal(10,2);not null" json:"discount_value"`             // 折扣数值（百分比或固定金额）
	MinOrderAmount Money      `gorm:"type:decimal(10,2);not null;default:0" json:"min_order_amount"` // 最低订单金额
	MaxUses        *int       `json:"max_uses"`                                                      // 最大使用次数（空表示不限）
	CurrentUses    int        `gorm:"not null;default:0" json:"current_uses"`                        // 已使用次数
	Active         bool       `gorm:"not null" json:"active"`                                        // 是否启用
	ExpiresAt      *time.Time `gorm:"index" json:"expires_at"`                                       // 过期时间
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt      time.Time  `json:"updated_at"`                                                    // 更新时间
}

// TableName 指定表名
func (PromoCode) TableName() string {
	return "promo_codes"
}
