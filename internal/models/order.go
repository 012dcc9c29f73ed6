package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                            // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                            // 订单编号
	CustomerName    string         `gorm:"type:varchar(255);not null" json:"customer_name"`                 // 收货人
	CustomerEmail   string         `gorm:"type:varchar(255);index;not null" json:"customer_email"`          // 联系邮箱
	CustomerPhone   string         `gorm:"type:varchar(64)" json:"customer_phone"`                          // 联系电话
	ShippingAddress string         `gorm:"type:text;not null" json:"shipping_address"`                      // 收货地址
	Status          string         `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"` // 订单状态
	Subtotal        Money          `gorm:"type:decimal(10,2);not null;default:0" json:"subtotal"`           // 商品小计
	DiscountAmount  Money          `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"`    // 优惠金额
	TotalAmount     Money          `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`       // 实付金额
	PromoCodeID     *uint          `gorm:"index" json:"promo_code_id,omitempty"`                            // 优惠码ID
	PromoCode       string         `gorm:"type:varchar(64)" json:"promo_code,omitempty"`                    // 优惠码快照
	ClientIP        string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                     // 下单客户端IP
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                         // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
