package models

import (
	"time"
)

// OrderItem 订单项表
type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                      // 主键
	OrderID     uint      `gorm:"index;not null" json:"order_id"`                            // 订单ID
	ProductID   uint      `gorm:"index;not null" json:"product_id"`                          // 商品ID
	ProductName string    `gorm:"type:varchar(255);not null;default:''" json:"product_name"` // 商品名称快照
	Quantity    int       `gorm:"not null" json:"quantity"`                                  // 数量
	Size        string    `gorm:"type:varchar(32)" json:"size"`                              // 尺码
	Color       string    `gorm:"type:varchar(64)" json:"color"`                             // 配色
	Price       Money     `gorm:"type:decimal(10,2);not null;default:0" json:"price"`        // 下单单价
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                   // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
