package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                               // 主键
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                   // 唯一标识
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`             // 商品名称
	Description   string         `gorm:"type:text" json:"description"`                       // 商品描述
	Price         Money          `gorm:"type:decimal(10,2);not null;default:0" json:"price"` // 单价
	ImageURL      string         `gorm:"type:varchar(500)" json:"image_url"`                 // 主图地址
	Category      string         `gorm:"type:varchar(100);index" json:"category"`            // 分类名称
	Brand         string         `gorm:"type:varchar(100);index" json:"brand"`               // 品牌
	Sizes         StringArray    `gorm:"type:json" json:"sizes"`                             // 可选尺码
	Colors        StringArray    `gorm:"type:json" json:"colors"`                            // 可选配色
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`           // 库存数量
	Featured      bool           `gorm:"not null;default:false;index" json:"featured"`       // 是否推荐
	TotalSold     int64          `gorm:"-" json:"total_sold,omitempty"`                      // 销量（仅统计查询填充）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
