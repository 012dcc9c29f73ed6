package repository

import (
	"github.com/kickslife/storefront/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByToken(token string) ([]models.CartItem, error)
	Replace(token string, items []models.CartItem) error
	ClearByToken(token string) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByToken 获取购物车项
func (r *GormCartRepository) ListByToken(token string) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.db.Where("cart_token = ?", token).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Replace 整体替换购物车内容
func (r *GormCartRepository) Replace(token string, items []models.CartItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_token = ?", token).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = 0
			items[i].CartToken = token
		}
		return tx.Create(&items).Error
	})
}

// ClearByToken 清空购物车
func (r *GormCartRepository) ClearByToken(token string) error {
	return r.db.Where("cart_token = ?", token).Delete(&models.CartItem{}).Error
}
