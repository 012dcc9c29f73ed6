package repository

import (
	"errors"
	"strings"

	"github.com/kickslife/storefront/internal/models"

	"gorm.io/gorm"
)

// PromoCodeRepository 优惠码数据访问接口
type PromoCodeRepository interface {
	GetByID(id uint) (*models.PromoCode, error)
	GetByCode(code string) (*models.PromoCode, error)
	ListActive() ([]models.PromoCode, error)
	List(filter PromoCodeListFilter) ([]models.PromoCode, int64, error)
	Create(promo *models.PromoCode) error
	Update(promo *models.PromoCode) error
	Delete(id uint) (bool, error)
	IncrementUsage(id uint) (bool, error)
	WithTx(tx *gorm.DB) *GormPromoCodeRepository
}

// GormPromoCodeRepository GORM 实现
type GormPromoCodeRepository struct {
	db *gorm.DB
}

// NewPromoCodeRepository 创建优惠码仓库
func NewPromoCodeRepository(db *gorm.DB) *GormPromoCodeRepository {
	return &GormPromoCodeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromoCodeRepository) WithTx(tx *gorm.DB) *GormPromoCodeRepository {
	if tx == nil {
		return r
	}
	return &GormPromoCodeRepository{db: tx}
}

// GetByID 根据 ID 获取优惠码
func (r *GormPromoCodeRepository) GetByID(id uint) (*models.PromoCode, error) {
	var promo models.PromoCode
	if err := r.db.First(&promo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promo, nil
}

// GetByCode 按优惠码查找（两侧均转大写比较）
func (r *GormPromoCodeRepository) GetByCode(code string) (*models.PromoCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, nil
	}
	var promo models.PromoCode
	if err := r.db.Where("UPPER(code) = ?", normalized).First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promo, nil
}

// ListActive 获取全部启用中的优惠码，用于构建快照
func (r *GormPromoCodeRepository) ListActive() ([]models.PromoCode, error) {
	promos := make([]models.PromoCode, 0)
	if err := r.db.Where("active = ?", true).Order("id asc").Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

// List 获取优惠码列表
func (r *GormPromoCodeRepository) List(filter PromoCodeListFilter) ([]models.PromoCode, int64, error) {
	var promos []models.PromoCode
	query := r.db.Model(&models.PromoCode{})

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		query = query.Where("UPPER(code) LIKE ?", "%"+strings.ToUpper(keyword)+"%")
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("created_at desc, id desc").Find(&promos).Error; err != nil {
		return nil, 0, err
	}
	return promos, total, nil
}

// Create 创建优惠码
func (r *GormPromoCodeRepository) Create(promo *models.PromoCode) error {
	return r.db.Create(promo).Error
}

// Update 更新优惠码，不覆盖 current_uses 与 created_at
func (r *GormPromoCodeRepository) Update(promo *models.PromoCode) error {
	return r.db.Model(promo).
		Select("code", "discount_type", "discount_value", "min_order_amount", "max_uses", "active", "expires_at", "updated_at").
		Updates(promo).Error
}

// Delete 删除优惠码，返回是否存在并被删除
func (r *GormPromoCodeRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.PromoCode{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementUsage 条件递增使用次数
// 仅当未设置上限或 current_uses < max_uses 时更新，返回是否成功占用一次。
func (r *GormPromoCodeRepository) IncrementUsage(id uint) (bool, error) {
	if id == 0 {
		return false, errors.New("invalid promo code id")
	}
	result := r.db.Model(&models.PromoCode{}).
		Where("id = ? AND (max_uses IS NULL OR current_uses < max_uses)", id).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
