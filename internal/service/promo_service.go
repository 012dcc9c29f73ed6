package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/kickslife/storefront/internal/cache"
	"github.com/kickslife/storefront/internal/config"
	"github.com/kickslife/storefront/internal/logger"
	"github.com/kickslife/storefront/internal/metrics"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/promo"
	"github.com/kickslife/storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PromoService 优惠码服务
// 结算预览先查启用优惠码的内存快照，未命中再查缓存与数据库；下单复核始终读库。
type PromoService struct {
	repo     repository.PromoCodeRepository
	cacheTTL time.Duration
	metrics  *metrics.StoreMetrics
	now      func() time.Time

	snapshotMu sync.Mutex
	snapshot   *promo.Snapshot
	snapshotAt time.Time
}

// NewPromoService 创建优惠码服务
func NewPromoService(repo repository.PromoCodeRepository, cfg *config.PromoConfig, m *metrics.StoreMetrics) *PromoService {
	ttl := time.Duration(0)
	if cfg != nil && cfg.CacheTTLSeconds > 0 {
		ttl = time.Duration(cfg.CacheTTLSeconds) * time.Second
	}
	return &PromoService{
		repo:     repo,
		cacheTTL: ttl,
		metrics:  m,
		now:      time.Now,
	}
}

// PromoCodeInput 创建优惠码输入
type PromoCodeInput struct {
	Code           string
	DiscountType   string
	DiscountValue  decimal.Decimal
	MinOrderAmount decimal.Decimal
	MaxUses        *int
	Active         *bool
	ExpiresAt      *time.Time
}

// PromoCodePatch 局部更新输入，nil 字段保持不变
type PromoCodePatch struct {
	Code           *string
	DiscountType   *string
	DiscountValue  *decimal.Decimal
	MinOrderAmount *decimal.Decimal
	MaxUses        *int
	ClearMaxUses   bool
	Active         *bool
	ExpiresAt      *time.Time
	ClearExpiresAt bool
}

// ToPromoCode 转换为判定器使用的结构
func ToPromoCode(row *models.PromoCode) *promo.Code {
	if row == nil {
		return nil
	}
	code := &promo.Code{
		ID:             row.ID,
		Code:           row.Code,
		DiscountType:   row.DiscountType,
		DiscountValue:  row.DiscountValue.Decimal,
		MinOrderAmount: row.MinOrderAmount.Decimal,
		CurrentUses:    row.CurrentUses,
		Active:         row.Active,
	}
	if row.MaxUses != nil {
		maxUses := *row.MaxUses
		code.MaxUses = &maxUses
	}
	if row.ExpiresAt != nil {
		expiresAt := *row.ExpiresAt
		code.ExpiresAt = &expiresAt
	}
	return code
}

// repositoryRegistry 以仓库为数据源的 Registry，查询错误记录在 err 中
type repositoryRegistry struct {
	ctx      context.Context
	repo     repository.PromoCodeRepository
	useCache bool
	cacheTTL time.Duration
	err      error
}

func (r *repositoryRegistry) Lookup(normalized string) (*promo.Code, bool) {
	if r.useCache {
		if cached, hit, err := cache.GetPromoCode(r.ctx, normalized); err == nil && hit {
			return ToPromoCode(cached), true
		} else if err != nil {
			logger.Warnw("promo_cache_get_failed", "code", normalized, "error", err)
		}
	}
	row, err := r.repo.GetByCode(normalized)
	if err != nil {
		r.err = err
		return nil, false
	}
	if row == nil {
		return nil, false
	}
	if r.useCache {
		if err := cache.SetPromoCode(r.ctx, row, r.cacheTTL); err != nil {
			logger.Warnw("promo_cache_set_failed", "code", normalized, "error", err)
		}
	}
	return ToPromoCode(row), true
}

// activeSnapshot 返回启用优惠码的快照，超过 cacheTTL 后从库中重建；未开启缓存时返回 nil
func (s *PromoService) activeSnapshot() *promo.Snapshot {
	if s.cacheTTL <= 0 {
		return nil
	}
	s.snapshotMu.Lock()
	defer s.snapshotMu.Unlock()

	now := s.now()
	if s.snapshot != nil && now.Sub(s.snapshotAt) < s.cacheTTL {
		return s.snapshot
	}
	rows, err := s.repo.ListActive()
	if err != nil {
		logger.Warnw("promo_snapshot_refresh_failed", "error", err)
		return nil
	}
	codes := make([]promo.Code, 0, len(rows))
	for i := range rows {
		codes = append(codes, *ToPromoCode(&rows[i]))
	}
	s.snapshot = promo.NewSnapshot(codes)
	s.snapshotAt = now
	logger.Debugw("promo_snapshot_refreshed", "codes", s.snapshot.Len())
	return s.snapshot
}

func (s *PromoService) dropSnapshot() {
	s.snapshotMu.Lock()
	s.snapshot = nil
	s.snapshotMu.Unlock()
}

// Validate 结算预览校验，不占用使用次数
func (s *PromoService) Validate(ctx context.Context, code string, orderAmount decimal.Decimal) (promo.Result, error) {
	if orderAmount.IsNegative() {
		return promo.Result{}, ErrPromoOrderAmountBad
	}
	fallback := &repositoryRegistry{
		ctx:      ctx,
		repo:     s.repo,
		useCache: s.cacheTTL > 0,
		cacheTTL: s.cacheTTL,
	}
	// 快照只含启用中的优惠码，停用的码经回退查询得到 Inactive 而非 NotFound
	registry := promo.Chain{s.activeSnapshot(), fallback}
	result := promo.Evaluate(code, orderAmount, registry, s.now())
	if fallback.err != nil {
		logger.Errorw("promo_validate_lookup_failed", "code", promo.Normalize(code), "error", fallback.err)
		return promo.Result{}, fallback.err
	}
	s.metrics.ObservePromoEvaluation(metrics.SourcePreview, string(result.Category))
	return result, nil
}

// EvaluateInTx 在事务内读取最新记录后判定，供下单复核使用
func (s *PromoService) EvaluateInTx(tx *gorm.DB, code string, subtotal decimal.Decimal) (promo.Result, error) {
	repo := s.repo.WithTx(tx)
	var lookupErr error
	registry := promo.LookupFunc(func(normalized string) (*promo.Code, bool) {
		row, err := repo.GetByCode(normalized)
		if err != nil {
			lookupErr = err
			return nil, false
		}
		if row == nil {
			return nil, false
		}
		return ToPromoCode(row), true
	})
	result := promo.Evaluate(code, subtotal, registry, s.now())
	if lookupErr != nil {
		return promo.Result{}, lookupErr
	}
	s.metrics.ObservePromoEvaluation(metrics.SourceOrder, string(result.Category))
	return result, nil
}

// Redeem 在事务内占用一次使用次数
func (s *PromoService) Redeem(tx *gorm.DB, promoID uint) error {
	ok, err := s.repo.WithTx(tx).IncrementUsage(promoID)
	if err != nil {
		return err
	}
	if !ok {
		s.metrics.ObserveUsageConflict()
		return ErrPromoUsageExceeded
	}
	return nil
}

// Invalidate 清理优惠码缓存与内存快照
func (s *PromoService) Invalidate(codes ...string) {
	s.dropSnapshot()
	if err := cache.DelPromoCode(context.Background(), codes...); err != nil {
		logger.Warnw("promo_cache_invalidate_failed", "codes", codes, "error", err)
	}
}

// List 后台优惠码列表
func (s *PromoService) List(filter repository.PromoCodeListFilter) ([]models.PromoCode, int64, error) {
	return s.repo.List(filter)
}

// GetByID 后台优惠码详情
func (s *PromoService) GetByID(id uint) (*models.PromoCode, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row, nil
}

// Create 创建优惠码
func (s *PromoService) Create(input PromoCodeInput) (*models.PromoCode, error) {
	if !models.HasCentPrecision(input.DiscountValue) || !models.HasCentPrecision(input.MinOrderAmount) {
		return nil, ErrAmountPrecision
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	row := &models.PromoCode{
		Code:           promo.Normalize(input.Code),
		DiscountType:   strings.ToLower(strings.TrimSpace(input.DiscountType)),
		DiscountValue:  models.NewMoneyFromDecimal(input.DiscountValue),
		MinOrderAmount: models.NewMoneyFromDecimal(input.MinOrderAmount),
		MaxUses:        input.MaxUses,
		Active:         active,
		ExpiresAt:      input.ExpiresAt,
	}
	if err := validatePromoCodeRow(row); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByCode(row.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPromoCodeExists
	}
	if err := s.repo.Create(row); err != nil {
		return nil, err
	}
	s.Invalidate(row.Code)
	logger.Infow("promo_code_created", "promo_code_id", row.ID, "code", row.Code)
	return row, nil
}

// Update 局部更新优惠码，使用次数与创建时间不可修改
func (s *PromoService) Update(id uint, patch PromoCodePatch) (*models.PromoCode, error) {
	row, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	previousCode := row.Code
	if patch.Code != nil {
		row.Code = promo.Normalize(*patch.Code)
	}
	if patch.DiscountType != nil {
		row.DiscountType = strings.ToLower(strings.TrimSpace(*patch.DiscountType))
	}
	if (patch.DiscountValue != nil && !models.HasCentPrecision(*patch.DiscountValue)) ||
		(patch.MinOrderAmount != nil && !models.HasCentPrecision(*patch.MinOrderAmount)) {
		return nil, ErrAmountPrecision
	}
	if patch.DiscountValue != nil {
		row.DiscountValue = models.NewMoneyFromDecimal(*patch.DiscountValue)
	}
	if patch.MinOrderAmount != nil {
		row.MinOrderAmount = models.NewMoneyFromDecimal(*patch.MinOrderAmount)
	}
	if patch.ClearMaxUses {
		row.MaxUses = nil
	} else if patch.MaxUses != nil {
		maxUses := *patch.MaxUses
		row.MaxUses = &maxUses
	}
	if patch.Active != nil {
		row.Active = *patch.Active
	}
	if patch.ClearExpiresAt {
		row.ExpiresAt = nil
	} else if patch.ExpiresAt != nil {
		expiresAt := *patch.ExpiresAt
		row.ExpiresAt = &expiresAt
	}
	if err := validatePromoCodeRow(row); err != nil {
		return nil, err
	}
	if row.Code != previousCode {
		existing, err := s.repo.GetByCode(row.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != row.ID {
			return nil, ErrPromoCodeExists
		}
	}
	row.UpdatedAt = time.Now()
	if err := s.repo.Update(row); err != nil {
		return nil, err
	}
	s.Invalidate(previousCode, row.Code)
	return row, nil
}

// Delete 删除优惠码
func (s *PromoService) Delete(id uint) error {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrNotFound
	}
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.Invalidate(row.Code)
	return nil
}

func validatePromoCodeRow(row *models.PromoCode) error {
	if row.Code == "" {
		return ErrPromoCodeRequired
	}
	switch row.DiscountType {
	case promo.TypePercentage, promo.TypeFixed:
	default:
		return ErrPromoDiscountTypeBad
	}
	if row.DiscountValue.IsNegative() {
		return ErrPromoDiscountValueBad
	}
	if row.MinOrderAmount.IsNegative() {
		return ErrPromoMinAmountBad
	}
	if row.MaxUses != nil && *row.MaxUses < 1 {
		return ErrPromoMaxUsesBad
	}
	return nil
}

// IsPromoRejection 判断错误是否来自优惠码判定
func IsPromoRejection(err error) bool {
	return errors.Is(err, ErrPromoRejected) || errors.Is(err, ErrPromoUsageExceeded)
}
