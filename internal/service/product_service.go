package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/kickslife/storefront/internal/logger"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/repository"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

const maxSlugAttempts = 20

// ProductService 商品业务服务
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ProductInput 创建商品输入
type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	ImageURL      string
	Category      string
	Brand         string
	Sizes         []string
	Colors        []string
	StockQuantity int
	Featured      bool
}

// ProductPatch 局部更新输入，nil 字段保持不变
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	ImageURL      *string
	Category      *string
	Brand         *string
	Sizes         *[]string
	Colors        *[]string
	StockQuantity *int
	Featured      *bool
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// GetByID 商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetBySlug 按 slug 获取商品
func (s *ProductService) GetBySlug(productSlug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(strings.ToLower(strings.TrimSpace(productSlug)))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Categories 全部分类
func (s *ProductService) Categories() ([]string, error) {
	return s.repo.ListCategories()
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if !models.HasCentPrecision(input.Price) {
		return nil, ErrAmountPrecision
	}
	product := &models.Product{
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		Price:         models.NewMoneyFromDecimal(input.Price),
		ImageURL:      strings.TrimSpace(input.ImageURL),
		Category:      strings.TrimSpace(input.Category),
		Brand:         strings.TrimSpace(input.Brand),
		Sizes:         normalizeOptions(input.Sizes),
		Colors:        normalizeOptions(input.Colors),
		StockQuantity: input.StockQuantity,
		Featured:      input.Featured,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	productSlug, err := s.uniqueSlug(product.Name, 0)
	if err != nil {
		return nil, err
	}
	product.Slug = productSlug
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	logger.Infow("product_created", "product_id", product.ID, "slug", product.Slug)
	return product, nil
}

// Update 局部更新商品，名称变化时重新生成 slug
func (s *ProductService) Update(id uint, patch ProductPatch) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	nameChanged := false
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		nameChanged = name != product.Name
		product.Name = name
	}
	if patch.Description != nil {
		product.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		if !models.HasCentPrecision(*patch.Price) {
			return nil, ErrAmountPrecision
		}
		product.Price = models.NewMoneyFromDecimal(*patch.Price)
	}
	if patch.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.Category != nil {
		product.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Brand != nil {
		product.Brand = strings.TrimSpace(*patch.Brand)
	}
	if patch.Sizes != nil {
		product.Sizes = normalizeOptions(*patch.Sizes)
	}
	if patch.Colors != nil {
		product.Colors = normalizeOptions(*patch.Colors)
	}
	if patch.StockQuantity != nil {
		product.StockQuantity = *patch.StockQuantity
	}
	if patch.Featured != nil {
		product.Featured = *patch.Featured
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if nameChanged {
		productSlug, err := s.uniqueSlug(product.Name, product.ID)
		if err != nil {
			return nil, err
		}
		product.Slug = productSlug
	}
	product.UpdatedAt = time.Now()
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}
	return nil
}

// uniqueSlug 基于名称生成 slug，冲突时追加序号
func (s *ProductService) uniqueSlug(name string, excludeID uint) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "product"
	}
	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts+1; attempt++ {
		exists, err := s.repo.ExistsBySlug(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}
	return "", ErrSlugExists
}

func validateProduct(product *models.Product) error {
	if product.Name == "" {
		return ErrProductNameRequired
	}
	if product.Price.IsNegative() {
		return ErrProductPriceInvalid
	}
	if product.StockQuantity < 0 {
		return ErrProductStockInvalid
	}
	return nil
}

func normalizeOptions(values []string) models.StringArray {
	result := make(models.StringArray, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
