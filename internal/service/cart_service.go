package service

import (
	"context"
	"strings"
	"time"

	"github.com/kickslife/storefront/internal/cache"
	"github.com/kickslife/storefront/internal/config"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine 购物车项详情（用于响应）
type CartLine struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	UnitPrice models.Money    `json:"unit_price"`
	LineTotal models.Money    `json:"line_total"`
	Product   *models.Product `json:"product"`
}

// Cart 购物车
type Cart struct {
	Token    string       `json:"token"`
	Items    []CartLine   `json:"items"`
	Subtotal models.Money `json:"subtotal"`
}

// CartItemInput 购物车项输入
type CartItemInput struct {
	ProductID uint
	Quantity  int
	Size      string
	Color     string
}

// CartService 购物车服务
// Redis 可用时以 JSON 存储并设置过期时间，否则落库到 cart_items。
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	cfg         config.CartConfig
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, cfg config.CartConfig) *CartService {
	if cfg.TTLHours <= 0 {
		cfg.TTLHours = 168
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 50
	}
	if cfg.MaxQuantity <= 0 {
		cfg.MaxQuantity = 10
	}
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		cfg:         cfg,
	}
}

// NewCartToken 生成新的购物车令牌
func NewCartToken() string {
	return uuid.NewString()
}

// NormalizeCartToken 校验并规范化购物车令牌
func NormalizeCartToken(raw string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrCartTokenInvalid
	}
	return parsed.String(), nil
}

// Get 读取购物车并补全商品信息，已下架商品自动剔除
func (s *CartService) Get(ctx context.Context, token string) (*Cart, error) {
	token, err := NormalizeCartToken(token)
	if err != nil {
		return nil, err
	}
	items, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.buildCart(token, items)
}

// Replace 整体替换购物车内容
func (s *CartService) Replace(ctx context.Context, token string, inputs []CartItemInput) (*Cart, error) {
	token, err := NormalizeCartToken(token)
	if err != nil {
		return nil, err
	}
	if len(inputs) > s.cfg.MaxItems {
		return nil, ErrCartTooManyItems
	}
	merged := make([]CreateOrderItem, 0, len(inputs))
	for _, input := range inputs {
		merged = append(merged, CreateOrderItem{
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			Size:      input.Size,
			Color:     input.Color,
		})
	}
	items := make([]models.CartItem, 0, len(inputs))
	if len(merged) > 0 {
		lines, err := mergeCreateOrderItems(merged)
		if err != nil {
			return nil, err
		}
		resolved, err := resolveOrderLines(s.productRepo, lines)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		for _, line := range resolved {
			if line.item.Quantity > s.cfg.MaxQuantity {
				return nil, ErrInvalidOrderItem
			}
			items = append(items, models.CartItem{
				CartToken: token,
				ProductID: line.product.ID,
				Size:      line.item.Size,
				Color:     line.item.Color,
				Quantity:  line.item.Quantity,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
	}
	if err := s.store(ctx, token, items); err != nil {
		return nil, err
	}
	return s.buildCart(token, items)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, token string) error {
	token, err := NormalizeCartToken(token)
	if err != nil {
		return err
	}
	if cache.Enabled() {
		return cache.DelCart(ctx, token)
	}
	return s.cartRepo.ClearByToken(token)
}

func (s *CartService) load(ctx context.Context, token string) ([]models.CartItem, error) {
	if cache.Enabled() {
		items, _, err := cache.GetCart(ctx, token)
		return items, err
	}
	return s.cartRepo.ListByToken(token)
}

func (s *CartService) store(ctx context.Context, token string, items []models.CartItem) error {
	if cache.Enabled() {
		if len(items) == 0 {
			return cache.DelCart(ctx, token)
		}
		return cache.SetCart(ctx, token, items, time.Duration(s.cfg.TTLHours)*time.Hour)
	}
	return s.cartRepo.Replace(token, items)
}

func (s *CartService) buildCart(token string, items []models.CartItem) (*Cart, error) {
	cart := &Cart{Token: token, Items: make([]CartLine, 0, len(items))}
	if len(items) == 0 {
		cart.Subtotal = models.NewMoneyFromDecimal(decimal.Zero)
		return cart, nil
	}
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	subtotal := decimal.Zero
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		cart.Items = append(cart.Items, CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			UnitPrice: product.Price,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
			Product:   product,
		})
	}
	cart.Subtotal = models.NewMoneyFromDecimal(subtotal)
	return cart, nil
}
