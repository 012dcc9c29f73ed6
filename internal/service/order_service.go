package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/kickslife/storefront/internal/constants"
	"github.com/kickslife/storefront/internal/logger"
	"github.com/kickslife/storefront/internal/metrics"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/promo"
	"github.com/kickslife/storefront/internal/queue"
	"github.com/kickslife/storefront/internal/repository"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderNoPrefix = "KL"

// OrderService 订单服务
type OrderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	promoService *PromoService
	queueClient  *queue.Client
	emailService *EmailService
	metrics      *metrics.StoreMetrics
	idNode       *snowflake.Node
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	promoService *PromoService,
	queueClient *queue.Client,
	emailService *EmailService,
	m *metrics.StoreMetrics,
	idNode *snowflake.Node,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		promoService: promoService,
		queueClient:  queueClient,
		emailService: emailService,
		metrics:      m,
		idNode:       idNode,
	}
}

// CreateOrderItem 下单商品项
// Price 为客户端看到的单价，仅用于提示价格变动，不参与计算。
type CreateOrderItem struct {
	ProductID uint
	Quantity  int
	Size      string
	Color     string
	Price     decimal.Decimal
}

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	PromoCode       string
	Items           []CreateOrderItem
	ClientIP        string
}

// OrderPreviewItem 预览商品行
type OrderPreviewItem struct {
	ProductID    uint         `json:"product_id"`
	ProductName  string       `json:"product_name"`
	ImageURL     string       `json:"image_url"`
	Size         string       `json:"size"`
	Color        string       `json:"color"`
	Quantity     int          `json:"quantity"`
	UnitPrice    models.Money `json:"unit_price"`
	LineTotal    models.Money `json:"line_total"`
	PriceChanged bool         `json:"price_changed"`
}

// OrderPreview 订单金额预览
type OrderPreview struct {
	Subtotal       models.Money       `json:"subtotal"`
	DiscountAmount models.Money       `json:"discount_amount"`
	TotalAmount    models.Money       `json:"total_amount"`
	Items          []OrderPreviewItem `json:"items"`
	Promo          *promo.Result      `json:"-"`
}

type orderLine struct {
	product *models.Product
	item    CreateOrderItem
}

// Preview 计算订单金额，优惠码走结算预览通道且不占用次数
func (s *OrderService) Preview(ctx context.Context, input CreateOrderInput) (*OrderPreview, error) {
	items, err := mergeCreateOrderItems(input.Items)
	if err != nil {
		return nil, err
	}
	lines, err := resolveOrderLines(s.productRepo, items)
	if err != nil {
		return nil, err
	}
	preview := buildOrderPreview(lines)
	if strings.TrimSpace(input.PromoCode) == "" {
		return preview, nil
	}
	result, err := s.promoService.Validate(ctx, input.PromoCode, preview.Subtotal.Decimal)
	if err != nil {
		return nil, err
	}
	preview.Promo = &result
	if result.Valid {
		preview.DiscountAmount = models.NewMoneyFromDecimal(result.Discount)
		preview.TotalAmount = models.NewMoneyFromDecimal(promo.Total(preview.Subtotal.Decimal, result.Discount))
	}
	return preview, nil
}

// Create 创建订单
// 价格、优惠码复核、库存扣减与使用次数占用在同一事务内完成。
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	normalized, err := normalizeCreateOrderInput(input)
	if err != nil {
		return nil, err
	}
	items, err := mergeCreateOrderItems(normalized.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:         s.generateOrderNo(),
		CustomerName:    normalized.CustomerName,
		CustomerEmail:   normalized.CustomerEmail,
		CustomerPhone:   normalized.CustomerPhone,
		ShippingAddress: normalized.ShippingAddress,
		Status:          constants.OrderStatusPending,
		ClientIP:        normalized.ClientIP,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var applied *promo.Result
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		lines, err := resolveOrderLines(productRepo, items)
		if err != nil {
			return err
		}
		preview := buildOrderPreview(lines)
		subtotal := preview.Subtotal.Decimal
		discount := decimal.Zero

		if normalized.PromoCode != "" {
			result, err := s.promoService.EvaluateInTx(tx, normalized.PromoCode, subtotal)
			if err != nil {
				return err
			}
			if !result.Valid {
				return &PromoRejectedError{Result: result}
			}
			discount = result.Discount
			promoID := result.Code.ID
			order.PromoCodeID = &promoID
			order.PromoCode = result.Code.Code
			applied = &result
		}

		order.Subtotal = models.NewMoneyFromDecimal(subtotal)
		order.DiscountAmount = models.NewMoneyFromDecimal(discount)
		order.TotalAmount = models.NewMoneyFromDecimal(promo.Total(subtotal, discount))

		orderItems := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   line.product.ID,
				ProductName: line.product.Name,
				Quantity:    line.item.Quantity,
				Size:        line.item.Size,
				Color:       line.item.Color,
				Price:       line.product.Price,
				CreatedAt:   now,
			})
		}
		if err := s.orderRepo.WithTx(tx).Create(order, orderItems); err != nil {
			return err
		}
		for _, line := range lines {
			ok, err := productRepo.DecrementStock(line.product.ID, line.item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInsufficientStock
			}
		}
		if order.PromoCodeID != nil {
			if err := s.promoService.Redeem(tx, *order.PromoCodeID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var rejected *PromoRejectedError
		switch {
		case errors.As(err, &rejected):
			return nil, err
		case errors.Is(err, ErrPromoUsageExceeded):
			return nil, &PromoRejectedError{Result: promo.Result{
				Valid:    false,
				Message:  "Promo code usage limit reached",
				Category: promo.CategoryUsageExceeded,
				Discount: decimal.Zero,
			}}
		case errors.Is(err, ErrProductNotFound),
			errors.Is(err, ErrInsufficientStock),
			errors.Is(err, ErrProductOptionInvalid),
			errors.Is(err, ErrInvalidOrderItem):
			return nil, err
		default:
			logger.Errorw("order_create_failed", "order_no", order.OrderNo, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
		}
	}

	if applied != nil {
		s.promoService.Invalidate(order.PromoCode)
	}
	s.metrics.ObserveOrderCreated(order.PromoCodeID != nil)
	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"subtotal", order.Subtotal.String(),
		"discount_amount", order.DiscountAmount.String(),
		"total_amount", order.TotalAmount.String(),
		"promo_code", order.PromoCode,
	)
	s.dispatchOrderNotify(ctx, order)
	return order, nil
}

// GetForAdmin 后台订单详情
func (s *OrderService) GetForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListForAdmin 后台订单列表
func (s *OrderService) ListForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" && !isKnownOrderStatus(filter.Status) {
		return nil, 0, ErrOrderStatusInvalid
	}
	orders, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

// UpdateStatus 后台更新订单状态
// 已取消订单不可再流转；取消时回补库存，优惠码使用次数不回退。
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, targetStatus string) (*models.Order, error) {
	target := strings.ToLower(strings.TrimSpace(targetStatus))
	if !isKnownOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == target {
		return order, nil
	}
	if order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusInvalid
	}

	fromStatus := order.Status
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.orderRepo.WithTx(tx).UpdateStatus(order.ID, fromStatus, target)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOrderStatusConflict
		}
		if target != constants.OrderStatusCancelled {
			return nil
		}
		productRepo := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			if err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOrderStatusConflict) {
			return nil, err
		}
		logger.Errorw("order_update_status_failed", "order_id", order.ID, "from", fromStatus, "to", target, "error", err)
		return nil, ErrOrderUpdateFailed
	}
	order.Status = target
	order.UpdatedAt = time.Now()
	logger.Infow("order_status_updated", "order_id", order.ID, "order_no", order.OrderNo, "from", fromStatus, "to", target)

	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{OrderID: order.ID, Status: target}); err != nil {
			logger.Warnw("order_enqueue_status_email_failed", "order_id", order.ID, "status", target, "error", err)
		}
	}
	return order, nil
}

// dispatchOrderNotify 新订单通知：优先入队，队列关闭时异步直发
func (s *OrderService) dispatchOrderNotify(ctx context.Context, order *models.Order) {
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderNotify(queue.OrderNotifyPayload{OrderID: order.ID}); err != nil {
			logger.Warnw("order_enqueue_notify_failed", "order_id", order.ID, "error", err)
		}
		return
	}
	if s.emailService == nil || !s.emailService.Enabled() {
		return
	}
	snapshot := *order
	go func() {
		if err := s.emailService.SendOrderNotification(context.WithoutCancel(ctx), &snapshot); err != nil {
			logger.Warnw("order_notify_inline_failed", "order_id", snapshot.ID, "error", err)
		}
	}()
}

func (s *OrderService) generateOrderNo() string {
	if s.idNode != nil {
		return orderNoPrefix + s.idNode.Generate().String()
	}
	return orderNoPrefix + time.Now().Format("20060102150405.000000")
}

// resolveOrderLines 加载商品并校验尺码、配色
func resolveOrderLines(productRepo repository.ProductRepository, items []CreateOrderItem) ([]orderLine, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	lines := make([]orderLine, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		if !optionAllowed(product.Sizes, item.Size) || !optionAllowed(product.Colors, item.Color) {
			return nil, ErrProductOptionInvalid
		}
		lines = append(lines, orderLine{product: product, item: item})
	}
	return lines, nil
}

func buildOrderPreview(lines []orderLine) *OrderPreview {
	subtotal := decimal.Zero
	items := make([]OrderPreviewItem, 0, len(lines))
	for _, line := range lines {
		unitPrice := line.product.Price.Decimal
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(line.item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, OrderPreviewItem{
			ProductID:    line.product.ID,
			ProductName:  line.product.Name,
			ImageURL:     line.product.ImageURL,
			Size:         line.item.Size,
			Color:        line.item.Color,
			Quantity:     line.item.Quantity,
			UnitPrice:    line.product.Price,
			LineTotal:    models.NewMoneyFromDecimal(lineTotal),
			PriceChanged: !line.item.Price.IsZero() && !line.item.Price.Equal(unitPrice),
		})
	}
	return &OrderPreview{
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		DiscountAmount: models.NewMoneyFromDecimal(decimal.Zero),
		TotalAmount:    models.NewMoneyFromDecimal(subtotal),
		Items:          items,
	}
}

// mergeCreateOrderItems 合并相同商品、尺码、配色的行
func mergeCreateOrderItems(items []CreateOrderItem) ([]CreateOrderItem, error) {
	if len(items) == 0 {
		return nil, ErrOrderItemsRequired
	}
	type lineKey struct {
		productID uint
		size      string
		color     string
	}
	merged := make([]CreateOrderItem, 0, len(items))
	index := make(map[lineKey]int, len(items))
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity < 1 || item.Price.IsNegative() {
			return nil, ErrInvalidOrderItem
		}
		item.Size = strings.TrimSpace(item.Size)
		item.Color = strings.TrimSpace(item.Color)
		key := lineKey{productID: item.ProductID, size: item.Size, color: item.Color}
		if pos, ok := index[key]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

func normalizeCreateOrderInput(input CreateOrderInput) (CreateOrderInput, error) {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerEmail = strings.TrimSpace(input.CustomerEmail)
	input.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
	input.ShippingAddress = strings.TrimSpace(input.ShippingAddress)
	input.PromoCode = promo.Normalize(input.PromoCode)
	input.ClientIP = strings.TrimSpace(input.ClientIP)
	if input.CustomerName == "" {
		return input, ErrCustomerNameRequired
	}
	if addr, err := mail.ParseAddress(input.CustomerEmail); err != nil || addr.Address != input.CustomerEmail {
		return input, ErrCustomerEmailInvalid
	}
	if input.ShippingAddress == "" {
		return input, ErrShippingAddressNeeded
	}
	return input, nil
}

func optionAllowed(options models.StringArray, value string) bool {
	if value == "" || len(options) == 0 {
		return true
	}
	for _, option := range options {
		if strings.EqualFold(strings.TrimSpace(option), value) {
			return true
		}
	}
	return false
}

func isKnownOrderStatus(status string) bool {
	for _, item := range constants.OrderStatuses {
		if item == status {
			return true
		}
	}
	return false
}
