package public

import (
	"strings"

	"github.com/kickslife/storefront/internal/http/handlers/shared"
	"github.com/kickslife/storefront/internal/http/response"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 下单商品项
type OrderItemRequest struct {
	ProductID uint         `json:"product_id" binding:"required"`
	Quantity  int          `json:"quantity" binding:"required,min=1"`
	Size      string       `json:"size"`
	Color     string       `json:"color"`
	Price     models.Money `json:"price"`
}

// CreateOrderRequest 下单请求
// 收货信息在服务层校验，以便返回具体的错误提示。
type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerPhone   string             `json:"customer_phone"`
	ShippingAddress string             `json:"shipping_address"`
	PromoCode       string             `json:"promo_code"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PreviewOrderRequest 订单金额预览请求
type PreviewOrderRequest struct {
	PromoCode string             `json:"promo_code"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

func toCreateOrderItems(items []OrderItemRequest) []service.CreateOrderItem {
	result := make([]service.CreateOrderItem, 0, len(items))
	for _, item := range items {
		result = append(result, service.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			Price:     item.Price.Decimal,
		})
	}
	return result
}

// PreviewOrder 计算订单金额与优惠（不落库、不占用优惠码次数）
func (h *Handler) PreviewOrder(c *gin.Context) {
	var req PreviewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	preview, err := h.OrderService.Preview(c.Request.Context(), service.CreateOrderInput{
		PromoCode: req.PromoCode,
		Items:     toCreateOrderItems(req.Items),
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}
	var promoPayload interface{}
	if preview.Promo != nil {
		promoPayload = promoResultPayload(*preview.Promo)
	}
	response.Success(c, gin.H{
		"subtotal":        preview.Subtotal,
		"discount_amount": preview.DiscountAmount,
		"total_amount":    preview.TotalAmount,
		"items":           preview.Items,
		"promo":           promoPayload,
	})
}

// CreateOrder 游客下单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RequestLog(c).Debugw("order_create_bind_failed", "error", err)
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.Create(c.Request.Context(), service.CreateOrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		PromoCode:       req.PromoCode,
		Items:           toCreateOrderItems(req.Items),
		ClientIP:        c.ClientIP(),
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.SuccessWithMsg(c, shared.Translate(c, "order.created"), gin.H{"order": order})
}
