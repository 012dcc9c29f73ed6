package public

import (
	"github.com/kickslife/storefront/internal/http/handlers/shared"
	"github.com/kickslife/storefront/internal/http/response"
	"github.com/kickslife/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// ReplaceCartRequest 整体替换购物车请求
type ReplaceCartRequest struct {
	Items []CartItemRequest `json:"items" binding:"dive"`
}

// GetCart 获取购物车，未携带令牌时签发新令牌并返回空购物车
func (h *Handler) GetCart(c *gin.Context) {
	token := shared.CartToken(c)
	if token == "" {
		token = service.NewCartToken()
	}
	cart, err := h.CartService.Get(c.Request.Context(), token)
	if err != nil {
		shared.RespondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	c.Header(shared.CartTokenHeader, cart.Token)
	response.Success(c, cart)
}

// ReplaceCart 整体替换购物车内容
func (h *Handler) ReplaceCart(c *gin.Context) {
	var req ReplaceCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	token := shared.CartToken(c)
	if token == "" {
		token = service.NewCartToken()
	}
	inputs := make([]service.CartItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, service.CartItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
		})
	}
	cart, err := h.CartService.Replace(c.Request.Context(), token, inputs)
	if err != nil {
		shared.RespondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	c.Header(shared.CartTokenHeader, cart.Token)
	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.CartService.Clear(c.Request.Context(), shared.CartToken(c)); err != nil {
		shared.RespondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
