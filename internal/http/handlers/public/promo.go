package public

import (
	"errors"

	"github.com/kickslife/storefront/internal/http/response"
	"github.com/kickslife/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ValidatePromoRequest 优惠码校验请求
type ValidatePromoRequest struct {
	Code        string           `json:"code"`
	OrderAmount *decimal.Decimal `json:"order_amount" binding:"required"`
}

// ValidatePromoCode 结算页校验优惠码，不占用使用次数
func (h *Handler) ValidatePromoCode(c *gin.Context) {
	var req ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	result, err := h.PromoService.Validate(c.Request.Context(), req.Code, *req.OrderAmount)
	if err != nil {
		if errors.Is(err, service.ErrPromoOrderAmountBad) {
			respondError(c, response.CodeBadRequest, "error.promo_order_amount_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if !result.Valid {
		respondPromoRejected(c, result)
		return
	}
	response.SuccessWithMsg(c, result.Message, promoResultPayload(result))
}
