package public

import (
	"github.com/kickslife/storefront/internal/http/handlers/shared"
	"github.com/kickslife/storefront/internal/http/response"
	"github.com/kickslife/storefront/internal/promo"
	"github.com/kickslife/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	shared.RespondError(c, code, key, err)
}

var orderCreateErrorRules = shared.ConcatMappedErrors(
	shared.CustomerErrorRules,
	shared.OrderItemErrorRules,
	[]shared.MappedError{
		{Target: service.ErrPromoOrderAmountBad, Code: response.CodeBadRequest, Key: "error.promo_order_amount_invalid"},
	},
)

var cartErrorRules = shared.ConcatMappedErrors(shared.CartErrorRules, shared.OrderItemErrorRules)

// promoResultPayload 优惠码判定结果的对外结构
func promoResultPayload(result promo.Result) gin.H {
	payload := gin.H{
		"valid":           result.Valid,
		"message":         result.Message,
		"category":        result.Category,
		"discount_amount": result.Discount.StringFixed(2),
		"promo_code_id":   nil,
	}
	if result.Valid && result.Code != nil {
		payload["promo_code_id"] = result.Code.ID
	}
	return payload
}

// respondPromoRejected 优惠码被拒绝时沿用判定器的文案与分类
func respondPromoRejected(c *gin.Context, result promo.Result) {
	response.ErrorWithData(c, response.CodeBadRequest, result.Message, gin.H{
		"valid":    false,
		"category": result.Category,
		"message":  result.Message,
	})
}

// respondOrderError 下单/预览错误输出，优惠码拒绝单独处理
func respondOrderError(c *gin.Context, err error) {
	if rejected, ok := service.AsPromoRejected(err); ok {
		respondPromoRejected(c, rejected.Result)
		return
	}
	shared.RespondMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "error.order_create_failed")
}
