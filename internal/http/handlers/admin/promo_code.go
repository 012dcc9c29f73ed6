package admin

import (
	"strings"
	"time"

	handlershared "github.com/kickslife/storefront/internal/http/handlers/shared"
	"github.com/kickslife/storefront/internal/http/response"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/repository"
	"github.com/kickslife/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreatePromoCodeRequest 创建优惠码请求
type CreatePromoCodeRequest struct {
	Code           string        `json:"code" binding:"required"`
	DiscountType   string        `json:"discount_type" binding:"required"`
	DiscountValue  *models.Money `json:"discount_value" binding:"required"`
	MinOrderAmount *models.Money `json:"min_order_amount"`
	MaxUses        *int          `json:"max_uses"`
	Active         *bool         `json:"active"`
	ExpiresAt      string        `json:"expires_at"`
}

// UpdatePromoCodeRequest 局部更新优惠码请求（current_uses 不可修改）
type UpdatePromoCodeRequest struct {
	Code           *string       `json:"code"`
	DiscountType   *string       `json:"discount_type"`
	DiscountValue  *models.Money `json:"discount_value"`
	MinOrderAmount *models.Money `json:"min_order_amount"`
	MaxUses        *int          `json:"max_uses"`
	ClearMaxUses   bool          `json:"clear_max_uses"`
	Active         *bool         `json:"active"`
	ExpiresAt      *string       `json:"expires_at"`
	ClearExpiresAt bool          `json:"clear_expires_at"`
}

// GetAdminPromoCodes 优惠码列表
func (h *Handler) GetAdminPromoCodes(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	active, err := handlershared.ParseOptionalBool(c.Query("active"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	rows, total, err := h.PromoService.List(repository.PromoCodeListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Active:   active,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, rows, response.BuildPagination(page, pageSize, total))
}

// GetAdminPromoCode 优惠码详情
func (h *Handler) GetAdminPromoCode(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	row, err := h.PromoService.GetByID(id)
	if err != nil {
		handlershared.RespondMappedError(c, err, handlershared.PromoAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, row)
}

// CreatePromoCode 创建优惠码
func (h *Handler) CreatePromoCode(c *gin.Context) {
	var req CreatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	expiresAt, err := parseTimeNullable(strings.TrimSpace(req.ExpiresAt))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.promo_expires_at_invalid", nil)
		return
	}
	minAmount := decimal.Zero
	if req.MinOrderAmount != nil {
		minAmount = req.MinOrderAmount.Decimal
	}

	row, err := h.PromoService.Create(service.PromoCodeInput{
		Code:           req.Code,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue.Decimal,
		MinOrderAmount: minAmount,
		MaxUses:        req.MaxUses,
		Active:         req.Active,
		ExpiresAt:      expiresAt,
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, handlershared.PromoAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, row)
}

// UpdatePromoCode 局部更新优惠码
func (h *Handler) UpdatePromoCode(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	patch := service.PromoCodePatch{
		Code:           req.Code,
		DiscountType:   req.DiscountType,
		MaxUses:        req.MaxUses,
		ClearMaxUses:   req.ClearMaxUses,
		Active:         req.Active,
		ClearExpiresAt: req.ClearExpiresAt,
	}
	if req.DiscountValue != nil {
		value := req.DiscountValue.Decimal
		patch.DiscountValue = &value
	}
	if req.MinOrderAmount != nil {
		value := req.MinOrderAmount.Decimal
		patch.MinOrderAmount = &value
	}
	if req.ExpiresAt != nil {
		raw := strings.TrimSpace(*req.ExpiresAt)
		if raw == "" {
			patch.ClearExpiresAt = true
		} else {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				respondError(c, response.CodeBadRequest, "error.promo_expires_at_invalid", nil)
				return
			}
			patch.ExpiresAt = &parsed
		}
	}

	row, err := h.PromoService.Update(id, patch)
	if err != nil {
		handlershared.RespondMappedError(c, err, handlershared.PromoAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, row)
}

// DeletePromoCode 删除优惠码
func (h *Handler) DeletePromoCode(c *gin.Context) {
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.PromoService.Delete(id); err != nil {
		handlershared.RespondMappedError(c, err, handlershared.PromoAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
