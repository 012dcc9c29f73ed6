package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/kickslife/storefront/internal/http/handlers/shared"
	"github.com/kickslife/storefront/internal/http/response"
	"github.com/kickslife/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminUpdateOrderStatusRequest 更新订单状态请求
type AdminUpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminListOrders 管理端订单列表（含商品明细）
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var promoCodeID uint
	if raw := strings.TrimSpace(c.Query("promo_code_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.invalid_id", nil)
			return
		}
		promoCodeID = uint(parsed)
	}

	orders, total, err := h.OrderService.ListForAdmin(repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        strings.TrimSpace(c.Query("status")),
		Keyword:       strings.TrimSpace(c.Query("keyword")),
		CustomerEmail: strings.TrimSpace(c.Query("customer_email")),
		PromoCodeID:   promoCodeID,
		CreatedFrom:   createdFrom,
		CreatedTo:     createdTo,
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	orderID, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetForAdmin(orderID)
	if err != nil {
		handlershared.RespondMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderStatus 管理端更新订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdminUpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	order, err := h.OrderService.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		handlershared.RespondMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	requestLog(c).Infow("admin_order_status_updated",
		"order_id", order.ID,
		"status", order.Status,
		"operator", c.GetString(handlershared.ContextKeyUsername),
	)
	response.Success(c, order)
}
