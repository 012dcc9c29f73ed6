package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/kickslife/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats 订单总览
func (h *Handler) GetDashboardStats(c *gin.Context) {
	forceRefresh, err := parseForceRefresh(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	stats, err := h.DashboardService.Stats(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, stats)
}

// GetDashboardTopProducts 热销商品排行
func (h *Handler) GetDashboardTopProducts(c *gin.Context) {
	forceRefresh, err := parseForceRefresh(c)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	rankings, err := h.DashboardService.TopProducts(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, rankings)
}

// GetDashboardTrends 每日订单与营收趋势
func (h *Handler) GetDashboardTrends(c *gin.Context) {
	days, err := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("days", "7")))
	if err != nil || days <= 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	points, err := h.DashboardService.Trends(c.Request.Context(), days, time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, points)
}

// GetDashboardPromoUsage 优惠码使用统计
func (h *Handler) GetDashboardPromoUsage(c *gin.Context) {
	usage, err := h.DashboardService.PromoUsage(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, usage)
}

func parseForceRefresh(c *gin.Context) (bool, error) {
	raw := strings.TrimSpace(c.Query("force_refresh"))
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
