package shared

import (
	"strings"

	"github.com/kickslife/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextKeyAdminID      = "admin_id"
	ContextKeyUsername     = "username"
	ContextKeyAdminIsSuper = "admin_is_super"
	ContextKeyRequestID    = "request_id"

	CartTokenHeader = "X-Cart-Token"
)

// GetAdminID 读取鉴权中间件写入的管理员 ID。
func GetAdminID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextKeyAdminID)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		if v == 0 {
			RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
			return 0, false
		}
		return v, true
	case int:
		if v <= 0 {
			RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "error.internal", nil)
		return 0, false
	}
}

// CartToken 读取请求携带的购物车令牌（请求头优先，其次查询参数）。
func CartToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(CartTokenHeader)); token != "" {
		return token
	}
	return strings.TrimSpace(c.Query("cart_token"))
}

// IsSuperAdmin 当前请求是否来自超级管理员。
func IsSuperAdmin(c *gin.Context) bool {
	value, exists := c.Get(ContextKeyAdminIsSuper)
	if !exists {
		return false
	}
	flag, ok := value.(bool)
	return ok && flag
}
