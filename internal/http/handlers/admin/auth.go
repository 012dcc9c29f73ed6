package admin

import (
	"errors"
	"time"

	handlershared "github.com/kickslife/storefront/internal/http/handlers/shared"
	"github.com/kickslife/storefront/internal/http/response"
	"github.com/kickslife/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			requestLog(c).Infow("admin_login_rejected", "username", req.Username, "client_ip", c.ClientIP())
			respondError(c, response.CodeUnauthorized, "error.login_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":       admin.ID,
			"username": admin.Username,
			"is_super": admin.IsSuper,
		},
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// GetAdminMe 当前管理员信息与角色
func (h *Handler) GetAdminMe(c *gin.Context) {
	adminID, ok := handlershared.GetAdminID(c)
	if !ok {
		return
	}
	roles := []string{}
	if h.AuthzService != nil {
		assigned, err := h.AuthzService.GetAdminRoles(adminID)
		if err != nil {
			handlershared.RespondMappedError(c, err, authzErrorRules, response.CodeInternal, "error.internal")
			return
		}
		roles = assigned
	}
	response.Success(c, gin.H{
		"admin_id": adminID,
		"username": c.GetString(handlershared.ContextKeyUsername),
		"is_super": handlershared.IsSuperAdmin(c),
		"roles":    roles,
	})
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改管理员密码，成功后旧 token 失效
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := handlershared.GetAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		handlershared.RespondMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"updated": true})
}
