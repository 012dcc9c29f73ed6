package admin

import (
	handlershared "github.com/kickslife/storefront/internal/http/handlers/shared"
	"github.com/kickslife/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateAdminRequest 创建管理员请求
type CreateAdminRequest struct {
	Username string   `json:"username" binding:"required"`
	Password string   `json:"password" binding:"required"`
	IsSuper  bool     `json:"is_super"`
	Roles    []string `json:"roles"`
}

// ListAdmins 管理员列表（含角色）
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.AuthService.ListAdmins()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	items := make([]gin.H, 0, len(admins))
	for _, admin := range admins {
		roles, roleErr := h.AuthzService.GetAdminRoles(admin.ID)
		if roleErr != nil {
			handlershared.RespondMappedError(c, roleErr, authzErrorRules, response.CodeInternal, "error.internal")
			return
		}
		items = append(items, gin.H{
			"id":            admin.ID,
			"username":      admin.Username,
			"is_super":      admin.IsSuper,
			"last_login_at": admin.LastLoginAt,
			"created_at":    admin.CreatedAt,
			"roles":         roles,
		})
	}
	response.Success(c, items)
}

// CreateAdmin 创建管理员并分配角色
func (h *Handler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	admin, err := h.AuthService.CreateAdmin(req.Username, req.Password, req.IsSuper)
	if err != nil {
		handlershared.RespondMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.internal")
		return
	}
	if len(req.Roles) > 0 {
		if err := h.AuthzService.SetAdminRoles(admin.ID, req.Roles); err != nil {
			handlershared.RespondMappedError(c, err, authzErrorRules, response.CodeInternal, "error.internal")
			return
		}
	}
	requestLog(c).Infow("admin_created",
		"admin_id", admin.ID,
		"username", admin.Username,
		"operator", c.GetString(handlershared.ContextKeyUsername),
	)
	response.Success(c, gin.H{
		"id":       admin.ID,
		"username": admin.Username,
		"is_super": admin.IsSuper,
	})
}

// DeleteAdmin 删除管理员
func (h *Handler) DeleteAdmin(c *gin.Context) {
	operatorID, ok := handlershared.GetAdminID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.AuthService.DeleteAdmin(operatorID, id); err != nil {
		handlershared.RespondMappedError(c, err, adminAccountErrorRules, response.CodeInternal, "error.internal")
		return
	}
	if err := h.AuthzService.SetAdminRoles(id, nil); err != nil {
		requestLog(c).Warnw("admin_roles_cleanup_failed", "admin_id", id, "error", err)
	}
	response.Success(c, gin.H{"deleted": true})
}
