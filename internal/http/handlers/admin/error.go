package admin

import (
	"time"

	"github.com/kickslife/storefront/internal/authz"
	handlershared "github.com/kickslife/storefront/internal/http/handlers/shared"
	"github.com/kickslife/storefront/internal/http/response"
	"github.com/kickslife/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

var adminAccountErrorRules = []handlershared.MappedError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_invalid"},
	{Target: service.ErrPasswordTooShort, Code: response.CodeBadRequest, Key: "error.password_too_short"},
	{Target: service.ErrAdminExists, Code: response.CodeConflict, Key: "error.admin_exists"},
	{Target: service.ErrCannotDeleteSelf, Code: response.CodeBadRequest, Key: "error.cannot_delete_self"},
}

var authzErrorRules = []handlershared.MappedError{
	{Target: authz.ErrUnavailable, Code: response.CodeInternal, Key: "error.authz_unavailable"},
	{Target: authz.ErrRoleRequired, Code: response.CodeBadRequest, Key: "error.role_invalid"},
	{Target: authz.ErrReservedRole, Code: response.CodeBadRequest, Key: "error.role_invalid"},
	{Target: authz.ErrActionRequired, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: authz.ErrAdminRequired, Code: response.CodeBadRequest, Key: "error.invalid_id"},
}

var orderAdminErrorRules = []handlershared.MappedError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrOrderStatusConflict, Code: response.CodeConflict, Key: "error.order_status_conflict"},
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
