package service

import (
	"errors"

	"github.com/kickslife/storefront/internal/promo"
)

// 通用错误
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrAdminExists         = errors.New("admin already exists")
	ErrCannotDeleteSelf    = errors.New("cannot delete current admin")
	ErrTokenInvalid        = errors.New("token invalid")
	ErrTokenRevoked        = errors.New("token revoked")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidPageArgument = errors.New("invalid pagination argument")
	ErrAmountPrecision     = errors.New("amount has more than two decimal places")
)

// 商品相关错误
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNameRequired = errors.New("product name is required")
	ErrProductPriceInvalid = errors.New("product price is invalid")
	ErrProductStockInvalid = errors.New("product stock is invalid")
	ErrSlugExists          = errors.New("slug already exists")
)

// 优惠码相关错误
var (
	ErrPromoCodeRequired     = errors.New("promo code is required")
	ErrPromoCodeExists       = errors.New("promo code already exists")
	ErrPromoDiscountTypeBad  = errors.New("promo discount type is invalid")
	ErrPromoDiscountValueBad = errors.New("promo discount value is invalid")
	ErrPromoMinAmountBad     = errors.New("promo minimum order amount is invalid")
	ErrPromoMaxUsesBad       = errors.New("promo max uses is invalid")
	ErrPromoRejected         = errors.New("promo code rejected")
	ErrPromoUsageExceeded    = errors.New("promo code usage limit reached")
	ErrPromoOrderAmountBad   = errors.New("order amount is invalid")
	ErrPromoExpiresAtInvalid = errors.New("promo expires_at is invalid")
)

// 订单相关错误
var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderItemsRequired    = errors.New("order items are required")
	ErrInvalidOrderItem      = errors.New("order item is invalid")
	ErrCustomerNameRequired  = errors.New("customer name is required")
	ErrCustomerEmailInvalid  = errors.New("customer email is invalid")
	ErrShippingAddressNeeded = errors.New("shipping address is required")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrProductOptionInvalid  = errors.New("product size or color is invalid")
	ErrOrderStatusInvalid    = errors.New("order status is invalid")
	ErrOrderStatusConflict   = errors.New("order status changed concurrently")
	ErrOrderFetchFailed      = errors.New("order fetch failed")
	ErrOrderCreateFailed     = errors.New("order create failed")
	ErrOrderUpdateFailed     = errors.New("order update failed")
)

// 购物车相关错误
var (
	ErrCartTokenInvalid = errors.New("cart token is invalid")
	ErrCartTooManyItems = errors.New("cart has too many items")
)

// 邮件与上传相关错误
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrEmailProviderFailed       = errors.New("email provider request failed")
	ErrUploadFileTooLarge        = errors.New("upload file too large")
	ErrUploadExtensionNotAllowed = errors.New("upload extension not allowed")
	ErrUploadTypeNotAllowed      = errors.New("upload content type not allowed")
)

// PromoRejectedError 优惠码被拒绝，携带判定结果
type PromoRejectedError struct {
	Result promo.Result
}

func (e *PromoRejectedError) Error() string {
	return e.Result.Message
}

// Unwrap 支持 errors.Is(err, ErrPromoRejected)
func (e *PromoRejectedError) Unwrap() error {
	if e.Result.Category == promo.CategoryUsageExceeded {
		return ErrPromoUsageExceeded
	}
	return ErrPromoRejected
}

// AsPromoRejected 提取优惠码拒绝结果
func AsPromoRejected(err error) (*PromoRejectedError, bool) {
	var target *PromoRejectedError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
