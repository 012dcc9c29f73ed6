package shared

import (
	"github.com/kickslife/storefront/internal/http/response"
	"github.com/kickslife/storefront/internal/service"
)

// ProductErrorRules 商品相关错误映射。
var ProductErrorRules = []MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductNameRequired, Code: response.CodeBadRequest, Key: "error.product_name_required"},
	{Target: service.ErrProductPriceInvalid, Code: response.CodeBadRequest, Key: "error.product_price_invalid"},
	{Target: service.ErrProductStockInvalid, Code: response.CodeBadRequest, Key: "error.product_stock_invalid"},
	{Target: service.ErrSlugExists, Code: response.CodeConflict, Key: "error.slug_exists"},
	{Target: service.ErrAmountPrecision, Code: response.CodeBadRequest, Key: "error.amount_precision_invalid"},
}

// OrderItemErrorRules 订单商品行与库存相关错误映射。
var OrderItemErrorRules = []MappedError{
	{Target: service.ErrOrderItemsRequired, Code: response.CodeBadRequest, Key: "error.order_items_required"},
	{Target: service.ErrInvalidOrderItem, Code: response.CodeBadRequest, Key: "error.order_item_invalid"},
	{Target: service.ErrProductNotFound, Code: response.CodeBadRequest, Key: "error.product_not_found"},
	{Target: service.ErrProductOptionInvalid, Code: response.CodeBadRequest, Key: "error.product_option_invalid"},
	{Target: service.ErrInsufficientStock, Code: response.CodeBadRequest, Key: "error.insufficient_stock"},
}

// CustomerErrorRules 收货信息错误映射。
var CustomerErrorRules = []MappedError{
	{Target: service.ErrCustomerNameRequired, Code: response.CodeBadRequest, Key: "error.customer_name_required"},
	{Target: service.ErrCustomerEmailInvalid, Code: response.CodeBadRequest, Key: "error.customer_email_invalid"},
	{Target: service.ErrShippingAddressNeeded, Code: response.CodeBadRequest, Key: "error.shipping_address_required"},
}

// PromoAdminErrorRules 优惠码管理错误映射。
var PromoAdminErrorRules = []MappedError{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.promo_not_found"},
	{Target: service.ErrPromoCodeRequired, Code: response.CodeBadRequest, Key: "error.promo_code_required"},
	{Target: service.ErrPromoCodeExists, Code: response.CodeConflict, Key: "error.promo_code_exists"},
	{Target: service.ErrPromoDiscountTypeBad, Code: response.CodeBadRequest, Key: "error.promo_discount_type_invalid"},
	{Target: service.ErrPromoDiscountValueBad, Code: response.CodeBadRequest, Key: "error.promo_discount_value_invalid"},
	{Target: service.ErrPromoMinAmountBad, Code: response.CodeBadRequest, Key: "error.promo_min_amount_invalid"},
	{Target: service.ErrPromoMaxUsesBad, Code: response.CodeBadRequest, Key: "error.promo_max_uses_invalid"},
	{Target: service.ErrPromoExpiresAtInvalid, Code: response.CodeBadRequest, Key: "error.promo_expires_at_invalid"},
	{Target: service.ErrAmountPrecision, Code: response.CodeBadRequest, Key: "error.amount_precision_invalid"},
}

// CartErrorRules 购物车错误映射。
var CartErrorRules = []MappedError{
	{Target: service.ErrCartTokenInvalid, Code: response.CodeBadRequest, Key: "error.cart_token_invalid"},
	{Target: service.ErrCartTooManyItems, Code: response.CodeBadRequest, Key: "error.cart_too_many_items"},
}

// UploadErrorRules 上传错误映射。
var UploadErrorRules = []MappedError{
	{Target: service.ErrUploadFileTooLarge, Code: response.CodeBadRequest, Key: "error.upload_file_too_large"},
	{Target: service.ErrUploadExtensionNotAllowed, Code: response.CodeBadRequest, Key: "error.upload_extension_not_allowed"},
	{Target: service.ErrUploadTypeNotAllowed, Code: response.CodeBadRequest, Key: "error.upload_type_not_allowed"},
}
