package i18n

var catalog = map[string]map[string]string{
	LocaleEnUS: {
		"success":                            "success",
		"order.created":                      "Order placed successfully!",
		"error.bad_request":                  "Invalid request parameters",
		"error.invalid_id":                   "Invalid id",
		"error.unauthorized":                 "Unauthorized",
		"error.forbidden":                    "Permission denied",
		"error.not_found":                    "Resource not found",
		"error.internal":                     "Internal server error",
		"error.too_many_requests":            "Too many requests, please retry in %d seconds",
		"error.token_invalid":                "Token is invalid or expired",
		"error.token_revoked":                "Token has been revoked, please sign in again",
		"error.login_invalid":                "Invalid username or password",
		"error.password_invalid":             "Current password is incorrect",
		"error.password_too_short":           "Password must be at least 8 characters",
		"error.admin_exists":                 "Admin username already exists",
		"error.cannot_delete_self":           "You cannot delete your own account",
		"error.role_invalid":                 "Invalid role",
		"error.authz_unavailable":            "Authorization service unavailable",
		"error.product_not_found":            "Product not found",
		"error.product_name_required":        "Product name is required",
		"error.product_price_invalid":        "Product price must not be negative",
		"error.product_stock_invalid":        "Stock quantity must not be negative",
		"error.slug_exists":                  "Could not generate a unique product slug",
		"error.promo_not_found":              "Promo code not found",
		"error.promo_code_required":          "Promo code is required",
		"error.promo_code_exists":            "Promo code already exists",
		"error.promo_discount_type_invalid":  "Discount type must be percentage or fixed",
		"error.promo_discount_value_invalid": "Discount value must not be negative",
		"error.promo_min_amount_invalid":     "Minimum order amount must not be negative",
		"error.promo_max_uses_invalid":       "Max uses must be at least 1",
		"error.promo_order_amount_invalid":   "Order amount must not be negative",
		"error.promo_expires_at_invalid":     "Expiry time must be RFC3339",
		"error.amount_precision_invalid":     "Amounts support at most two decimal places",
		"error.order_not_found":              "Order not found",
		"error.order_items_required":         "Order must contain at least one item",
		"error.order_item_invalid":           "Invalid order item",
		"error.customer_name_required":       "Customer name is required",
		"error.customer_email_invalid":       "A valid email address is required",
		"error.shipping_address_required":    "Shipping address is required",
		"error.insufficient_stock":           "Not enough stock for one of the items",
		"error.product_option_invalid":       "Selected size or color is not available",
		"error.order_status_invalid":         "Invalid order status",
		"error.order_status_conflict":        "Order status changed, please refresh",
		"error.order_fetch_failed":           "Failed to load orders",
		"error.order_create_failed":          "Failed to place order",
		"error.order_update_failed":          "Failed to update order",
		"error.cart_token_invalid":           "Missing or invalid cart token",
		"error.cart_too_many_items":          "Too many items in cart",
		"error.upload_file_required":         "Please choose a file to upload",
		"error.upload_file_too_large":        "File is too large",
		"error.upload_extension_not_allowed": "File extension is not allowed",
		"error.upload_type_not_allowed":      "File type is not allowed",
		"error.upload_failed":                "Failed to save file",
	},
	LocaleZhCN: {
		"success":                            "成功",
		"order.created":                      "下单成功！",
		"error.bad_request":                  "请求参数错误",
		"error.invalid_id":                   "无效的 ID",
		"error.unauthorized":                 "未登录或登录已过期",
		"error.forbidden":                    "无权限访问",
		"error.not_found":                    "资源不存在",
		"error.internal":                     "服务器内部错误",
		"error.too_many_requests":            "请求过于频繁，请 %d 秒后重试",
		"error.token_invalid":                "Token 无效或已过期",
		"error.token_revoked":                "Token 已失效，请重新登录",
		"error.login_invalid":                "用户名或密码错误",
		"error.password_invalid":             "原密码错误",
		"error.password_too_short":           "密码长度不能少于 8 位",
		"error.admin_exists":                 "管理员账号已存在",
		"error.cannot_delete_self":           "不能删除自己的账号",
		"error.role_invalid":                 "角色无效",
		"error.authz_unavailable":            "权限服务不可用",
		"error.product_not_found":            "商品不存在",
		"error.product_name_required":        "商品名称不能为空",
		"error.product_price_invalid":        "商品价格不能为负数",
		"error.product_stock_invalid":        "库存数量不能为负数",
		"error.slug_exists":                  "无法生成唯一的商品标识",
		"error.promo_not_found":              "优惠码不存在",
		"error.promo_code_required":          "请输入优惠码",
		"error.promo_code_exists":            "优惠码已存在",
		"error.promo_discount_type_invalid":  "折扣类型只能为 percentage 或 fixed",
		"error.promo_discount_value_invalid": "折扣数值不能为负数",
		"error.promo_min_amount_invalid":     "最低订单金额不能为负数",
		"error.promo_max_uses_invalid":       "最大使用次数至少为 1",
		"error.promo_order_amount_invalid":   "订单金额不能为负数",
		"error.promo_expires_at_invalid":     "过期时间格式需为 RFC3339",
		"error.amount_precision_invalid":     "金额最多支持两位小数",
		"error.order_not_found":              "订单不存在",
		"error.order_items_required":         "订单至少包含一件商品",
		"error.order_item_invalid":           "订单商品参数错误",
		"error.customer_name_required":       "请填写收货人",
		"error.customer_email_invalid":       "请填写有效的邮箱地址",
		"error.shipping_address_required":    "请填写收货地址",
		"error.insufficient_stock":           "部分商品库存不足",
		"error.product_option_invalid":       "所选尺码或配色不可用",
		"error.order_status_invalid":         "订单状态无效",
		"error.order_status_conflict":        "订单状态已变化，请刷新后重试",
		"error.order_fetch_failed":           "订单查询失败",
		"error.order_create_failed":          "下单失败",
		"error.order_update_failed":          "订单更新失败",
		"error.cart_token_invalid":           "购物车令牌缺失或无效",
		"error.cart_too_many_items":          "购物车商品过多",
		"error.upload_file_required":         "请选择要上传的文件",
		"error.upload_file_too_large":        "文件过大",
		"error.upload_extension_not_allowed": "不支持的文件扩展名",
		"error.upload_type_not_allowed":      "不支持的文件类型",
		"error.upload_failed":                "文件保存失败",
	},
}
