// Package promo 实现优惠码校验与折扣计算。
//
// Evaluate 是下单与结算预览共用的唯一判定入口，它只读取调用方传入的
// Registry，不做任何 I/O，也不修改使用次数。
package promo

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// 折扣类型
const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

// Category 校验结果分类
type Category string

// 校验结果分类常量
const (
	CategoryApplied       Category = "applied"
	CategoryCodeRequired  Category = "code_required"
	CategoryNotFound      Category = "not_found"
	CategoryInactive      Category = "inactive"
	CategoryExpired       Category = "expired"
	CategoryBelowMinimum  Category = "below_minimum"
	CategoryUsageExceeded Category = "usage_exceeded"
	CategoryInvalid       Category = "invalid"
)

var hundred = decimal.NewFromInt(100)

// Code 优惠码判定所需字段
type Code struct {
	ID             uint
	Code           string
	DiscountType   string
	DiscountValue  decimal.Decimal
	MinOrderAmount decimal.Decimal
	MaxUses        *int
	CurrentUses    int
	Active         bool
	ExpiresAt      *time.Time
}

// Result 判定结果
type Result struct {
	Valid    bool
	Message  string
	Category Category
	Discount decimal.Decimal
	Code     *Code
}

// Normalize 统一优惠码格式（去空白并转大写）
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate 判定优惠码能否用于给定小计并计算折扣金额
func Evaluate(code string, subtotal decimal.Decimal, registry Registry, now time.Time) Result {
	normalized := Normalize(code)
	if normalized == "" {
		return reject(CategoryCodeRequired, "Promo code is required", nil)
	}
	if registry == nil {
		return reject(CategoryNotFound, "Promo code not found", nil)
	}

	matched, ok := registry.Lookup(normalized)
	if !ok || matched == nil {
		return reject(CategoryNotFound, "Promo code not found", nil)
	}
	if !matched.Active {
		return reject(CategoryInactive, "Promo code is inactive", matched)
	}
	if matched.ExpiresAt != nil && matched.ExpiresAt.Before(now) {
		return reject(CategoryExpired, "Promo code has expired", matched)
	}
	if subtotal.LessThan(matched.MinOrderAmount) {
		return reject(CategoryBelowMinimum,
			fmt.Sprintf("Minimum order amount of $%s required", matched.MinOrderAmount.StringFixed(2)),
			matched)
	}
	if matched.MaxUses != nil && matched.CurrentUses >= *matched.MaxUses {
		return reject(CategoryUsageExceeded, "Promo code usage limit reached", matched)
	}

	var discount decimal.Decimal
	switch matched.DiscountType {
	case TypePercentage:
		discount = subtotal.Mul(matched.DiscountValue).Div(hundred)
	case TypeFixed:
		discount = matched.DiscountValue
	default:
		return reject(CategoryInvalid, "Promo code is invalid", matched)
	}

	return Result{
		Valid:    true,
		Message:  "Promo code applied successfully",
		Category: CategoryApplied,
		Discount: ClampDiscount(discount.Round(2), subtotal),
		Code:     matched,
	}
}

// ClampDiscount 将折扣限制在 [0, subtotal] 区间
func ClampDiscount(discount, subtotal decimal.Decimal) decimal.Decimal {
	if discount.IsNegative() || subtotal.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}

// Total 计算应付金额 max(subtotal - discount, 0)
func Total(subtotal, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total.Round(2)
}

func reject(category Category, message string, matched *Code) Result {
	return Result{
		Valid:    false,
		Message:  message,
		Category: category,
		Discount: decimal.Zero,
		Code:     matched,
	}
}
