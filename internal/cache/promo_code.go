package cache

import (
	"context"
	"strings"
	"time"

	"github.com/kickslife/storefront/internal/models"
)

func promoCodeKey(code string) string {
	return "promo:code:" + strings.ToUpper(strings.TrimSpace(code))
}

// GetPromoCode 读取优惠码缓存（仅供结算预览使用）
func GetPromoCode(ctx context.Context, code string) (*models.PromoCode, bool, error) {
	var promo models.PromoCode
	hit, err := GetJSON(ctx, promoCodeKey(code), &promo)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &promo, true, nil
}

// SetPromoCode 写入优惠码缓存
func SetPromoCode(ctx context.Context, promo *models.PromoCode, ttl time.Duration) error {
	if promo == nil || ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, promoCodeKey(promo.Code), promo, ttl)
}

// DelPromoCode 删除优惠码缓存
func DelPromoCode(ctx context.Context, codes ...string) error {
	keys := make([]string, 0, len(codes))
	for _, code := range codes {
		if strings.TrimSpace(code) == "" {
			continue
		}
		keys = append(keys, promoCodeKey(code))
	}
	return Del(ctx, keys...)
}
