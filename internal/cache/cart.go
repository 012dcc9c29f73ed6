package cache

import (
	"context"
	"time"

	"github.com/kickslife/storefront/internal/models"
)

func cartKey(token string) string {
	return "cart:" + token
}

// GetCart 读取购物车缓存
func GetCart(ctx context.Context, token string) ([]models.CartItem, bool, error) {
	var items []models.CartItem
	hit, err := GetJSON(ctx, cartKey(token), &items)
	if err != nil || !hit {
		return nil, hit, err
	}
	return items, true, nil
}

// SetCart 写入购物车缓存
func SetCart(ctx context.Context, token string, items []models.CartItem, ttl time.Duration) error {
	return SetJSON(ctx, cartKey(token), items, ttl)
}

// DelCart 删除购物车缓存
func DelCart(ctx context.Context, token string) error {
	return Del(ctx, cartKey(token))
}
