package cache

import (
	"context"
	"testing"
	"time"

	"github.com/kickslife/storefront/internal/config"
	"github.com/kickslife/storefront/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	ctx := context.Background()
	if Enabled() || Client() != nil {
		t.Fatalf("cache should be disabled")
	}
	if err := SetPromoCode(ctx, &models.PromoCode{Code: "SAVE20"}, time.Minute); err != nil {
		t.Fatalf("set on disabled cache should be noop: %v", err)
	}
	if _, hit, err := GetPromoCode(ctx, "save20"); hit || err != nil {
		t.Fatalf("disabled cache must miss, hit=%v err=%v", hit, err)
	}
	if _, hit, err := GetCart(ctx, "token"); hit || err != nil {
		t.Fatalf("disabled cart cache must miss, hit=%v err=%v", hit, err)
	}
	if err := DelPromoCode(ctx, "SAVE20", ""); err != nil {
		t.Fatalf("del on disabled cache should be noop: %v", err)
	}
}

func TestInitRedisAppliesPrefixWhenDisabled(t *testing.T) {
	prev := redisPrefix
	t.Cleanup(func() { redisPrefix = prev })

	if err := InitRedis(&config.RedisConfig{Enabled: false, Prefix: " shop "}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if got := BuildKey("rate:admin_login"); got != "shop:rate:admin_login" {
		t.Fatalf("unexpected key: %s", got)
	}
	if err := InitRedis(nil); err != nil {
		t.Fatalf("init nil redis failed: %v", err)
	}
	if got := BuildKey("rate:admin_login"); got != "kl:rate:admin_login" {
		t.Fatalf("unexpected default key: %s", got)
	}
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	prev := redisPrefix
	redisPrefix = "kl"
	t.Cleanup(func() { redisPrefix = prev })

	if got := BuildKey(promoCodeKey(" save20 ")); got != "kl:promo:code:SAVE20" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := BuildKey(""); got != "kl" {
		t.Fatalf("unexpected empty key: %s", got)
	}
}
