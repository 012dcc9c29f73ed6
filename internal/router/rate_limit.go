package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/kickslife/storefront/internal/cache"
	"github.com/kickslife/storefront/internal/config"
	"github.com/kickslife/storefront/internal/http/response"
	"github.com/kickslife/storefront/internal/i18n"
	"github.com/kickslife/storefront/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 从请求中提取限流维度，返回空串时按客户端 IP 计数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Name          string
	Prefix        string
	WindowSeconds int
	MaxRequests   int
}

// NewRateLimitRule 由配置构建限流规则，key 形如 <redis前缀>:rate:<规则名>:<维度>
// 前缀与缓存共用 cache.BuildKey，需在 cache.InitRedis 之后调用
func NewRateLimitRule(name string, cfg config.RateLimitRuleConfig) RateLimitRule {
	return RateLimitRule{
		Name:          name,
		Prefix:        cache.BuildKey("rate:" + strings.TrimSpace(name)),
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxRequests,
	}
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

// 首次计数时设置过期，返回当前计数与剩余秒数
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("TTL", KEYS[1])}
`)

type windowState struct {
	count      int64
	retryAfter int
}

func hitWindow(ctx context.Context, client *redis.Client, key string, rule RateLimitRule) (windowState, error) {
	values, err := fixedWindowScript.Run(ctx, client, []string{key}, rule.WindowSeconds).Int64Slice()
	if err != nil {
		return windowState{}, err
	}
	if len(values) < 2 {
		return windowState{}, redis.Nil
	}
	state := windowState{count: values[0], retryAfter: int(values[1])}
	if state.retryAfter < 1 {
		state.retryAfter = rule.WindowSeconds
	}
	return state, nil
}

// RateLimitMiddleware 基于 Redis 的限流中间件；Redis 未启用或异常时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}

		subject := ""
		if keyFunc != nil {
			subject = strings.TrimSpace(keyFunc(c))
		}
		if subject == "" {
			subject = c.ClientIP()
		}
		key := subject
		if rule.Prefix != "" {
			key = rule.Prefix + ":" + subject
		}

		state, err := hitWindow(c.Request.Context(), client, key, rule)
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "rule", rule.Name, "error", err)
			c.Next()
			return
		}

		remaining := int64(rule.MaxRequests) - state.count
		if remaining >= 0 {
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			c.Next()
			return
		}

		logger.Infow("rate_limited", "rule", rule.Name, "key", subject, "count", state.count)
		c.Header("Retry-After", strconv.Itoa(state.retryAfter))
		msg := i18n.Sprintf(i18n.ResolveLocale(c), "error.too_many_requests", state.retryAfter)
		response.Error(c, response.CodeTooManyRequests, msg)
		c.Abort()
	}
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 按 JSON 请求体字段（小写）与客户端 IP 组合限流，读取后恢复请求体
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONString(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

func peekJSONString(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
