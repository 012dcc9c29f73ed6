package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMatchLocale(t *testing.T) {
	assert.Equal(t, LocaleEnUS, MatchLocale(""))
	assert.Equal(t, LocaleEnUS, MatchLocale("en-GB,en;q=0.8"))
	assert.Equal(t, LocaleZhCN, MatchLocale("zh-CN,zh;q=0.9,en;q=0.8"))
	assert.Equal(t, LocaleEnUS, MatchLocale("!!bad!!"))
}

func TestTranslateFallsBack(t *testing.T) {
	assert.Equal(t, "Order placed successfully!", T(LocaleEnUS, "order.created"))
	assert.Equal(t, "下单成功！", T(LocaleZhCN, "order.created"))
	assert.Equal(t, "Order placed successfully!", T("fr-FR", "order.created"))
	assert.Equal(t, "error.unknown_key", T(LocaleEnUS, "error.unknown_key"))
	assert.Equal(t, "Too many requests, please retry in 30 seconds", Sprintf(LocaleEnUS, "error.too_many_requests", 30))
}

func TestCatalogsShareKeys(t *testing.T) {
	for key := range catalog[LocaleEnUS] {
		_, ok := catalog[LocaleZhCN][key]
		assert.True(t, ok, "zh-CN missing key %s", key)
	}
}

func TestResolveLocalePrefersQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/public/products?lang=zh-CN", nil)
	c.Request.Header.Set("Accept-Language", "en-US")
	assert.Equal(t, LocaleZhCN, ResolveLocale(c))
}
