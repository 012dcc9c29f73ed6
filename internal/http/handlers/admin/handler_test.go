package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kickslife/storefront/internal/authz"
	"github.com/kickslife/storefront/internal/config"
	handlershared "github.com/kickslife/storefront/internal/http/handlers/shared"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/provider"
	"github.com/kickslife/storefront/internal/queue"
	"github.com/kickslife/storefront/internal/repository"
	"github.com/kickslife/storefront/internal/service"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type adminFixture struct {
	router *gin.Engine
	db     *gorm.DB
	h      *Handler
	owner  *models.Admin
}

func setupAdminTest(t *testing.T) *adminFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:admin_%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	models.DB = db

	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "admin-test-secret", ExpireHours: 1}}
	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	queueClient, err := queue.NewClient(&config.QueueConfig{})
	require.NoError(t, err)
	authzService, err := authz.NewService(db)
	require.NoError(t, err)
	require.NoError(t, authzService.BootstrapBuiltinRoles())

	adminRepo := repository.NewAdminRepository(db)
	productRepo := repository.NewProductRepository(db)
	promoService := service.NewPromoService(repository.NewPromoCodeRepository(db), &config.PromoConfig{}, nil)
	authService := service.NewAuthService(cfg, adminRepo)
	container := &provider.Container{
		Config:         cfg,
		QueueClient:    queueClient,
		IDNode:         node,
		AdminRepo:      adminRepo,
		ProductRepo:    productRepo,
		AuthzService:   authzService,
		AuthService:    authService,
		ProductService: service.NewProductService(productRepo),
		PromoService:   promoService,
		UploadService: service.NewUploadService(&config.UploadConfig{
			Dir:               t.TempDir(),
			MaxSize:           1024 * 1024,
			AllowedTypes:      []string{"image/png"},
			AllowedExtensions: []string{".png"},
		}),
		DashboardService: service.NewDashboardService(repository.NewDashboardRepository(db)),
		OrderService: service.NewOrderService(
			repository.NewOrderRepository(db),
			productRepo,
			promoService,
			queueClient,
			service.NewEmailService(&config.EmailConfig{}),
			nil,
			node,
		),
	}
	owner, err := authService.CreateAdmin("owner", "sneakerhead", true)
	require.NoError(t, err)

	h := New(container)
	r := gin.New()
	r.POST("/api/v1/admin/login", h.AdminLogin)
	authed := r.Group("/api/v1/admin", func(c *gin.Context) {
		c.Set(handlershared.ContextKeyAdminID, owner.ID)
		c.Set(handlershared.ContextKeyUsername, owner.Username)
		c.Set(handlershared.ContextKeyAdminIsSuper, true)
		c.Next()
	})
	authed.GET("/me", h.GetAdminMe)
	authed.PUT("/password", h.UpdateAdminPassword)
	authed.GET("/admins", h.ListAdmins)
	authed.POST("/admins", h.CreateAdmin)
	authed.DELETE("/admins/:id", h.DeleteAdmin)
	authed.GET("/authz/roles", h.ListAuthzRoles)
	authed.PUT("/authz/admins/:id/roles", h.SetAuthzAdminRoles)
	authed.GET("/promo-codes", h.GetAdminPromoCodes)
	authed.POST("/promo-codes", h.CreatePromoCode)
	authed.PATCH("/promo-codes/:id", h.UpdatePromoCode)
	authed.DELETE("/promo-codes/:id", h.DeletePromoCode)
	authed.POST("/products", h.CreateProduct)
	authed.PATCH("/products/:id", h.UpdateProduct)
	authed.DELETE("/products/:id", h.DeleteProduct)
	authed.GET("/orders", h.AdminListOrders)
	authed.GET("/orders/:id", h.AdminGetOrder)
	authed.PATCH("/orders/:id/status", h.AdminUpdateOrderStatus)
	authed.GET("/dashboard/stats", h.GetDashboardStats)
	authed.GET("/dashboard/trends", h.GetDashboardTrends)
	authed.POST("/upload", h.UploadFile)

	return &adminFixture{router: r, db: db, h: h, owner: owner}
}

func (fx *adminFixture) do(t *testing.T, method, path, body string) envelope {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestAdminLogin(t *testing.T) {
	fx := setupAdminTest(t)

	env := fx.do(t, http.MethodPost, "/api/v1/admin/login", `{"username":"owner","password":"nope-nope"}`)
	assert.Equal(t, 401, env.StatusCode)
	assert.Equal(t, "Invalid username or password", env.Msg)

	env = fx.do(t, http.MethodPost, "/api/v1/admin/login", `{"username":"owner","password":"sneakerhead"}`)
	require.Equal(t, 0, env.StatusCode)
	var data LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "owner", data.User["username"])

	env = fx.do(t, http.MethodPut, "/api/v1/admin/password", `{"old_password":"sneakerhead","new_password":"short"}`)
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "Password must be at least 8 characters", env.Msg)
}

func TestAdminAccountManagement(t *testing.T) {
	fx := setupAdminTest(t)

	env := fx.do(t, http.MethodPost, "/api/v1/admin/admins", `{"username":"ops","password":"ops-password","roles":["operations"]}`)
	require.Equal(t, 0, env.StatusCode, env.Msg)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	env = fx.do(t, http.MethodPost, "/api/v1/admin/admins", `{"username":"ops","password":"ops-password"}`)
	assert.Equal(t, 409, env.StatusCode)

	env = fx.do(t, http.MethodGet, "/api/v1/admin/admins", "")
	require.Equal(t, 0, env.StatusCode)
	var admins []struct {
		Username string   `json:"username"`
		Roles    []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &admins))
	require.Len(t, admins, 2)
	for _, item := range admins {
		if item.Username == "ops" {
			assert.Equal(t, []string{"role:operations"}, item.Roles)
		}
	}

	env = fx.do(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/authz/admins/%d/roles", created.ID), `{"roles":["__anchor__"]}`)
	assert.Equal(t, 400, env.StatusCode)

	env = fx.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/admins/%d", fx.owner.ID), "")
	assert.Equal(t, 400, env.StatusCode)
	env = fx.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/admins/%d", created.ID), "")
	assert.Equal(t, 0, env.StatusCode)
	env = fx.do(t, http.MethodDelete, "/api/v1/admin/admins/abc", "")
	assert.Equal(t, 400, env.StatusCode)

	env = fx.do(t, http.MethodGet, "/api/v1/admin/me", "")
	require.Equal(t, 0, env.StatusCode)
	var me map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, true, me["is_super"])
}

func TestAdminPromoCodeLifecycle(t *testing.T) {
	fx := setupAdminTest(t)

	env := fx.do(t, http.MethodPost, "/api/v1/admin/promo-codes", `{
		"code": " spring25 ", "discount_type": "percentage", "discount_value": 25,
		"min_order_amount": "80.00", "max_uses": 50, "expires_at": "2030-01-01T00:00:00Z"}`)
	require.Equal(t, 0, env.StatusCode, env.Msg)
	var row models.PromoCode
	require.NoError(t, json.Unmarshal(env.Data, &row))
	assert.Equal(t, "SPRING25", row.Code)
	assert.True(t, row.Active)

	env = fx.do(t, http.MethodPost, "/api/v1/admin/promo-codes", `{"code":"SPRING25","discount_type":"fixed","discount_value":5}`)
	assert.Equal(t, 409, env.StatusCode)
	env = fx.do(t, http.MethodPost, "/api/v1/admin/promo-codes", `{"code":"BOGUS","discount_type":"bogo","discount_value":5}`)
	assert.Equal(t, 400, env.StatusCode)
	env = fx.do(t, http.MethodPost, "/api/v1/admin/promo-codes", `{"code":"LATER","discount_type":"fixed","discount_value":5,"expires_at":"tomorrow"}`)
	assert.Equal(t, 400, env.StatusCode)
	env = fx.do(t, http.MethodPost, "/api/v1/admin/promo-codes", `{"code":"ODDCENTS","discount_type":"percentage","discount_value":12.345}`)
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "Amounts support at most two decimal places", env.Msg)
	env = fx.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/promo-codes/%d", row.ID), `{"min_order_amount":"80.001"}`)
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "Amounts support at most two decimal places", env.Msg)

	require.NoError(t, fx.db.Model(&models.PromoCode{}).Where("id = ?", row.ID).Update("current_uses", 7).Error)
	env = fx.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/promo-codes/%d", row.ID), `{"active":false,"clear_max_uses":true,"expires_at":""}`)
	require.Equal(t, 0, env.StatusCode, env.Msg)
	var updated models.PromoCode
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.False(t, updated.Active)
	assert.Nil(t, updated.MaxUses)
	assert.Nil(t, updated.ExpiresAt)
	assert.Equal(t, 7, updated.CurrentUses)

	env = fx.do(t, http.MethodGet, "/api/v1/admin/promo-codes?active=false", "")
	require.Equal(t, 0, env.StatusCode)
	var list []models.PromoCode
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	env = fx.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/promo-codes/%d", row.ID), "")
	assert.Equal(t, 0, env.StatusCode)
	env = fx.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/promo-codes/%d", row.ID), "")
	assert.Equal(t, 404, env.StatusCode)
	assert.Equal(t, "Promo code not found", env.Msg)
}

func TestAdminProductAndOrderStatus(t *testing.T) {
	fx := setupAdminTest(t)

	env := fx.do(t, http.MethodPost, "/api/v1/admin/products", `{
		"name": "Dunk Low Panda", "price": "109.99", "category": "Lifestyle", "brand": "Nike",
		"sizes": ["9","10"], "colors": ["Black"], "stock_quantity": 4}`)
	require.Equal(t, 0, env.StatusCode, env.Msg)
	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.Equal(t, "dunk-low-panda", product.Slug)

	env = fx.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/products/%d", product.ID), `{"price":"-1"}`)
	assert.Equal(t, 400, env.StatusCode)
	env = fx.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/products/%d", product.ID), `{"price":109.999}`)
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "Amounts support at most two decimal places", env.Msg)
	env = fx.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/products/%d", product.ID), `{"featured":true}`)
	assert.Equal(t, 0, env.StatusCode)

	order, err := fx.h.OrderService.Create(t.Context(), service.CreateOrderInput{
		CustomerName:    "Jordan Lee",
		CustomerEmail:   "jordan@example.com",
		ShippingAddress: "12 Court St",
		Items:           []service.CreateOrderItem{{ProductID: product.ID, Quantity: 1, Size: "9", Color: "Black"}},
	})
	require.NoError(t, err)

	env = fx.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/status", order.ID), `{"status":"teleported"}`)
	assert.Equal(t, 400, env.StatusCode)
	env = fx.do(t, http.MethodPatch, "/api/v1/admin/orders/9999/status", `{"status":"shipped"}`)
	assert.Equal(t, 404, env.StatusCode)
	env = fx.do(t, http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/status", order.ID), `{"status":"shipped"}`)
	require.Equal(t, 0, env.StatusCode, env.Msg)

	env = fx.do(t, http.MethodGet, "/api/v1/admin/orders?status=shipped", "")
	require.Equal(t, 0, env.StatusCode)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)

	env = fx.do(t, http.MethodGet, "/api/v1/admin/orders?created_from=yesterday", "")
	assert.Equal(t, 400, env.StatusCode)

	env = fx.do(t, http.MethodGet, "/api/v1/admin/dashboard/stats", "")
	require.Equal(t, 0, env.StatusCode)
	var stats service.DashboardStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.CompletedOrders)
	assert.Equal(t, "109.99", stats.TotalRevenue.String())

	env = fx.do(t, http.MethodGet, "/api/v1/admin/dashboard/trends?days=0", "")
	assert.Equal(t, 400, env.StatusCode)
}

func TestAdminUploadRequiresFile(t *testing.T) {
	fx := setupAdminTest(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("scene", "product"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 400, env.StatusCode)
	assert.Equal(t, "Please choose a file to upload", env.Msg)
}
