package provider

import (
	"github.com/kickslife/storefront/internal/authz"
	"github.com/kickslife/storefront/internal/cache"
	"github.com/kickslife/storefront/internal/config"
	"github.com/kickslife/storefront/internal/logger"
	"github.com/kickslife/storefront/internal/metrics"
	"github.com/kickslife/storefront/internal/models"
	"github.com/kickslife/storefront/internal/queue"
	"github.com/kickslife/storefront/internal/repository"
	"github.com/kickslife/storefront/internal/service"

	"github.com/bwmarrin/snowflake"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Metrics     *metrics.StoreMetrics
	IDNode      *snowflake.Node

	// Repositories
	AdminRepo     repository.AdminRepository
	OrderRepo     repository.OrderRepository
	ProductRepo   repository.ProductRepository
	PromoCodeRepo repository.PromoCodeRepository
	CartRepo      repository.CartRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	EmailService     *service.EmailService
	UploadService    *service.UploadService
	ProductService   *service.ProductService
	PromoService     *service.PromoService
	OrderService     *service.OrderService
	CartService      *service.CartService
	DashboardService *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端，关闭时得到一个不入队的客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(&config.QueueConfig{Enabled: false})
	}

	node, err := snowflake.NewNode(cfg.Server.NodeID)
	if err != nil {
		logger.Errorw("provider_init_snowflake_failed", "node_id", cfg.Server.NodeID, "error", err)
		panic(err)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Metrics:     metrics.Default(),
		IDNode:      node,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.PromoCodeRepo = repository.NewPromoCodeRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UploadService = service.NewUploadService(&c.Config.Upload)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.PromoService = service.NewPromoService(c.PromoCodeRepo, &c.Config.Promo, c.Metrics)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.ProductRepo,
		c.PromoService,
		c.QueueClient,
		c.EmailService,
		c.Metrics,
		c.IDNode,
	)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.Config.Cart)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}

// Close 释放容器持有的外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
