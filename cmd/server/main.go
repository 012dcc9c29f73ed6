package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/kickslife/storefront/internal/app"
	"github.com/kickslife/storefront/internal/config"
	"github.com/kickslife/storefront/internal/logger"
	"github.com/kickslife/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner(mode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if isWeakSecret(cfg.JWT.SecretKey) {
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
		logger.Warnw("jwt_secret_weak", "mode", cfg.Server.Mode)
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// worker 进程不负责初始化管理员
	if mode != app.ModeWorker {
		bootstrapAdmin(cfg)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func bootstrapAdmin(cfg *config.Config) {
	username := os.Getenv("KL_DEFAULT_ADMIN_USERNAME")
	password := os.Getenv("KL_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && password == "" {
		logger.Warnw("default_admin_skipped", "reason", "KL_DEFAULT_ADMIN_PASSWORD not set")
		return
	}
	if err := models.InitDefaultAdmin(username, password); err != nil {
		logger.Warnw("default_admin_init_failed", "error", err)
	}
}

func printStartupBanner(mode string) {
	fmt.Println(ansiCyan + " _  ___      _          _     _  __     " + ansiReset)
	fmt.Println(ansiCyan + "| |/ (_) ___| | _____  | |   (_)/ _| ___ " + ansiReset)
	fmt.Println(ansiCyan + "| ' /| |/ __| |/ / __| | |   | | |_ / _ \\" + ansiReset)
	fmt.Println(ansiCyan + "| . \\| | (__|   <\\__ \\ | |___| |  _|  __/" + ansiReset)
	fmt.Println(ansiCyan + "|_|\\_\\_|\\___|_|\\_\\___/ |_____|_|_|  \\___|" + ansiReset)
	fmt.Println(ansiYellow + ansiBold + "Kicks Life storefront API" + ansiReset + ansiDim + "  mode=" + mode + ansiReset)
	fmt.Println(ansiDim + "------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	for _, marker := range []string{"change-me", "change-in-production", "your-secret-key", "kickslife-dev"} {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}
