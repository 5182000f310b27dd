package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"emailbook/backend/internal/config"
	"emailbook/backend/internal/health"
	"emailbook/backend/internal/logger"
	"emailbook/backend/internal/monitoring"
	"emailbook/backend/internal/service"
	"emailbook/backend/internal/storage"
	"emailbook/backend/internal/storage/memory"
	sqlstore "emailbook/backend/internal/storage/sql"
	httptransport "emailbook/backend/internal/transport/http"
)

// main 启动 HTTP API 服务。
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 设置 Gin 模式（基于开发环境标志）
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// 初始化日志系统
	log, err := logger.NewLogger(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		LogFile:     cfg.Log.File,
		MaxSize:     100,
		MaxBackups:  3,
		MaxAge:      28,
		Compress:    true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	log.Info("starting emailbook server",
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("development", cfg.Log.Development),
	)

	// 初始化存储层
	var repo storage.EmailAddressRepository

	if cfg.Database.Type != "" && cfg.Database.DSN != "" {
		// 使用数据库存储
		repo, err = sqlstore.NewStore(
			cfg.Database.Type,
			cfg.Database.DSN,
			cfg.Database.MaxOpenConns,
			cfg.Database.MaxIdleConns,
			cfg.Database.ConnMaxLifetime,
		)
		if err != nil {
			panic(fmt.Sprintf("failed to initialize database storage: %v", err))
		}
		log.Info("using database storage", zap.String("type", cfg.Database.Type))
	} else {
		// 使用内存存储（开发环境）
		repo = memory.NewStore()
		log.Info("using memory storage (development mode)")
	}
	defer repo.Close()

	// 初始化监控系统
	metrics := monitoring.NewMetrics()

	// 初始化健康检查
	healthChecker := health.NewHealthChecker(repo, log)

	// 初始化服务层
	emailAddressService := service.NewEmailAddressService(repo, cfg)

	// 创建 HTTP 服务器
	httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	router := httptransport.NewRouter(httptransport.RouterDependencies{
		Config:              cfg,
		EmailAddressService: emailAddressService,
		Metrics:             metrics,
		Logger:              log,
	})

	// 健康检查处理器（用于 Kubernetes 等）
	router.GET("/health/live", gin.WrapF(healthChecker.LiveEndpoint()))
	router.GET("/health/ready", gin.WrapF(healthChecker.ReadyEndpoint()))

	// Prometheus 指标端点
	router.GET("/metrics", gin.WrapH(metrics.HTTPHandler()))

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// 信号处理
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	// HTTP 服务器 goroutine
	group.Go(func() error {
		log.Info("starting HTTP server", zap.String("address", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
			return err
		}
		return nil
	})

	// 优雅关闭 goroutine
	group.Go(func() error {
		<-groupCtx.Done()

		log.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return httpServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", zap.Error(err))
	}

	log.Info("server stopped")
}
