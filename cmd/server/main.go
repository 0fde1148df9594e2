package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dohuuduy/quanlytailieu-sub000/config"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/api/handler"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/api/middleware"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/api/router"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/repository"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/service"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/authz"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/database"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/jwt"
	applogger "github.com/dohuuduy/quanlytailieu-sub000/pkg/logger"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger, cfg.Log.Level == "debug")
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时写操作不限流）
	var limiter middleware.RateLimiter
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，写操作限流将不可用", zap.Error(err))
		rdb = nil
	} else {
		limiter = rdb
	}

	// 5. 令牌校验与访问策略
	jwtMgr := jwt.NewManager(&cfg.Auth)
	az, err := authz.NewAuthorizer()
	if err != nil {
		logger.Fatal("加载访问策略失败", zap.Error(err))
	}

	// 6. 依赖注入: Store → Repository → Service → Handler
	st := store.NewGormStore(db, model.Tables()...)
	repo := repository.NewRepository(st)
	svc := service.NewService(repo, service.OptionsFromConfig(&cfg.Registry), logger)
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(router.Deps{
		Config:     cfg,
		Handler:    h,
		JWT:        jwtMgr,
		Authorizer: az,
		Limiter:    limiter,
		Logger:     logger,
		Health: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return sqlDB.PingContext(ctx)
		},
	})

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("关闭数据库连接失败", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
