package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/dohuuduy/quanlytailieu-sub000/config"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/model"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/repository"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/seed"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/service"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/store"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/database"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/jwt"
	applogger "github.com/dohuuduy/quanlytailieu-sub000/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	fixturePath := flag.String("fixtures", "", "示例数据 YAML 文件，留空使用内置数据")
	reset := flag.Bool("reset", false, "写入前回滚并重建全部表（会清空数据）")
	tokenFor := flag.String("token-for", "admin", "为该用户 key 打印一个开发用访问令牌，留空则不打印")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	fx, err := loadFixtures(*fixturePath)
	if err != nil {
		logger.Fatal("加载示例数据失败", zap.Error(err))
	}

	db, err := database.NewDB(&cfg.Database, logger, false)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if *reset {
		logger.Warn("回滚全部迁移，现有数据将被清空")
		if err := database.ResetMigrations(sqlDB, logger); err != nil {
			logger.Fatal("回滚迁移失败", zap.Error(err))
		}
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	st := store.NewGormStore(db, model.Tables()...)
	svc := service.NewService(repository.NewRepository(st), service.OptionsFromConfig(&cfg.Registry), logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := seed.Apply(ctx, svc, fx, logger)
	if err != nil {
		logger.Fatal("写入示例数据失败", zap.Error(err))
	}

	if *tokenFor == "" {
		return
	}
	u, ok := res.Users[*tokenFor]
	if !ok {
		logger.Fatal("未知用户 key", zap.String("key", *tokenFor))
	}
	token, err := jwt.NewManager(&cfg.Auth).GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		logger.Fatal("生成开发令牌失败", zap.Error(err))
	}
	fmt.Printf("%s (%s) 的开发令牌:\n%s\n", u.Email, u.Role, token)
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.Parse(f)
}
