package main

import (
	"context"
	"os"
	"time"

	"littlelemon/internal/config"
	"littlelemon/internal/handler"
	"littlelemon/internal/infra/cache"
	"littlelemon/internal/infra/db"
	infraRepo "littlelemon/internal/infra/repository"
	"littlelemon/internal/server"
	"littlelemon/internal/usecase"
	"littlelemon/internal/validator"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	//.envは任意（無ければ環境変数だけで動く）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := server.NewLogger(cfg.LogLevel)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatalf("db migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	created, err := db.Seed(ctx, gormDB, cfg)
	cancel()
	if err != nil {
		logger.Fatalf("db seed: %v", err)
	}
	if created {
		logger.Infof("superuser %q created", cfg.AdminUsername)
	}

	//メニューキャッシュ（REDIS_URLが無ければ使わない）
	var menuCache usecase.MenuCache = usecase.NopMenuCache{}
	if cfg.RedisURL != "" {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(pingCtx, cfg.RedisURL)
		cancel()
		if err != nil {
			logger.Warnf("redis unavailable, running without cache: %v", err)
		} else {
			defer client.Close()
			menuCache = cache.NewRedisMenuCache(client, cfg.MenuCacheTTL, logger)
		}
	}

	//Repository（GORM実装）生成
	txm := infraRepo.NewTxManagerGorm(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	menuItemRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderLineRepo := infraRepo.NewOrderLineGormRepository(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator(userRepo))
	menuUC := usecase.NewMenuUsecase(txm, categoryRepo, menuItemRepo, menuCache)
	cartUC := usecase.NewCartUsecase(txm, cartRepo)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, orderLineRepo, userRepo)
	groupUC := usecase.NewGroupUsecase(userRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(authUC),
		Categories: handler.NewCategoryHandler(menuUC),
		MenuItems:  handler.NewMenuItemHandler(menuUC),
		Cart:       handler.NewCartHandler(cartUC),
		Orders:     handler.NewOrderHandler(orderUC),
		Groups:     handler.NewGroupHandler(groupUC),
	}

	e := server.New(cfg, logger, userRepo, handlers)

	//Server起動
	addr := ":" + cfg.Port
	if cfg.Port != "" && cfg.Port[0] == ':' {
		addr = cfg.Port
	}
	logger.Infof("listening on %s", addr)
	if err := server.Start(e, addr); err != nil {
		logger.Errorf("server: %v", err)
		os.Exit(1)
	}
}
