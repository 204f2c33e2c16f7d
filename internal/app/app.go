package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"imagehub/internal/config"
	"imagehub/internal/handler"
	"imagehub/internal/repository"
	"imagehub/internal/service"
)

func Run(cfg *config.Config, log *zap.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := repository.NewDB(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error("failed to disconnect from MongoDB", zap.Error(err))
		}
	}()

	db := client.Database(cfg.MongoDatabase)

	imageRepo := repository.NewImageRepository(db)
	blobRepo, err := repository.NewBlobRepository(db, cfg.GridFSBucket)
	if err != nil {
		log.Fatal("failed to create blob repository", zap.Error(err))
	}

	imageService := service.NewImageService(imageRepo, blobRepo, cfg, log)
	shopifyService := service.NewShopifyService(cfg)

	apiHandler := handler.NewAPIHandler(imageService, log)
	dashboardHandler, err := handler.NewDashboardHandler(imageService, cfg, log)
	if err != nil {
		log.Fatal("failed to create dashboard handler", zap.Error(err))
	}
	authHandler := handler.NewAuthHandler(shopifyService, log)

	server := NewServer(apiHandler, dashboardHandler, authHandler, cfg.StaticDir)
	if err := server.Run(ctx, cfg.ServerPort, log); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}

	log.Info("server exited")
}
