// @title ImageHub
// @version 0.1
// @description Shopify embedded app backend for hosting product images.

// @host localhost:3000
// @BasePath /
// @schemes http

package main

import (
	_ "imagehub/docs"
	"imagehub/internal/app"
	"imagehub/internal/config"
	"imagehub/pkg/logger"
)

func main() {
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Sugar().Fatalf("Config error: %v", err)
	}

	app.Run(cfg, log)
}
