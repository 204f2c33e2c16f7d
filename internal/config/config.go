package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string
	Host       string

	MongoURI      string
	MongoDatabase string
	GridFSBucket  string

	ShopifyAPIKey    string
	ShopifyAPISecret string
	ShopifyScopes    string
	ShopDomain       string

	MaxUploadSize int64
	TemplatesDir  string
	StaticDir     string
}

func Load() (*Config, error) {
	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("HOST", "http://localhost:3000")
	viper.SetDefault("MONGODB_DATABASE", "imagehub")
	viper.SetDefault("GRIDFS_BUCKET", "images")
	viper.SetDefault("SHOPIFY_SCOPES", "read_products,write_products")
	viper.SetDefault("MAX_UPLOAD_SIZE", 5*1024*1024)
	viper.SetDefault("TEMPLATES_DIR", "web/templates")
	viper.SetDefault("STATIC_DIR", "web/static")

	if _, err := os.Stat(".env"); err == nil {
		viper.SetConfigFile(".env")
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	viper.AutomaticEnv()

	cfg := &Config{
		ServerPort:       viper.GetString("SERVER_PORT"),
		Host:             strings.TrimSuffix(viper.GetString("HOST"), "/"),
		MongoURI:         viper.GetString("MONGODB_URI"),
		MongoDatabase:    viper.GetString("MONGODB_DATABASE"),
		GridFSBucket:     viper.GetString("GRIDFS_BUCKET"),
		ShopifyAPIKey:    viper.GetString("SHOPIFY_API_KEY"),
		ShopifyAPISecret: viper.GetString("SHOPIFY_API_SECRET"),
		ShopifyScopes:    viper.GetString("SHOPIFY_SCOPES"),
		ShopDomain:       viper.GetString("SHOPIFY_SHOP_DOMAIN"),
		MaxUploadSize:    viper.GetInt64("MAX_UPLOAD_SIZE"),
		TemplatesDir:     viper.GetString("TEMPLATES_DIR"),
		StaticDir:        viper.GetString("STATIC_DIR"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}

	if cfg.ShopifyAPIKey == "" {
		return nil, fmt.Errorf("SHOPIFY_API_KEY is required")
	}

	if cfg.ShopifyAPISecret == "" {
		return nil, fmt.Errorf("SHOPIFY_API_SECRET is required")
	}

	if cfg.ShopDomain == "" {
		return nil, fmt.Errorf("SHOPIFY_SHOP_DOMAIN is required")
	}

	return cfg, nil
}
