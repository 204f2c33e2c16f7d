package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("SHOPIFY_API_KEY", "key")
	t.Setenv("SHOPIFY_API_SECRET", "secret")
	t.Setenv("SHOPIFY_SHOP_DOMAIN", "test-shop.myshopify.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.ServerPort != "3000" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.GridFSBucket != "images" {
		t.Errorf("GridFSBucket = %q", cfg.GridFSBucket)
	}
	if cfg.MaxUploadSize != 5*1024*1024 {
		t.Errorf("MaxUploadSize = %d", cfg.MaxUploadSize)
	}
	if cfg.ShopifyScopes != "read_products,write_products" {
		t.Errorf("ShopifyScopes = %q", cfg.ShopifyScopes)
	}
}

func TestLoadTrimsHostSlash(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HOST", "https://imagehub.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Host != "https://imagehub.example.com" {
		t.Errorf("Host = %q", cfg.Host)
	}
}

func TestLoadMissingMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("SHOPIFY_API_KEY", "key")
	t.Setenv("SHOPIFY_API_SECRET", "secret")
	t.Setenv("SHOPIFY_SHOP_DOMAIN", "test-shop.myshopify.com")

	if _, err := Load(); err == nil {
		t.Error("expected an error when MONGODB_URI is unset")
	}
}

func TestLoadMissingShopifyCredentials(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("SHOPIFY_API_KEY", "")
	t.Setenv("SHOPIFY_API_SECRET", "")
	t.Setenv("SHOPIFY_SHOP_DOMAIN", "test-shop.myshopify.com")

	if _, err := Load(); err == nil {
		t.Error("expected an error when Shopify credentials are unset")
	}
}
