package service

import (
	"context"
	"net/url"

	goshopify "github.com/bold-commerce/go-shopify/v4"

	"imagehub/internal/config"
)

// shopifyService delegates the OAuth flow to the Shopify SDK. The rest of the
// system only ever sees the shop domain string and the exchanged token.
type shopifyService struct {
	app         goshopify.App
	defaultShop string
}

func NewShopifyService(cfg *config.Config) OAuthService {
	return &shopifyService{
		app: goshopify.App{
			ApiKey:      cfg.ShopifyAPIKey,
			ApiSecret:   cfg.ShopifyAPISecret,
			RedirectUrl: cfg.Host + "/auth/callback",
			Scope:       cfg.ShopifyScopes,
		},
		defaultShop: cfg.ShopDomain,
	}
}

func (s *shopifyService) DefaultShop() string {
	return s.defaultShop
}

func (s *shopifyService) AuthorizeURL(shop, state string) (string, error) {
	return s.app.AuthorizeUrl(shop, state)
}

// VerifyCallback checks the HMAC signature Shopify attaches to the callback
// query string.
func (s *shopifyService) VerifyCallback(u *url.URL) (bool, error) {
	return s.app.VerifyAuthorizationURL(u)
}

func (s *shopifyService) ExchangeToken(ctx context.Context, shop, code string) (string, error) {
	return s.app.GetAccessToken(ctx, shop, code)
}
