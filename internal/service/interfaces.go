package service

import (
	"context"
	"io"
	"net/url"

	"imagehub/internal/model"
)

type ImageService interface {
	Upload(ctx context.Context, originalName, contentType string, data []byte) (*model.Image, error)
	Get(ctx context.Context, id string) (*model.Image, io.ReadCloser, error)
	List(ctx context.Context) ([]model.ImageView, error)
}

type OAuthService interface {
	DefaultShop() string
	AuthorizeURL(shop, state string) (string, error)
	VerifyCallback(u *url.URL) (bool, error)
	ExchangeToken(ctx context.Context, shop, code string) (string, error)
}
