package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"imagehub/internal/pkg/auth"
	"imagehub/internal/service"
)

const stateCookieName = "oauth_state"

type AuthHandler struct {
	shopify service.OAuthService
	log     *zap.Logger
}

func NewAuthHandler(shopify service.OAuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{shopify: shopify, log: log}
}

func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/shopify", h.begin).Methods("GET")
	router.HandleFunc("/auth/callback", h.callback).Methods("GET")
}

// @Summary Begin OAuth
// @Description Redirect the merchant to the Shopify consent screen
// @ID auth-begin
// @Param shop query string false "Shop domain"
// @Success 302
// @Failure 400
// @Failure 500
// @Router /auth/shopify [get]
func (h *AuthHandler) begin(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		shop = h.shopify.DefaultShop()
	}
	if shop == "" {
		http.Error(w, "Missing shop parameter", http.StatusBadRequest)
		return
	}

	state := uuid.NewString()

	authURL, err := h.shopify.AuthorizeURL(shop, state)
	if err != nil {
		h.log.Error("failed to build authorize url", zap.String("shop", shop), zap.Error(err))
		http.Error(w, "Authentication failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   300,
	})

	http.Redirect(w, r, authURL, http.StatusFound)
}

// @Summary OAuth callback
// @Description Complete the OAuth flow and set the session cookie
// @ID auth-callback
// @Success 302
// @Failure 500
// @Router /auth/callback [get]
func (h *AuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	shop := query.Get("shop")
	code := query.Get("code")
	state := query.Get("state")

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		h.log.Error("oauth state mismatch", zap.String("shop", shop))
		h.fail(w)
		return
	}

	ok, err := h.shopify.VerifyCallback(r.URL)
	if err != nil || !ok {
		h.log.Error("oauth hmac verification failed", zap.String("shop", shop), zap.Error(err))
		h.fail(w)
		return
	}

	token, err := h.shopify.ExchangeToken(r.Context(), shop, code)
	if err != nil {
		h.log.Error("oauth token exchange failed", zap.String("shop", shop), zap.Error(err))
		h.fail(w)
		return
	}

	session, err := auth.GenerateToken(shop, token)
	if err != nil {
		h.log.Error("failed to generate session token", zap.String("shop", shop), zap.Error(err))
		h.fail(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    session,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   24 * 60 * 60,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// fail hides the failure cause from the client; details stay in the log.
func (h *AuthHandler) fail(w http.ResponseWriter) {
	http.Error(w, "Authentication callback failed", http.StatusInternalServerError)
}
