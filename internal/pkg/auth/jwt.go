package auth

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

// SessionCookieName is the cookie set by the OAuth callback.
const SessionCookieName = "shopify_session"

var jwtKey []byte

func init() {
	key := os.Getenv("SESSION_KEY")
	if key == "" {
		log.Println("WARNING: SESSION_KEY is not set — using insecure fallback. Set SESSION_KEY in env for production!")
		key = "insecure-development-key-change-me"
	}
	jwtKey = []byte(key)
}

// Claims carry the installed shop and its offline access token.
type Claims struct {
	Shop        string `json:"shop"`
	AccessToken string `json:"access_token"`
	jwt.StandardClaims
}

func GenerateToken(shop, accessToken string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		Shop:        shop,
		AccessToken: accessToken,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(jwtKey)
}

func ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return jwtKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !tkn.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}

// GetSession reads and validates the session cookie from a request.
func GetSession(r *http.Request) (*Claims, error) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, err
	}

	return ValidateToken(c.Value)
}
