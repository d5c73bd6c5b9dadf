package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/pkg/httpx"
)

// CookieConfig controls the attributes of the two token cookies.
type CookieConfig struct {
	Domain     string
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (c CookieConfig) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   maxAge,
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// setTokenCookies writes both tokens with max-age equal to their lifetime.
func (c CookieConfig) setTokenCookies(w http.ResponseWriter, pair domain.TokenPair) {
	http.SetCookie(w, c.cookie(httpx.AccessTokenCookie, pair.AccessToken, int(c.AccessTTL.Seconds())))
	http.SetCookie(w, c.cookie(httpx.RefreshTokenCookie, pair.RefreshToken, int(c.RefreshTTL.Seconds())))
}

func (c CookieConfig) clearTokenCookies(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(httpx.AccessTokenCookie, "", -1))
	http.SetCookie(w, c.cookie(httpx.RefreshTokenCookie, "", -1))
}
