package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// Cookie names used for token transport.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// SessionChecker reports whether the session behind a refresh token is still
// live. Not found and expired are both reported as false with a nil error.
type SessionChecker interface {
	IsRefreshSessionActive(ctx context.Context, claims *jwtx.RefreshClaims) (bool, error)
}

// AccessTokenFromRequest returns the access token from the accessToken
// cookie, falling back to an Authorization: Bearer header.
func AccessTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	authz := r.Header.Get("Authorization")
	if len(authz) > 7 && strings.EqualFold(authz[:7], "Bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}

// RefreshTokenFromRequest returns the refreshToken cookie value, or "".
func RefreshTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(RefreshTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// AuthnMiddleware verifies the access token and attaches its claims. No
// storage is consulted: a signature-valid token is trusted until it expires.
func AuthnMiddleware(v jwtx.AccessVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := AccessTokenFromRequest(r)
			if raw == "" {
				writeBearerError(w, "missing access token")
				return
			}

			claims, err := v.VerifyAccess(raw)
			if err != nil {
				slogx.FromContext(ctx).Debug("access token rejected", "err", err)
				writeBearerError(w, "invalid access token")
				return
			}

			ctx = slogx.With(contextWithAccess(ctx, claims), "user_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RefreshMiddleware verifies the refresh token signature and then requires
// its session to be live. A dead session is indistinguishable from a bad
// signature for the caller.
func RefreshMiddleware(v jwtx.RefreshVerifier, sessions SessionChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := RefreshTokenFromRequest(r)
			if raw == "" {
				writeBearerError(w, "missing refresh token")
				return
			}

			claims, err := v.VerifyRefresh(raw)
			if err != nil {
				log.Debug("refresh token rejected", "err", err)
				writeBearerError(w, "invalid refresh token")
				return
			}

			active, err := sessions.IsRefreshSessionActive(ctx, claims)
			if err != nil {
				log.Error("session liveness check failed", "err", err)
				WriteError(w, http.StatusInternalServerError, ErrorTypeInternal, "internal server error")
				return
			}
			if !active {
				log.Info("refresh token revoked", "session_id", claims.SessionID())
				writeBearerError(w, "invalid refresh token")
				return
			}

			ctx = slogx.With(contextWithRefresh(ctx, claims), "user_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseRefreshMiddleware attaches refresh claims when the cookie carries a
// signature-valid token and never rejects the request. Logout uses it so an
// already revoked token still lets the client clear its cookies.
func ParseRefreshMiddleware(v jwtx.RefreshVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := RefreshTokenFromRequest(r); raw != "" {
				if claims, err := v.VerifyRefresh(raw); err == nil {
					r = r.WithContext(contextWithRefresh(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeBearerError answers 401 with an RFC 6750 challenge.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, ErrorTypeUnauthorized, desc)
}
