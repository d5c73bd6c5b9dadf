package httpx

import (
	"context"

	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID        ctxKey = "user_id"
	CtxKeyAccessClaims  ctxKey = "access_claims"
	CtxKeyRefreshClaims ctxKey = "refresh_claims"
)

func contextWithAccess(ctx context.Context, c *jwtx.AccessClaims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	return context.WithValue(ctx, CtxKeyAccessClaims, c)
}

func contextWithRefresh(ctx context.Context, c *jwtx.RefreshClaims) context.Context {
	return context.WithValue(ctx, CtxKeyRefreshClaims, c)
}

// AccessClaimsFromContext returns the claims attached by AuthnMiddleware.
func AccessClaimsFromContext(ctx context.Context) (*jwtx.AccessClaims, bool) {
	c, ok := ctx.Value(CtxKeyAccessClaims).(*jwtx.AccessClaims)
	return c, ok && c != nil
}

// RefreshClaimsFromContext returns the claims attached by RefreshMiddleware
// or ParseRefreshMiddleware.
func RefreshClaimsFromContext(ctx context.Context) (*jwtx.RefreshClaims, bool) {
	c, ok := ctx.Value(CtxKeyRefreshClaims).(*jwtx.RefreshClaims)
	return c, ok && c != nil
}

// UserIDFromContext returns the access token subject, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeyUserID).(string)
	return id
}
