package httpx_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const issuer = "auth-service"

type gate struct {
	access    *jwtx.RS256Signer
	accessV   *jwtx.RS256Verifier
	refresh   *jwtx.HS256Signer
	refreshV  *jwtx.HS256Verifier
	liveness  *fakeSessions
	protected http.Handler
}

type fakeSessions struct {
	active map[string]bool
	err    error
}

func (f *fakeSessions) IsRefreshSessionActive(_ context.Context, c *jwtx.RefreshClaims) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.active[c.SessionID()], nil
}

func newGate(t *testing.T) *gate {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	signer, err := jwtx.NewRS256Signer("k1", key)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	secret := []byte("refresh-secret-refresh-secret-32")
	hsSigner, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	hsVerifier, err := jwtx.NewVerifierHS256(secret, issuer)
	require.NoError(t, err)

	return &gate{
		access:   signer,
		accessV:  jwtx.NewVerifierRS256(keys, issuer),
		refresh:  hsSigner,
		refreshV: hsVerifier,
		liveness: &fakeSessions{active: map[string]bool{}},
	}
}

func (g *gate) accessToken(t *testing.T, sub, role string) string {
	t.Helper()
	tok, err := g.access.Sign(jwtx.NewAccessClaims(sub, role, "", time.Hour, issuer, time.Now()))
	require.NoError(t, err)
	return tok
}

func (g *gate) refreshToken(t *testing.T, sub, sid string) string {
	t.Helper()
	tok, err := g.refresh.Sign(jwtx.NewRefreshClaims(sub, sid, time.Hour, issuer, time.Now()))
	require.NoError(t, err)
	return tok
}

// echoClaims responds with the subject found in context.
func echoClaims(w http.ResponseWriter, r *http.Request) {
	out := map[string]string{"user": httpx.UserIDFromContext(r.Context())}
	if c, ok := httpx.RefreshClaimsFromContext(r.Context()); ok {
		out["session"] = c.SessionID()
	}
	if c, ok := httpx.AccessClaimsFromContext(r.Context()); ok {
		out["role"] = c.Role
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestAuthnMiddleware(t *testing.T) {
	g := newGate(t)
	h := httpx.Chain(http.HandlerFunc(echoClaims), httpx.AuthnMiddleware(g.accessV))

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/self", nil)
		req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: g.accessToken(t, "42", "customer")})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "42", decode(t, rec)["user"])
		require.Equal(t, "customer", decode(t, rec)["role"])
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/self", nil)
		req.Header.Set("Authorization", "Bearer "+g.accessToken(t, "7", "admin"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "7", decode(t, rec)["user"])
	})

	t.Run("missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/self", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("refresh token presented as access token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/self", nil)
		req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: g.refreshToken(t, "42", "1")})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRefreshMiddleware(t *testing.T) {
	g := newGate(t)
	h := httpx.Chain(http.HandlerFunc(echoClaims), httpx.RefreshMiddleware(g.refreshV, g.liveness))

	do := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: httpx.RefreshTokenCookie, Value: token})
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	g.liveness.active["10"] = true

	t.Run("live session", func(t *testing.T) {
		rec := do(g.refreshToken(t, "42", "10"))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "10", decode(t, rec)["session"])
		require.Equal(t, "", decode(t, rec)["user"], "refresh does not set the access subject")
	})

	t.Run("dead session", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, do(g.refreshToken(t, "42", "11")).Code)
	})

	t.Run("missing cookie", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, do("").Code)
	})

	t.Run("access token presented as refresh token", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, do(g.accessToken(t, "42", "admin")).Code)
	})

	t.Run("store failure", func(t *testing.T) {
		g.liveness.err = errors.New("db down")
		defer func() { g.liveness.err = nil }()
		require.Equal(t, http.StatusInternalServerError, do(g.refreshToken(t, "42", "10")).Code)
	})
}

func TestParseRefreshMiddleware_NeverRejects(t *testing.T) {
	g := newGate(t)
	h := httpx.Chain(http.HandlerFunc(echoClaims), httpx.ParseRefreshMiddleware(g.refreshV))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: httpx.RefreshTokenCookie, Value: g.refreshToken(t, "42", "99")})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "99", decode(t, rec)["session"])

	req = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: httpx.RefreshTokenCookie, Value: "garbage"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode(t, rec)["session"])
}

type role string

func TestRequireRole(t *testing.T) {
	g := newGate(t)
	h := httpx.Chain(http.HandlerFunc(echoClaims),
		httpx.AuthnMiddleware(g.accessV),
		httpx.RequireRole[role]("admin", "manager"),
	)

	tests := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"manager", http.StatusOK},
		{"customer", http.StatusForbidden},
		{"superuser", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tenants", nil)
			req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: g.accessToken(t, "1", tt.role)})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				var body httpx.ErrorBody
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.Equal(t, httpx.ForbiddenMessage, body.Errors[0].Msg)
			}
		})
	}
}

func TestRequireRole_WithoutAuthn(t *testing.T) {
	h := httpx.RequireRole("admin")(http.HandlerFunc(echoClaims))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }),
		mw("first"), mw("second"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"first", "second", "handler"}, order)
}
