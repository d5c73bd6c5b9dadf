package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/internal/auth/domain"
	"github.com/aussiebroadwan/identity/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var (
	testKeyOnce sync.Once
	testKey     *rsa.PrivateKey
)

// rsaKey shares one key across tests; generating 2048 bit keys is slow.
func rsaKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	testKeyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, cryptox.MinRSABits)
		if err != nil {
			panic(err)
		}
		testKey = k
	})
	return testKey
}

type fixture struct {
	store     *sqlite.Store
	tokens    *TokenService
	auth      *AuthService
	tenants   *TenantService
	admins    *AdminUserService
	passwords *PasswordService

	access  *jwtx.RS256Verifier
	refresh *jwtx.HS256Verifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewRS256Signer("test-key", rsaKey(t))
	require.NoError(t, err)

	secret := []byte("refresh-secret-for-tests-only-0123456789")
	refreshSigner, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	refreshVerifier, err := jwtx.NewVerifierHS256(secret, jwtx.DefaultIssuer)
	require.NoError(t, err)

	passwords, err := NewPasswordService(cryptox.NewPasswordHasher("pepper"))
	require.NoError(t, err)
	tokens := &TokenService{
		AccessSigner:  signer,
		RefreshSigner: refreshSigner,
		Store:         st,
		Issuer:        jwtx.DefaultIssuer,
		AccessTTL:     time.Hour,
		RefreshTTL:    365 * 24 * time.Hour,
	}
	users := &UserService{Store: st}
	tenants := &TenantService{Store: st}

	return &fixture{
		store:  st,
		tokens: tokens,
		auth: &AuthService{
			Users:     users,
			Tenants:   tenants,
			Tokens:    tokens,
			Passwords: passwords,
		},
		tenants:   tenants,
		admins:    &AdminUserService{Store: st, Passwords: passwords},
		passwords: passwords,
		access:    jwtx.NewVerifierRS256(keys, jwtx.DefaultIssuer),
		refresh:   refreshVerifier,
	}
}

// sessionOf verifies a refresh token and returns its user and session ids.
func (f *fixture) sessionOf(t *testing.T, token string) (userID, sessionID int64) {
	t.Helper()

	claims, err := f.refresh.VerifyRefresh(token)
	require.NoError(t, err)

	var ok bool
	userID, ok = domain.ParseID(claims.Subject)
	require.True(t, ok)
	sessionID, ok = domain.ParseID(claims.SessionID())
	require.True(t, ok)
	return userID, sessionID
}

func (f *fixture) sessionCount(t *testing.T, userID int64) int64 {
	t.Helper()
	n, err := f.store.Sessions().CountUserSessions(context.Background(), userID)
	require.NoError(t, err)
	return n
}
