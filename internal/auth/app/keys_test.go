package app

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitAuthKeysStaticRequiresSecrets(t *testing.T) {
	pemKey, err := cryptox.GenerateRSAKey(cryptox.MinRSABits)
	require.NoError(t, err)

	tests := []struct {
		name    string
		cfg     Config
		missing string
	}{
		{
			name:    "no private key",
			cfg:     Config{KeyMode: KeyModeStatic, RefreshTokenSecret: "secret"},
			missing: "AUTH_PRIVATE_KEY",
		},
		{
			name:    "no refresh secret",
			cfg:     Config{KeyMode: KeyModeStatic, PrivateKeyPEM: string(pemKey)},
			missing: "REFRESH_TOKEN_SECRET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InitAuthKeys(tt.cfg, discardLogger())

			var notFound *jwtx.SecretNotFoundError
			require.True(t, errors.As(err, &notFound), "got %v", err)
			require.Equal(t, tt.missing, notFound.Name)
		})
	}
}

func TestInitAuthKeysStaticFromFile(t *testing.T) {
	pemKey, err := cryptox.GenerateRSAKey(cryptox.MinRSABits)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(path, pemKey, 0o600))

	keys, err := InitAuthKeys(Config{
		KeyMode:            KeyModeStatic,
		KeyID:              "kid-1",
		Issuer:             "auth-service",
		PrivateKeyFile:     path,
		RefreshTokenSecret: "refresh-secret",
	}, discardLogger())
	require.NoError(t, err)

	require.Equal(t, "kid-1", keys.AccessSigner.KID())
	require.True(t, keys.KeySet.IsReady())
	require.Len(t, keys.KeySet.PublicJWKS().Keys, 1)
}

func TestInitAuthKeysEphemeralGenerates(t *testing.T) {
	keys, err := InitAuthKeys(Config{
		KeyMode: KeyModeEphemeral,
		KeyID:   "dev",
		Issuer:  "auth-service",
	}, discardLogger())
	require.NoError(t, err)

	claims := jwtx.NewRefreshClaims("1", "2", jwtx.DefaultRefreshTokenTTL, "auth-service", time.Now())
	token, err := keys.RefreshSigner.Sign(claims)
	require.NoError(t, err)

	parsed, err := keys.RefreshVerifier.VerifyRefresh(token)
	require.NoError(t, err)
	require.Equal(t, "2", parsed.SessionID())
}

func TestInitAuthKeysRejectsUnknownMode(t *testing.T) {
	_, err := InitAuthKeys(Config{KeyMode: "rotating"}, discardLogger())
	require.ErrorContains(t, err, "rotating")
}
