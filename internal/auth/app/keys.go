package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
)

// ephemeralRSABits is the key size generated in ephemeral mode.
const ephemeralRSABits = 2048

// AuthKeys bundles the signing material for both token kinds and the
// verifiers built from it.
type AuthKeys struct {
	KeySet          *jwtx.KeySet
	AccessSigner    *jwtx.RS256Signer
	RefreshSigner   *jwtx.HS256Signer
	AccessVerifier  *jwtx.RS256Verifier
	RefreshVerifier *jwtx.HS256Verifier
}

// InitAuthKeys loads the access token private key and the refresh token
// secret.
//
// Key modes:
//   - "static": both secrets must be configured. A missing one is reported as
//     *jwtx.SecretNotFoundError before the server starts.
//   - "ephemeral": missing secrets are generated on startup and kept only in
//     memory. Every token becomes invalid when the process restarts.
func InitAuthKeys(cfg Config, logger *slog.Logger) (*AuthKeys, error) {
	pemKey, err := loadPrivateKeyPEM(cfg)
	if err != nil {
		return nil, err
	}
	refreshSecret := []byte(cfg.RefreshTokenSecret)

	switch cfg.KeyMode {
	case KeyModeEphemeral:
		if len(pemKey) == 0 {
			if pemKey, err = cryptox.GenerateRSAKey(ephemeralRSABits); err != nil {
				return nil, fmt.Errorf("failed to generate ephemeral signing key: %w", err)
			}
			logger.Warn("generated ephemeral access token key; tokens will not survive a restart")
		}
		if len(refreshSecret) == 0 {
			secret, err := cryptox.GenerateSecret(cryptox.SecretSize512)
			if err != nil {
				return nil, fmt.Errorf("failed to generate ephemeral refresh secret: %w", err)
			}
			refreshSecret = []byte(secret)
			logger.Warn("generated ephemeral refresh token secret; sessions will not survive a restart")
		}
	case KeyModeStatic:
	default:
		return nil, fmt.Errorf("unknown AUTH_KEY_MODE %q", cfg.KeyMode)
	}

	if len(pemKey) == 0 {
		return nil, &jwtx.SecretNotFoundError{Name: "AUTH_PRIVATE_KEY"}
	}
	if len(refreshSecret) == 0 {
		return nil, &jwtx.SecretNotFoundError{Name: "REFRESH_TOKEN_SECRET"}
	}

	accessSigner, err := jwtx.NewSignerRS256(cfg.KeyID, pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load access token key: %w", err)
	}
	refreshSigner, err := jwtx.NewSignerHS256(refreshSecret)
	if err != nil {
		return nil, err
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(accessSigner); err != nil {
		return nil, fmt.Errorf("failed to publish access token key: %w", err)
	}

	refreshVerifier, err := jwtx.NewVerifierHS256(refreshSecret, cfg.Issuer)
	if err != nil {
		return nil, err
	}

	logger.Info("signing keys loaded",
		"mode", cfg.KeyMode,
		"kid", accessSigner.KID(),
		"issuer", cfg.Issuer,
	)

	return &AuthKeys{
		KeySet:          keys,
		AccessSigner:    accessSigner,
		RefreshSigner:   refreshSigner,
		AccessVerifier:  jwtx.NewVerifierRS256(keys, cfg.Issuer),
		RefreshVerifier: refreshVerifier,
	}, nil
}

// loadPrivateKeyPEM prefers the inline key over the key file.
func loadPrivateKeyPEM(cfg Config) ([]byte, error) {
	if cfg.PrivateKeyPEM != "" {
		return []byte(cfg.PrivateKeyPEM), nil
	}
	if cfg.PrivateKeyFile == "" {
		return nil, nil
	}

	b, err := os.ReadFile(filepath.Clean(cfg.PrivateKeyFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read AUTH_PRIVATE_KEY_FILE: %w", err)
	}
	return b, nil
}
