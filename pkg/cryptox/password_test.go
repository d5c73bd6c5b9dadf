package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_Hash(t *testing.T) {
	h := NewPasswordHasher("")

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.NotEqual(t, tt.password, digest)
			require.True(t, strings.HasPrefix(digest, "$argon2id$v=19$m=19456,t=2,p=1$"))

			parts := strings.Split(digest, "$")
			require.Len(t, parts, 6)
			require.NotEmpty(t, parts[4], "salt")
			require.NotEmpty(t, parts[5], "hash")

			require.True(t, h.Verify(tt.password, digest))
		})
	}
}

func TestPasswordHasher_UniqueSalts(t *testing.T) {
	h := NewPasswordHasher("")

	d1, err := h.Hash("samepassword")
	require.NoError(t, err)
	d2, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, d1, d2)
	require.True(t, h.Verify("samepassword", d1))
	require.True(t, h.Verify("samepassword", d2))
}

func TestPasswordHasher_VerifyMismatch(t *testing.T) {
	h := NewPasswordHasher("")

	digest, err := h.Hash("Secret123!")
	require.NoError(t, err)

	other, err := h.Hash("Secret123!x")
	require.NoError(t, err)

	require.True(t, h.Verify("Secret123!", digest))
	require.False(t, h.Verify("Secret123!", other))
	require.False(t, h.Verify("secret123!", digest))
	require.False(t, h.Verify("", digest))
}

func TestPasswordHasher_VerifyMalformed(t *testing.T) {
	h := NewPasswordHasher("")

	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"plaintext", "Secret123!"},
		{"wrong algorithm", "$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=x,t=2,p=1$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
		{"missing hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, h.Verify("Secret123!", tt.digest))
		})
	}
}

func TestPasswordHasher_Pepper(t *testing.T) {
	peppered := NewPasswordHasher("pepper-a")

	digest, err := peppered.Hash("Secret123!")
	require.NoError(t, err)

	require.True(t, peppered.Verify("Secret123!", digest))
	require.False(t, NewPasswordHasher("pepper-b").Verify("Secret123!", digest))
	require.False(t, NewPasswordHasher("").Verify("Secret123!", digest))
}
