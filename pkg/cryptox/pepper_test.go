package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadPepper_GeneratesAndReuses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets", "pepper")

	first, err := LoadPepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := LoadPepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadPepper_ExistingFileTrimmed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("my-pepper\n"), 0o600))

	pepper, err := LoadPepper(path)
	require.NoError(t, err)
	require.Equal(t, "my-pepper", pepper)
}

func TestLoadPepper_EmptyPathDisables(t *testing.T) {
	pepper, err := LoadPepper("")
	require.NoError(t, err)
	require.Empty(t, pepper)
}

func TestGenerateSecret(t *testing.T) {
	s1, err := GenerateSecret(SecretSize256)
	require.NoError(t, err)
	require.Len(t, s1, 43)

	s2, err := GenerateSecret(SecretSize256)
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)

	_, err = GenerateSecret(0)
	require.Error(t, err)
}
