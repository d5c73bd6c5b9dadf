package service

import (
	"crypto/rand"
	"fmt"

	"github.com/aussiebroadwan/identity/pkg/cryptox"
)

// PasswordService hashes and verifies user passwords. It also owns a dummy
// digest so a failed lookup costs the same as a failed comparison.
type PasswordService struct {
	Hasher *cryptox.PasswordHasher

	dummy string
}

// NewPasswordService builds the service and hashes its dummy digest up front,
// so the first unknown-email login is not slower than the rest.
func NewPasswordService(hasher *cryptox.PasswordHasher) (*PasswordService, error) {
	s := &PasswordService{Hasher: hasher}

	dummy, err := s.hasher().Hash(rand.Text())
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	s.dummy = dummy
	return s, nil
}

func (s *PasswordService) hasher() *cryptox.PasswordHasher {
	if s.Hasher == nil {
		return &cryptox.PasswordHasher{}
	}
	return s.Hasher
}

func (s *PasswordService) Hash(password string) (string, error) {
	return s.hasher().Hash(password)
}

func (s *PasswordService) Verify(password, digest string) bool {
	return s.hasher().Verify(password, digest)
}

// VerifyDummy runs one full verification against the dummy digest. Its
// plaintext is random and discarded, so the result is always false.
func (s *PasswordService) VerifyDummy(password string) bool {
	s.hasher().Verify(password, s.dummy)
	return false
}
