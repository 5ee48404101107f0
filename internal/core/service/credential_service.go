package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/prospectius/crm-backend/internal/core/ports"
)

// bcryptCredentials implements ports.CredentialService with a fixed cost.
// The cost is not caller-tunable so every stored digest carries the same
// work factor.
type bcryptCredentials struct {
	cost int
}

// NewCredentialService returns the bcrypt-backed credential service.
func NewCredentialService() ports.CredentialService {
	return &bcryptCredentials{cost: bcrypt.DefaultCost}
}

func (c *bcryptCredentials) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed or
// incompatible digest yields false; corruption in stored credentials must
// never crash the caller.
func (c *bcryptCredentials) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
