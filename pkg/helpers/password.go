package helpers

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-user-management/internal/domain/service"
)

// maxSecretBytes is the longest input bcrypt reads; longer secrets are cut
// to this length for both hashing and verification.
const maxSecretBytes = 72

// BcryptHasher hashes passwords with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, falling back to
// bcrypt.DefaultCost when cost is outside bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the work factor used for new hashes.
func (h *BcryptHasher) Cost() int { return h.cost }

// Hash hashes the plain text password using bcrypt
func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(secretBytes(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares a plain password with a bcrypt hash
func (h *BcryptHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), secretBytes(plain)) == nil
}

func secretBytes(plain string) []byte {
	b := []byte(plain)
	if len(b) > maxSecretBytes {
		b = b[:maxSecretBytes]
	}
	return b
}

var _ service.PasswordHasher = (*BcryptHasher)(nil)
