// Package security holds the credential primitives shared by both
// authentication chains: bcrypt password hashing and the JWT token service.
package security

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher wraps bcrypt with a fixed cost factor taken from configuration.
// Each Hash call salts freshly, so hashing the same plaintext twice yields
// different digests.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given cost. Costs outside bcrypt's
// supported range fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a self-describing bcrypt digest (algorithm, cost, salt and
// hash embedded in one string).
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the digest. It fails closed: a
// malformed digest verifies as false rather than returning an error.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
