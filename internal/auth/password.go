// Package auth holds the credential collaborators: password hashing and
// access-token issuance. Plaintext passwords never leave this package's call
// boundary and are never logged.
package auth

import "golang.org/x/crypto/bcrypt"

// BcryptHasher hashes credentials with bcrypt. The same hasher verifies
// submitted secrets at login.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), h.cost)
}

// Compare reports whether password matches the stored hash.
func (h *BcryptHasher) Compare(hash []byte, password string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}
