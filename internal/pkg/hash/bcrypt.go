package hash

import (
	"golang.org/x/crypto/bcrypt"
)

// Bcrypt implements Hash using bcrypt.
//
// The plaintext is first reduced to a hex HMAC-SHA256 keyed by the pepper,
// so bcrypt always sees 64 bytes no matter how long the password is or how
// many bytes its characters take. Keep the pepper in configuration, not in
// the database.
type Bcrypt struct {
	cost   int
	pepper *HMACSHA256
}

// NewBcrypt returns a bcrypt-based hasher. A cost outside bcrypt's accepted
// range falls back to bcrypt.DefaultCost.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost, pepper: NewHMACSHA256(pepper)}
}

// Hash hashes plaintext using bcrypt.
func (h *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(h.pepper.Sum(plaintext)), h.cost)
}

// Verify returns true when plaintext matches the hashed value.
func (h *Bcrypt) Verify(hashed, plaintext string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(h.pepper.Sum(plaintext))) == nil
}
