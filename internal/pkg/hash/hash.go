package hash

import (
	"errors"
	"strings"
)

const (
	// AlgorithmBcrypt selects bcrypt for password hashing.
	AlgorithmBcrypt = "bcrypt"
	// AlgorithmArgon2id selects argon2id for password hashing.
	AlgorithmArgon2id = "argon2id"
)

// ErrUnknownAlgorithm is returned by NewPassword for an unsupported algorithm name.
var ErrUnknownAlgorithm = errors.New("hash: unknown password algorithm")

// Hash hashes a plaintext and verifies a plaintext against a stored hash.
type Hash interface {
	Hash(str string) ([]byte, error)
	Verify(hashed, str string) bool
}

// PasswordConfig selects and tunes the password hasher.
type PasswordConfig struct {
	Algorithm    string
	BcryptCost   int
	BcryptPepper string
	Argon2Pepper string
}

// NewPassword builds the password hasher named by cfg.Algorithm.
// An empty algorithm selects bcrypt.
func NewPassword(cfg PasswordConfig) (Hash, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Algorithm)) {
	case "", AlgorithmBcrypt:
		return NewBcrypt(cfg.BcryptCost, cfg.BcryptPepper), nil
	case AlgorithmArgon2id:
		return NewArgon2id(cfg.Argon2Pepper), nil
	default:
		return nil, ErrUnknownAlgorithm
	}
}
