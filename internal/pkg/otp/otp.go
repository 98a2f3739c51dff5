package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"io"
	"math/big"
	"regexp"
)

const (
	// Length is the number of digits in a code.
	Length = 6

	minCode = 100000
	maxCode = 999999
)

var reCode = regexp.MustCompile(`^[0-9]{6}$`)

// ErrEntropy is returned when the random source fails.
var ErrEntropy = errors.New("otp: random source failed")

// Generator produces one-time codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric generates codes uniformly distributed over 100000..999999, so every
// code has exactly six digits and never a leading zero.
type Numeric struct {
	rand io.Reader
}

// NewNumeric returns a generator backed by crypto/rand.
func NewNumeric() *Numeric {
	return &Numeric{rand: rand.Reader}
}

// NewNumericFrom returns a generator reading from r. Tests use it to pin the
// random source.
func NewNumericFrom(r io.Reader) *Numeric {
	return &Numeric{rand: r}
}

// Generate returns a fresh six digit code.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(n.rand, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return "", errors.Join(ErrEntropy, err)
	}
	return v.Add(v, big.NewInt(minCode)).String(), nil
}

// Valid reports whether code has the shape of a generated code.
func Valid(code string) bool {
	return reCode.MatchString(code)
}

// Equal compares a submitted code with the stored one in constant time.
// An empty stored code never matches.
func Equal(stored, submitted string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
