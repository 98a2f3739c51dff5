package uid

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// ErrStableNodeIdentityUnavailable indicates no stable node identity is available.
var ErrStableNodeIdentityUnavailable = errors.New("uid: cannot determine stable node identity (machine-id/hostname unavailable)")

// ObjectIDGenerator generates 32-byte ids rendered as 64 hex characters.
//
// Layout: 6 bytes unix millis | 6 bytes node | 2 bytes pid | 4 bytes counter |
// 14 random bytes. The random tail makes ids unguessable, so they can be
// handed out as session tokens.
type ObjectIDGenerator struct {
	nodeID  [6]byte
	pid     uint16
	counter atomic.Uint32
	rand    io.Reader
}

// NewObjectIDGenerator creates a generator with stable node identity.
func NewObjectIDGenerator() (*ObjectIDGenerator, error) {
	src, err := nodeIdentity()
	if err != nil {
		return nil, err
	}

	g := &ObjectIDGenerator{pid: uint16(os.Getpid()), rand: rand.Reader}
	sum := sha256.Sum256([]byte(src))
	copy(g.nodeID[:], sum[:6])

	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	g.counter.Store(binary.BigEndian.Uint32(seed[:]))

	return g, nil
}

func nodeIdentity() (string, error) {
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		if s := strings.TrimSpace(string(b)); s != "" {
			return s, nil
		}
	}

	if h, err := os.Hostname(); err == nil {
		if h = strings.TrimSpace(h); h != "" {
			return h, nil
		}
	}

	return "", ErrStableNodeIdentityUnavailable
}

// Generate returns a new 64-char hex id. It panics if the random source
// fails; a token without its random tail must never be issued.
func (g *ObjectIDGenerator) Generate() string {
	var raw [32]byte

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(time.Now().UnixMilli()))
	copy(raw[0:6], ts[2:])
	copy(raw[6:12], g.nodeID[:])
	binary.BigEndian.PutUint16(raw[12:14], g.pid)
	binary.BigEndian.PutUint32(raw[14:18], g.counter.Add(1))

	if _, err := io.ReadFull(g.rand, raw[18:]); err != nil {
		panic("uid: random source failed: " + err.Error())
	}

	return hex.EncodeToString(raw[:])
}
