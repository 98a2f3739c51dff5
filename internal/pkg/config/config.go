package config

import (
	"io"
	"time"
)

// Config is the read-only view over the service configuration.
//
// Keys are dotted paths (e.g. "database.pool.max_conns"). Missing keys and
// values that cannot be converted return the zero value of the requested type.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint16(key string) uint16
	GetFloat64(key string) float64

	// GetSecond, GetMinute and GetHour read an integer and scale it to a duration.
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration

	// GetArray reads either a list value or a comma separated string.
	// Blank elements are dropped.
	GetArray(key string) []string
}
