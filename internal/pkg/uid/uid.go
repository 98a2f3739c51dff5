// Package uid generates identifiers: snowflake int64 ids for rows, UUIDv7
// strings for correlation and event ids, and 256-bit object ids for opaque
// session tokens.
package uid

// NumberID generates unique, roughly time-ordered int64 ids.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string ids.
type StringID interface {
	Generate() string
}
