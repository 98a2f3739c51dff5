// Package hash provides one-way hashing for secrets.
//
// Passwords are stored only as bcrypt or argon2id hashes and checked with
// Verify. HMAC-SHA256 derives stable lookup keys for opaque tokens such as
// session identifiers, so the raw token is never persisted.
package hash
