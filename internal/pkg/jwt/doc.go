// Package jwt issues and verifies the bearer tokens returned by the token
// endpoint. Tokens are HS512 signed and carry the user id and username.
package jwt
