// Package otp generates the short numeric one-time codes mailed to users to
// confirm an email address or authorize a password reset.
//
// Codes are drawn from crypto/rand so they cannot be predicted from earlier
// codes or from the clock.
package otp
