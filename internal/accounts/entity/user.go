package entity

import "time"

// User is an account joined with its one-to-one profile.
type User struct {
	ID         int64
	Username   string
	Email      string
	Password   string // hashed
	FirstName  string
	LastName   string
	IsActive   bool
	DateJoined time.Time
	LastLogin  *time.Time
	UpdatedAt  time.Time

	// OTP is the pending one-time code; empty means none.
	OTP        string
	IsVerified bool
}

// HasPendingOTP reports whether a code is waiting to be verified.
func (u User) HasPendingOTP() bool {
	return u.OTP != ""
}

type NewUser struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	OTP       string
}
