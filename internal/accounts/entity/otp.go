package entity

import "fmt"

// OTPPurpose tells why a code was issued. It only shapes the outgoing mail,
// the stored code has no purpose column.
type OTPPurpose int

const (
	OTPPurposeUnknown OTPPurpose = iota
	OTPPurposeRegistration
	OTPPurposePasswordReset
)

func (p OTPPurpose) String() string {
	switch p {
	case OTPPurposeRegistration:
		return "registration"
	case OTPPurposePasswordReset:
		return "password_reset"
	default:
		return "unknown"
	}
}

func (p OTPPurpose) Subject() string {
	switch p {
	case OTPPurposeRegistration:
		return "Your OTP Code"
	case OTPPurposePasswordReset:
		return "Password Reset OTP"
	default:
		return ""
	}
}

func (p OTPPurpose) Body(code string) string {
	switch p {
	case OTPPurposeRegistration:
		return fmt.Sprintf("Your OTP code is %s", code)
	case OTPPurposePasswordReset:
		return fmt.Sprintf("Your password reset OTP is %s", code)
	default:
		return ""
	}
}
