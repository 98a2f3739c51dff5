package inbound

import "net/http"

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RegisterResponse struct{}

func (RegisterResponse) Message() string { return "User registered. OTP sent to email." }

func (RegisterResponse) StatusCode() int { return http.StatusCreated }

type RegisterResendRequest struct {
	Email string `json:"email"`
}

type RegisterResendResponse struct{}

func (RegisterResendResponse) Message() string { return "OTP resent to email." }

type VerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyResponse struct{}

func (VerifyResponse) Message() string { return "Email verified." }

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	cookie *http.Cookie
}

func (LoginResponse) Message() string { return "Logged in." }

func (r LoginResponse) Cookies() []*http.Cookie { return []*http.Cookie{r.cookie} }

type LogoutResponse struct {
	cookie *http.Cookie
}

func (LogoutResponse) Message() string { return "Logged out." }

func (r LogoutResponse) Cookies() []*http.Cookie { return []*http.Cookie{r.cookie} }

type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SendResetOTPRequest struct {
	Email string `json:"email"`
}

type SendResetOTPResponse struct{}

func (SendResetOTPResponse) Message() string { return "OTP sent to email." }

type VerifyResetOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyResetOTPResponse struct{}

func (VerifyResetOTPResponse) Message() string { return "OTP verified." }

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

type ResetPasswordResponse struct{}

func (ResetPasswordResponse) Message() string { return "Password reset successful." }

type MeResponse struct {
	ID         int64  `json:"id,string"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsVerified bool   `json:"is_verified"`
}
