package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/nvago/internal/accounts/usecase"
	"github.com/shandysiswandi/nvago/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for registration, session and password reset workflows.
type HTTPEndpoint struct {
	uc     uc
	cookie CookieConfig
}

// Register creates an account and mails a registration code.
// @Summary Register user
// @Description Creates an unverified account and sends a one-time code to the email address.
// @Tags Accounts, Registration
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Register payload"
// @Success 201 {object} map[string]string "User registered. OTP sent to email."
// @Failure 400 {object} map[string]string "Field errors"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/register/ [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}); err != nil {
		return nil, err
	}

	return RegisterResponse{}, nil
}

// RegisterResend issues a fresh registration code.
// @Summary Resend registration code
// @Tags Accounts, Registration
// @Accept json
// @Produce json
// @Param request body RegisterResendRequest true "Resend payload"
// @Success 200 {object} map[string]string "OTP resent to email."
// @Failure 404 {object} map[string]string "User not found."
// @Failure 409 {object} map[string]string "Email already verified."
// @Router /api/register/resend/ [post]
func (h *HTTPEndpoint) RegisterResend(r *router.Request) (any, error) {
	var req RegisterResendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.RegisterResend(r.Context(), usecase.RegisterResendInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return RegisterResendResponse{}, nil
}

// RegisterVerify confirms the email address with the registration code.
// @Summary Verify email
// @Tags Accounts, Registration
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verify payload"
// @Success 200 {object} map[string]string "Email verified."
// @Failure 400 {object} map[string]string "Invalid OTP."
// @Failure 404 {object} map[string]string "User not found."
// @Router /api/verify/ [post]
func (h *HTTPEndpoint) RegisterVerify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{
		Email: req.Email,
		OTP:   req.OTP,
	}); err != nil {
		return nil, err
	}

	return VerifyResponse{}, nil
}

// Login starts a cookie session.
// @Summary Login
// @Tags Accounts, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} map[string]string "Logged in."
// @Failure 400 {object} map[string]string "Invalid credentials or email not verified."
// @Router /api/login/ [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{cookie: &http.Cookie{
		Name:     h.cookie.Name,
		Value:    resp.SessionToken,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		MaxAge:   int(resp.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}}, nil
}

// Logout ends the cookie session, if any, and expires the cookie.
// @Summary Logout
// @Tags Accounts, Authentication
// @Produce json
// @Success 200 {object} map[string]string "Logged out."
// @Router /api/logout/ [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context(), usecase.LogoutInput{
		SessionToken: r.CookieValue(h.cookie.Name),
	}); err != nil {
		return nil, err
	}

	return LogoutResponse{cookie: &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}}, nil
}

// TokenObtain exchanges credentials for a bearer token.
// @Summary Obtain token
// @Tags Accounts, Authentication
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Token payload"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} map[string]string "Unable to log in with provided credentials."
// @Router /api/token/ [post]
func (h *HTTPEndpoint) TokenObtain(r *router.Request) (any, error) {
	var req TokenRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.TokenObtain(r.Context(), usecase.TokenObtainInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return TokenResponse{
		Token:     resp.Token,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
	}, nil
}

// PasswordResetSend mails a password reset code.
// @Summary Send reset code
// @Tags Accounts, Password
// @Accept json
// @Produce json
// @Param request body SendResetOTPRequest true "Reset code payload"
// @Success 200 {object} map[string]string "OTP sent to email."
// @Failure 404 {object} map[string]string "User not found."
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/send-reset-otp/ [post]
func (h *HTTPEndpoint) PasswordResetSend(r *router.Request) (any, error) {
	var req SendResetOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordResetSend(r.Context(), usecase.PasswordResetSendInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return SendResetOTPResponse{}, nil
}

// PasswordResetVerify checks a reset code without consuming it.
// @Summary Verify reset code
// @Tags Accounts, Password
// @Accept json
// @Produce json
// @Param request body VerifyResetOTPRequest true "Verify reset code payload"
// @Success 200 {object} map[string]string "OTP verified."
// @Failure 400 {object} map[string]string "Invalid OTP."
// @Failure 404 {object} map[string]string "User not found."
// @Router /api/verify-reset-otp/ [post]
func (h *HTTPEndpoint) PasswordResetVerify(r *router.Request) (any, error) {
	var req VerifyResetOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordResetVerify(r.Context(), usecase.PasswordResetVerifyInput{
		Email: req.Email,
		OTP:   req.OTP,
	}); err != nil {
		return nil, err
	}

	return VerifyResetOTPResponse{}, nil
}

// PasswordReset consumes the reset code and replaces the password.
// @Summary Reset password
// @Tags Accounts, Password
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset password payload"
// @Success 200 {object} map[string]string "Password reset successful."
// @Failure 400 {object} map[string]string "Invalid OTP."
// @Failure 404 {object} map[string]string "User not found."
// @Router /api/reset-password/ [post]
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req ResetPasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Email:       req.Email,
		OTP:         req.OTP,
		NewPassword: req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return ResetPasswordResponse{}, nil
}

// Me returns the authenticated user.
// @Summary Current user
// @Tags Accounts, Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} map[string]string "Authentication credentials were not provided."
// @Router /api/me/ [get]
func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	resp, err := h.uc.Me(r.Context())
	if err != nil {
		return nil, err
	}

	return MeResponse{
		ID:         resp.ID,
		Username:   resp.Username,
		Email:      resp.Email,
		FirstName:  resp.FirstName,
		LastName:   resp.LastName,
		IsVerified: resp.IsVerified,
	}, nil
}
