package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/nvago/internal/accounts/usecase"
	"github.com/shandysiswandi/nvago/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) error
	RegisterResend(ctx context.Context, in usecase.RegisterResendInput) error
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) error

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error
	TokenObtain(ctx context.Context, in usecase.TokenObtainInput) (*usecase.TokenObtainOutput, error)

	PasswordResetSend(ctx context.Context, in usecase.PasswordResetSendInput) error
	PasswordResetVerify(ctx context.Context, in usecase.PasswordResetVerifyInput) error
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error

	Me(ctx context.Context) (*usecase.MeOutput, error)
}

// CookieConfig shapes the session cookie set on login.
type CookieConfig struct {
	Name   string
	Secure bool
}

// PublicEndpoints lists the routes served without authentication.
var PublicEndpoints = map[string][]string{
	http.MethodPost: {
		"/api/register/",
		"/api/register/resend/",
		"/api/verify/",
		"/api/login/",
		"/api/logout/",
		"/api/send-reset-otp/",
		"/api/verify-reset-otp/",
		"/api/reset-password/",
		"/api/token/",
	},
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, cookie CookieConfig) {
	if cookie.Name == "" {
		cookie.Name = "sessionid"
	}
	end := &HTTPEndpoint{uc: uc, cookie: cookie}

	// Registration
	r.POST("/api/register/", end.Register)
	r.POST("/api/register/resend/", end.RegisterResend)
	r.POST("/api/verify/", end.RegisterVerify)

	// Session & token
	r.POST("/api/login/", end.Login)
	r.POST("/api/logout/", end.Logout)
	r.POST("/api/token/", end.TokenObtain)

	// Password reset
	r.POST("/api/send-reset-otp/", end.PasswordResetSend)
	r.POST("/api/verify-reset-otp/", end.PasswordResetVerify)
	r.POST("/api/reset-password/", end.PasswordReset)

	r.GET("/api/me/", end.Me) // need authenticated
}
