package router

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/shandysiswandi/nvago/internal/pkg/config"
	"github.com/shandysiswandi/nvago/internal/pkg/jwt"
	"github.com/shandysiswandi/nvago/internal/pkg/session"
)

// SessionResolver looks up a server-side session by its cookie token.
type SessionResolver interface {
	Get(ctx context.Context, token string) (session.Session, error)
}

type authConfig struct {
	jwt        jwt.JWT
	sessions   SessionResolver
	cookieName string
	public     map[string]map[string]struct{}
}

func sessionCookieName(cfg config.Config) string {
	if cfg != nil {
		if name := cfg.GetString("session.cookie_name"); name != "" {
			return name
		}
	}
	return "sessionid"
}

// middlewareAuthentication accepts a bearer token first and falls back to the
// session cookie. Public routes pass through untouched.
func middlewareAuthentication(ac authConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ac.public[r.Method][matchedRoutePath(r)]; ok {
				next.ServeHTTP(w, r)
				return
			}

			if header := r.Header.Get("Authorization"); header != "" {
				scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
				if !ok || !strings.EqualFold(scheme, "Bearer") || ac.jwt == nil {
					unauthorized(w, "Invalid token header.")
					return
				}

				claims, err := ac.jwt.Verify(strings.TrimSpace(token))
				if err != nil {
					unauthorized(w, "Invalid token.")
					return
				}

				next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
				return
			}

			if c, err := r.Cookie(ac.cookieName); err == nil && c.Value != "" && ac.sessions != nil {
				s, err := ac.sessions.Get(r.Context(), c.Value)
				if err != nil {
					unauthorized(w, "Authentication credentials were not provided.")
					return
				}

				claims := jwt.Claims{UserID: s.UserID, Username: s.Username}
				claims.Subject = strconv.FormatInt(s.UserID, 10)
				next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
				return
			}

			unauthorized(w, "Authentication credentials were not provided.")
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	writeJSON(w, map[string]string{"error": msg}, http.StatusUnauthorized)
}
