package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/nvago/internal/pkg/config"
)

// middlewareMaintenance answers 503 for routes listed in
// app.maintenance.endpoints. The list is read once at startup.
func middlewareMaintenance(cfg config.Config) Middleware {
	blocked := map[string]struct{}{}
	if cfg != nil {
		for _, ep := range cfg.GetArray("app.maintenance.endpoints") {
			if ep = strings.TrimSpace(ep); ep != "" {
				blocked[ep] = struct{}{}
			}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := blocked[matchedRoutePath(r)]; ok {
				writeJSON(w, map[string]string{"error": "Service is under maintenance."}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
