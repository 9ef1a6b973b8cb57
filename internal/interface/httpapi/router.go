package httpapi

import (
	"net/http"

	"cezatakip-service/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all routes onto a ServeMux.
func NewRouter(mw *Middleware, auth *AuthHandler, penalties *PenaltyHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", auth.Login)
	mux.HandleFunc("POST /api/auth/logout", mw.RequireAuth(auth.Logout))

	anyRole := mw.RequireRole(entity.RoleAdmin, entity.RoleCeza, entity.RoleUye)
	adminOnly := mw.RequireRole(entity.RoleAdmin)

	mux.HandleFunc("POST /api/traffic-penalties/import", adminOnly(penalties.Import))
	mux.HandleFunc("GET /api/traffic-penalties", anyRole(penalties.List))
	mux.HandleFunc("GET /api/traffic-penalties/{id}", anyRole(penalties.Get))
	mux.HandleFunc("GET /api/traffic-penalties/stats/overview", anyRole(penalties.Stats))

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	return mux
}
