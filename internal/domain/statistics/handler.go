package statistics

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Trinidad006/CownectWeb-sub000/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/statistics", dashboardHandler(svc))
}

// dashboardHandler godoc
// @Summary Estadísticas del hato
// @Description Inventario, indicadores sanitarios, reproductivos y de ocupación calculados sobre el hato del usuario.
// @Tags statistics
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param max_capacity query int false "Capacidad máxima del rancho (default configurado, normalmente 100)"
// @Success 200 {object} CompleteStatistics
// @Failure 400 {string} string "max_capacity inválido"
// @Failure 401 {string} string "unauthorized"
// @Router /statistics [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		capacity := 0
		if raw := strings.TrimSpace(r.URL.Query().Get("max_capacity")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "max_capacity must be a non-negative integer", http.StatusBadRequest)
				return
			}
			capacity = n
		}

		stats, err := svc.Dashboard(r.Context(), claims.UserID, capacity)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
