package handler

import (
	"encoding/json"
	"net/http"

	"app/internal/service"

	"github.com/rs/zerolog"
)

// AdminHandler serves the admin dashboard aggregates.
type AdminHandler struct {
	statsService service.StatsService
	logger       zerolog.Logger
}

func NewAdminHandler(statsService service.StatsService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{statsService: statsService, logger: logger}
}

func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux, authMw, adminMw func(http.Handler) http.Handler) {
	mux.Handle("/admin-stats", authMw(adminMw(http.HandlerFunc(h.stats))))
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.statsService.AdminStats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute admin stats")
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
