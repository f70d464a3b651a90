package api

import (
	"net/http"

	"github.com/shohag/airegistry/internal/registry"
)

type StatsHandler struct {
	svc *registry.Service
}

func NewStatsHandler(svc *registry.Service) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "airegistry",
	})
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
