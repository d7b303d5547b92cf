package core

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status is the server summary served on /status.
type Status struct {
	Name        string `json:"name"`
	Players     int    `json:"players"`
	MaxPlayers  int    `json:"maxPlayers"`
	Actors      int    `json:"actors"`
	Tick        uint64 `json:"tick"`
	ArenaMillis int64  `json:"arenaMillis"`
}

// StatusProvider is the part of the server the HTTP endpoint reads. Keeping it
// minimal lets tests serve a fixed status.
type StatusProvider interface {
	Status() Status
}

// NewRouter builds the metrics and health endpoint. It must only be bound to
// an internal address.
func NewRouter(sp StatusProvider) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, sp.Status())
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
