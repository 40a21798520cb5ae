package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dndmap.dev/internal/archive"
	"dndmap.dev/internal/config"
	"dndmap.dev/internal/generation"
	"dndmap.dev/internal/middleware"
	"dndmap.dev/internal/services"
	"dndmap.dev/internal/ws"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, store *archive.Archive) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)

	// Initialize services
	hub := ws.NewHub()
	dungeonService := services.NewDungeonService(cfg.Presets, store, hub)

	// Initialize handlers
	dungeonHandler := NewDungeonHandler(dungeonService)
	streamHandler := NewStreamHandler(hub)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", dungeonHandler.ListPresets)

		r.Post("/dungeons", dungeonHandler.Generate)
		r.Get("/dungeons/{key}", dungeonHandler.GetDungeon)

		r.Get("/lairs", dungeonHandler.GetLair)

		r.Get("/stream", streamHandler.Stream)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps generator and service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnknownPreset), errors.Is(err, archive.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, generation.ErrConfigurationMismatch):
		return http.StatusBadRequest
	case errors.Is(err, generation.ErrPlacementInfeasible):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
