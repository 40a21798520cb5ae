package main

import (
	"log"
	"net/http"

	"dndmap.dev/internal/archive"
	"dndmap.dev/internal/config"
	"dndmap.dev/internal/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store := archive.Open(cfg.ArchiveApp)
	log.Printf("Loaded %d presets (default %q), persistent archive: %v",
		len(cfg.Presets.Presets), cfg.Presets.Default, store.Persistent())

	router := handlers.SetupRoutes(cfg, store)

	log.Printf("Listening on %s", cfg.ServerAddr)
	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
