package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dndmap.dev/internal/models"
	"dndmap.dev/internal/services"
)

const defaultLairSize = 4

// DungeonHandler handles preset, dungeon and lair endpoints
type DungeonHandler struct {
	dungeonService *services.DungeonService
}

// NewDungeonHandler creates a new DungeonHandler
func NewDungeonHandler(ds *services.DungeonService) *DungeonHandler {
	return &DungeonHandler{dungeonService: ds}
}

// ListPresets handles GET /api/presets
func (h *DungeonHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dungeonService.Presets())
}

// Generate handles POST /api/dungeons - generates and archives a dungeon
func (h *DungeonHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	seed := h.dungeonService.NewSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}

	resp, err := h.dungeonService.Generate(req.Preset, seed)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// GetDungeon handles GET /api/dungeons/{key} - returns an archived dungeon
func (h *DungeonHandler) GetDungeon(w http.ResponseWriter, r *http.Request) {
	resp, err := h.dungeonService.Get(chi.URLParam(r, "key"))
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetLair handles GET /api/lairs?size=&seed= - lays out a standalone lair
func (h *DungeonHandler) GetLair(w http.ResponseWriter, r *http.Request) {
	size := defaultLairSize
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid lair size")
			return
		}
		size = n
	}

	seed := h.dungeonService.NewSeed()
	if s := r.URL.Query().Get("seed"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid seed")
			return
		}
		seed = n
	}

	resp, err := h.dungeonService.Lair(size, seed)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
