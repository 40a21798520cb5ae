package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sort"

	"dndmap.dev/internal/archive"
	"dndmap.dev/internal/config"
	"dndmap.dev/internal/generation"
	"dndmap.dev/internal/models"
	"dndmap.dev/internal/ws"
)

// ErrUnknownPreset is returned for a preset name that is not configured
var ErrUnknownPreset = errors.New("unknown preset")

const maxLairSize = 16

// DungeonService generates, archives and announces dungeons
type DungeonService struct {
	presets *config.PresetFile
	archive *archive.Archive
	hub     *ws.Hub
	palette *generation.Palette
}

// NewDungeonService creates a new DungeonService. hub may be nil.
func NewDungeonService(presets *config.PresetFile, store *archive.Archive, hub *ws.Hub) *DungeonService {
	return &DungeonService{
		presets: presets,
		archive: store,
		hub:     hub,
		palette: generation.DefaultPalette(),
	}
}

// NewSeed draws a fresh seed for callers that did not pick one
func (s *DungeonService) NewSeed() uint64 {
	return rand.Uint64()
}

// Presets returns a summary of every configured preset, sorted by name
func (s *DungeonService) Presets() []models.PresetSummary {
	out := make([]models.PresetSummary, 0, len(s.presets.Presets))
	for name, cfg := range s.presets.Presets {
		guaranteed := make([]string, len(cfg.Guaranteed))
		for i, g := range cfg.Guaranteed {
			guaranteed[i] = g.Label
		}
		out = append(out, models.PresetSummary{
			Name:       name,
			Default:    name == s.presets.Default,
			Width:      cfg.Width,
			Height:     cfg.Height,
			Clusters:   len(cfg.Clusters),
			Guaranteed: guaranteed,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Generate builds the dungeon for a preset and seed, archives it and tells
// the stream watchers about it
func (s *DungeonService) Generate(preset string, seed uint64) (*models.DungeonResponse, error) {
	if preset == "" {
		preset = s.presets.Default
	}
	cfg, ok := s.presets.Get(preset)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
	}
	cfg.Seed = seed

	d, err := generation.NewDungeonGenerator(&cfg).Generate()
	if err != nil {
		return nil, fmt.Errorf("generating %s/%d: %w", preset, seed, err)
	}

	def := d.Definition(s.palette)
	key := archive.Key(preset, seed)

	if err := s.archive.Save(key, def); err != nil {
		// generation succeeded; an archive failure only costs the lookup
		log.Printf("[DungeonService] Warning: %v", err)
	}

	s.announce(preset, key, d)

	return &models.DungeonResponse{Preset: preset, Key: key, Dungeon: def}, nil
}

// Get returns a previously generated dungeon by archive key
func (s *DungeonService) Get(key string) (*models.DungeonResponse, error) {
	preset, _, err := archive.ParseKey(key)
	if err != nil {
		return nil, err
	}
	if _, ok := s.presets.Presets[preset]; !ok {
		return nil, fmt.Errorf("%w: %s", archive.ErrNotFound, key)
	}

	def, err := s.archive.Load(key)
	if err != nil {
		return nil, err
	}
	return &models.DungeonResponse{Preset: preset, Key: key, Dungeon: def}, nil
}

// Lair lays out a standalone size×size lair
func (s *DungeonService) Lair(size int, seed uint64) (*models.LairResponse, error) {
	if size > maxLairSize {
		return nil, fmt.Errorf("%w: lair size %d above %d", generation.ErrConfigurationMismatch, size, maxLairSize)
	}
	lair, err := generation.NewLairGenerator(generation.NewRNG(seed), nil).Generate(size)
	if err != nil {
		return nil, err
	}
	return &models.LairResponse{Seed: seed, Lair: lair.Definition(s.palette)}, nil
}

func (s *DungeonService) announce(preset, key string, d *generation.Dungeon) {
	if s.hub == nil {
		return
	}

	event := models.StreamEvent{
		Type:       "DungeonGenerated",
		Preset:     preset,
		Key:        key,
		Seed:       d.Seed,
		Rooms:      len(d.Rooms()),
		Captioned:  d.Backfill.CaptionedAfter,
		Unused:     len(d.UnusedLabels),
		Persistent: s.archive.Persistent(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[DungeonService] Error encoding stream event: %v", err)
		return
	}
	s.hub.Broadcast(data)
}
