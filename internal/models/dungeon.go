package models

import "dndmap.dev/internal/generation"

// GenerateRequest is the body of POST /api/dungeons
type GenerateRequest struct {
	Preset string  `json:"preset"`
	Seed   *uint64 `json:"seed,omitempty"` // random when omitted
}

// DungeonResponse is what we send to the client for a generated dungeon
type DungeonResponse struct {
	Preset  string                        `json:"preset"`
	Key     string                        `json:"key"`
	Dungeon *generation.DungeonDefinition `json:"dungeon"`
}

// LairResponse is a standalone lair layout
type LairResponse struct {
	Seed uint64              `json:"seed"`
	Lair *generation.LairDef `json:"lair"`
}

// PresetSummary describes a preset without its full cluster list
type PresetSummary struct {
	Name       string   `json:"name"`
	Default    bool     `json:"default"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Clusters   int      `json:"clusters"`
	Guaranteed []string `json:"guaranteed"`
}

// StreamEvent is pushed to websocket watchers after each generation
type StreamEvent struct {
	Type       string `json:"type"`
	Preset     string `json:"preset"`
	Key        string `json:"key"`
	Seed       uint64 `json:"seed"`
	Rooms      int    `json:"rooms"`
	Captioned  int    `json:"captioned"`
	Unused     int    `json:"unused_labels"`
	Persistent bool   `json:"persistent"`
}
