package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dndmap.dev/internal/generation"
)

// Config holds all application configuration
type Config struct {
	ServerAddr string
	DataPath   string
	ArchiveApp string
	Presets    *PresetFile
}

// PresetFile is the on-disk list of named dungeon presets
type PresetFile struct {
	Default string                              `yaml:"default"`
	Presets map[string]generation.DungeonConfig `yaml:"presets"`
}

// Load reads the environment and the preset file under DATA_PATH
func Load() (*Config, error) {
	dataPath := getenv("DATA_PATH", "data")

	presets, err := LoadPresets(filepath.Join(dataPath, "presets.yaml"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerAddr: getenv("SERVER_ADDR", ":8080"),
		DataPath:   dataPath,
		ArchiveApp: getenv("ARCHIVE_APP", "dndmap"),
		Presets:    presets,
	}, nil
}

// LoadPresets reads and validates a preset YAML file. A missing file yields
// the built-in classic preset.
func LoadPresets(path string) (*PresetFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultPresets(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	return ParsePresets(data)
}

// ParsePresets decodes preset YAML, filling unset budgets from the classic preset
func ParsePresets(data []byte) (*PresetFile, error) {
	var pf PresetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse preset YAML: %w", err)
	}

	if err := validatePresets(&pf); err != nil {
		return nil, fmt.Errorf("invalid preset config: %w", err)
	}

	return &pf, nil
}

// DefaultPresets returns a preset file holding only the classic preset
func DefaultPresets() *PresetFile {
	return &PresetFile{
		Default: "classic",
		Presets: map[string]generation.DungeonConfig{
			"classic": generation.DefaultPreset(),
		},
	}
}

// Get returns a copy of a named preset; an empty name picks the default
func (pf *PresetFile) Get(name string) (generation.DungeonConfig, bool) {
	if name == "" {
		name = pf.Default
	}
	cfg, ok := pf.Presets[name]
	return cfg, ok
}

func validatePresets(pf *PresetFile) error {
	if len(pf.Presets) == 0 {
		return fmt.Errorf("presets cannot be empty")
	}
	if pf.Default == "" {
		return fmt.Errorf("default preset must be named")
	}
	if _, ok := pf.Presets[pf.Default]; !ok {
		return fmt.Errorf("default preset %q not defined", pf.Default)
	}

	for name, cfg := range pf.Presets {
		if cfg.PlacementAttempts == 0 {
			cfg.PlacementAttempts = generation.DefaultTries
		}
		if cfg.ClusterAttempts == 0 {
			cfg.ClusterAttempts = generation.DefaultTries
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
		pf.Presets[name] = cfg
	}

	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
