package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"dndmap.dev/internal/config"
	"dndmap.dev/internal/generation"
)

var minimum, maximum int = 10000, 99999

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: generate <output-dir> [seed] [preset-file]")
		fmt.Println("       generate <output-dir> lair <size> [seed]  (standalone lair)")
		os.Exit(1)
	}

	outputDir := os.Args[1]

	// Ensure output directory exists
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 2 && os.Args[2] == "lair" {
		generateLair(outputDir, os.Args[3:])
		return
	}

	seed := randomSeed()
	if len(os.Args) > 2 {
		seed = parseSeed(os.Args[2])
	}

	presetPath := filepath.Join("data", "presets.yaml")
	if len(os.Args) > 3 {
		presetPath = os.Args[3]
	}

	presets, err := config.LoadPresets(presetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load presets: %v\n", err)
		os.Exit(1)
	}

	for _, name := range presetNames(presets) {
		cfg, _ := presets.Get(name)
		cfg.Seed = seed

		fmt.Printf("Generating %s dungeon (seed %d, %dx%d)...\n", name, seed, cfg.Width, cfg.Height)

		d, err := generation.NewDungeonGenerator(&cfg).Generate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
			continue
		}

		filename := fmt.Sprintf("dungeon_%s_%d.json", name, seed)
		if name == presets.Default {
			filename = fmt.Sprintf("dungeon_%d.json", seed)
		}
		if err := writeJSON(filepath.Join(outputDir, filename), d.Definition(generation.DefaultPalette())); err != nil {
			fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
			continue
		}

		fmt.Printf("  Created %s (%d rooms, %d captioned, %d unused labels)\n",
			filename, len(d.Rooms()), d.Backfill.CaptionedAfter, len(d.UnusedLabels))
	}

	fmt.Println("Done!")
}

func generateLair(outputDir string, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: generate <output-dir> lair <size> [seed]")
		os.Exit(1)
	}

	size, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid lair size %q\n", args[0])
		os.Exit(1)
	}

	seed := randomSeed()
	if len(args) > 1 {
		seed = parseSeed(args[1])
	}

	fmt.Printf("Generating %dx%d lair (seed %d)...\n", size, size, seed)

	lair, err := generation.NewLairGenerator(generation.NewRNG(seed), nil).Generate(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
		os.Exit(1)
	}

	filename := fmt.Sprintf("lair_%d_%d.json", size, seed)
	if err := writeJSON(filepath.Join(outputDir, filename), lair.Definition(generation.DefaultPalette())); err != nil {
		fmt.Fprintf(os.Stderr, "  ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  Created %s (%d forced guard rooms)\n", filename, lair.ForcedCount())
	fmt.Println("Done!")
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

func randomSeed() uint64 {
	return uint64(rand.IntN(maximum-minimum+1) + minimum)
}

func parseSeed(s string) uint64 {
	seed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid seed %q\n", s)
		os.Exit(1)
	}
	return seed
}

// presetNames lists the default preset first, then the rest alphabetically
func presetNames(pf *config.PresetFile) []string {
	names := []string{pf.Default}
	rest := make([]string, 0, len(pf.Presets))
	for name := range pf.Presets {
		if name != pf.Default {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
