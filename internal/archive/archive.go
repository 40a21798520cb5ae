package archive

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"dndmap.dev/internal/generation"
)

// ErrNotFound is returned when no dungeon was archived under a key
var ErrNotFound = errors.New("dungeon not archived")

const dungeonsObject = "dungeons"

// Archive keeps generated dungeons so a seed can be looked up again later.
// A nil manager puts the archive in memory-only mode.
type Archive struct {
	mu      sync.Mutex
	manager *gdata.Manager
	memory  map[string][]byte
}

// Open opens the on-disk store for appName. When the platform store cannot
// be opened the archive falls back to memory and logs why.
func Open(appName string) *Archive {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Archive] Warning: persistent store unavailable: %v (keeping dungeons in memory)", err)
		manager = nil
	}
	return New(manager)
}

// New wraps an already opened manager, which may be nil
func New(manager *gdata.Manager) *Archive {
	return &Archive{manager: manager, memory: make(map[string][]byte)}
}

// Persistent reports whether dungeons survive a restart
func (a *Archive) Persistent() bool {
	return a.manager != nil
}

// Key names the archive slot of a preset/seed pair
func Key(preset string, seed uint64) string {
	return preset + "_" + strconv.FormatUint(seed, 10)
}

// ParseKey splits a key made by Key. Keys that Key could not have produced
// for a plain preset name are rejected as not found, since they double as
// file names in the on-disk store.
func ParseKey(key string) (string, uint64, error) {
	i := strings.LastIndexByte(key, '_')
	if i <= 0 {
		return "", 0, fmt.Errorf("%w: malformed key %q", ErrNotFound, key)
	}
	preset := key[:i]
	if strings.ContainsAny(preset, `/\`) || strings.Contains(preset, "..") {
		return "", 0, fmt.Errorf("%w: malformed key %q", ErrNotFound, key)
	}
	seed, err := strconv.ParseUint(key[i+1:], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: malformed key %q", ErrNotFound, key)
	}
	return preset, seed, nil
}

// Save stores a dungeon definition under key
func (a *Archive) Save(key string, def *generation.DungeonDefinition) error {
	data, err := yaml.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal dungeon: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.manager == nil {
		a.memory[key] = data
		return nil
	}
	if err := a.manager.SaveObjectProp(dungeonsObject, key, data); err != nil {
		return fmt.Errorf("failed to save dungeon %s: %w", key, err)
	}
	return nil
}

// Load returns the dungeon stored under key
func (a *Archive) Load(key string) (*generation.DungeonDefinition, error) {
	data, err := a.read(key)
	if err != nil {
		return nil, err
	}

	var def generation.DungeonDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dungeon %s: %w", key, err)
	}
	return &def, nil
}

func (a *Archive) read(key string) ([]byte, error) {
	if _, _, err := ParseKey(key); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.manager == nil {
		data, ok := a.memory[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return data, nil
	}

	if !a.manager.ObjectPropExists(dungeonsObject, key) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	data, err := a.manager.LoadObjectProp(dungeonsObject, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load dungeon %s: %w", key, err)
	}
	return data, nil
}
