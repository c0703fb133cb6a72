package themes

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/infogen/core/pkg/reasoning"
)

// Loader provides cached loading and saving of a caller's BrandPresets,
// one YAML file per preset under baseDir/<callerID>/<name>.yml. Grounded
// on the teacher's theme-pack Loader: same cache-with-RWMutex shape, same
// path-traversal guard on untrusted name components.
type Loader struct {
	baseDir string
	cache   map[string]*PresetFile
	mu      sync.RWMutex
}

// NewLoader creates a BrandPreset loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		baseDir: baseDir,
		cache:   make(map[string]*PresetFile),
	}
}

func (l *Loader) path(callerID, name string) (string, error) {
	if strings.ContainsAny(callerID, "./\\") || strings.ContainsAny(name, "./\\") {
		return "", fmt.Errorf("themes: invalid caller id or preset name")
	}
	return filepath.Join(l.baseDir, callerID, name+".yml"), nil
}

func (l *Loader) cacheKey(callerID, name string) string {
	return callerID + "/" + name
}

// Load returns the caller's named preset, reading through to disk on a
// cache miss.
func (l *Loader) Load(callerID, name string) (reasoning.BrandPreset, error) {
	key := l.cacheKey(callerID, name)

	l.mu.RLock()
	if f, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return f.ToBrandPreset(), nil
	}
	l.mu.RUnlock()

	path, err := l.path(callerID, name)
	if err != nil {
		return reasoning.BrandPreset{}, err
	}
	f, err := LoadPresetFile(path)
	if err != nil {
		return reasoning.BrandPreset{}, err
	}

	l.mu.Lock()
	l.cache[key] = f
	l.mu.Unlock()

	return f.ToBrandPreset(), nil
}

// Save persists p under callerID and refreshes the cache entry.
func (l *Loader) Save(callerID string, p reasoning.BrandPreset) error {
	path, err := l.path(callerID, p.Name)
	if err != nil {
		return err
	}
	f := FromBrandPreset(p)
	if err := SavePresetFile(path, f); err != nil {
		return err
	}

	l.mu.Lock()
	l.cache[l.cacheKey(callerID, p.Name)] = &f
	l.mu.Unlock()

	return nil
}
