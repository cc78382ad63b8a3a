// Package prefs persists viewer preferences (overlays, grid, window size, UI font) across runs.
// Generated models are never persisted.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the preferences file, relative to the working directory.
const DefaultPath = "config/viewer.yaml"

// Prefs holds viewer-only preferences.
type Prefs struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	GridVisible  bool `yaml:"grid_visible"`
	WindowWidth  int  `yaml:"window_width"`
	WindowHeight int  `yaml:"window_height"`
	// Font is a family name looked up under assets/fonts; empty uses raylib's default font.
	Font string `yaml:"font,omitempty"`
	// PrefetchTextures loads every material texture at startup instead of on first use.
	PrefetchTextures bool `yaml:"prefetch_textures"`
}

// Default returns the preferences used when no file exists.
func Default() Prefs {
	return Prefs{
		GridVisible:      true,
		WindowWidth:      1440,
		WindowHeight:     900,
		PrefetchTextures: true,
	}
}

// Load reads preferences from path. A missing or invalid file yields Default() and no error;
// the file is not created. Fields absent from the file keep their default.
func Load(path string) Prefs {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default()
	}
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		d := Default()
		p.WindowWidth, p.WindowHeight = d.WindowWidth, d.WindowHeight
	}
	return p
}

// Save writes p to path, creating the parent directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	return nil
}
