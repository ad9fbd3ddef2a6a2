package engineconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"brain-atlas/internal/asset"
	"brain-atlas/internal/pointer"
	"brain-atlas/internal/resolver"
	"brain-atlas/internal/viewport"
)

// EngineConfigPath is the path to the engine config file, relative to the process working directory.
const EngineConfigPath = "config/engine.json"

// Environment variables that override file paths in the config.
const (
	EnvAsset   = "BRAINMAP_ASSET"
	EnvCatalog = "BRAINMAP_CATALOG"
	EnvLog     = "BRAINMAP_LOG"
)

// ErrInvalidConfig is returned for unparsable or inconsistent configuration.
var ErrInvalidConfig = errors.New("invalid engine config")

// Config holds the tuning knobs and viewer preferences. Every resolution constant lives
// here so it can be tuned without code changes.
type Config struct {
	AssetPath   string `json:"asset_path"`
	CatalogPath string `json:"catalog_path,omitempty"` // empty uses the built-in catalog
	LogPath     string `json:"log_path,omitempty"`

	CharacteristicSize float64 `json:"characteristic_size"`
	MatchThreshold     float64 `json:"match_threshold"`
	HoverThreshold     float64 `json:"hover_threshold"`

	Viewport viewport.Policy `json:"viewport"`

	// Font is a TTF/OTF path or family name looked up under assets/fonts; empty uses
	// raylib's built-in font.
	Font string `json:"font,omitempty"`

	WatchAsset   bool `json:"watch_asset"`
	ShowFPS      bool `json:"show_fps"`
	ShowMemAlloc bool `json:"show_memalloc"`
	GridVisible  bool `json:"grid_visible"`
}

// Default returns the stock configuration (debug overlays off, grid on).
func Default() Config {
	return Config{
		AssetPath:          "assets/models/brain.glb",
		CharacteristicSize: asset.DefaultCharacteristicSize,
		MatchThreshold:     resolver.DefaultMatchThreshold,
		HoverThreshold:     pointer.DefaultHoverThreshold,
		Viewport:           viewport.DefaultPolicy(),
		GridVisible:        true,
	}
}

// Validate checks value ranges. The hover threshold must be smaller than the match
// threshold: hover is the precise, local lookup.
func (c Config) Validate() error {
	if c.AssetPath == "" {
		return fmt.Errorf("%w: asset_path is empty", ErrInvalidConfig)
	}
	if c.CharacteristicSize <= 0 {
		return fmt.Errorf("%w: characteristic_size must be positive", ErrInvalidConfig)
	}
	if c.MatchThreshold <= 0 || c.HoverThreshold <= 0 {
		return fmt.Errorf("%w: thresholds must be positive", ErrInvalidConfig)
	}
	if c.HoverThreshold >= c.MatchThreshold {
		return fmt.Errorf("%w: hover_threshold %v must be below match_threshold %v",
			ErrInvalidConfig, c.HoverThreshold, c.MatchThreshold)
	}
	if err := c.Viewport.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Load reads config/engine.json. See LoadFrom.
func Load() (Config, error) {
	return LoadFrom(EngineConfigPath)
}

// LoadFrom reads the config at path over Default(), so absent keys keep their defaults.
// A missing file returns Default() and no error and does not create a file. An invalid
// file returns Default() together with an ErrInvalidConfig error the caller may log.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides path settings from BRAINMAP_* environment variables when set.
func ApplyEnv(c Config, getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv(EnvAsset); v != "" {
		c.AssetPath = v
	}
	if v := getenv(EnvCatalog); v != "" {
		c.CatalogPath = v
	}
	if v := getenv(EnvLog); v != "" {
		c.LogPath = v
	}
	return c
}
