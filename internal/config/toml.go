// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Layout   LayoutConfig   `toml:"layout"`
	Scroll   ScrollConfig   `toml:"scroll"`
	Log      LogConfig      `toml:"log"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Lang       *string  `toml:"lang"`
	Words      *int     `toml:"words"`
	LineWords  *int     `toml:"line-words"`
	CapsPct    *float64 `toml:"caps"`
	PunctPct   *float64 `toml:"punct"`
	PunctSet   *string  `toml:"punct-set"`
	FocusWeak  *bool    `toml:"focus-weak"`
	WeakTop    *int     `toml:"weak-top"`
	WeakFactor *float64 `toml:"weak-factor"`
	WeakWindow *int     `toml:"weak-window"`
	Policy     *string  `toml:"policy"`
	Deck       *string  `toml:"deck"`
}

// LayoutConfig maps passage geometry for pixel rendering.
type LayoutConfig struct {
	FontSize         *float64 `toml:"font-size"`
	Width            *int     `toml:"width"`
	LeftMargin       *float64 `toml:"left-margin"`
	RightMargin      *float64 `toml:"right-margin"`
	TopMargin        *float64 `toml:"top-margin"`
	CharPadding      *float64 `toml:"char-padding"`
	HighlightPadding *float64 `toml:"highlight-padding"`
	LineSpacing      *float64 `toml:"line-spacing"`
	CacheSize        *int     `toml:"cache-size"`
}

// ScrollConfig maps scroll tuning.
type ScrollConfig struct {
	VisibleLines *int     `toml:"visible-lines"`
	MaxSpeed     *float64 `toml:"max-speed"`
	MaxForce     *float64 `toml:"max-force"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	File  *string `toml:"file"`
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
