package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Practice.Words != nil || cfg.Scroll.VisibleLines != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[practice]
words = 40
policy = "block"

[layout]
font-size = 24.5
left-margin = 32

[scroll]
visible-lines = 5

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Practice.Words == nil || *cfg.Practice.Words != 40 {
		t.Fatalf("expected words 40")
	}
	if cfg.Practice.Policy == nil || *cfg.Practice.Policy != "block" {
		t.Fatalf("expected block policy")
	}
	if cfg.Layout.FontSize == nil || *cfg.Layout.FontSize != 24.5 {
		t.Fatalf("expected font size 24.5")
	}
	if cfg.Layout.LeftMargin == nil || *cfg.Layout.LeftMargin != 32 {
		t.Fatalf("expected left margin 32")
	}
	if cfg.Scroll.VisibleLines == nil || *cfg.Scroll.VisibleLines != 5 {
		t.Fatalf("expected 5 visible lines")
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("expected debug log level")
	}
	if cfg.Layout.Width != nil {
		t.Fatalf("expected unset width")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != "/tmp/cfg/passage/config.toml" {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != "/tmp/data/passage/passage.db" {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultWordListPath("en"); got != "/tmp/cfg/passage/wordlists/en.txt" {
		t.Fatalf("unexpected word list path %q", got)
	}
}
