package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/verte-zerg/passage/internal/model"
)

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func writePassage(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "passage.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write passage: %v", err)
	}
	return path
}

func TestReplayPrintsDump(t *testing.T) {
	path := writePassage(t, "hi\n")
	out := runRoot(t, "replay", "--file", path, "--keys", `hx\n`)
	if !strings.HasPrefix(out, "hi\n\n.*.\n") {
		t.Fatalf("unexpected dump %q", out)
	}
	if !strings.Contains(out, "finished=true correct=1 incorrect=1 accuracy=50.0%") {
		t.Fatalf("unexpected summary %q", out)
	}
}

func TestReplayBlockPolicy(t *testing.T) {
	path := writePassage(t, "hi\n")
	out := runRoot(t, "replay", "--file", path, "--policy", "block", "--keys", "hxi")
	if !strings.HasPrefix(out, "hi\n\n.*\n") {
		t.Fatalf("unexpected dump %q", out)
	}
	if !strings.Contains(out, "finished=false") {
		t.Fatalf("expected unfinished passage: %q", out)
	}
}

func TestSnapshotWritesImage(t *testing.T) {
	path := writePassage(t, "the quick brown fox jumps over the lazy dog\n")
	img := filepath.Join(t.TempDir(), "frame.png")
	runRoot(t, "snapshot", "--file", path, "--keys", "the quack", "--out", img, "--width", "400", "--font-size", "20")
	decoded, err := imaging.Open(img)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	if decoded.Bounds().Dx() < 300 {
		t.Fatalf("unexpected snapshot width %d", decoded.Bounds().Dx())
	}
}

func TestStatsWithEmptyStore(t *testing.T) {
	out := runRoot(t, "stats")
	if !strings.Contains(out, "No sessions found.") {
		t.Fatalf("unexpected stats output %q", out)
	}
}

func TestValidateConfig(t *testing.T) {
	base := model.Config{Words: 10, PunctSet: ".", Policy: "advance"}
	if err := validateConfig(base); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	bad := base
	bad.Policy = "sometimes"
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected policy error")
	}
	bad = base
	bad.File, bad.Deck = "a.txt", "b.yaml"
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected file/deck conflict")
	}
}

func TestListLangs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"fr.txt", "en.txt", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("word\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	langs, err := listLangs(dir)
	if err != nil {
		t.Fatalf("list langs: %v", err)
	}
	if strings.Join(langs, ",") != "en,fr" {
		t.Fatalf("unexpected langs %v", langs)
	}
	if langs, err := listLangs(filepath.Join(dir, "missing")); err != nil || len(langs) != 0 {
		t.Fatalf("expected no langs for missing dir, got %v, %v", langs, err)
	}
}

func TestUnescapeKeys(t *testing.T) {
	if got := unescapeKeys(`a\nb\tc`); got != "a\nb c" {
		t.Fatalf("unexpected keys %q", got)
	}
}
