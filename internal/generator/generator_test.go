package generator

import (
	"strings"
	"testing"
)

func TestLines(t *testing.T) {
	got := Lines([]string{"a", "b", "c", "d", "e"}, 2)
	if got != "a b\nc d\ne\n" {
		t.Fatalf("unexpected lines %q", got)
	}
	if got := Lines([]string{"a", "b"}, 0); got != "a b\n" {
		t.Fatalf("expected one line, got %q", got)
	}
	if got := Lines(nil, 3); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	words := []string{"alpha", "beta", "gamma", "delta"}
	a := NewWithSeed(7).Generate(words, 20, 0.5, 0.5, []rune(".,"))
	b := NewWithSeed(7).Generate(words, 20, 0.5, 0.5, []rune(".,"))
	if strings.Join(a, " ") != strings.Join(b, " ") {
		t.Fatalf("expected identical output for equal seeds")
	}
	if len(a) != 20 {
		t.Fatalf("expected 20 words, got %d", len(a))
	}
}

func TestGenerateWithoutModifiers(t *testing.T) {
	words := []string{"alpha", "beta"}
	for _, w := range NewWithSeed(1).Generate(words, 50, 0, 0, nil) {
		if w != "alpha" && w != "beta" {
			t.Fatalf("unexpected word %q", w)
		}
	}
}

func TestGenerateWeightedPrefersWeakChars(t *testing.T) {
	words := []string{"zzz", "aaa"}
	weak := map[rune]struct{}{'z': {}}
	out := NewWithSeed(3).GenerateWeighted(words, 400, 0, 0, nil, weak, 10)
	zs := 0
	for _, w := range out {
		if w == "zzz" {
			zs++
		}
	}
	if zs < 300 {
		t.Fatalf("expected weak word to dominate, got %d/400", zs)
	}
}
