package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/passage/internal/generator"
	"github.com/verte-zerg/passage/internal/model"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"a\r\nb": "a\nb\n",
		"a\tb ":  "a b ",
		"end.":   "end.\n",
		"done\n": "done\n",
		"":       "",
		"x\ry":   "x\ny\n",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestBuiltinEndsWithDelimiter(t *testing.T) {
	text := Builtin()
	if !strings.HasSuffix(text.Body, "\n") {
		t.Fatalf("expected trailing newline, got %q", text.Body)
	}
	if text.Label != "builtin" {
		t.Fatalf("unexpected label %q", text.Label)
	}
}

func TestFromFile(t *testing.T) {
	path := writeFile(t, "poem.txt", "roses are red")
	text, err := FromFile(path)
	if err != nil {
		t.Fatalf("from file: %v", err)
	}
	if text.Body != "roses are red\n" || text.Label != "file:poem.txt" {
		t.Fatalf("unexpected text %+v", text)
	}

	empty := writeFile(t, "empty.txt", " \n")
	if _, err := FromFile(empty); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestDeck(t *testing.T) {
	path := writeFile(t, "deck.yaml", `
- title: one
  text: first passage
- text: "   "
- text: second passage
`)
	text, err := FromDeck(path, 1)
	if err != nil {
		t.Fatalf("from deck: %v", err)
	}
	if text.Title != "#3" || text.Body != "second passage\n" {
		t.Fatalf("unexpected entry %+v", text)
	}
	if _, err := FromDeck(path, 2); !errors.Is(err, ErrNoEntry) {
		t.Fatalf("expected ErrNoEntry, got %v", err)
	}

	deck, err := NewDeck(path, 1)
	if err != nil {
		t.Fatalf("new deck: %v", err)
	}
	var titles []string
	for i := 0; i < 3; i++ {
		text, err := deck.Next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		titles = append(titles, text.Title)
	}
	if strings.Join(titles, ",") != "#3,one,#3" {
		t.Fatalf("unexpected cycle %v", titles)
	}
}

func TestWordsProvider(t *testing.T) {
	calls := 0
	p := &Words{
		Gen:  generator.NewWithSeed(1),
		List: []string{"ab", "cd"},
		Cfg:  model.Config{Lang: "en", Words: 5, LineWords: 2, FocusWeak: true, WeakFactor: 2},
		Weak: func() (map[rune]struct{}, error) {
			calls++
			return map[rune]struct{}{'a': {}}, nil
		},
	}
	text, err := p.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected weak lookup, got %d calls", calls)
	}
	if strings.Count(text.Body, "\n") != 3 || !strings.HasSuffix(text.Body, "\n") {
		t.Fatalf("expected three lines, got %q", text.Body)
	}
	if text.Label != "words:en" {
		t.Fatalf("unexpected label %q", text.Label)
	}
}
