package source

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one passage in a deck file.
type Entry struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// LoadDeck reads a YAML list of entries. Entries with blank text are
// dropped.
func LoadDeck(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	var raw []Entry
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse deck %s: %w", path, err)
	}
	entries := raw[:0]
	for i, e := range raw {
		if strings.TrimSpace(e.Text) == "" {
			continue
		}
		if e.Title == "" {
			e.Title = fmt.Sprintf("#%d", i+1)
		}
		e.Text = Normalize(e.Text)
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return entries, nil
}

// FromDeck returns entry pick (zero based) of the deck at path.
func FromDeck(path string, pick int) (Text, error) {
	entries, err := LoadDeck(path)
	if err != nil {
		return Text{}, err
	}
	if pick < 0 || pick >= len(entries) {
		return Text{}, fmt.Errorf("pick %d of %d: %w", pick, len(entries), ErrNoEntry)
	}
	return deckText(entries[pick]), nil
}

// Deck cycles through deck entries starting at a pick.
type Deck struct {
	entries []Entry
	next    int
}

// NewDeck loads the deck at path positioned at pick.
func NewDeck(path string, pick int) (*Deck, error) {
	entries, err := LoadDeck(path)
	if err != nil {
		return nil, err
	}
	if pick < 0 || pick >= len(entries) {
		return nil, fmt.Errorf("pick %d of %d: %w", pick, len(entries), ErrNoEntry)
	}
	return &Deck{entries: entries, next: pick}, nil
}

// Len returns the number of entries.
func (d *Deck) Len() int { return len(d.entries) }

// Next implements Provider.
func (d *Deck) Next() (Text, error) {
	e := d.entries[d.next]
	d.next = (d.next + 1) % len(d.entries)
	return deckText(e), nil
}

func deckText(e Entry) Text {
	return Text{Title: e.Title, Label: "deck:" + e.Title, Body: e.Text}
}
