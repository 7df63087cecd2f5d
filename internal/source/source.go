// Package source produces passage texts from files, decks, word lists and
// the built-in sample.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/passage/internal/generator"
	"github.com/verte-zerg/passage/internal/layout"
	"github.com/verte-zerg/passage/internal/model"
)

var (
	// ErrEmpty is returned when a source yields no text.
	ErrEmpty = errors.New("source is empty")
	// ErrNoEntry is returned when a deck pick is out of range.
	ErrNoEntry = errors.New("deck entry out of range")
)

const builtinText = "Developers often work in teams, but it is not uncommon to find " +
	"a developer who works independently as a consultant.\n"

// Text is a passage ready for typing, with a label recorded alongside its
// sessions.
type Text struct {
	Title string
	Label string
	Body  string
}

// Provider yields successive passages.
type Provider interface {
	Next() (Text, error)
}

// Normalize converts line endings to LF, tabs to spaces and makes sure the
// text ends with a word delimiter.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", " ")
	if text == "" {
		return text
	}
	runes := []rune(text)
	if !layout.IsDelimiter(runes[len(runes)-1]) {
		text += "\n"
	}
	return text
}

// Builtin returns the sample passage.
func Builtin() Text {
	return Text{Title: "Sample", Label: "builtin", Body: builtinText}
}

// FromFile reads a plain-text passage.
func FromFile(path string) (Text, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Text{}, fmt.Errorf("read passage: %w", err)
	}
	body := Normalize(string(b))
	if strings.TrimSpace(body) == "" {
		return Text{}, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	name := filepath.Base(path)
	return Text{Title: name, Label: "file:" + name, Body: body}, nil
}

// FromWords builds a generated passage from a word list.
func FromWords(gen *generator.Generator, words []string, cfg model.Config, weak map[rune]struct{}) (Text, error) {
	if len(words) == 0 || cfg.Words <= 0 {
		return Text{}, ErrEmpty
	}
	punct := []rune(cfg.PunctSet)
	var picked []string
	if len(weak) > 0 {
		picked = gen.GenerateWeighted(words, cfg.Words, cfg.CapsPct, cfg.PunctPct, punct, weak, cfg.WeakFactor)
	} else {
		picked = gen.Generate(words, cfg.Words, cfg.CapsPct, cfg.PunctPct, punct)
	}
	return Text{
		Title: "Words",
		Label: "words:" + cfg.Lang,
		Body:  generator.Lines(picked, cfg.LineWords),
	}, nil
}

// Static repeats one passage.
type Static struct {
	Text Text
}

// Next implements Provider.
func (s Static) Next() (Text, error) {
	return s.Text, nil
}

// Words generates a fresh passage on every call. Weak, when set, is consulted
// before each passage so recent mistakes steer word choice.
type Words struct {
	Gen  *generator.Generator
	List []string
	Cfg  model.Config
	Weak func() (map[rune]struct{}, error)
}

// Next implements Provider.
func (w *Words) Next() (Text, error) {
	var weak map[rune]struct{}
	if w.Weak != nil && w.Cfg.FocusWeak {
		set, err := w.Weak()
		if err != nil {
			return Text{}, err
		}
		weak = set
	}
	return FromWords(w.Gen, w.List, w.Cfg, weak)
}
