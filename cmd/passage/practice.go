package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/passage/internal/config"
	"github.com/verte-zerg/passage/internal/generator"
	"github.com/verte-zerg/passage/internal/model"
	"github.com/verte-zerg/passage/internal/passage"
	"github.com/verte-zerg/passage/internal/source"
	"github.com/verte-zerg/passage/internal/stats"
	"github.com/verte-zerg/passage/internal/store"
	"github.com/verte-zerg/passage/internal/tui"
	"github.com/verte-zerg/passage/internal/wordlist"
)

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := practiceConfig(cmd)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("practice needs an interactive terminal; try 'passage replay' or 'passage snapshot'")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}()

	provider, err := buildProvider(cfg, st)
	if err != nil {
		return err
	}
	policy, _ := passage.ParsePolicy(cfg.Policy)
	memoSize := 0
	if v := fileCfg.Layout.CacheSize; v != nil {
		memoSize = *v
	}
	m, err := tui.NewModel(tui.Options{
		Provider: provider,
		Store:    st,
		Policy:   policy,
		Scroll:   scrollTuning(),
		MemoSize: memoSize,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildProvider picks the passage source: a file, a deck, a generated word
// passage, or the built-in sample when no word list is installed. st may be
// nil, which disables weak-character focus.
func buildProvider(cfg model.Config, st *store.Store) (source.Provider, error) {
	switch {
	case cfg.File != "":
		text, err := source.FromFile(cfg.File)
		if err != nil {
			return nil, err
		}
		return source.Static{Text: text}, nil
	case cfg.Deck != "":
		return source.NewDeck(cfg.Deck, cfg.Pick)
	}

	path := config.DefaultWordListPath(cfg.Lang)
	words, err := wordlist.LoadWords(path, wordlist.FilterForLang(cfg.Lang))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("no word list installed; using the built-in passage", "path", path)
			return source.Static{Text: source.Builtin()}, nil
		}
		return nil, fmt.Errorf("failed to load word list: %w", err)
	}
	p := &source.Words{Gen: generator.New(), List: words, Cfg: cfg}
	if st != nil {
		p.Weak = weakChars(st, cfg)
	}
	return p, nil
}

func weakChars(st *store.Store, cfg model.Config) func() (map[rune]struct{}, error) {
	noticed := false
	label := "words:" + cfg.Lang
	return func() (map[rune]struct{}, error) {
		aggs, err := st.GetWeakChars(context.Background(), cfg.WeakWindow, label)
		if err != nil {
			logger.Error("failed to load weak chars", "err", err)
			return nil, nil
		}
		if len(aggs) == 0 {
			if !noticed {
				logger.Info("no stats available for weak-char focus yet; using normal generator")
				noticed = true
			}
			return nil, nil
		}
		return stats.SelectWeakChars(aggs, cfg.WeakTop), nil
	}
}
