// Package main provides the CLI entrypoint for passage.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/passage/internal/config"
	"github.com/verte-zerg/passage/internal/logging"
	"github.com/verte-zerg/passage/internal/model"
	"github.com/verte-zerg/passage/internal/passage"
	"github.com/verte-zerg/passage/internal/scroll"
)

const (
	defaultLang        = "en"
	defaultWords       = 30
	defaultLineWords   = 10
	defaultCaps        = 0.1
	defaultPunct       = 0.1
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 20
	defaultPolicy      = "advance"
)

const defaultPunctSet = ".,!?;:"

var (
	practiceLang       string
	practiceWords      int
	practiceLineWords  int
	practiceCaps       float64
	practicePunct      float64
	practicePunctSet   string
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64
	practiceWeakWindow int
	practicePolicy     string
	practiceFile       string
	practiceDeck       string
	practicePick       int
	visibleLines       int

	logFile  string
	logLevel string

	fileCfg  config.FileConfig
	logger   = log.New(io.Discard)
	logClose io.Closer
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "passage",
		Short:             "Typing practice on wrapped, scrolling passages",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setup,
		PersistentPostRun: teardown,
		RunE:              runPracticeCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&practiceLang, "lang", defaultLang, "word list language code")
	flags.IntVar(&practiceWords, "words", defaultWords, "words per generated passage")
	flags.IntVar(&practiceLineWords, "line-words", defaultLineWords, "words per line of a generated passage")
	flags.Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	flags.Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	flags.StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	flags.BoolVar(&practiceFocusWeak, "focus-weak", false, "bias generated passages toward weak characters")
	flags.IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak characters to focus on")
	flags.Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak characters")
	flags.IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak chars")
	flags.StringVar(&practicePolicy, "policy", defaultPolicy, "what a miss does: advance or block")
	flags.StringVar(&practiceFile, "file", "", "practice a plain-text file")
	flags.StringVar(&practiceDeck, "deck", "", "practice a YAML deck of passages")
	flags.IntVar(&practicePick, "pick", 0, "deck entry to start at (zero based)")
	flags.IntVar(&visibleLines, "visible-lines", scroll.DefaultTuning().VisibleLines, "rows shown at once")
	flags.StringVar(&logFile, "log-file", "", "write logs to a file instead of stderr")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newSnapshotCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())

	return rootCmd
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	fileCfg, err = config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	l, closer, err := logging.New(logFile, logLevel)
	if err != nil {
		return err
	}
	logger, logClose = l, closer
	return nil
}

func teardown(_ *cobra.Command, _ []string) {
	if logClose != nil {
		_ = logClose.Close()
	}
}

// practiceConfig merges the config file into flags the user did not set.
func practiceConfig(cmd *cobra.Command) (model.Config, error) {
	p := fileCfg.Practice
	applyStringConfig(cmd, "lang", &practiceLang, p.Lang)
	applyIntConfig(cmd, "words", &practiceWords, p.Words)
	applyIntConfig(cmd, "line-words", &practiceLineWords, p.LineWords)
	applyFloatConfig(cmd, "caps", &practiceCaps, p.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, p.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, p.PunctSet)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, p.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, p.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, p.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, p.WeakWindow)
	applyStringConfig(cmd, "policy", &practicePolicy, p.Policy)
	applyStringConfig(cmd, "deck", &practiceDeck, p.Deck)
	applyIntConfig(cmd, "visible-lines", &visibleLines, fileCfg.Scroll.VisibleLines)

	cfg := model.Config{
		Lang:       practiceLang,
		Words:      practiceWords,
		LineWords:  practiceLineWords,
		CapsPct:    practiceCaps,
		PunctPct:   practicePunct,
		PunctSet:   practicePunctSet,
		FocusWeak:  practiceFocusWeak,
		WeakTop:    practiceWeakTop,
		WeakFactor: practiceWeakFactor,
		WeakWindow: practiceWeakWindow,
		Policy:     practicePolicy,
		File:       practiceFile,
		Deck:       practiceDeck,
		Pick:       practicePick,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func scrollTuning() scroll.Tuning {
	t := scroll.DefaultTuning()
	t.VisibleLines = visibleLines
	if v := fileCfg.Scroll.MaxSpeed; v != nil {
		t.MaxSpeed = *v
	}
	if v := fileCfg.Scroll.MaxForce; v != nil {
		t.MaxForce = *v
	}
	return t
}

func validateConfig(cfg model.Config) error {
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.LineWords < 0 {
		return fmt.Errorf("--line-words must be >= 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	if _, ok := passage.ParsePolicy(cfg.Policy); !ok {
		return fmt.Errorf("--policy must be advance or block, got %q", cfg.Policy)
	}
	if cfg.File != "" && cfg.Deck != "" {
		return fmt.Errorf("--file and --deck are mutually exclusive")
	}
	if cfg.Pick < 0 {
		return fmt.Errorf("--pick must be >= 0")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
