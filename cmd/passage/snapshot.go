package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/passage/internal/glyph"
	"github.com/verte-zerg/passage/internal/layout"
	"github.com/verte-zerg/passage/internal/passage"
	"github.com/verte-zerg/passage/internal/raster"
	"github.com/verte-zerg/passage/internal/render"
	"github.com/verte-zerg/passage/internal/scroll"
	"github.com/verte-zerg/passage/internal/session"
)

const (
	defaultFontSize    = 30
	defaultImageWidth  = 900
	defaultLeftMargin  = 64
	defaultRightMargin = 64
	defaultTopMargin   = 100
	defaultCharPadding = 2
	defaultHighlight   = 5
	defaultLineSpacing = 8
	defaultSettleTicks = 120
)

var (
	replayKeys     string
	snapshotOut    string
	snapshotScale  float64
	snapshotSettle int
	snapshotFont   float64
	snapshotWidth  int
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Replay keystrokes and save the frame as an image",
		Args:  cobra.NoArgs,
		RunE:  runSnapshotCmd,
	}
	cmd.Flags().StringVar(&replayKeys, "keys", "", `keystrokes to replay ("\n" for enter)`)
	cmd.Flags().StringVar(&snapshotOut, "out", "passage.png", "output image (png, jpg, gif, tif or bmp)")
	cmd.Flags().Float64Var(&snapshotScale, "scale", 1, "image scale factor")
	cmd.Flags().IntVar(&snapshotSettle, "settle", defaultSettleTicks, "scroll ticks to run after the last key")
	cmd.Flags().Float64Var(&snapshotFont, "font-size", defaultFontSize, "font size in points")
	cmd.Flags().IntVar(&snapshotWidth, "width", defaultImageWidth, "canvas width in pixels")
	return cmd
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay keystrokes and print the correctness dump",
		Args:  cobra.NoArgs,
		RunE:  runReplayCmd,
	}
	cmd.Flags().StringVar(&replayKeys, "keys", "", `keystrokes to replay ("\n" for enter)`)
	return cmd
}

func runSnapshotCmd(cmd *cobra.Command, _ []string) error {
	applyFloatConfig(cmd, "font-size", &snapshotFont, fileCfg.Layout.FontSize)
	applyIntConfig(cmd, "width", &snapshotWidth, fileCfg.Layout.Width)
	face, err := glyph.NewGoMono(snapshotFont)
	if err != nil {
		return err
	}
	geometry, err := pixelGeometry(snapshotWidth)
	if err != nil {
		return err
	}
	s, err := replay(cmd, face, geometry, render.DefaultView())
	if err != nil {
		return err
	}
	for i := 0; i < snapshotSettle; i++ {
		s.Tick(scroll.Step)
	}
	frame, err := s.Frame()
	if err != nil {
		return err
	}
	img, err := raster.Draw(frame, face.Face(), raster.DefaultPalette())
	if err != nil {
		return err
	}
	if err := raster.Save(img, snapshotOut, snapshotScale); err != nil {
		return err
	}
	logger.Info("snapshot saved", "path", snapshotOut, "size", img.Bounds().Size())
	return nil
}

func runReplayCmd(cmd *cobra.Command, _ []string) error {
	s, err := replay(cmd, glyph.Cells{}, layout.Geometry{WrapX: 60}, render.View{CursorHeight: 1, WordBarHeight: 1})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, s.Dump()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	result, _ := s.Result()
	acc := 1.0
	if total := result.CorrectNonSpace + result.IncorrectNonSpace; total > 0 {
		acc = float64(result.CorrectNonSpace) / float64(total)
	}
	_, err = fmt.Fprintf(out, "finished=%t correct=%d incorrect=%d accuracy=%.1f%%\n",
		s.Finished(), result.CorrectNonSpace, result.IncorrectNonSpace, acc*100)
	return err
}

// replay starts a session on the configured passage and feeds it the --keys
// keystrokes.
func replay(cmd *cobra.Command, m glyph.Metrics, g layout.Geometry, v render.View) (*session.Session, error) {
	cfg, err := practiceConfig(cmd)
	if err != nil {
		return nil, err
	}
	provider, err := buildProvider(cfg, nil)
	if err != nil {
		return nil, err
	}
	text, err := provider.Next()
	if err != nil {
		return nil, err
	}
	policy, _ := passage.ParsePolicy(cfg.Policy)
	s, err := session.New(text.Body, session.Options{
		Metrics:  m,
		Geometry: g,
		View:     v,
		Scroll:   scrollTuning(),
		Policy:   policy,
		Source:   text.Label,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	for _, r := range unescapeKeys(replayKeys) {
		s.HandleKey(r)
		s.Tick(scroll.Step)
	}
	return s, nil
}

func pixelGeometry(width int) (layout.Geometry, error) {
	l := fileCfg.Layout
	g := layout.Geometry{
		LeftMargin:       floatOr(l.LeftMargin, defaultLeftMargin),
		TopMargin:        floatOr(l.TopMargin, defaultTopMargin),
		CharPadding:      floatOr(l.CharPadding, defaultCharPadding),
		HighlightPadding: floatOr(l.HighlightPadding, defaultHighlight),
		LineSpacing:      floatOr(l.LineSpacing, defaultLineSpacing),
	}
	g.WrapX = float64(width) - floatOr(l.RightMargin, defaultRightMargin)
	if err := g.Validate(); err != nil {
		return layout.Geometry{}, fmt.Errorf("invalid layout config: %w", err)
	}
	return g, nil
}

func unescapeKeys(keys string) string {
	return strings.NewReplacer(`\n`, "\n", `\t`, " ").Replace(keys)
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
