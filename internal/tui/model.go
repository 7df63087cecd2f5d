// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/passage/internal/glyph"
	"github.com/verte-zerg/passage/internal/layout"
	"github.com/verte-zerg/passage/internal/model"
	"github.com/verte-zerg/passage/internal/passage"
	"github.com/verte-zerg/passage/internal/render"
	"github.com/verte-zerg/passage/internal/scroll"
	"github.com/verte-zerg/passage/internal/session"
	"github.com/verte-zerg/passage/internal/source"
	statsPkg "github.com/verte-zerg/passage/internal/stats"
	"github.com/verte-zerg/passage/internal/store"
)

const (
	defaultWidth  = 80
	contentRatio  = 0.70
	minWrapColumn = 8
	// cellScale converts scroll tuning given for pixel lines to one-cell lines.
	cellScale = 1.0 / 40
)

type tickMsg time.Time

type keyMap struct {
	Quit key.Binding
	Skip key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Skip, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Skip, k.Quit}}
}

// Options configures the typing UI.
type Options struct {
	Provider source.Provider
	// Store may be nil, in which case sessions are not saved.
	Store  *store.Store
	Policy passage.Policy
	// Scroll is tuned for pixel lines and scaled down to terminal rows.
	Scroll   scroll.Tuning
	MemoSize int
	Logger   *log.Logger
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	opts   Options
	logger *log.Logger

	text     source.Text
	session  *session.Session
	err      error
	lastTick time.Time

	width  int
	height int

	keys   keyMap
	help   help.Model
	bar    progress.Model
	spring harmonica.Spring
	barPos float64
	barVel float64

	lastWPM float64
	lastAcc float64
	hasLast bool

	allWPM       float64
	allAcc       float64
	allCorrect   int
	allIncorrect int
	allDuration  int64
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	returnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a typing TUI model and loads the first passage.
func NewModel(opts Options) (*Model, error) {
	if opts.Provider == nil {
		opts.Provider = source.Static{Text: source.Builtin()}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Scroll == (scroll.Tuning{}) {
		opts.Scroll = scroll.DefaultTuning()
	}
	opts.Scroll = opts.Scroll.Scaled(cellScale)
	h := help.New()
	m := &Model{
		opts:   opts,
		logger: opts.Logger,
		width:  defaultWidth,
		keys: keyMap{
			Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
			Skip: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip")),
		},
		help: h,
		bar: progress.New(
			progress.WithWidth(wrapColumns(defaultWidth)),
			progress.WithGradient("#8C8C8C", "#C89A3A"),
			progress.WithoutPercentage(),
		),
		spring: harmonica.NewSpring(harmonica.FPS(60), 8.0, 1.0),
	}
	if err := m.nextPassage(); err != nil {
		return nil, err
	}
	m.loadFooterStats()
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = wrapColumns(msg.Width)
		if err := m.session.Resize(geometryFor(msg.Width)); err != nil {
			m.logger.Error("failed to resize", "err", err)
		}
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		dt := scroll.Step
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick)
		}
		m.lastTick = now
		m.session.Tick(dt)
		m.barPos, m.barVel = m.spring.Update(m.barPos, m.barVel, m.session.Progress())
		return m, tickCmd()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Skip):
			m.skip()
			return m, nil
		}
		switch msg.Type {
		case tea.KeySpace:
			m.handleRunes([]rune{' '})
		case tea.KeyEnter:
			m.handleRunes([]rune{'\n'})
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error())
	}
	frame, err := m.session.Frame()
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	rows := paintRows(frame, m.opts.visibleLines(), 0)
	columns := wrapColumns(m.width)
	content := lipgloss.NewStyle().Width(columns).Render(strings.Join(rows, "\n"))
	content = lipgloss.JoinVertical(lipgloss.Left, content, "", m.bar.ViewAs(clamp01(m.barPos)))
	if m.height < 4 {
		return content
	}
	footer := footerStyle.Render(m.renderStats(m.session.Progress()))
	keys := m.help.View(m.keys)
	body := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, keys)
	return body + "\n" + footerLine + "\n" + helpLine
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		m.session.HandleKey(r)
		if m.session.Finished() {
			m.finishSession()
			if err := m.nextPassage(); err != nil {
				m.err = err
			}
			return
		}
	}
}

func (m *Model) skip() {
	m.logger.Info("passage skipped", "source", m.text.Label)
	if err := m.nextPassage(); err != nil {
		m.err = err
	}
}

func (m *Model) nextPassage() error {
	text, err := m.opts.Provider.Next()
	if err != nil {
		return fmt.Errorf("failed to load passage: %w", err)
	}
	s, err := session.New(text.Body, session.Options{
		Metrics:  glyph.Cells{},
		Geometry: geometryFor(m.width),
		View:     terminalView(),
		Scroll:   m.opts.Scroll,
		Policy:   m.opts.Policy,
		MemoSize: m.opts.MemoSize,
		Source:   text.Label,
		Logger:   m.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	m.text = text
	m.session = s
	m.barPos, m.barVel = 0, 0
	return nil
}

func (m *Model) loadFooterStats() {
	if m.opts.Store == nil {
		return
	}
	ctx := context.Background()
	sessions, err := m.opts.Store.ListSessions(ctx, model.StatsConfig{})
	if err != nil {
		m.logger.Error("failed to load session stats", "err", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	last := sessions[len(sessions)-1]
	wpm, _, acc := statsPkg.SessionMetrics(last.Correct, last.Incorrect, last.DurationMs)
	m.lastWPM = wpm
	m.lastAcc = acc
	m.hasLast = true

	for _, s := range sessions {
		m.allCorrect += s.Correct
		m.allIncorrect += s.Incorrect
		m.allDuration += s.DurationMs
	}
	m.recomputeAllTime()
}

func (m *Model) recomputeAllTime() {
	wpm, _, acc := statsPkg.SessionMetrics(m.allCorrect, m.allIncorrect, m.allDuration)
	m.allWPM = wpm
	m.allAcc = acc
}

func (m *Model) renderStats(fraction float64) string {
	segments := []string{fmt.Sprintf("Progress %d%%", int(fraction*100))}
	if m.text.Title != "" {
		segments = append([]string{m.text.Title}, segments...)
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc*100))
	}
	segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.allWPM, m.allAcc*100))
	return strings.Join(segments, "  ")
}

func (m *Model) finishSession() {
	stats, chars := m.session.Result()
	m.logger.Info("passage finished", "source", stats.Source, "dump", m.session.Dump())
	if m.opts.Store != nil {
		ctx := context.Background()
		if _, err := m.opts.Store.InsertSession(ctx, stats, chars); err != nil {
			m.logger.Error("failed to save session", "err", err)
		}
	}
	wpm, _, acc := statsPkg.SessionMetrics(stats.CorrectNonSpace, stats.IncorrectNonSpace, stats.DurationMs)
	m.lastWPM = wpm
	m.lastAcc = acc
	m.hasLast = true
	m.allCorrect += stats.CorrectNonSpace
	m.allIncorrect += stats.IncorrectNonSpace
	m.allDuration += stats.DurationMs
	m.recomputeAllTime()
}

// visibleLines mirrors the lower bound the scroll controller applies.
func (o Options) visibleLines() int {
	return max(o.Scroll.VisibleLines, 2)
}

func tickCmd() tea.Cmd {
	return tea.Tick(scroll.Step, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func wrapColumns(width int) int {
	return max(int(float64(width)*contentRatio), minWrapColumn)
}

func geometryFor(width int) layout.Geometry {
	return layout.Geometry{WrapX: float64(wrapColumns(width))}
}

func terminalView() render.View {
	return render.View{CursorHeight: 1, WordBarHeight: 1}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
