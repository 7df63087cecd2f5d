// Package session holds the state of one practice passage: typing progress,
// scrolling and per-character stats.
package session

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/verte-zerg/passage/internal/glyph"
	"github.com/verte-zerg/passage/internal/layout"
	"github.com/verte-zerg/passage/internal/model"
	"github.com/verte-zerg/passage/internal/passage"
	"github.com/verte-zerg/passage/internal/render"
	"github.com/verte-zerg/passage/internal/scroll"
)

// Options configures a Session.
type Options struct {
	Metrics  glyph.Metrics
	Geometry layout.Geometry
	View     render.View
	Scroll   scroll.Tuning
	Policy   passage.Policy
	// MemoSize is the number of layouts to keep; zero lays out every frame.
	MemoSize int
	// Source describes where the passage text came from.
	Source string
	Logger *log.Logger
	Now    func() time.Time
}

type charStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id       string
	opts     Options
	logger   *log.Logger
	passage  *passage.Passage
	scroll   *scroll.Controller
	memo     *layout.Memo
	geometry layout.Geometry

	started       bool
	startedAt     time.Time
	endedAt       time.Time
	prevCorrectAt time.Time

	correctNonSpace   int
	incorrectNonSpace int
	charStats         map[rune]*charStat
}

// New starts a session for text.
func New(text string, opts Options) (*Session, error) {
	if opts.Metrics == nil {
		opts.Metrics = glyph.Cells{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if err := opts.Geometry.Validate(); err != nil {
		return nil, err
	}

	p, err := passage.New(text, passage.WithPolicy(opts.Policy), passage.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}
	memo, err := layout.NewMemo(opts.MemoSize)
	if err != nil {
		return nil, err
	}
	ctrl := scroll.NewController(opts.Scroll, opts.Geometry.LineHeight(opts.Metrics))
	opts.View.VisibleLines = ctrl.VisibleLines()

	return &Session{
		id:        uuid.NewString(),
		opts:      opts,
		logger:    opts.Logger.With("session", opts.Source),
		passage:   p,
		scroll:    ctrl,
		memo:      memo,
		geometry:  opts.Geometry,
		charStats: map[rune]*charStat{},
	}, nil
}

// ID returns the unique session id.
func (s *Session) ID() string { return s.id }

// HandleKey submits one typed rune and reports whether it matched.
func (s *Session) HandleKey(r rune) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expected, err := s.passage.CurrentChar()
	if err != nil {
		// Stray keystroke after the end; the passage logs it.
		s.passage.Submit(r)
		return false
	}
	now := s.opts.Now()
	if !s.started {
		s.started = true
		s.startedAt = now
	}
	matched := s.passage.Submit(r)
	s.updateStats(expected, matched, now)
	if s.passage.Finished() {
		s.endedAt = now
	}
	return matched
}

func (s *Session) updateStats(expected rune, matched bool, now time.Time) {
	if layout.IsDelimiter(expected) {
		return
	}
	entry, ok := s.charStats[expected]
	if !ok {
		entry = &charStat{}
		s.charStats[expected] = entry
	}
	if !matched {
		s.incorrectNonSpace++
		entry.incorrect++
		return
	}
	s.correctNonSpace++
	entry.correct++
	if !s.prevCorrectAt.IsZero() {
		entry.latencySumMs += now.Sub(s.prevCorrectAt).Milliseconds()
		entry.latencyCount++
	}
	s.prevCorrectAt = now
}

// Tick advances scrolling by dt.
func (s *Session) Tick(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.layout()
	if err != nil {
		s.logger.Error("layout failed", "err", err)
		return
	}
	if s.scroll.Observe(res.WrapIndices, s.passage.Index()) {
		s.logger.Debug("scrolling", "lines", s.scroll.LinesScrolled())
	}
	s.scroll.Tick(dt)
}

// Frame composes the current frame.
func (s *Session) Frame() (render.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.layout()
	if err != nil {
		return render.Frame{}, err
	}
	return render.Compose(render.Input{
		Layout:   res,
		Text:     s.passage.Text(),
		Index:    s.passage.Index(),
		Correct:  s.passage.Correctness(),
		Finished: s.passage.Finished(),
		ScrollY:  s.scroll.Offset(),
		Metrics:  s.opts.Metrics,
		Geometry: s.geometry,
		View:     s.opts.View,
	}), nil
}

func (s *Session) layout() (layout.Result, error) {
	return s.memo.Compute(s.passage.Text(), s.opts.Metrics, s.geometry)
}

// Resize replaces the layout geometry, e.g. after a window resize.
func (s *Session) Resize(g layout.Geometry) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("failed to resize session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.geometry = g
	s.scroll.SetLineHeight(g.LineHeight(s.opts.Metrics))
	res, err := s.layout()
	if err != nil {
		return fmt.Errorf("failed to lay out resized passage: %w", err)
	}
	s.scroll.Retarget(res.WrapIndices, s.passage.Index())
	return nil
}

// Geometry returns the current layout geometry.
func (s *Session) Geometry() layout.Geometry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.geometry
}

// Finished reports whether the passage is complete.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passage.Finished()
}

// Started reports whether any key has been typed.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Progress returns the cursor position as a fraction of the passage.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passage.Progress()
}

// Dump returns the two-line correctness dump of the passage.
func (s *Session) Dump() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passage.String()
}

// Result returns the session summary and its per-character stats. A session
// that is not finished ends at the current time.
func (s *Session) Result() (model.SessionStats, []model.CharStats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ended := s.endedAt
	if ended.IsZero() {
		ended = s.opts.Now()
	}
	stats := model.SessionStats{
		UUID:              s.id,
		StartedAt:         s.startedAt,
		EndedAt:           ended,
		Source:            s.opts.Source,
		Policy:            s.passage.Policy().String(),
		Runes:             len(s.passage.Text()),
		CorrectNonSpace:   s.correctNonSpace,
		IncorrectNonSpace: s.incorrectNonSpace,
	}
	if s.started {
		stats.DurationMs = ended.Sub(s.startedAt).Milliseconds()
	}

	chars := make([]model.CharStats, 0, len(s.charStats))
	for ch, entry := range s.charStats {
		chars = append(chars, model.CharStats{
			Char:         string(ch),
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}
	return stats, chars
}
