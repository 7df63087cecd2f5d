// Package passage tracks typing progress through a passage of text.
package passage

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	// ErrEmptyPassage is returned when constructing a passage without text.
	ErrEmptyPassage = errors.New("passage: empty text")
	// ErrOutOfRange is returned when querying a finished passage.
	ErrOutOfRange = errors.New("passage: no character left to type")
	// ErrAdvancePastEnd is logged when keystrokes arrive after the last character.
	ErrAdvancePastEnd = errors.New("passage: advance past end")
)

// Policy decides what an incorrect keystroke does to the cursor.
type Policy int

const (
	// AdvanceOnMiss records the miss and moves on to the next character.
	AdvanceOnMiss Policy = iota
	// BlockOnMiss holds the cursor until the correct character is typed.
	// The character is still recorded as incorrect.
	BlockOnMiss
)

// String returns the config name of the policy.
func (p Policy) String() string {
	switch p {
	case BlockOnMiss:
		return "block"
	default:
		return "advance"
	}
}

// ParsePolicy parses a policy config name.
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "advance":
		return AdvanceOnMiss, true
	case "block":
		return BlockOnMiss, true
	default:
		return AdvanceOnMiss, false
	}
}

// Option configures a Passage.
type Option func(*Passage)

// WithPolicy sets the miss policy.
func WithPolicy(p Policy) Option {
	return func(ps *Passage) { ps.policy = p }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(ps *Passage) {
		if l != nil {
			ps.logger = l
		}
	}
}

// Passage is the text being typed plus the typing progress through it.
type Passage struct {
	text          []rune
	index         int
	correct       []bool
	lastIncorrect int
	done          bool
	policy        Policy
	logger        *log.Logger
}

// New creates a passage. Text should end in a space or newline; when it does
// not, a warning is logged and the passage is still usable.
func New(text string, opts ...Option) (*Passage, error) {
	if text == "" {
		return nil, ErrEmptyPassage
	}
	p := &Passage{
		text:          []rune(text),
		lastIncorrect: -1,
		logger:        log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	if last := p.text[len(p.text)-1]; last != ' ' && last != '\n' {
		p.logger.Warn("passage does not end in whitespace", "last", string(last), "runes", len(p.text))
	}
	p.correct = make([]bool, 0, len(p.text))
	return p, nil
}

// Text returns the passage runes. Callers must not modify the slice.
func (p *Passage) Text() []rune { return p.text }

// Index returns the cursor position.
func (p *Passage) Index() int { return p.index }

// Correctness returns one entry per resolved character. Callers must not
// modify the slice.
func (p *Passage) Correctness() []bool { return p.correct }

// LastIncorrect returns the most recent index typed incorrectly, or -1.
func (p *Passage) LastIncorrect() int { return p.lastIncorrect }

// Policy returns the miss policy.
func (p *Passage) Policy() Policy { return p.policy }

// Finished reports whether the final character has been resolved.
func (p *Passage) Finished() bool { return p.done }

// CurrentChar returns the character awaiting input.
func (p *Passage) CurrentChar() (rune, error) {
	if p.done {
		return 0, ErrOutOfRange
	}
	return p.text[p.index], nil
}

// Progress returns the cursor position as a fraction of the passage.
func (p *Passage) Progress() float64 {
	if p.done {
		return 1
	}
	if len(p.text) < 2 {
		return 0
	}
	return float64(p.index) / float64(len(p.text)-1)
}

// Submit applies one keystroke and reports whether it matched.
func (p *Passage) Submit(r rune) bool {
	if p.done {
		p.logger.Warn(ErrAdvancePastEnd.Error(), "rune", string(r), "index", p.index)
		return false
	}
	if r != p.text[p.index] {
		p.miss()
		return false
	}
	// A blocked index that was missed stays marked incorrect.
	p.resolve(p.lastIncorrect != p.index)
	return true
}

func (p *Passage) miss() {
	missedBefore := p.lastIncorrect == p.index
	p.lastIncorrect = p.index
	if p.policy == BlockOnMiss {
		if !missedBefore {
			p.logger.Debug("blocked on miss", "index", p.index)
		}
		return
	}
	p.resolve(false)
}

func (p *Passage) resolve(correct bool) {
	p.correct = append(p.correct, correct)
	p.advance()
}

func (p *Passage) advance() {
	if p.index == len(p.text)-1 {
		p.done = true
		return
	}
	p.index++
}

// String renders the text and a parallel line of '.' for correct and '*'
// for incorrect characters.
func (p *Passage) String() string {
	var b strings.Builder
	b.Grow(2*len(p.text) + 2)
	b.WriteString(string(p.text))
	b.WriteByte('\n')
	for _, ok := range p.correct {
		if ok {
			b.WriteByte('.')
		} else {
			b.WriteByte('*')
		}
	}
	b.WriteByte('\n')
	return b.String()
}
