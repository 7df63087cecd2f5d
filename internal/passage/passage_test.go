package passage

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func typeAll(p *Passage, keys string) {
	for _, r := range keys {
		p.Submit(r)
	}
}

func TestAllCorrectDump(t *testing.T) {
	p, err := New("hi\n")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	typeAll(p, "hi\n")
	if !reflect.DeepEqual(p.Correctness(), []bool{true, true, true}) {
		t.Fatalf("unexpected correctness %v", p.Correctness())
	}
	if got := p.String(); got != "hi\n\n...\n" {
		t.Fatalf("unexpected dump %q", got)
	}
	if !p.Finished() {
		t.Fatalf("expected finished")
	}
}

func TestMistypeDump(t *testing.T) {
	p, err := New("hi\n")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	typeAll(p, "xi\n")
	if !reflect.DeepEqual(p.Correctness(), []bool{false, true, true}) {
		t.Fatalf("unexpected correctness %v", p.Correctness())
	}
	if got := p.String(); got != "hi\n\n*..\n" {
		t.Fatalf("unexpected dump %q", got)
	}
	if p.LastIncorrect() != 0 {
		t.Fatalf("expected last incorrect 0, got %d", p.LastIncorrect())
	}
}

func TestCorrectnessTracksCursor(t *testing.T) {
	p, err := New("abc def\n")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, r := range "abx dqf" {
		p.Submit(r)
		if len(p.Correctness()) != p.Index() {
			t.Fatalf("expected %d entries, got %d", p.Index(), len(p.Correctness()))
		}
	}
}

func TestFinishBoundary(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	p, err := New("ab ", WithLogger(logger))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	typeAll(p, "ab")
	if p.Finished() {
		t.Fatalf("expected unfinished before the last character")
	}
	if !p.Submit(' ') {
		t.Fatalf("expected final keystroke to match")
	}
	if !p.Finished() {
		t.Fatalf("expected finished after the last character")
	}
	before := append([]bool(nil), p.Correctness()...)
	if p.Submit('x') {
		t.Fatalf("expected no match after finish")
	}
	if !reflect.DeepEqual(before, p.Correctness()) {
		t.Fatalf("correctness changed after finish: %v", p.Correctness())
	}
	if p.Index() != 2 {
		t.Fatalf("expected cursor to stay on last index, got %d", p.Index())
	}
	if !strings.Contains(buf.String(), ErrAdvancePastEnd.Error()) {
		t.Fatalf("expected diagnostic log, got %q", buf.String())
	}
	if _, err := p.CurrentChar(); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if p.Progress() != 1 {
		t.Fatalf("expected full progress, got %v", p.Progress())
	}
}

func TestBlockOnMiss(t *testing.T) {
	p, err := New("ab\n", WithPolicy(BlockOnMiss))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if p.Submit('x') {
		t.Fatalf("expected miss")
	}
	p.Submit('y')
	if p.Index() != 0 || len(p.Correctness()) != 0 {
		t.Fatalf("expected cursor blocked at 0, index=%d entries=%d", p.Index(), len(p.Correctness()))
	}
	if !p.Submit('a') {
		t.Fatalf("expected match")
	}
	typeAll(p, "b\n")
	if got := p.String(); got != "ab\n\n*..\n" {
		t.Fatalf("unexpected dump %q", got)
	}
}

func TestCurrentChar(t *testing.T) {
	p, err := New("ok ")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	r, err := p.CurrentChar()
	if err != nil || r != 'o' {
		t.Fatalf("expected 'o', got %q (%v)", r, err)
	}
	p.Submit('o')
	if r, _ := p.CurrentChar(); r != 'k' {
		t.Fatalf("expected 'k', got %q", r)
	}
	if p.Progress() != 0.5 {
		t.Fatalf("expected progress 0.5, got %v", p.Progress())
	}
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(""); !errors.Is(err, ErrEmptyPassage) {
		t.Fatalf("expected ErrEmptyPassage, got %v", err)
	}
}

func TestNewWarnsWithoutTrailingWhitespace(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New("abc", WithLogger(log.New(&buf))); err != nil {
		t.Fatalf("new: %v", err)
	}
	if !strings.Contains(buf.String(), "does not end in whitespace") {
		t.Fatalf("expected warning, got %q", buf.String())
	}
}

func TestParsePolicy(t *testing.T) {
	if p, ok := ParsePolicy("block"); !ok || p != BlockOnMiss {
		t.Fatalf("expected block policy")
	}
	if p, ok := ParsePolicy(""); !ok || p != AdvanceOnMiss {
		t.Fatalf("expected default advance policy")
	}
	if _, ok := ParsePolicy("wrap"); ok {
		t.Fatalf("expected unknown policy to fail")
	}
}
