package stats

import (
	"testing"

	"github.com/verte-zerg/passage/internal/model"
)

func TestTopCharsByFrequency(t *testing.T) {
	aggs := []model.CharAggregate{
		{Char: "b", Correct: 3, Incorrect: 1},
		{Char: "a", Correct: 2, Incorrect: 2},
		{Char: "c", Correct: 1, Incorrect: 0},
	}
	top := TopCharsByFrequency(aggs, 2)
	if string(top) != "ab" {
		t.Fatalf("unexpected order: %q", string(top))
	}
	if got := TopCharsByFrequency(aggs, 10); len(got) != 3 {
		t.Fatalf("expected all 3 chars, got %q", string(got))
	}
	if got := TopCharsByFrequency(aggs, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %q", string(got))
	}
}

func TestSelectWeakChars(t *testing.T) {
	aggs := []model.CharAggregate{
		{Char: "a", Correct: 9, Incorrect: 1},
		{Char: "é", Correct: 1, Incorrect: 3},
		{Char: "b", Correct: 1, Incorrect: 1},
		{Char: "c", Correct: 1, Incorrect: 1},
		{Char: "", Correct: 0, Incorrect: 5},
		{Char: "\xff", Correct: 0, Incorrect: 5},
	}
	weak := SelectWeakChars(aggs, 2)
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak chars, got %v", weak)
	}
	for _, r := range []rune{'é', 'b'} {
		if _, ok := weak[r]; !ok {
			t.Fatalf("expected %q in weak set %v", r, weak)
		}
	}
	if got := SelectWeakChars(aggs, 0); len(got) != 4 {
		t.Fatalf("expected every valid char, got %v", got)
	}
	if got := SelectWeakChars(nil, 3); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestScoreCharsMergesByRune(t *testing.T) {
	// Aggregates from different sessions may repeat a character.
	aggs := []model.CharAggregate{
		{Char: "x", Correct: 1, Incorrect: 0},
		{Char: "y", Correct: 4, Incorrect: 0},
		{Char: "x", Correct: 0, Incorrect: 4},
	}
	scores := scoreChars(aggs)
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %+v", scores)
	}
	if scores[0].r != 'x' || scores[0].total() != 5 || scores[0].accuracy() != 0.2 {
		t.Fatalf("unexpected merged score %+v", scores[0])
	}
	weak := SelectWeakChars(aggs, 1)
	if _, ok := weak['x']; !ok {
		t.Fatalf("expected merged x to be weakest, got %v", weak)
	}
}
