package stats

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/verte-zerg/passage/internal/model"
)

// charScore is the typing record of one character, merged across aggregates.
type charScore struct {
	r         rune
	correct   int
	incorrect int
}

func (s charScore) total() int { return s.correct + s.incorrect }

func (s charScore) accuracy() float64 { return accuracy(s.correct, s.incorrect) }

// scoreChars merges aggregates by their leading rune. Aggregates without a
// valid leading rune are skipped.
func scoreChars(aggs []model.CharAggregate) []charScore {
	index := make(map[rune]int, len(aggs))
	scores := make([]charScore, 0, len(aggs))
	for _, agg := range aggs {
		r, size := utf8.DecodeRuneInString(agg.Char)
		if r == utf8.RuneError && size <= 1 {
			continue
		}
		i, ok := index[r]
		if !ok {
			i = len(scores)
			index[r] = i
			scores = append(scores, charScore{r: r})
		}
		scores[i].correct += agg.Correct
		scores[i].incorrect += agg.Incorrect
	}
	return scores
}

// SelectWeakChars returns the top characters with the lowest accuracy. Ties
// go to the lower rune. A non-positive top selects every character.
func SelectWeakChars(aggs []model.CharAggregate, top int) map[rune]struct{} {
	scores := scoreChars(aggs)
	slices.SortFunc(scores, func(a, b charScore) int {
		if c := cmp.Compare(a.accuracy(), b.accuracy()); c != 0 {
			return c
		}
		return cmp.Compare(a.r, b.r)
	})
	if top <= 0 || top > len(scores) {
		top = len(scores)
	}
	weak := make(map[rune]struct{}, top)
	for _, s := range scores[:top] {
		weak[s.r] = struct{}{}
	}
	return weak
}

// TopCharsByFrequency returns the n most typed characters, most frequent
// first.
func TopCharsByFrequency(aggs []model.CharAggregate, n int) []rune {
	if n <= 0 {
		return nil
	}
	scores := scoreChars(aggs)
	slices.SortFunc(scores, func(a, b charScore) int {
		if c := cmp.Compare(b.total(), a.total()); c != 0 {
			return c
		}
		return cmp.Compare(a.r, b.r)
	})
	out := make([]rune, 0, min(n, len(scores)))
	for _, s := range scores[:min(n, len(scores))] {
		out = append(out, s.r)
	}
	return out
}

func accuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total == 0 {
		return 1
	}
	return float64(correct) / float64(total)
}

func charLabel(ch string) string {
	if ch == " " {
		return "<space>"
	}
	return ch
}
