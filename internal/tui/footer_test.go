package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/passage/internal/source"
)

func TestRenderStatsFormats(t *testing.T) {
	m := &Model{
		text:    source.Text{Title: "Sample"},
		hasLast: true,
		lastWPM: 72.4,
		lastAcc: 0.978,
		allWPM:  68.1,
		allAcc:  0.969,
	}
	out := m.renderStats(0.5)
	if !containsAll(out, []string{"Sample", "Progress 50%", "Last 72.4 WPM", "97.8%", "All-time 68.1 WPM", "96.9%"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderStatsWithoutHistory(t *testing.T) {
	m := &Model{}
	out := m.renderStats(0)
	if strings.Contains(out, "Last") {
		t.Fatalf("expected no last segment: %s", out)
	}
	if !containsAll(out, []string{"Progress 0%", "All-time 0.0 WPM"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
