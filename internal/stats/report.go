// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/passage/internal/model"
	"github.com/verte-zerg/passage/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []int64
	CharAggsAll      []model.CharAggregate
	CharAggsWindow   []model.CharAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	charAggsAll, err := st.ListCharAggregatesForSessions(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	charAggsWindow, err := st.ListCharAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		CharAggsAll:      charAggsAll,
		CharAggsWindow:   charAggsWindow,
	}, nil
}

// WriteReport prints the summary, the most typed characters and the weakest
// characters of the windowed sessions.
func WriteReport(w io.Writer, report Report, cfg model.StatsConfig) error {
	if err := RenderSummary(w, report.Sessions, cfg.CurveWindow); err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return nil
	}
	top := TopCharsByFrequency(report.CharAggsAll, 10)
	if len(top) > 0 {
		labels := make([]string, len(top))
		for i, r := range top {
			labels[i] = charLabel(string(r))
		}
		if _, err := fmt.Fprintf(w, "Most typed: %s\n\n", strings.Join(labels, " ")); err != nil {
			return err
		}
	}
	return RenderCharTable(w, report.CharAggsWindow, cfg.Top)
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
