// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Lang       string
	Words      int
	LineWords  int
	CapsPct    float64
	PunctPct   float64
	PunctSet   string
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
	WeakWindow int
	Policy     string
	File       string
	Deck       string
	Pick       int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Source      string
	Since       *time.Time
	Last        int
	CurveWindow int
	Top         int
}

// SessionStats captures a completed typing session.
type SessionStats struct {
	UUID              string
	StartedAt         time.Time
	EndedAt           time.Time
	Source            string
	Policy            string
	Runes             int
	CorrectNonSpace   int
	IncorrectNonSpace int
	DurationMs        int64
}

// CharStats stores per-character stats for a session.
type CharStats struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// CharAggregate aggregates character stats across sessions.
type CharAggregate struct {
	Char         string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  int64
	UUID       string
	Source     string
	EndedAt    time.Time
	Correct    int
	Incorrect  int
	DurationMs int64
}
