// Package recorder keeps the history of completed scans for the lifetime of the process.
package recorder

import (
	"context"
	"time"

	"DipSentinel/internal/model"
)

// Scan origins.
const (
	OriginAPI      = "api"
	OriginSchedule = "schedule"
	OriginBot      = "bot"
)

// ScanRun is one completed scan with its matches.
type ScanRun struct {
	ID             int64         `json:"id"`
	At             time.Time     `json:"timestamp"`
	Origin         string        `json:"origin"`
	Markets        []string      `json:"markets"`
	MinDrop        float64       `json:"min_drop"`
	MaxDrop        float64       `json:"max_drop"`
	Provider       string        `json:"provider"`
	TickersScanned int           `json:"tickers_scanned"`
	Matches        []MatchRecord `json:"matches"`
}

// MatchRecord is the stored summary of one match.
type MatchRecord struct {
	Ticker       string  `json:"ticker" db:"ticker"`
	Name         string  `json:"name" db:"name"`
	DropPct      float64 `json:"drop_pct" db:"drop_pct"`
	CurrentPrice float64 `json:"current_price" db:"current_price"`
	SafetyScore  *int    `json:"safety_score" db:"safety_score"`
	Assessment   *string `json:"assessment" db:"assessment"`
	IsSafe       *bool   `json:"is_safe" db:"is_safe"`
}

// FromAnalyzed flattens analyzed matches into records.
func FromAnalyzed(matches []model.AnalyzedMatch) []MatchRecord {
	out := make([]MatchRecord, len(matches))
	for i, m := range matches {
		out[i] = MatchRecord{
			Ticker:       m.Ticker,
			Name:         m.Name,
			DropPct:      m.DropPct,
			CurrentPrice: m.CurrentPrice,
			IsSafe:       m.IsSafe,
		}
		if m.NewsAnalysis != nil {
			score := m.NewsAnalysis.SafetyScore
			assessment := string(m.NewsAnalysis.Assessment)
			out[i].SafetyScore = &score
			out[i].Assessment = &assessment
		}
	}
	return out
}

// Recorder stores scan runs.
type Recorder interface {
	RecordScan(ctx context.Context, run *ScanRun) error
	Recent(ctx context.Context, limit int) ([]ScanRun, error)
	Close() error
}
