package calculator

import (
	"math"

	"DipSentinel/internal/model"
)

// DropResult describes how far the latest close sits below the reference high.
type DropResult struct {
	CurrentPrice  float64
	ReferenceHigh float64
	DropPct       float64 // unrounded
}

// UsableBars drops bars whose close or high is missing (NaN) or not finite.
func UsableBars(bars []model.OHLCV) []model.OHLCV {
	usable := make([]model.OHLCV, 0, len(bars))
	for _, b := range bars {
		if !finite(b.Close) || !finite(b.High) {
			continue
		}
		usable = append(usable, b)
	}
	return usable
}

// ComputeDrop compares the latest close with the high of the bars right before it.
//
// lookbackDays 1 uses the previous bar's high, 2 uses the max high of the two
// previous bars. Any other value falls back to the 1-day rule.
func ComputeDrop(bars []model.OHLCV, lookbackDays int) (DropResult, bool) {
	usable := UsableBars(bars)
	n := len(usable)
	if n < 2 {
		return DropResult{}, false
	}

	current := usable[n-1].Close
	reference := usable[n-2].High
	if lookbackDays == 2 && n >= 3 {
		reference = math.Max(reference, usable[n-3].High)
	}
	if reference <= 0 {
		return DropResult{}, false
	}

	return DropResult{
		CurrentPrice:  current,
		ReferenceHigh: reference,
		DropPct:       (reference - current) / reference * 100,
	}, true
}

// IsSuddenDrop reports whether the close fell more than thresholdPct over the
// last window bars.
func IsSuddenDrop(bars []model.OHLCV, window int, thresholdPct float64) bool {
	usable := UsableBars(bars)
	if window <= 0 || len(usable) < window {
		return false
	}
	past := usable[len(usable)-window].Close
	if past <= 0 {
		return false
	}
	current := usable[len(usable)-1].Close
	return (past-current)/past*100 > thresholdPct
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
