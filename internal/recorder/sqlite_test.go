package recorder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DipSentinel/internal/model"
)

func newTestRecorder(t *testing.T, keep int) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(MemoryDSN, keep)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordAndRecent(t *testing.T) {
	r := newTestRecorder(t, 10)
	ctx := context.Background()
	safe := true
	analyzed := []model.AnalyzedMatch{
		{
			ScreenMatch:  model.ScreenMatch{Ticker: "AAA", Name: "Alpha", DropPct: 25.5, CurrentPrice: 74.5},
			NewsAnalysis: &model.NewsSummary{SafetyScore: 70, Assessment: model.AssessmentSafe},
			IsSafe:       &safe,
		},
		{ScreenMatch: model.ScreenMatch{Ticker: "BBB", Name: "Beta", DropPct: 21, CurrentPrice: 10}},
	}

	run := &ScanRun{
		At:             time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC),
		Origin:         OriginAPI,
		Markets:        []string{"sp500", "dax"},
		MinDrop:        20,
		MaxDrop:        30,
		Provider:       "auto",
		TickersScanned: 150,
		Matches:        FromAnalyzed(analyzed),
	}
	require.NoError(t, r.RecordScan(ctx, run))
	assert.NotZero(t, run.ID)

	runs, err := r.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	got := runs[0]
	assert.Equal(t, run.At, got.At)
	assert.Equal(t, []string{"sp500", "dax"}, got.Markets)
	assert.Equal(t, 150, got.TickersScanned)
	require.Len(t, got.Matches, 2)
	assert.Equal(t, "AAA", got.Matches[0].Ticker)
	require.NotNil(t, got.Matches[0].SafetyScore)
	assert.Equal(t, 70, *got.Matches[0].SafetyScore)
	assert.Equal(t, "safe", *got.Matches[0].Assessment)
	assert.True(t, *got.Matches[0].IsSafe)
	assert.Nil(t, got.Matches[1].SafetyScore)
	assert.Nil(t, got.Matches[1].IsSafe)
}

func TestRecentPrunesAndOrders(t *testing.T) {
	r := newTestRecorder(t, 2)
	ctx := context.Background()
	for _, origin := range []string{OriginSchedule, OriginBot, OriginAPI} {
		require.NoError(t, r.RecordScan(ctx, &ScanRun{Origin: origin, Markets: []string{"dax"}}))
	}

	runs, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, OriginAPI, runs[0].Origin)
	assert.Equal(t, OriginBot, runs[1].Origin)
	assert.Empty(t, runs[0].Matches)
}

func TestNoopRecorder(t *testing.T) {
	n := NewNoopRecorder()
	require.NoError(t, n.RecordScan(context.Background(), &ScanRun{}))
	runs, err := n.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
