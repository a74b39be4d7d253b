package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DipSentinel/internal/collector"
	"DipSentinel/internal/model"
	"DipSentinel/internal/recorder"
	"DipSentinel/internal/screener"
)

type fakeScreener struct {
	matches []model.ScreenMatch
	err     error
	detail  *model.StockDetail
	calls   int
	opts    screener.Options
	tickers []string
}

func (f *fakeScreener) ScreenBatch(_ context.Context, tickers []string, opts screener.Options, batch int) (*screener.ScanResult, error) {
	f.calls++
	f.opts = opts
	f.tickers = tickers
	if f.err != nil {
		return nil, f.err
	}
	count := screener.BatchCount(len(tickers), opts.BatchSize)
	scanned := opts.BatchSize
	if rest := len(tickers) - batch*opts.BatchSize; rest < scanned {
		scanned = rest
	}
	return &screener.ScanResult{
		Matches:        f.matches,
		TickersScanned: scanned,
		BatchIndex:     batch,
		BatchCount:     count,
		HasMore:        batch+1 < count,
	}, nil
}

func (f *fakeScreener) Detail(_ context.Context, ticker string, _ collector.Provider) (*model.StockDetail, error) {
	f.calls++
	if f.detail == nil || f.detail.Ticker != ticker {
		return nil, screener.ErrNotFound
	}
	return f.detail, nil
}

type fakeNews struct {
	scores  map[string]int
	assessN int
	names   []string
}

func (f *fakeNews) Assess(_ context.Context, ticker, name string) model.SafetyAssessment {
	f.assessN++
	f.names = append(f.names, name)
	return model.SafetyAssessment{Ticker: ticker, SafetyScore: f.scores[ticker], Assessment: model.AssessmentSafe, Message: "ok"}
}

func (f *fakeNews) AnalyzeMatches(ctx context.Context, matches []model.ScreenMatch, threshold int, _ time.Duration) []model.AnalyzedMatch {
	out := make([]model.AnalyzedMatch, len(matches))
	for i, m := range matches {
		a := f.Assess(ctx, m.Ticker, m.Name)
		safe := a.SafetyScore >= threshold
		out[i] = model.AnalyzedMatch{ScreenMatch: m, NewsAnalysis: a.Summarize(), IsSafe: &safe}
	}
	return out
}

func newTestServer(sc *fakeScreener, news *fakeNews, history ...recorder.Recorder) *Server {
	var h recorder.Recorder
	if len(history) > 0 {
		h = history[0]
	}
	return New(sc, news, Settings{
		History:   h,
		Defaults:  screener.DefaultOptions(),
		MaxStocks: 150,
		Threshold: 60,
		ScanTTL:   time.Minute,
		NewsTTL:   time.Minute,
	})
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthAndRequestID(t *testing.T) {
	s := newTestServer(&fakeScreener{}, &fakeNews{})
	rec := do(t, s, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])
	assert.Len(t, rec.Header().Get("X-Request-ID"), 8)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestMarkets(t *testing.T) {
	s := newTestServer(&fakeScreener{}, &fakeNews{})
	rec := do(t, s, http.MethodGet, "/api/markets", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	require.Contains(t, out, "dax")
	dax := out["dax"].(map[string]any)
	assert.Equal(t, "EUR", dax["currency"])
	assert.Equal(t, float64(40), dax["count"])
}

func TestScanValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"min above max", map[string]any{"min_drop": 30, "max_drop": 20}, "Invalid drop range"},
		{"equal bounds", map[string]any{"min_drop": 20, "max_drop": 20}, "Invalid drop range"},
		{"negative min", map[string]any{"min_drop": -1, "max_drop": 20}, "Invalid drop range"},
		{"max above 100", map[string]any{"min_drop": 10, "max_drop": 101}, "Invalid drop range"},
		{"unknown market", map[string]any{"markets": []string{"mars"}}, "No valid markets selected"},
		{"batch out of range", map[string]any{"markets": []string{"dax"}, "batch": 3}, "Invalid batch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := &fakeScreener{}
			rec := do(t, newTestServer(sc, &fakeNews{}), http.MethodPost, "/api/scan", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decode(t, rec)["error"])
			assert.Zero(t, sc.calls)
		})
	}
}

func TestScanWithNews(t *testing.T) {
	sc := &fakeScreener{matches: []model.ScreenMatch{
		{Ticker: "SAP.DE", DropPct: 25},
		{Ticker: "BMW.DE", DropPct: 22},
	}}
	news := &fakeNews{scores: map[string]int{"SAP.DE": 40, "BMW.DE": 80}}
	s := newTestServer(sc, news)

	rec := do(t, s, http.MethodPost, "/api/scan", map[string]any{"markets": []string{"dax"}, "min_drop": 15})
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode(t, rec)
	assert.Equal(t, float64(2), out["count"])
	assert.Equal(t, float64(40), out["tickers_total"])
	assert.Equal(t, float64(40), out["tickers_scanned"])
	assert.Equal(t, false, out["was_limited"])
	assert.Equal(t, false, out["has_more"])
	params := out["parameters"].(map[string]any)
	assert.Equal(t, float64(15), params["min_drop"])
	assert.Equal(t, float64(30), params["max_drop"])
	assert.Equal(t, "auto", params["provider"])

	stocks := out["stocks"].([]any)
	require.Len(t, stocks, 2)
	first := stocks[0].(map[string]any)
	assert.Equal(t, "BMW.DE", first["ticker"])
	assert.Equal(t, true, first["is_safe"])
	assert.Equal(t, 150, sc.opts.BatchSize)
	assert.Equal(t, 15.0, sc.opts.MinDrop)
}

func TestScanWithoutNews(t *testing.T) {
	sc := &fakeScreener{matches: []model.ScreenMatch{{Ticker: "SAP.DE", DropPct: 25}}}
	news := &fakeNews{}
	s := newTestServer(sc, news)

	rec := do(t, s, http.MethodPost, "/api/scan", map[string]any{"markets": []string{"dax"}, "analyze_news": false})
	require.Equal(t, http.StatusOK, rec.Code)

	stock := decode(t, rec)["stocks"].([]any)[0].(map[string]any)
	assert.Nil(t, stock["news_analysis"])
	assert.Nil(t, stock["is_safe"])
	assert.Zero(t, news.assessN)
}

func TestScanLimitedAndCached(t *testing.T) {
	sc := &fakeScreener{}
	s := newTestServer(sc, &fakeNews{})

	rec := do(t, s, http.MethodPost, "/api/scan", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, true, out["was_limited"])
	assert.Equal(t, float64(150), out["tickers_scanned"])
	assert.Equal(t, true, out["has_more"])
	assert.Equal(t, []any{"sp500"}, out["markets_scanned"])
	assert.Equal(t, []any{}, out["stocks"])

	rec = do(t, s, http.MethodPost, "/api/scan", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, sc.calls)
}

func TestScanFailure(t *testing.T) {
	sc := &fakeScreener{err: errors.New("boom")}
	rec := do(t, newTestServer(sc, &fakeNews{}), http.MethodPost, "/api/scan", map[string]any{"markets": []string{"dax"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to screen stocks", decode(t, rec)["error"])
}

func TestStock(t *testing.T) {
	sc := &fakeScreener{detail: &model.StockDetail{Ticker: "AAPL", Name: "Apple", CurrentPrice: 150}}
	news := &fakeNews{scores: map[string]int{"AAPL": 70}}
	s := newTestServer(sc, news)

	rec := do(t, s, http.MethodGet, "/api/stock/aapl", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "AAPL", out["ticker"])
	assert.Equal(t, float64(150), out["current_price"])
	assert.Equal(t, true, out["is_safe"])
	assert.Equal(t, float64(70), out["news_analysis"].(map[string]any)["safety_score"])

	do(t, s, http.MethodGet, "/api/stock/AAPL", nil)
	do(t, s, http.MethodGet, "/api/stock/AAPL/news?name=Apple", nil)
	assert.Equal(t, 1, sc.calls)
	assert.Equal(t, 1, news.assessN)
}

func TestNewsCacheKeepsCompanyName(t *testing.T) {
	sc := &fakeScreener{detail: &model.StockDetail{Ticker: "AAPL", Name: "Apple", CurrentPrice: 150}}
	news := &fakeNews{}
	s := newTestServer(sc, news)

	rec := do(t, s, http.MethodGet, "/api/stock/AAPL/news", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	do(t, s, http.MethodGet, "/api/stock/AAPL", nil)
	do(t, s, http.MethodGet, "/api/stock/AAPL/news?name=Apple", nil)
	do(t, s, http.MethodGet, "/api/stock/AAPL/news", nil)

	assert.Equal(t, 2, news.assessN)
	assert.Equal(t, []string{"", "Apple"}, news.names)
}

func TestStockNotFound(t *testing.T) {
	rec := do(t, newTestServer(&fakeScreener{}, &fakeNews{}), http.MethodGet, "/api/stock/NOPE", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Stock NOPE not found", decode(t, rec)["error"])
}

func TestUnknownRoute(t *testing.T) {
	rec := do(t, newTestServer(&fakeScreener{}, &fakeNews{}), http.MethodGet, "/api/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistory(t *testing.T) {
	history, err := recorder.NewSQLiteRecorder(recorder.MemoryDSN, 10)
	require.NoError(t, err)
	t.Cleanup(func() { history.Close() })

	sc := &fakeScreener{matches: []model.ScreenMatch{{Ticker: "SAP.DE", DropPct: 25}}}
	s := newTestServer(sc, &fakeNews{scores: map[string]int{"SAP.DE": 65}}, history)

	rec := do(t, s, http.MethodPost, "/api/scan", map[string]any{"markets": []string{"dax"}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/history?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, float64(1), out["count"])
	run := out["scans"].([]any)[0].(map[string]any)
	assert.Equal(t, "api", run["origin"])
	assert.Equal(t, []any{"dax"}, run["markets"])
	match := run["matches"].([]any)[0].(map[string]any)
	assert.Equal(t, "SAP.DE", match["ticker"])
	assert.Equal(t, float64(65), match["safety_score"])

	rec = do(t, s, http.MethodGet, "/api/history?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
