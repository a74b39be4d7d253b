package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"DipSentinel/internal/collector"
	"DipSentinel/internal/markets"
	"DipSentinel/internal/model"
	"DipSentinel/internal/recorder"
	"DipSentinel/internal/safety"
	"DipSentinel/internal/screener"
)

type scanRequest struct {
	Markets      []string `json:"markets"`
	MinDrop      *float64 `json:"min_drop"`
	MaxDrop      *float64 `json:"max_drop"`
	LookbackDays *int     `json:"lookback_days"`
	Provider     string   `json:"provider"`
	IncludeInfo  *bool    `json:"include_info"`
	AnalyzeNews  *bool    `json:"analyze_news"`
	Batch        int      `json:"batch"`
}

type scanParameters struct {
	MinDrop      float64 `json:"min_drop"`
	MaxDrop      float64 `json:"max_drop"`
	LookbackDays int     `json:"lookback_days"`
	Provider     string  `json:"provider"`
	AnalyzeNews  bool    `json:"analyze_news"`
}

type scanResponse struct {
	Count          int                   `json:"count"`
	MarketsScanned []string              `json:"markets_scanned"`
	TickersScanned int                   `json:"tickers_scanned"`
	TickersTotal   int                   `json:"tickers_total"`
	WasLimited     bool                  `json:"was_limited"`
	MaxStocks      int                   `json:"max_stocks"`
	Batch          int                   `json:"batch"`
	BatchCount     int                   `json:"batch_count"`
	HasMore        bool                  `json:"has_more"`
	Parameters     scanParameters        `json:"parameters"`
	Stocks         []model.AnalyzedMatch `json:"stocks"`
}

type stockResponse struct {
	*model.StockDetail
	NewsAnalysis model.SafetyAssessment `json:"news_analysis"`
	IsSafe       bool                   `json:"is_safe"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, markets.Summary())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": float64(time.Now().UnixNano()) / 1e9,
	})
}

func (s *Server) provider(name string) collector.Provider {
	if name == "" {
		return s.settings.Defaults.Provider
	}
	p, ok := collector.ParseProvider(name)
	if !ok {
		s.logger.Warn().Str("provider", name).Msg("Unknown provider, using auto")
	}
	return p
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	opts := s.settings.Defaults
	opts.MinDrop, opts.MaxDrop, opts.LookbackDays = 20, 30, 1
	if req.MinDrop != nil {
		opts.MinDrop = *req.MinDrop
	}
	if req.MaxDrop != nil {
		opts.MaxDrop = *req.MaxDrop
	}
	if req.LookbackDays != nil {
		opts.LookbackDays = *req.LookbackDays
	}
	if req.IncludeInfo != nil {
		opts.IncludeInfo = *req.IncludeInfo
	}
	opts.Provider = s.provider(req.Provider)
	opts.BatchSize = s.settings.MaxStocks
	analyzeNews := req.AnalyzeNews == nil || *req.AnalyzeNews
	if len(req.Markets) == 0 {
		req.Markets = []string{"sp500"}
	}

	if opts.MinDrop < 0 || opts.MaxDrop > 100 || opts.MinDrop >= opts.MaxDrop {
		writeError(w, http.StatusBadRequest, "Invalid drop range")
		return
	}
	tickers := markets.TickersByMarkets(req.Markets)
	if len(tickers) == 0 {
		writeError(w, http.StatusBadRequest, "No valid markets selected")
		return
	}
	batchCount := screener.BatchCount(len(tickers), opts.BatchSize)
	if req.Batch < 0 || req.Batch >= batchCount {
		writeError(w, http.StatusBadRequest, "Invalid batch")
		return
	}

	key := scanKey(req.Markets, opts, analyzeNews, req.Batch)
	if cached, ok := s.scans.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	if len(tickers) > opts.BatchSize {
		s.logger.Warn().Int("tickers", len(tickers)).Int("max_stocks", opts.BatchSize).Int("batch", req.Batch).
			Msg("Limiting scan to one batch")
	}
	res, err := s.screener.ScreenBatch(r.Context(), tickers, opts, req.Batch)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error screening stocks")
		writeError(w, http.StatusInternalServerError, "Failed to screen stocks")
		return
	}

	var stocks []model.AnalyzedMatch
	if analyzeNews && len(res.Matches) > 0 {
		s.logger.Info().Int("stocks", len(res.Matches)).Msg("Analyzing news")
		stocks = s.news.AnalyzeMatches(r.Context(), res.Matches, s.settings.Threshold, s.settings.NewsDelay)
	} else {
		stocks = safety.Wrap(res.Matches)
	}
	safety.SortBySafety(stocks)

	resp := scanResponse{
		Count:          len(stocks),
		MarketsScanned: req.Markets,
		TickersScanned: res.TickersScanned,
		TickersTotal:   len(tickers),
		WasLimited:     len(tickers) > opts.BatchSize,
		MaxStocks:      opts.BatchSize,
		Batch:          res.BatchIndex,
		BatchCount:     res.BatchCount,
		HasMore:        res.HasMore,
		Parameters: scanParameters{
			MinDrop:      opts.MinDrop,
			MaxDrop:      opts.MaxDrop,
			LookbackDays: opts.LookbackDays,
			Provider:     opts.Provider.String(),
			AnalyzeNews:  analyzeNews,
		},
		Stocks: stocks,
	}
	if resp.Stocks == nil {
		resp.Stocks = []model.AnalyzedMatch{}
	}
	s.scans.Set(key, resp)

	run := &recorder.ScanRun{
		Origin:         recorder.OriginAPI,
		Markets:        req.Markets,
		MinDrop:        opts.MinDrop,
		MaxDrop:        opts.MaxDrop,
		Provider:       opts.Provider.String(),
		TickersScanned: res.TickersScanned,
		Matches:        recorder.FromAnalyzed(stocks),
	}
	if err := s.settings.History.RecordScan(r.Context(), run); err != nil {
		s.logger.Warn().Err(err).Msg("Record scan failed")
	}
	writeJSON(w, http.StatusOK, resp)
}

func scanKey(keys []string, opts screener.Options, analyzeNews bool, batch int) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return fmt.Sprintf("%s|%g|%g|%d|%s|%t|%t|%d", strings.Join(sorted, ","), opts.MinDrop, opts.MaxDrop,
		opts.LookbackDays, opts.Provider, opts.IncludeInfo, analyzeNews, batch)
}

// assess caches by ticker and company name, since the name widens the
// headline search.
func (s *Server) assess(r *http.Request, ticker, name string) model.SafetyAssessment {
	key := ticker + "|" + strings.TrimSpace(name)
	if a, ok := s.reports.Get(key); ok {
		return a
	}
	a := s.news.Assess(r.Context(), ticker, name)
	s.reports.Set(key, a)
	return a
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	detail, ok := s.details.Get(ticker)
	if !ok {
		var err error
		detail, err = s.screener.Detail(r.Context(), ticker, s.provider(r.URL.Query().Get("provider")))
		if errors.Is(err, screener.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Stock %s not found", ticker))
			return
		}
		if err != nil {
			s.logger.Error().Err(err).Str("ticker", ticker).Msg("Error fetching stock")
			writeError(w, http.StatusInternalServerError, "Failed to fetch stock details")
			return
		}
		s.details.Set(ticker, detail)
	}

	a := s.assess(r, ticker, detail.Name)
	writeJSON(w, http.StatusOK, stockResponse{
		StockDetail:  detail,
		NewsAnalysis: a,
		IsSafe:       safety.IsSafeDrop(a, s.settings.Threshold),
	})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])
	writeJSON(w, http.StatusOK, s.assess(r, ticker, r.URL.Query().Get("name")))
}

// defaultHistoryLimit and maxHistoryLimit bound GET /api/history.
const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = min(n, maxHistoryLimit)
	}
	runs, err := s.settings.History.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error reading scan history")
		writeError(w, http.StatusInternalServerError, "Failed to read scan history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(runs), "scans": runs})
}
