// Package server exposes the screener, news scorer and ticker universe over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DipSentinel/internal/cache"
	"DipSentinel/internal/collector"
	"DipSentinel/internal/metrics"
	"DipSentinel/internal/model"
	"DipSentinel/internal/recorder"
	"DipSentinel/internal/screener"
)

// Screener is the scan and detail backend.
type Screener interface {
	ScreenBatch(ctx context.Context, tickers []string, opts screener.Options, batchIndex int) (*screener.ScanResult, error)
	Detail(ctx context.Context, ticker string, provider collector.Provider) (*model.StockDetail, error)
}

// NewsAnalyzer is the news scoring backend.
type NewsAnalyzer interface {
	Assess(ctx context.Context, ticker, companyName string) model.SafetyAssessment
	AnalyzeMatches(ctx context.Context, matches []model.ScreenMatch, threshold int, delay time.Duration) []model.AnalyzedMatch
}

// Settings are the request-layer defaults and limits.
type Settings struct {
	Addr      string
	Defaults  screener.Options
	MaxStocks int
	Threshold int
	NewsDelay time.Duration
	ScanTTL   time.Duration
	NewsTTL   time.Duration
	History   recorder.Recorder
}

// Server is the HTTP request layer. It owns the result caches.
type Server struct {
	router   *mux.Router
	server   *http.Server
	screener Screener
	news     NewsAnalyzer
	settings Settings
	logger   zerolog.Logger

	scans   *cache.TTL[scanResponse]
	details *cache.TTL[*model.StockDetail]
	reports *cache.TTL[model.SafetyAssessment]
}

// New creates a Server and its routes.
func New(sc Screener, news NewsAnalyzer, settings Settings, opts ...cache.Option) *Server {
	if settings.History == nil {
		settings.History = recorder.NewNoopRecorder()
	}
	s := &Server{
		router:   mux.NewRouter(),
		screener: sc,
		news:     news,
		settings: settings,
		logger:   log.With().Str("component", "http").Logger(),
		scans:    cache.New[scanResponse]("scan", settings.ScanTTL, opts...),
		details:  cache.New[*model.StockDetail]("detail", settings.ScanTTL, opts...),
		reports:  cache.New[model.SafetyAssessment]("news", settings.NewsTTL, opts...),
	}
	s.setupRoutes()
	s.server = &http.Server{
		Addr:              settings.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(jsonContentTypeMiddleware)
	api.HandleFunc("/markets", s.handleMarkets).Methods(http.MethodGet)
	api.HandleFunc("/scan", s.handleScan).Methods(http.MethodPost)
	api.HandleFunc("/stock/{ticker}", s.handleStock).Methods(http.MethodGet)
	api.HandleFunc("/stock/{ticker}/news", s.handleNews).Methods(http.MethodGet)
	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
}

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the request ID stored by the middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()[:8]
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		elapsed := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(wrapper.statusCode)).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		s.logger.Info().
			Str("request_id", RequestID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Dur("took", elapsed).
			Msg("Request")
	})
}

func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Start serves until Shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.settings.Addr).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
