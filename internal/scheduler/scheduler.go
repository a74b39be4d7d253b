package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DipSentinel/internal/markets"
	"DipSentinel/internal/model"
	"DipSentinel/internal/notifier"
	"DipSentinel/internal/recorder"
	"DipSentinel/internal/safety"
	"DipSentinel/internal/screener"
)

// Scanner runs a screen over a ticker set.
type Scanner interface {
	Screen(ctx context.Context, tickers []string, opts screener.Options) ([]model.ScreenMatch, error)
}

// Assessor scores news.
type Assessor interface {
	Assess(ctx context.Context, ticker, companyName string) model.SafetyAssessment
	AnalyzeMatches(ctx context.Context, matches []model.ScreenMatch, threshold int, delay time.Duration) []model.AnalyzedMatch
}

// Job describes the scheduled watchlist scan.
type Job struct {
	Markets   []string
	Options   screener.Options
	Threshold int
	NewsDelay time.Duration
	History   recorder.Recorder
}

// Scheduler manages the cron tasks and bot commands.
type Scheduler struct {
	cron     *cron.Cron
	scanner  Scanner
	assessor Assessor
	notifier notifier.Notifier
	job      Job
	ctx      context.Context
	now      func() time.Time
	logger   zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sc Scanner, as Assessor, n notifier.Notifier, job Job) *Scheduler {
	if job.History == nil {
		job.History = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		scanner:  sc,
		assessor: as,
		notifier: n,
		job:      job,
		ctx:      ctx,
		now:      time.Now,
		logger:   log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the watchlist scan on the cron expression.
func (s *Scheduler) Register(expr string) error {
	if _, err := s.cron.AddFunc(expr, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("Scheduler started")
}

// Stop stops the cron scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) scanTask() {
	report, err := s.runScan(s.ctx, recorder.OriginSchedule)
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled scan failed")
		s.trySend(fmt.Sprintf("❌ Scheduled scan failed: %v", err))
		return
	}
	s.trySend(report)
}

// RunScan screens the watchlist, assesses the news of every match and
// returns the formatted report.
func (s *Scheduler) RunScan(ctx context.Context) (string, error) {
	return s.runScan(ctx, recorder.OriginSchedule)
}

func (s *Scheduler) runScan(ctx context.Context, origin string) (string, error) {
	tickers := markets.TickersByMarkets(s.job.Markets)
	if len(tickers) == 0 {
		return "", fmt.Errorf("no tickers for markets %v", s.job.Markets)
	}
	s.logger.Info().Strs("markets", s.job.Markets).Int("tickers", len(tickers)).Msg("Running scheduled scan")

	matches, err := s.scanner.Screen(ctx, tickers, s.job.Options)
	if err != nil {
		return "", fmt.Errorf("screen: %w", err)
	}
	analyzed := s.assessor.AnalyzeMatches(ctx, matches, s.job.Threshold, s.job.NewsDelay)
	safety.SortBySafety(analyzed)

	run := &recorder.ScanRun{
		At:             s.now(),
		Origin:         origin,
		Markets:        s.job.Markets,
		MinDrop:        s.job.Options.MinDrop,
		MaxDrop:        s.job.Options.MaxDrop,
		Provider:       s.job.Options.Provider.String(),
		TickersScanned: len(tickers),
		Matches:        recorder.FromAnalyzed(analyzed),
	}
	if err := s.job.History.RecordScan(ctx, run); err != nil {
		s.logger.Warn().Err(err).Msg("Record scan failed")
	}

	return notifier.FormatScanReport(s.job.Markets, s.job.Options.MinDrop, s.job.Options.MaxDrop,
		len(tickers), analyzed, s.now()), nil
}

// HandleCommand processes a bot command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.HelpText
	}
	switch strings.ToLower(fields[0]) {
	case "/scan":
		report, err := s.runScan(ctx, recorder.OriginBot)
		if err != nil {
			s.logger.Error().Err(err).Msg("Manual scan failed")
			return fmt.Sprintf("❌ Scan failed: %v", err)
		}
		return report
	case "/news":
		if len(fields) < 2 {
			return "Usage: /news TICKER"
		}
		ticker := strings.ToUpper(fields[1])
		a := s.assessor.Assess(ctx, ticker, strings.Join(fields[2:], " "))
		return notifier.FormatAssessment(a)
	default:
		return notifier.HelpText
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.notifier.SendWithRetry(s.ctx, text, 3); err != nil {
		s.logger.Error().Err(err).Msg("Send notification failed")
	}
}
