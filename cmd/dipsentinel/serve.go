package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"DipSentinel/internal/notifier"
	"DipSentinel/internal/recorder"
	"DipSentinel/internal/scheduler"
	"DipSentinel/internal/server"
)

var runOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the scheduled scan and the Telegram bot",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&runOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true", "Run the scheduled scan immediately")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	cfg := a.cfg
	log.Info().Msg("DipSentinel starting...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var history recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.HistoryEnabled() {
		sr, err := recorder.NewSQLiteRecorder(recorder.MemoryDSN, cfg.History.Keep)
		if err != nil {
			log.Warn().Err(err).Msg("Scan history disabled")
		} else {
			history = sr
		}
	}
	defer history.Close()

	var n notifier.Notifier = notifier.NewLogNotifier()
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn, err = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		if err != nil {
			log.Warn().Err(err).Msg("Telegram disabled, reports go to the log")
		} else {
			n = tn
		}
	}

	sched := scheduler.NewScheduler(ctx, a.screener, a.engine, n, scheduler.Job{
		Markets:   cfg.Schedule.Markets,
		Options:   a.options(),
		Threshold: cfg.News.SafeThreshold,
		NewsDelay: cfg.NewsDelay(),
		History:   history,
	})
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("Telegram polling started")
	}
	if runOnStart {
		go func() {
			report, err := sched.RunScan(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Startup scan failed")
				return
			}
			if err := n.SendWithRetry(ctx, report, 3); err != nil {
				log.Error().Err(err).Msg("Send startup report failed")
			}
		}()
	}

	srv := server.New(a.screener, a.engine, server.Settings{
		Addr:      cfg.Addr(),
		Defaults:  a.options(),
		MaxStocks: cfg.Server.MaxStocks,
		Threshold: cfg.News.SafeThreshold,
		NewsDelay: cfg.NewsDelay(),
		ScanTTL:   cfg.ScanTTL(),
		NewsTTL:   cfg.NewsTTL(),
		History:   history,
	})
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}
	log.Info().Msg("DipSentinel stopped")
	return nil
}
