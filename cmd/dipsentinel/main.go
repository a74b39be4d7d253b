package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"DipSentinel/internal/collector"
	"DipSentinel/internal/config"
	"DipSentinel/internal/news"
	"DipSentinel/internal/safety"
	"DipSentinel/internal/screener"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "dipsentinel",
	Short: "Stock dip screener with news safety scoring",
	Long: `DipSentinel scans market indices for stocks whose price fell inside a
drop band and scores recent news to separate temporary dips from real trouble.`,
	SilenceUsage: true,
}

func init() {
	defaultPath := config.DefaultPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultPath, "Path to the YAML config file")
	rootCmd.AddCommand(serveCmd, scanCmd, newsCmd, detailCmd, marketsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the wired components shared by every command.
type app struct {
	cfg       *config.Config
	collector *collector.Collector
	screener  *screener.Screener
	engine    *safety.Engine
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	setupLogging(cfg.Log.Level)

	col := collector.New(collector.Options{
		ProxyURL:          cfg.Proxy,
		AlphaVantageKey:   cfg.Provider.AlphaVantageKey,
		AlphaVantageDelay: cfg.AlphaVantageInterval(),
	})
	headlines := news.NewFetcher(cfg.Proxy, news.WithPerQuery(cfg.News.PerQuery))
	return &app{
		cfg:       cfg,
		collector: col,
		screener:  screener.New(col),
		engine:    safety.NewEngine(headlines, nil, safety.WithLimit(cfg.News.Limit)),
	}, nil
}

// options returns the screening defaults from config.
func (a *app) options() screener.Options {
	opts := screener.DefaultOptions()
	opts.Provider = a.collector.Resolve(a.cfg.Provider.Default)
	opts.IncludeInfo = a.cfg.IncludeInfo()
	opts.BatchSize = a.cfg.Provider.BatchSize
	opts.Concurrency = a.cfg.Provider.Concurrency
	opts.Period = a.cfg.Provider.Period
	opts.MinDrop = a.cfg.Schedule.MinDrop
	opts.MaxDrop = a.cfg.Schedule.MaxDrop
	return opts
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
