package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"DipSentinel/internal/markets"
	"DipSentinel/internal/safety"
)

var (
	scanMarkets  []string
	scanMin      float64
	scanMax      float64
	scanLookback int
	scanProvider string
	scanNews     bool
	scanSudden   bool
	outputJSON   bool
	companyName  string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Screen markets for stocks inside the drop band",
	Example: `  dipsentinel scan --markets sp500,nasdaq --min 15 --max 25
  dipsentinel scan --markets dax --provider stooq --news=false --json`,
	RunE: runScan,
}

var newsCmd = &cobra.Command{
	Use:   "news TICKER",
	Short: "Score recent news for a ticker",
	Args:  cobra.ExactArgs(1),
	RunE:  runNews,
}

var detailCmd = &cobra.Command{
	Use:   "detail TICKER",
	Short: "Show price levels, moving averages and RSI for a ticker",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetail,
}

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "List the supported markets",
	RunE:  runMarkets,
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanMarkets, "markets", []string{"sp500"}, "Market keys to scan")
	scanCmd.Flags().Float64Var(&scanMin, "min", 20, "Minimum drop percent")
	scanCmd.Flags().Float64Var(&scanMax, "max", 30, "Maximum drop percent")
	scanCmd.Flags().IntVar(&scanLookback, "lookback", 1, "Lookback in trading days (1 or 2)")
	scanCmd.Flags().StringVar(&scanProvider, "provider", "", "Price provider: yahoo, stooq, alphavantage or auto")
	scanCmd.Flags().BoolVar(&scanNews, "news", true, "Score news for every match")
	scanCmd.Flags().BoolVar(&scanSudden, "exclude-sudden", false, "Skip drops that are mostly from the last few sessions")
	newsCmd.Flags().StringVar(&companyName, "name", "", "Company name used for the search")
	for _, c := range []*cobra.Command{scanCmd, newsCmd, detailCmd, marketsCmd} {
		c.Flags().BoolVar(&outputJSON, "json", false, "Print JSON")
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runScan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	opts := a.options()
	opts.MinDrop, opts.MaxDrop, opts.LookbackDays = scanMin, scanMax, scanLookback
	opts.ExcludeSudden = scanSudden
	if scanProvider != "" {
		opts.Provider = a.collector.Resolve(scanProvider)
	}
	if opts.MinDrop < 0 || opts.MaxDrop > 100 || opts.MinDrop >= opts.MaxDrop {
		return fmt.Errorf("invalid drop range [%g, %g]", opts.MinDrop, opts.MaxDrop)
	}
	tickers := markets.TickersByMarkets(scanMarkets)
	if len(tickers) == 0 {
		return fmt.Errorf("no valid markets in %v", scanMarkets)
	}

	matches, err := a.screener.Screen(ctx, tickers, opts)
	if err != nil {
		return err
	}
	analyzed := safety.Wrap(matches)
	if scanNews {
		analyzed = a.engine.AnalyzeMatches(ctx, matches, a.cfg.News.SafeThreshold, a.cfg.NewsDelay())
	}
	safety.SortBySafety(analyzed)

	if outputJSON {
		return printJSON(analyzed)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tNAME\tDROP%\tPRICE\tHIGH\tSAFETY\tSOURCE")
	for _, m := range analyzed {
		score := "-"
		if m.NewsAnalysis != nil {
			score = fmt.Sprintf("%d %s", m.NewsAnalysis.SafetyScore, m.NewsAnalysis.Assessment)
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%s\t%s\n",
			m.Ticker, m.Name, m.DropPct, m.CurrentPrice, m.ReferenceHigh, score, m.Source)
	}
	fmt.Fprintf(w, "\n%d of %d tickers matched\n", len(analyzed), len(tickers))
	return w.Flush()
}

func runNews(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	assessment := a.engine.Assess(ctx, strings.ToUpper(args[0]), companyName)
	if outputJSON {
		return printJSON(assessment)
	}
	fmt.Printf("%s  score %d  %s\n%s\n", assessment.Ticker, assessment.SafetyScore, assessment.Assessment, assessment.Message)
	for _, item := range assessment.News {
		fmt.Printf("  %+.2f  %s (%s)\n", item.Sentiment.Polarity, item.Title, item.Source)
	}
	return nil
}

func runDetail(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	d, err := a.screener.Detail(ctx, args[0], a.collector.Resolve(a.cfg.Provider.Default))
	if err != nil {
		return err
	}
	if outputJSON {
		return printJSON(d)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Ticker\t%s\nName\t%s\nSector\t%s\nPrice\t%.2f %s\n52w range\t%.2f - %.2f\n",
		d.Ticker, d.Name, d.Sector, d.CurrentPrice, d.Currency, d.Low52w, d.High52w)
	fmt.Fprintf(w, "MA50\t%s\nMA200\t%s\nRSI14\t%s\nSource\t%s\n", optional(d.MA50), optional(d.MA200), optional(d.RSI14), d.Source)
	return w.Flush()
}

func optional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

func runMarkets(cmd *cobra.Command, args []string) error {
	summary := markets.Summary()
	if outputJSON {
		return printJSON(summary)
	}
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tTICKERS\tCURRENCY")
	for _, k := range keys {
		m := summary[k]
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", k, m.Name, m.Count, m.Currency)
	}
	return w.Flush()
}
