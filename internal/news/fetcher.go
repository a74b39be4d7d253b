// Package news fetches recent headlines for a ticker from the Google News RSS search.
package news

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DipSentinel/internal/httpclient"
	"DipSentinel/internal/model"
)

const (
	// GoogleNewsURL is the RSS search endpoint.
	GoogleNewsURL = "https://news.google.com/rss/search"

	DefaultLimit    = 10
	DefaultPerQuery = 5
)

var companySuffix = regexp.MustCompile(`(?i)\s+(Inc\.?|Corp\.?|Ltd\.?|LLC|PLC|Co\.?)$`)

// CleanCompanyName strips one trailing corporate suffix such as "Inc." or "PLC".
func CleanCompanyName(name string) string {
	return companySuffix.ReplaceAllString(strings.TrimSpace(name), "")
}

// SplitTitle splits a "Title - Source" feed title on its last separator.
func SplitTitle(raw string) (title, source string) {
	i := strings.LastIndex(raw, " - ")
	if i < 0 {
		return raw, "Unknown"
	}
	return raw[:i], raw[i+3:]
}

// Fetcher queries the news feed.
type Fetcher struct {
	baseURL  string
	client   *httpclient.Client
	perQuery int
	now      func() time.Time
	logger   zerolog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBaseURL points the fetcher at another feed host.
func WithBaseURL(u string) Option {
	return func(f *Fetcher) { f.baseURL = u }
}

// WithPerQuery sets how many items each search query contributes.
func WithPerQuery(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.perQuery = n
		}
	}
}

// WithClock replaces time.Now for items without a publication date.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// NewFetcher creates a news Fetcher.
func NewFetcher(proxyURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL:  GoogleNewsURL,
		client:   httpclient.New(httpclient.Options{ProxyURL: proxyURL, MaxRetries: 2, Timeout: 15 * time.Second}),
		perQuery: DefaultPerQuery,
		now:      time.Now,
		logger:   log.With().Str("component", "news_fetcher").Logger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchHeadlines searches by ticker and, when given, by the cleaned company
// name. Results are concatenated in query order, deduplicated by exact title
// and capped at limit.
func (f *Fetcher) FetchHeadlines(ctx context.Context, ticker, companyName string, limit int) []model.Headline {
	if limit <= 0 {
		limit = DefaultLimit
	}
	terms := []string{ticker}
	if name := CleanCompanyName(companyName); name != "" {
		terms = append(terms, name)
	}

	seen := make(map[string]bool)
	var out []model.Headline
	for _, term := range terms {
		for _, h := range f.Search(ctx, term+" stock", f.perQuery) {
			if seen[h.Title] {
				continue
			}
			seen[h.Title] = true
			out = append(out, h)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Search returns up to limit headlines for query, in feed order. Any failure
// yields an empty slice.
func (f *Fetcher) Search(ctx context.Context, query string, limit int) []model.Headline {
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")

	body, err := f.client.Get(ctx, f.baseURL+"?"+params.Encode())
	if err != nil {
		f.logger.Error().Err(err).Str("query", query).Msg("Error fetching news")
		return nil
	}
	items, err := f.parse(body, limit)
	if err != nil {
		f.logger.Error().Err(err).Str("query", query).Msg("Error parsing news feed")
		return nil
	}
	return items
}

func (f *Fetcher) parse(body []byte, limit int) ([]model.Headline, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	items := feed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	out := make([]model.Headline, 0, len(items))
	for _, it := range items {
		title, source := SplitTitle(it.Title)
		published := f.now()
		if it.PublishedParsed != nil {
			published = *it.PublishedParsed
		}
		out = append(out, model.Headline{
			Title:   title,
			Source:  source,
			Link:    it.Link,
			Date:    published.Format("2006-01-02"),
			Summary: plainText(it.Description),
		})
	}
	return out, nil
}

// plainText strips markup from a feed summary and collapses whitespace.
func plainText(html string) string {
	if !strings.Contains(html, "<") {
		return strings.Join(strings.Fields(html), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
