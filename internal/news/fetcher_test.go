package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rss(items ...string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>news</title>`
	for _, it := range items {
		body += it
	}
	return body + `</channel></rss>`
}

func item(title, pubDate string) string {
	date := ""
	if pubDate != "" {
		date = "<pubDate>" + pubDate + "</pubDate>"
	}
	return fmt.Sprintf(`<item><title>%s</title><link>https://example.com/%d</link>%s
<description>&lt;a href="https://example.com"&gt;%s&lt;/a&gt;&amp;nbsp;&lt;font color="#6f6f6f"&gt;Wire&lt;/font&gt;</description></item>`,
		title, len(title), date, title)
}

func TestCleanCompanyName(t *testing.T) {
	tests := map[string]string{
		"Apple Inc.":           "Apple",
		"Apple Inc":            "Apple",
		"Microsoft Corp":       "Microsoft",
		"BP PLC":               "BP",
		"Coca-Cola Co":         "Coca-Cola",
		"Acme llc":             "Acme",
		"Incyte Corporation":   "Incyte Corporation",
		"Siemens Healthineers": "Siemens Healthineers",
		"":                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanCompanyName(in), in)
	}
}

func TestSplitTitle(t *testing.T) {
	title, source := SplitTitle("Apple - iPhone sales fall - Reuters")
	assert.Equal(t, "Apple - iPhone sales fall", title)
	assert.Equal(t, "Reuters", source)

	title, source = SplitTitle("No separator here")
	assert.Equal(t, "No separator here", title)
	assert.Equal(t, "Unknown", source)
}

func TestFetchHeadlines_TwoQueriesDeduplicated(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		queries = append(queries, q.Get("q"))
		assert.Equal(t, "US:en", q.Get("ceid"))
		switch q.Get("q") {
		case "AAPL stock":
			_, _ = w.Write([]byte(rss(
				item("Apple beats earnings - Reuters", "Mon, 06 Jan 2025 10:00:00 GMT"),
				item("Shared story - CNBC", "Sun, 05 Jan 2025 10:00:00 GMT"),
			)))
		case "Apple stock":
			_, _ = w.Write([]byte(rss(
				item("Shared story - CNBC", "Sun, 05 Jan 2025 10:00:00 GMT"),
				item("Undated story", ""),
			)))
		}
	}))
	defer srv.Close()

	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	f := NewFetcher("", WithBaseURL(srv.URL), WithClock(func() time.Time { return now }))
	got := f.FetchHeadlines(context.Background(), "AAPL", "Apple Inc.", 10)

	assert.Equal(t, []string{"AAPL stock", "Apple stock"}, queries)
	require.Len(t, got, 3)
	assert.Equal(t, "Apple beats earnings", got[0].Title)
	assert.Equal(t, "Reuters", got[0].Source)
	assert.Equal(t, "2025-01-06", got[0].Date)
	assert.Equal(t, "Apple beats earnings - Reuters Wire", got[0].Summary)
	assert.Equal(t, "Shared story", got[1].Title)
	assert.Equal(t, "Unknown", got[2].Source)
	assert.Equal(t, "2025-02-01", got[2].Date)
}

func TestFetchHeadlines_Limits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var items []string
		for i := 0; i < 8; i++ {
			items = append(items, item(fmt.Sprintf("%s story %d - Wire", r.URL.Query().Get("q"), i), ""))
		}
		_, _ = w.Write([]byte(rss(items...)))
	}))
	defer srv.Close()

	f := NewFetcher("", WithBaseURL(srv.URL))
	got := f.FetchHeadlines(context.Background(), "X", "Xcorp Ltd", 7)
	require.Len(t, got, 7)
	assert.Equal(t, "X stock story 0", got[0].Title)
	assert.Equal(t, "Xcorp stock story 1", got[6].Title)

	assert.Len(t, f.Search(context.Background(), "X stock", 3), 3)
}

func TestFetchHeadlines_FailureIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewFetcher("", WithBaseURL(srv.URL))
	assert.Empty(t, f.FetchHeadlines(context.Background(), "AAPL", "", 10))

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not a feed"))
	}))
	defer bad.Close()
	f = NewFetcher("", WithBaseURL(bad.URL))
	assert.Empty(t, f.Search(context.Background(), "AAPL stock", 5))
}
