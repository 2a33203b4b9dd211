package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/football-hub/internal/canonical"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
)

const bbcFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>BBC Sport - Premier League</title>
    <item>
      <title><![CDATA[Arsenal injury blow as Saka ruled out]]></title>
      <description><![CDATA[<p>The winger will <b>miss</b> the derby.</p>]]></description>
      <link>https://www.bbc.co.uk/sport/football/articles/c1</link>
      <guid isPermaLink="false">https://www.bbc.co.uk/sport/football/articles/c1#0</guid>
      <pubDate>Tue, 13 Jan 2026 18:04:11 GMT</pubDate>
      <media:thumbnail width="240" height="135" url="https://ichef.bbci.co.uk/ace/standard/240/cpsprodpb/abc.jpg"/>
    </item>
    <item>
      <title>City agree deal for midfielder</title>
      <link>https://www.bbc.co.uk/sport/football/articles/c2</link>
      <pubDate>not a date</pubDate>
      <enclosure url="https://example.com/c2.jpg" type="image/jpeg"/>
      <category>Transfers</category>
    </item>
    <item>
      <title>No link here</title>
    </item>
  </channel>
</rss>`

func TestParseFeed(t *testing.T) {
	t.Parallel()

	pl, _ := competition.Lookup("PL")
	now := time.Date(2026, 1, 14, 9, 0, 0, 0, time.UTC)
	items, err := parseFeed(pl, competition.Feed{Name: "BBC Sport"}, []byte(bbcFeed), now)
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "Arsenal injury blow as Saka ruled out" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.Excerpt != "The winger will miss the derby." {
		t.Fatalf("unexpected excerpt: %q", first.Excerpt)
	}
	if first.ThumbnailURL != "https://ichef.bbci.co.uk/ace/standard/1024/cpsprodpb/abc.jpg" {
		t.Fatalf("thumbnail not rewritten: %q", first.ThumbnailURL)
	}
	if first.SourceID != canonical.NewsSourceID("rss_", "https://www.bbc.co.uk/sport/football/articles/c1#0") {
		t.Fatalf("unexpected source id: %q", first.SourceID)
	}
	if first.Category != "Injury" || first.SourceName != "BBC Sport" {
		t.Fatalf("unexpected category or source: %q %q", first.Category, first.SourceName)
	}
	if !first.PublishedAt.Equal(time.Date(2026, 1, 13, 18, 4, 11, 0, time.UTC)) {
		t.Fatalf("unexpected published time: %s", first.PublishedAt)
	}

	second := items[1]
	if second.SourceID != canonical.NewsSourceID("rss_", "https://www.bbc.co.uk/sport/football/articles/c2") {
		t.Fatalf("guid should fall back to link: %q", second.SourceID)
	}
	if second.ThumbnailURL != "https://example.com/c2.jpg" {
		t.Fatalf("unexpected enclosure thumbnail: %q", second.ThumbnailURL)
	}
	if !second.PublishedAt.Equal(now) {
		t.Fatalf("unparseable date should fall back to now: %s", second.PublishedAt)
	}
	if second.Category != "Transfer" || len(second.Tags) != 1 {
		t.Fatalf("unexpected category or tags: %q %v", second.Category, second.Tags)
	}
}

func TestReader_FetchNews_SkipsFailingFeed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.UserAgent(), "Mozilla") {
			t.Errorf("unexpected user agent %q", r.UserAgent())
		}
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(bbcFeed))
	}))
	defer srv.Close()

	pl, _ := competition.Lookup("PL")
	pl.NewsFeeds = []competition.Feed{
		{Name: "Broken", URL: srv.URL + "/broken"},
		{Name: "BBC Sport", URL: srv.URL + "/feed"},
		{Name: "Mirror", URL: srv.URL + "/feed"},
	}

	reader := NewReader(Config{Timeout: 5 * time.Second, Logger: logging.NewNop()})
	items, err := reader.FetchNews(context.Background(), pl)
	if err != nil {
		t.Fatalf("fetch news: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected deduplicated items from the healthy feeds, got %d", len(items))
	}
}

func TestParsePubDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "Tue, 13 Jan 2026 18:04:11 +0000", want: time.Date(2026, 1, 13, 18, 4, 11, 0, time.UTC)},
		{in: "Tue, 6 Jan 2026 08:00:00 +0100", want: time.Date(2026, 1, 6, 7, 0, 0, 0, time.UTC)},
		{in: "2026-01-13T18:04:11Z", want: time.Date(2026, 1, 13, 18, 4, 11, 0, time.UTC)},
		{in: "", want: now},
	}
	for _, tc := range tests {
		if got := parsePubDate(tc.in, now); !got.Equal(tc.want) {
			t.Fatalf("parsePubDate(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
