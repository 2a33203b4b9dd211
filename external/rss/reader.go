// Package rss reads competition news feeds.
package rss

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/gocolly/colly/v2"

	"github.com/riskibarqy/football-hub/internal/canonical"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/news"
	"github.com/riskibarqy/football-hub/internal/metrics"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
	"github.com/riskibarqy/football-hub/internal/usecase"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	defaultTimeout   = 15 * time.Second
	sourcePrefix     = "rss_"
	providerName     = "rss"
)

var bbcImageSize = regexp.MustCompile(`/standard/\d+/`)

type Config struct {
	UserAgent string
	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    *logging.Logger
}

// Reader fetches every feed of a competition. A failing feed is logged and
// skipped.
type Reader struct {
	cfg    Config
	base   *colly.Collector
	logger *logging.Logger
	now    func() time.Time
}

var _ usecase.NewsSource = (*Reader)(nil)

func NewReader(cfg Config) *Reader {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	transport := cfg.Transport
	if transport == nil {
		transport = newHTTPTransport()
	}

	c := colly.NewCollector(colly.Async(false), colly.AllowURLRevisit())
	c.WithTransport(transport)
	c.IgnoreRobotsTxt = true

	return &Reader{cfg: cfg, base: c, logger: logger, now: time.Now}
}

func (r *Reader) FetchNews(ctx context.Context, comp competition.Competition) ([]news.Item, error) {
	seen := make(map[string]struct{}, 64)
	out := make([]news.Item, 0, 64)
	for _, feed := range comp.NewsFeeds {
		started := time.Now()
		items, err := r.FetchFeed(ctx, comp, feed)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			metrics.ObserveUpstream(providerName, feed.Name, "error", time.Since(started))
			r.logger.WarnContext(ctx, "fetch news feed failed", "competition", comp.Code, "feed", feed.Name, "error", err)
			continue
		}
		metrics.ObserveUpstream(providerName, feed.Name, "ok", time.Since(started))
		for _, item := range items {
			if _, dup := seen[item.SourceID]; dup {
				continue
			}
			seen[item.SourceID] = struct{}{}
			out = append(out, item)
		}
	}
	r.logger.InfoContext(ctx, "fetched news feeds", "competition", comp.Code, "feeds", len(comp.NewsFeeds), "items", len(out))
	return out, nil
}

// FetchFeed downloads and parses one feed.
func (r *Reader) FetchFeed(ctx context.Context, comp competition.Competition, feed competition.Feed) ([]news.Item, error) {
	body, err := r.fetch(ctx, feed.URL)
	if err != nil {
		return nil, err
	}
	return parseFeed(comp, feed, body, r.now())
}

func (r *Reader) fetch(ctx context.Context, url string) ([]byte, error) {
	collector := r.base.Clone()
	collector.UserAgent = r.cfg.UserAgent
	collector.SetRequestTimeout(r.cfg.Timeout)

	var (
		body     []byte
		fetchErr error
	)
	collector.OnRequest(func(req *colly.Request) {
		req.Headers.Set("Accept", "application/rss+xml, application/xml, text/xml;q=0.9, */*;q=0.8")
	})
	collector.OnResponse(func(resp *colly.Response) {
		body = append([]byte(nil), resp.Body...)
	})
	collector.OnError(func(resp *colly.Response, err error) {
		if resp != nil && resp.StatusCode != 0 {
			fetchErr = fmt.Errorf("feed status=%d: %w", resp.StatusCode, err)
			return
		}
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("feed fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("visit feed: %w", err)
		}
		if fetchErr != nil {
			return nil, fmt.Errorf("feed response: %w", fetchErr)
		}
		return body, nil
	}
}

func parseFeed(comp competition.Competition, feed competition.Feed, body []byte, now time.Time) ([]news.Item, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed xml: %w", err)
	}

	nodes := xmlquery.Find(doc, "//item")
	out := make([]news.Item, 0, len(nodes))
	for _, node := range nodes {
		if item, ok := parseItem(comp, feed, node, now); ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type rawItem struct {
	title       string
	link        string
	description string
	pubDate     string
	guid        string
	categories  []string
	thumbnail   string
	enclosure   string
	media       string
}

func readItem(node *xmlquery.Node) rawItem {
	var raw rawItem
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		text := strings.TrimSpace(child.InnerText())
		switch {
		case child.Prefix == "media" && child.Data == "thumbnail":
			if raw.thumbnail == "" {
				raw.thumbnail = child.SelectAttr("url")
			}
		case child.Prefix == "media" && child.Data == "content":
			medium := child.SelectAttr("medium")
			typ := child.SelectAttr("type")
			if raw.media == "" && (medium == "image" || strings.HasPrefix(typ, "image/") || (medium == "" && typ == "")) {
				raw.media = child.SelectAttr("url")
			}
		case child.Prefix != "":
			continue
		case child.Data == "title":
			raw.title = text
		case child.Data == "link":
			raw.link = text
		case child.Data == "description":
			raw.description = text
		case child.Data == "pubDate":
			raw.pubDate = text
		case child.Data == "guid":
			raw.guid = text
		case child.Data == "category":
			if text != "" {
				raw.categories = append(raw.categories, text)
			}
		case child.Data == "enclosure":
			typ := child.SelectAttr("type")
			if raw.enclosure == "" && (typ == "" || strings.HasPrefix(typ, "image/")) {
				raw.enclosure = child.SelectAttr("url")
			}
		}
	}
	return raw
}

func parseItem(comp competition.Competition, feed competition.Feed, node *xmlquery.Node, now time.Time) (news.Item, bool) {
	raw := readItem(node)
	title := canonical.CleanText(canonical.StripHTML(raw.title))
	if title == "" || raw.link == "" {
		return news.Item{}, false
	}

	guid := raw.guid
	if guid == "" {
		guid = raw.link
	}
	content := canonical.StripHTML(raw.description)
	excerpt := canonical.Truncate(content, news.MaxExcerptRunes)

	item := news.Item{
		SourceID:     canonical.NewsSourceID(sourcePrefix, guid),
		Competition:  string(comp.Code),
		Title:        title,
		Excerpt:      excerpt,
		Content:      content,
		ThumbnailURL: thumbnailURL(raw),
		SourceURL:    raw.link,
		SourceName:   feed.Name,
		Category:     canonical.CategorizeNews(comp, title, excerpt, raw.categories),
		Tags:         raw.categories,
		PublishedAt:  parsePubDate(raw.pubDate, now),
	}
	if comp.HasKnockout {
		item.Round = canonical.DetectUCLRound(title + " " + excerpt)
	}
	return item, true
}

func thumbnailURL(raw rawItem) string {
	u := raw.thumbnail
	if u == "" {
		u = raw.enclosure
	}
	if u == "" {
		u = raw.media
	}
	if strings.Contains(u, "bbci.co.uk") || strings.Contains(u, "bbc.co.uk") {
		u = bbcImageSize.ReplaceAllString(u, "/standard/1024/")
	}
	return u
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
}

func parsePubDate(raw string, now time.Time) time.Time {
	s := strings.TrimSpace(raw)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return now.UTC()
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConns:        20,
		IdleConnTimeout:     90 * time.Second,
	}
}
