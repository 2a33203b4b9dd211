package fotmob

import (
	"context"
	"strings"

	"github.com/riskibarqy/football-hub/internal/canonical"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/news"
)

var newsPaths = [][]string{
	{"news"},
	{"newsArticles"},
	{"articles"},
	{"overview", "newsSummary", "articles"},
}

// FetchNews reads the provider news attached to the league document.
func (c *Client) FetchNews(ctx context.Context, comp competition.Competition) ([]news.Item, error) {
	doc, err := c.fetchLeague(ctx, comp)
	if err != nil {
		if isCanceled(ctx, err) {
			return nil, ctx.Err()
		}
		c.logger.WarnContext(ctx, "fetch provider news failed", "competition", comp.Code, "error", err)
		return []news.Item{}, nil
	}
	items := parseNews(comp, doc)
	c.logger.InfoContext(ctx, "fetched provider news", "competition", comp.Code, "items", len(items))
	return items, nil
}

func parseNews(comp competition.Competition, doc map[string]any) []news.Item {
	var raw []map[string]any
	for _, path := range newsPaths {
		if raw = asMaps(getPath(doc, path...)); len(raw) > 0 {
			break
		}
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]news.Item, 0, len(raw))
	for _, entry := range raw {
		id := firstNonEmpty(getString(entry, "id"), getString(entry, "newsArticleId"))
		title := canonical.CleanText(getString(entry, "title"))
		link := strings.TrimSpace(getString(entry, "link"))
		if link == "" {
			link = strings.TrimSpace(getString(entry, "url"))
		}
		if title == "" || link == "" {
			continue
		}
		if strings.HasPrefix(link, "/") {
			link = "https://www.fotmob.com" + link
		}
		if id == "" {
			id = link
		}
		sourceID := canonical.ProviderNewsID(id)
		if _, dup := seen[sourceID]; dup {
			continue
		}
		seen[sourceID] = struct{}{}

		tags := make([]string, 0, 4)
		for _, tag := range getSlice(entry, "tags") {
			switch v := tag.(type) {
			case string:
				tags = append(tags, v)
			case map[string]any:
				if name := getString(v, "name"); name != "" {
					tags = append(tags, name)
				}
			}
		}
		excerpt := canonical.Truncate(canonical.StripHTML(firstNonEmpty(getString(entry, "subTitle"), getString(entry, "summary"))), news.MaxExcerptRunes)
		item := news.Item{
			SourceID:     sourceID,
			Competition:  string(comp.Code),
			Title:        title,
			Excerpt:      excerpt,
			ThumbnailURL: firstNonEmpty(getString(entry, "imageUrl"), getString(entry, "image")),
			SourceURL:    link,
			SourceName:   firstNonEmpty(getString(entry, "sourceStr"), getString(getMap(entry, "source"), "name"), getString(entry, "source"), "FotMob"),
			Category:     canonical.CategorizeNews(comp, title, excerpt, tags),
			Tags:         tags,
		}
		if t := parseTime(entry["publishedAt"]); t != nil {
			item.PublishedAt = t.UTC()
		} else if t := parseTime(entry["gmtTime"]); t != nil {
			item.PublishedAt = t.UTC()
		}
		if comp.HasKnockout {
			item.Round = canonical.DetectUCLRound(title + " " + excerpt)
		}
		out = append(out, item)
	}
	return out
}
