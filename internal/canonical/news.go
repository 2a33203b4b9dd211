package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/news"
)

const newsIDLength = 20

// NewsSourceID derives a stable dedup key from a feed guid.
func NewsSourceID(prefix, guid string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(guid)))
	return prefix + hex.EncodeToString(sum[:])[:newsIDLength]
}

func ProviderNewsID(id string) string {
	return "fotmob_" + strings.TrimSpace(id)
}

// CategorizeNews walks the competition keyword table in order; the first
// matching category wins.
func CategorizeNews(comp competition.Competition, title, excerpt string, tags []string) string {
	text := strings.ToLower(title + " " + excerpt + " " + strings.Join(tags, " "))
	for _, rule := range comp.NewsCategories {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}
	return news.CategoryNews
}

// DetectUCLRound returns the knockout stage named in text, or "".
func DetectUCLRound(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "final") && !strings.Contains(t, "semi") && !strings.Contains(t, "quarter"):
		return "Final"
	case strings.Contains(t, "semi"):
		return "Semi-finals"
	case strings.Contains(t, "quarter"):
		return "Quarter-finals"
	case strings.Contains(t, "round of 16"), strings.Contains(t, "r16"), strings.Contains(t, "last 16"):
		return "Round of 16"
	case strings.Contains(t, "knockout playoff"), strings.Contains(t, "play-off"):
		return "Knockout Playoffs"
	case strings.Contains(t, "league phase"), strings.Contains(t, "group stage"):
		return "League Phase"
	}
	return ""
}
