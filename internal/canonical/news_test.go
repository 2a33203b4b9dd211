package canonical

import (
	"strings"
	"testing"

	"github.com/riskibarqy/football-hub/internal/domain/competition"
)

func TestNewsSourceID(t *testing.T) {
	t.Parallel()

	a := NewsSourceID("rss_", "https://bbc.co.uk/sport/1")
	b := NewsSourceID("rss_", "https://bbc.co.uk/sport/1")
	c := NewsSourceID("rss_", "https://bbc.co.uk/sport/2")
	if a != b {
		t.Fatalf("same guid must give the same id")
	}
	if a == c {
		t.Fatalf("different guids must give different ids")
	}
	if !strings.HasPrefix(a, "rss_") || len(a) != len("rss_")+20 {
		t.Fatalf("unexpected id shape %q", a)
	}
	if got := ProviderNewsID(" 123 "); got != "fotmob_123" {
		t.Fatalf("unexpected provider id %q", got)
	}
}

func TestCategorizeNews(t *testing.T) {
	t.Parallel()

	pl, _ := competition.Lookup("PL")
	ucl, _ := competition.Lookup("UCL")

	if got := CategorizeNews(pl, "Arsenal complete loan deal", "", nil); got != "Transfer" {
		t.Fatalf("unexpected category %q", got)
	}
	if got := CategorizeNews(pl, "Saka ruled out", "", nil); got != "Injury" {
		t.Fatalf("unexpected category %q", got)
	}
	if got := CategorizeNews(pl, "Weekly column", "", nil); got != "News" {
		t.Fatalf("unexpected default %q", got)
	}
	if got := CategorizeNews(ucl, "Inter beat Bayern", "", nil); got != "Match Report" {
		t.Fatalf("ucl table order must put match reports first, got %q", got)
	}
	if got := CategorizeNews(ucl, "Club", "", []string{"tactical"}); got != "Tactical Analysis" {
		t.Fatalf("tags must count, got %q", got)
	}
}

func TestDetectUCLRound(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Road to the final in Budapest": "Final",
		"Semi-final draw made":          "Semi-finals",
		"Quarter-final first leg":       "Quarter-finals",
		"Who reaches the last 16?":      "Round of 16",
		"Knockout playoff preview":      "Knockout Playoffs",
		"League phase table explained":  "League Phase",
		"Transfer gossip":               "",
	}
	for text, want := range cases {
		if got := DetectUCLRound(text); got != want {
			t.Fatalf("DetectUCLRound(%q) = %q, want %q", text, got, want)
		}
	}
}
