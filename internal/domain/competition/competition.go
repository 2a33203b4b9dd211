package competition

import (
	"strings"

	"github.com/riskibarqy/football-hub/internal/domain/standing"
)

type Code string

const (
	PL  Code = "PL"
	UCL Code = "UCL"
)

// ClubSource tells the club adapter where to discover a competition's clubs.
type ClubSource int

const (
	ClubsFromTable ClubSource = iota
	ClubsFromFixtures
)

// ColorRule maps upstream qualification colours (or colour keywords) to a zone.
type ColorRule struct {
	Zone    standing.Zone
	Needles []string
}

// ZoneBands are the position thresholds used when no colour is usable.
// Positions 1..Advance advance, Advance+1..Playoff go to the playoff band
// (0 disables it) and the last Relegated places are eliminated. With
// EliminateRest every position after the playoff band is eliminated.
type ZoneBands struct {
	Advance       int
	Playoff       int
	Relegated     int
	EliminateRest bool
}

type ZoneLabels struct {
	Advances   string
	Playoff    string
	Eliminated string
}

// RoundRule maps a named knockout stage onto a synthetic matchweek that
// sorts after the league phase.
type RoundRule struct {
	Label     string
	Matchweek int
	Aliases   []string
}

type Feed struct {
	Name string
	URL  string
}

type CategoryRule struct {
	Category string
	Keywords []string
}

// Competition carries every per-competition quirk consumed by the shared
// adapters and canonicalization rules.
type Competition struct {
	Code             Code
	Name             string
	ProviderLeagueID int
	StatsSeasonID    int
	Season           string
	SeasonLabel      string

	FixturePaths [][]string
	ClubSource   ClubSource
	ClubCap      int
	FormLength   int
	DefaultGroup string
	TableSize    int

	ZoneColors []ColorRule
	ZoneBands  ZoneBands
	ZoneLabels ZoneLabels

	LeaguePhaseRounds int
	KnockoutRounds    []RoundRule

	NewsFeeds      []Feed
	NewsCategories []CategoryRule
	HasKnockout    bool
}

func (c Competition) String() string {
	return string(c.Code)
}

var premierLeague = Competition{
	Code:             PL,
	Name:             "Premier League",
	ProviderLeagueID: 47,
	StatsSeasonID:    27110,
	Season:           "2025",
	SeasonLabel:      "2025/26",
	FixturePaths: [][]string{
		{"fixtures", "allMatches"},
		{"matches", "allMatches"},
	},
	ClubSource: ClubsFromTable,
	FormLength: 5,
	TableSize:  20,
	ZoneColors: []ColorRule{
		{Zone: standing.ZoneAdvances, Needles: []string{"#2ad572", "#17a2b8", "#00ff85"}},
		{Zone: standing.ZonePlayoff, Needles: []string{"#f5a623", "#ffa500", "#fd7e14"}},
		{Zone: standing.ZoneEliminated, Needles: []string{"#e74c3c", "#dc3545", "#ff0000"}},
	},
	ZoneBands:  ZoneBands{Advance: 4, Relegated: 3},
	ZoneLabels: ZoneLabels{Advances: "Champions League", Playoff: "Europa League", Eliminated: "Relegation"},
	NewsFeeds: []Feed{
		{Name: "BBC Sport", URL: "https://feeds.bbci.co.uk/sport/football/premier-league/rss.xml"},
		{Name: "Sky Sports", URL: "https://www.skysports.com/rss/12040"},
		{Name: "The Guardian", URL: "https://www.theguardian.com/football/premierleague/rss"},
	},
	NewsCategories: []CategoryRule{
		{Category: "Transfer", Keywords: []string{"transfer", "sign", "move", "join", "deal", "bid", "loan"}},
		{Category: "Injury", Keywords: []string{"injur", "return", "fit", "miss", "doubt", "ruled out"}},
		{Category: "Interview", Keywords: []string{"interview", "says", "claims", "insists", "reveals", "speaks"}},
		{Category: "Preview", Keywords: []string{"preview", "ahead", "vs", "clash", "face", "host", "travel"}},
		{Category: "Match Report", Keywords: []string{"report", "highlights", "goals", "result", "win", "loss", "draw"}},
	},
}

var championsLeague = Competition{
	Code:             UCL,
	Name:             "UEFA Champions League",
	ProviderLeagueID: 42,
	StatsSeasonID:    28184,
	Season:           "2025",
	SeasonLabel:      "2025/26",
	FixturePaths: [][]string{
		{"matches", "allMatches"},
		{"fixtures", "allMatches"},
	},
	ClubSource:   ClubsFromFixtures,
	ClubCap:      40,
	FormLength:   8,
	DefaultGroup: "League Phase",
	TableSize:    36,
	ZoneColors: []ColorRule{
		{Zone: standing.ZoneAdvances, Needles: []string{"#17a2b8", "cyan", "teal", "direct", "r16"}},
		{Zone: standing.ZonePlayoff, Needles: []string{"#ffa500", "orange", "amber", "playoff"}},
		{Zone: standing.ZoneEliminated, Needles: []string{"#dc3545", "red", "eliminat"}},
	},
	ZoneBands:         ZoneBands{Advance: 8, Playoff: 24, EliminateRest: true},
	ZoneLabels:        ZoneLabels{Advances: "Advance to Round of 16", Playoff: "Knockout Playoffs", Eliminated: "Eliminated"},
	LeaguePhaseRounds: 8,
	KnockoutRounds: []RoundRule{
		{Label: "Playoff", Matchweek: 9, Aliases: []string{"playoff", "playoffs", "knockoutplayoffs", "knockoutplayoff"}},
		{Label: "Round of 16", Matchweek: 10, Aliases: []string{"roundof16", "1/8", "last16", "r16"}},
		{Label: "Quarter-finals", Matchweek: 11, Aliases: []string{"quarterfinals", "quarterfinal", "1/4"}},
		{Label: "Semi-finals", Matchweek: 12, Aliases: []string{"semifinals", "semifinal", "1/2"}},
		{Label: "Final", Matchweek: 13, Aliases: []string{"final"}},
	},
	NewsFeeds: []Feed{
		{Name: "BBC Sport", URL: "https://feeds.bbci.co.uk/sport/football/european/rss.xml"},
		{Name: "The Guardian", URL: "https://www.theguardian.com/football/championsleague/rss"},
	},
	NewsCategories: []CategoryRule{
		{Category: "Match Report", Keywords: []string{"report", "highlights", "recap", "result", "goals", "win", "draw", "loss", "beat", "defeat"}},
		{Category: "Preview", Keywords: []string{"preview", "ahead", "prepare", "vs", "clash", "face", "take on"}},
		{Category: "Transfer", Keywords: []string{"transfer", "sign", "join", "move", "deal", "bid", "want", "target", "linked"}},
		{Category: "Press Conference", Keywords: []string{"press", "conference", "said", "says", "reveals", "insist", "claims", "confirm"}},
		{Category: "Tactical Analysis", Keywords: []string{"tactical", "analysis", "formation", "system", "pressing", "how", "why", "shape"}},
		{Category: "UCL Record", Keywords: []string{"record", "history", "most", "ever", "first time", "landmark", "milestone"}},
		{Category: "Injury", Keywords: []string{"injur", "doubt", "miss", "return", "fit", "ruled out", "unavailable"}},
		{Category: "Road to Final", Keywords: []string{"final", "semi", "quarter", "round of 16", "knockout", "eliminate", "advance"}},
	},
	HasKnockout: true,
}

// Registry resolves competitions by code. The zero value is unusable; use
// NewRegistry.
type Registry struct {
	items []Competition
}

// NewRegistry returns PL and UCL, in that order, with the season override
// applied when non-empty.
func NewRegistry(season, seasonLabel string) *Registry {
	items := []Competition{premierLeague, championsLeague}
	for i := range items {
		items[i].FixturePaths = append([][]string(nil), items[i].FixturePaths...)
		if s := strings.TrimSpace(season); s != "" {
			items[i].Season = s
		}
		if s := strings.TrimSpace(seasonLabel); s != "" {
			items[i].SeasonLabel = s
		}
	}
	return &Registry{items: items}
}

func (r *Registry) All() []Competition {
	return append([]Competition(nil), r.items...)
}

func (r *Registry) Lookup(code string) (Competition, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, item := range r.items {
		if string(item.Code) == code {
			return item, true
		}
	}
	return Competition{}, false
}

// Filter keeps the competitions named in codes; an empty list keeps all.
func (r *Registry) Filter(codes []string) []Competition {
	if len(codes) == 0 {
		return r.All()
	}
	out := make([]Competition, 0, len(codes))
	for _, item := range r.items {
		for _, code := range codes {
			if strings.EqualFold(strings.TrimSpace(code), string(item.Code)) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// All returns the built-in competitions with their default seasons.
func All() []Competition {
	return NewRegistry("", "").All()
}

func Lookup(code string) (Competition, bool) {
	return NewRegistry("", "").Lookup(code)
}
