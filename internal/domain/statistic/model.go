package statistic

import (
	"strings"
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/player"
)

// Statistic is one row per player per competition season. Keeper-only
// fields are pointers so a missing value stays distinguishable from zero.
type Statistic struct {
	ID             int64
	PlayerID       *int64
	PlayerSourceID string `validate:"required"`
	Competition    string `validate:"required"`
	Season         string `validate:"required"`
	PlayerName     string
	ClubName       string
	Position       player.Position
	Appearances    int
	Minutes        int
	Goals          int
	Assists        int
	YellowCards    int
	RedCards       int
	Saves          *int
	CleanSheets    *int
	ExpectedGoals  float64
	Rating         float64
	UpdatedAt      time.Time
}

type Key struct {
	PlayerSourceID string
	Competition    string
	Season         string
}

func (s Statistic) Key() Key {
	return Key{PlayerSourceID: s.PlayerSourceID, Competition: s.Competition, Season: s.Season}
}

func (k Key) String() string {
	return "statistic:" + k.Competition + ":" + k.Season + ":" + k.PlayerSourceID
}

func (s Statistic) HasKeeperFields() bool {
	return (s.Saves != nil && *s.Saves > 0) || (s.CleanSheets != nil && *s.CleanSheets > 0)
}

type SortField string

const (
	SortGoals         SortField = "goals"
	SortAssists       SortField = "assists"
	SortAppearances   SortField = "appearances"
	SortMinutes       SortField = "minutes_played"
	SortCleanSheets   SortField = "clean_sheets"
	SortSaves         SortField = "saves"
	SortYellowCards   SortField = "yellow_cards"
	SortRedCards      SortField = "red_cards"
	SortExpectedGoals SortField = "expected_goals"
	SortRating        SortField = "average_rating"
)

var sortFields = []SortField{
	SortGoals, SortAssists, SortAppearances, SortMinutes, SortCleanSheets,
	SortSaves, SortYellowCards, SortRedCards, SortExpectedGoals, SortRating,
}

// ParseSort returns the whitelisted sort field; anything else falls back to goals.
func ParseSort(raw string) (SortField, bool) {
	needle := SortField(strings.ToLower(strings.TrimSpace(raw)))
	for _, f := range sortFields {
		if f == needle {
			return f, true
		}
	}
	return SortGoals, false
}

func SortFields() []SortField {
	return append([]SortField(nil), sortFields...)
}

func SameContent(a, b Statistic) bool {
	return a.PlayerSourceID == b.PlayerSourceID && a.Competition == b.Competition && a.Season == b.Season &&
		samePlayerID(a.PlayerID, b.PlayerID) && a.PlayerName == b.PlayerName && a.ClubName == b.ClubName &&
		a.Position == b.Position && a.Appearances == b.Appearances && a.Minutes == b.Minutes &&
		a.Goals == b.Goals && a.Assists == b.Assists && a.YellowCards == b.YellowCards &&
		a.RedCards == b.RedCards && sameInt(a.Saves, b.Saves) && sameInt(a.CleanSheets, b.CleanSheets) &&
		a.ExpectedGoals == b.ExpectedGoals && a.Rating == b.Rating
}

func sameInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func samePlayerID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func Merge(existing, incoming Statistic) Statistic {
	out := incoming
	out.ID = existing.ID
	if out.PlayerID == nil {
		out.PlayerID = existing.PlayerID
	}
	return out
}
