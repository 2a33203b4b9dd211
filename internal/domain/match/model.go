package match

import (
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusLive      Status = "LIVE"
	StatusHalftime  Status = "HALFTIME"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
	StatusCancelled Status = "CANCELLED"
)

func ParseStatus(raw string) (Status, bool) {
	switch s := Status(strings.ToUpper(strings.TrimSpace(raw))); s {
	case StatusScheduled, StatusLive, StatusHalftime, StatusFinished, StatusPostponed, StatusCancelled:
		return s, true
	case "HT":
		return StatusHalftime, true
	case "FT":
		return StatusFinished, true
	default:
		return "", false
	}
}

func (s Status) IsLive() bool {
	return s == StatusLive || s == StatusHalftime
}

func (s Status) IsFinished() bool {
	return s == StatusFinished
}

// Match is identified by (SourceID, Competition). Club ids stay nil until
// the club exists; the team name and badge fields are the fallback.
type Match struct {
	ID           int64
	SourceID     string `validate:"required"`
	Competition  string `validate:"required"`
	Season       string `validate:"required"`
	Matchweek    int
	Round        string
	Group        string
	HomeClubID   *int64
	AwayClubID   *int64
	HomeSourceID string
	AwaySourceID string
	HomeTeamName string `validate:"required"`
	AwayTeamName string `validate:"required"`
	HomeBadge    string
	AwayBadge    string
	KickoffAt    time.Time
	Status       Status `validate:"required"`
	Minute       int
	HomeScore    *int
	AwayScore    *int
	HomeScoreHT  *int
	AwayScoreHT  *int
	HomeScorePen *int
	AwayScorePen *int
	Venue        string
	VenueCity    string
	IsKnockout   bool
	Leg          int
	AggHome      *int
	AggAway      *int
	EndedAET     bool
	EndedPen     bool
	Events       []Event
	UpdatedAt    time.Time
}

type Key struct {
	SourceID    string
	Competition string
}

func (m Match) Key() Key {
	return Key{SourceID: m.SourceID, Competition: m.Competition}
}

func (k Key) String() string {
	return "match:" + k.Competition + ":" + k.SourceID
}

// Merge applies a new poll on top of the stored match.
//
// A FINISHED match never moves back: when the incoming status is anything
// else, the stored status, scores, minute and result flags are kept and only
// descriptive fields (names, badges, venue, round) refresh. Knockout
// metadata, round, club references and events only ever fill in.
func Merge(existing, incoming Match) Match {
	out := incoming
	out.ID = existing.ID

	if existing.Status.IsFinished() && !incoming.Status.IsFinished() {
		out.Status = existing.Status
		out.Minute = existing.Minute
		out.HomeScore, out.AwayScore = existing.HomeScore, existing.AwayScore
		out.HomeScoreHT, out.AwayScoreHT = existing.HomeScoreHT, existing.AwayScoreHT
		out.HomeScorePen, out.AwayScorePen = existing.HomeScorePen, existing.AwayScorePen
		out.EndedAET, out.EndedPen = existing.EndedAET, existing.EndedPen
		out.Events = existing.Events
	}

	// A poll whose score did not parse keeps the stored result. Scores fill
	// in as a pair so a half-parsed poll never mixes two results.
	if out.Status.IsFinished() || out.Status.IsLive() {
		if out.HomeScore == nil && out.AwayScore == nil {
			out.HomeScore, out.AwayScore = existing.HomeScore, existing.AwayScore
		}
		if out.HomeScorePen == nil && out.AwayScorePen == nil {
			out.HomeScorePen, out.AwayScorePen = existing.HomeScorePen, existing.AwayScorePen
		}
	}
	if out.Events == nil {
		out.Events = existing.Events
	}

	if out.HomeClubID == nil {
		out.HomeClubID = existing.HomeClubID
	}
	if out.AwayClubID == nil {
		out.AwayClubID = existing.AwayClubID
	}
	if out.HomeScoreHT == nil {
		out.HomeScoreHT = existing.HomeScoreHT
	}
	if out.AwayScoreHT == nil {
		out.AwayScoreHT = existing.AwayScoreHT
	}
	if out.Leg == 0 {
		out.Leg = existing.Leg
	}
	if out.AggHome == nil {
		out.AggHome = existing.AggHome
	}
	if out.AggAway == nil {
		out.AggAway = existing.AggAway
	}
	out.IsKnockout = out.IsKnockout || existing.IsKnockout
	if out.Matchweek == 0 {
		out.Matchweek = existing.Matchweek
	}
	if out.Round == "" {
		out.Round = existing.Round
	}
	if out.HomeSourceID == "" {
		out.HomeSourceID = existing.HomeSourceID
	}
	if out.AwaySourceID == "" {
		out.AwaySourceID = existing.AwaySourceID
	}
	if out.KickoffAt.IsZero() {
		out.KickoffAt = existing.KickoffAt
	}
	if out.Group == "" && !out.IsKnockout {
		out.Group = existing.Group
	}
	if out.HomeBadge == "" {
		out.HomeBadge = existing.HomeBadge
	}
	if out.AwayBadge == "" {
		out.AwayBadge = existing.AwayBadge
	}
	if out.Venue == "" {
		out.Venue = existing.Venue
	}
	if out.VenueCity == "" {
		out.VenueCity = existing.VenueCity
	}
	return out
}

// SameContent reports whether two matches carry the same persisted values.
func SameContent(a, b Match) bool {
	return a.SourceID == b.SourceID && a.Competition == b.Competition && a.Season == b.Season &&
		a.Matchweek == b.Matchweek && a.Round == b.Round && a.Group == b.Group &&
		eqID(a.HomeClubID, b.HomeClubID) && eqID(a.AwayClubID, b.AwayClubID) &&
		a.HomeSourceID == b.HomeSourceID && a.AwaySourceID == b.AwaySourceID &&
		a.HomeTeamName == b.HomeTeamName && a.AwayTeamName == b.AwayTeamName &&
		a.HomeBadge == b.HomeBadge && a.AwayBadge == b.AwayBadge &&
		a.KickoffAt.Equal(b.KickoffAt) && a.Status == b.Status && a.Minute == b.Minute &&
		eqInt(a.HomeScore, b.HomeScore) && eqInt(a.AwayScore, b.AwayScore) &&
		eqInt(a.HomeScoreHT, b.HomeScoreHT) && eqInt(a.AwayScoreHT, b.AwayScoreHT) &&
		eqInt(a.HomeScorePen, b.HomeScorePen) && eqInt(a.AwayScorePen, b.AwayScorePen) &&
		a.Venue == b.Venue && a.VenueCity == b.VenueCity &&
		a.IsKnockout == b.IsKnockout && a.Leg == b.Leg &&
		eqInt(a.AggHome, b.AggHome) && eqInt(a.AggAway, b.AggAway) &&
		a.EndedAET == b.EndedAET && a.EndedPen == b.EndedPen &&
		sameEvents(a.Events, b.Events)
}

func eqInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func IntPtr(v int) *int {
	return &v
}
