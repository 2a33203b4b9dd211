package player

import (
	"strings"
	"time"
)

type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

func ParsePosition(raw string) (Position, bool) {
	switch Position(strings.ToUpper(strings.TrimSpace(raw))) {
	case PositionGoalkeeper:
		return PositionGoalkeeper, true
	case PositionDefender:
		return PositionDefender, true
	case PositionMidfielder:
		return PositionMidfielder, true
	case PositionForward:
		return PositionForward, true
	default:
		return "", false
	}
}

// Player is identified by (SourceID, Competition, Season). ClubID stays nil
// until the club exists; ClubName is the fallback.
type Player struct {
	ID             int64
	SourceID       string   `validate:"required"`
	Competition    string   `validate:"required"`
	Season         string   `validate:"required"`
	Name           string   `validate:"required"`
	Position       Position `validate:"required,oneof=GK DEF MID FWD"`
	PositionDetail string
	ClubID         *int64
	ClubSourceID   string
	ClubName       string
	Nationality    string
	ShirtNumber    int
	DateOfBirth    *time.Time
	HeightCM       int
	PhotoURL       string
	UpdatedAt      time.Time
}

type Key struct {
	SourceID    string
	Competition string
	Season      string
}

func (p Player) Key() Key {
	return Key{SourceID: p.SourceID, Competition: p.Competition, Season: p.Season}
}

func (k Key) String() string {
	return "player:" + k.Competition + ":" + k.Season + ":" + k.SourceID
}

// ApplyKeeperSignal forces GK when the player's stats carry keeper-only values.
func ApplyKeeperSignal(p Position, hasKeeperStats bool) Position {
	if hasKeeperStats {
		return PositionGoalkeeper
	}
	return p
}

func PhotoURL(sourceID string) string {
	if strings.TrimSpace(sourceID) == "" {
		return ""
	}
	return "https://images.fotmob.com/image_resources/playerimages/" + sourceID + ".png"
}

func SameContent(a, b Player) bool {
	return a.SourceID == b.SourceID && a.Competition == b.Competition && a.Season == b.Season &&
		a.Name == b.Name && a.Position == b.Position && a.PositionDetail == b.PositionDetail &&
		sameID(a.ClubID, b.ClubID) && a.ClubSourceID == b.ClubSourceID && a.ClubName == b.ClubName &&
		a.Nationality == b.Nationality && a.ShirtNumber == b.ShirtNumber &&
		sameTime(a.DateOfBirth, b.DateOfBirth) && a.HeightCM == b.HeightCM && a.PhotoURL == b.PhotoURL
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Merge keeps squad details an earlier crawl found when the new sighting
// comes from a source that lacks them.
func Merge(existing, incoming Player) Player {
	out := incoming
	out.ID = existing.ID
	if out.ClubID == nil {
		out.ClubID = existing.ClubID
	}
	if out.PositionDetail == "" {
		out.PositionDetail = existing.PositionDetail
	}
	if out.Nationality == "" {
		out.Nationality = existing.Nationality
	}
	if out.ShirtNumber == 0 {
		out.ShirtNumber = existing.ShirtNumber
	}
	if out.DateOfBirth == nil {
		out.DateOfBirth = existing.DateOfBirth
	}
	if out.HeightCM == 0 {
		out.HeightCM = existing.HeightCM
	}
	if out.ClubName == "" {
		out.ClubName = existing.ClubName
	}
	return out
}
