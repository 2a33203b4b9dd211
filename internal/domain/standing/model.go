package standing

import (
	"sort"
	"time"
)

type Zone string

const (
	ZoneAdvances   Zone = "advances"
	ZonePlayoff    Zone = "playoff"
	ZoneEliminated Zone = "eliminated"
	ZoneNormal     Zone = "normal"
)

// Row is one table line, identified by (ClubSourceID, Competition, Season, Group).
// ClubID stays nil until the club exists; the Team* fields are the fallback.
type Row struct {
	ID             int64
	ClubID         *int64
	ClubSourceID   string `validate:"required"`
	Competition    string `validate:"required"`
	Season         string `validate:"required"`
	Group          string
	TeamName       string `validate:"required"`
	TeamShort      string
	TeamBadge      string
	Position       int `validate:"gte=1"`
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Deduction      int
	Zone           Zone
	ZoneLabel      string
	Form           string
	Stale          bool
	UpdatedAt      time.Time
}

type Key struct {
	ClubSourceID string
	Competition  string
	Season       string
	Group        string
}

func (r Row) Key() Key {
	return Key{ClubSourceID: r.ClubSourceID, Competition: r.Competition, Season: r.Season, Group: r.Group}
}

func (k Key) String() string {
	return "standing:" + k.Competition + ":" + k.Season + ":" + k.Group + ":" + k.ClubSourceID
}

// Rerank makes positions dense (1..n) inside every group, keeping the
// upstream order and breaking ties by points then goal difference.
func Rerank(rows []Row) []Row {
	out := append([]Row(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return a.GoalDifference > b.GoalDifference
	})

	rank := 0
	group := ""
	for i := range out {
		if i == 0 || out[i].Group != group {
			group = out[i].Group
			rank = 0
		}
		rank++
		out[i].Position = rank
	}
	return out
}

// IsDense reports whether positions within each group run 1..n without gaps.
func IsDense(rows []Row) bool {
	seen := make(map[string]map[int]bool)
	for _, r := range rows {
		if seen[r.Group] == nil {
			seen[r.Group] = make(map[int]bool)
		}
		if r.Position < 1 || seen[r.Group][r.Position] {
			return false
		}
		seen[r.Group][r.Position] = true
	}
	for _, positions := range seen {
		for p := 1; p <= len(positions); p++ {
			if !positions[p] {
				return false
			}
		}
	}
	return true
}

// Merge keeps the stored id and club reference; everything else comes from
// the refresh, which also clears the stale flag.
func Merge(existing, incoming Row) Row {
	out := incoming
	out.ID = existing.ID
	if out.ClubID == nil {
		out.ClubID = existing.ClubID
	}
	out.Stale = false
	return out
}

func SameContent(a, b Row) bool {
	a.ID, b.ID = 0, 0
	a.UpdatedAt, b.UpdatedAt = time.Time{}, time.Time{}
	if (a.ClubID == nil) != (b.ClubID == nil) || (a.ClubID != nil && *a.ClubID != *b.ClubID) {
		return false
	}
	a.ClubID, b.ClubID = nil, nil
	return a == b
}
