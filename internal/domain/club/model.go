package club

import (
	"strings"
	"time"
)

// Club is identified by (SourceID, Competition, Season).
type Club struct {
	ID              int64
	SourceID        string `validate:"required"`
	Competition     string `validate:"required"`
	Season          string `validate:"required"`
	Name            string `validate:"required"`
	ShortName       string
	Country         string
	BadgeURL        string
	Stadium         string
	StadiumCity     string
	StadiumCapacity int
	Manager         string
	Founded         int
	PrimaryColor    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Key struct {
	SourceID    string
	Competition string
	Season      string
}

func (c Club) Key() Key {
	return Key{SourceID: c.SourceID, Competition: c.Competition, Season: c.Season}
}

func (k Key) String() string {
	return "club:" + k.Competition + ":" + k.Season + ":" + k.SourceID
}

// Merge applies a later sighting on top of the stored row. Non-empty
// incoming fields win; empty ones keep what an earlier, richer adapter wrote.
func Merge(existing, incoming Club) Club {
	out := existing
	out.Name = pick(incoming.Name, existing.Name)
	out.ShortName = pick(incoming.ShortName, existing.ShortName)
	out.Country = pick(incoming.Country, existing.Country)
	out.BadgeURL = pick(incoming.BadgeURL, existing.BadgeURL)
	out.Stadium = pick(incoming.Stadium, existing.Stadium)
	out.StadiumCity = pick(incoming.StadiumCity, existing.StadiumCity)
	out.Manager = pick(incoming.Manager, existing.Manager)
	out.PrimaryColor = pick(incoming.PrimaryColor, existing.PrimaryColor)
	if incoming.StadiumCapacity > 0 {
		out.StadiumCapacity = incoming.StadiumCapacity
	}
	if incoming.Founded > 0 {
		out.Founded = incoming.Founded
	}
	return out
}

// SameContent reports whether b carries nothing new for a.
func SameContent(a, b Club) bool {
	a.ID, b.ID = 0, 0
	a.CreatedAt, b.CreatedAt = time.Time{}, time.Time{}
	a.UpdatedAt, b.UpdatedAt = time.Time{}, time.Time{}
	return a == b
}

func pick(incoming, existing string) string {
	if strings.TrimSpace(incoming) != "" {
		return strings.TrimSpace(incoming)
	}
	return existing
}
