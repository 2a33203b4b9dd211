package postgres

import (
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/club"
)

type clubTableModel struct {
	ID              int64     `db:"id,readonly"`
	SourceID        string    `db:"source_id"`
	Competition     string    `db:"competition"`
	Season          string    `db:"season"`
	Name            string    `db:"name"`
	ShortName       string    `db:"short_name"`
	Country         string    `db:"country"`
	BadgeURL        string    `db:"badge_url"`
	Stadium         string    `db:"stadium"`
	StadiumCity     string    `db:"stadium_city"`
	StadiumCapacity int       `db:"stadium_capacity"`
	Manager         string    `db:"manager"`
	Founded         int       `db:"founded"`
	PrimaryColor    string    `db:"primary_color"`
	CreatedAt       time.Time `db:"created_at,readonly"`
	UpdatedAt       time.Time `db:"updated_at,readonly"`
}

func clubToModel(c club.Club) clubTableModel {
	return clubTableModel{
		ID:              c.ID,
		SourceID:        c.SourceID,
		Competition:     c.Competition,
		Season:          c.Season,
		Name:            c.Name,
		ShortName:       c.ShortName,
		Country:         c.Country,
		BadgeURL:        c.BadgeURL,
		Stadium:         c.Stadium,
		StadiumCity:     c.StadiumCity,
		StadiumCapacity: c.StadiumCapacity,
		Manager:         c.Manager,
		Founded:         c.Founded,
		PrimaryColor:    c.PrimaryColor,
	}
}

func (m clubTableModel) toDomain() club.Club {
	return club.Club{
		ID:              m.ID,
		SourceID:        m.SourceID,
		Competition:     m.Competition,
		Season:          m.Season,
		Name:            m.Name,
		ShortName:       m.ShortName,
		Country:         m.Country,
		BadgeURL:        m.BadgeURL,
		Stadium:         m.Stadium,
		StadiumCity:     m.StadiumCity,
		StadiumCapacity: m.StadiumCapacity,
		Manager:         m.Manager,
		Founded:         m.Founded,
		PrimaryColor:    m.PrimaryColor,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}
