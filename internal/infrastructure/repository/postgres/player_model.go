package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/player"
)

type playerTableModel struct {
	ID             int64         `db:"id,readonly"`
	SourceID       string        `db:"source_id"`
	Competition    string        `db:"competition"`
	Season         string        `db:"season"`
	Name           string        `db:"name"`
	Position       string        `db:"position"`
	PositionDetail string        `db:"position_detail"`
	ClubID         sql.NullInt64 `db:"club_id"`
	ClubSourceID   string        `db:"club_source_id"`
	ClubName       string        `db:"club_name"`
	Nationality    string        `db:"nationality"`
	ShirtNumber    int           `db:"shirt_number"`
	DateOfBirth    sql.NullTime  `db:"date_of_birth"`
	HeightCM       int           `db:"height_cm"`
	PhotoURL       string        `db:"photo_url"`
	CreatedAt      time.Time     `db:"created_at,readonly"`
	UpdatedAt      time.Time     `db:"updated_at,readonly"`
}

func playerToModel(p player.Player) playerTableModel {
	return playerTableModel{
		ID:             p.ID,
		SourceID:       p.SourceID,
		Competition:    p.Competition,
		Season:         p.Season,
		Name:           p.Name,
		Position:       string(p.Position),
		PositionDetail: p.PositionDetail,
		ClubID:         nullableID(p.ClubID),
		ClubSourceID:   p.ClubSourceID,
		ClubName:       p.ClubName,
		Nationality:    p.Nationality,
		ShirtNumber:    p.ShirtNumber,
		DateOfBirth:    nullableTime(p.DateOfBirth),
		HeightCM:       p.HeightCM,
		PhotoURL:       p.PhotoURL,
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:             m.ID,
		SourceID:       m.SourceID,
		Competition:    m.Competition,
		Season:         m.Season,
		Name:           m.Name,
		Position:       player.Position(m.Position),
		PositionDetail: m.PositionDetail,
		ClubID:         nullIDToPtr(m.ClubID),
		ClubSourceID:   m.ClubSourceID,
		ClubName:       m.ClubName,
		Nationality:    m.Nationality,
		ShirtNumber:    m.ShirtNumber,
		DateOfBirth:    nullTimeToPtr(m.DateOfBirth),
		HeightCM:       m.HeightCM,
		PhotoURL:       m.PhotoURL,
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}
