package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/player"
	"github.com/riskibarqy/football-hub/internal/domain/statistic"
)

type statisticTableModel struct {
	ID             int64         `db:"id,readonly"`
	PlayerID       sql.NullInt64 `db:"player_id"`
	PlayerSourceID string        `db:"player_source_id"`
	Competition    string        `db:"competition"`
	Season         string        `db:"season"`
	PlayerName     string        `db:"player_name"`
	ClubName       string        `db:"club_name"`
	Position       string        `db:"position"`
	Appearances    int           `db:"appearances"`
	Minutes        int           `db:"minutes_played"`
	Goals          int           `db:"goals"`
	Assists        int           `db:"assists"`
	YellowCards    int           `db:"yellow_cards"`
	RedCards       int           `db:"red_cards"`
	Saves          sql.NullInt64 `db:"saves"`
	CleanSheets    sql.NullInt64 `db:"clean_sheets"`
	ExpectedGoals  float64       `db:"expected_goals"`
	Rating         float64       `db:"average_rating"`
	CreatedAt      time.Time     `db:"created_at,readonly"`
	UpdatedAt      time.Time     `db:"updated_at,readonly"`
}

func statisticToModel(s statistic.Statistic) statisticTableModel {
	return statisticTableModel{
		ID:             s.ID,
		PlayerID:       nullableID(s.PlayerID),
		PlayerSourceID: s.PlayerSourceID,
		Competition:    s.Competition,
		Season:         s.Season,
		PlayerName:     s.PlayerName,
		ClubName:       s.ClubName,
		Position:       string(s.Position),
		Appearances:    s.Appearances,
		Minutes:        s.Minutes,
		Goals:          s.Goals,
		Assists:        s.Assists,
		YellowCards:    s.YellowCards,
		RedCards:       s.RedCards,
		Saves:          nullableInt(s.Saves),
		CleanSheets:    nullableInt(s.CleanSheets),
		ExpectedGoals:  s.ExpectedGoals,
		Rating:         s.Rating,
	}
}

func (m statisticTableModel) toDomain() statistic.Statistic {
	return statistic.Statistic{
		ID:             m.ID,
		PlayerID:       nullIDToPtr(m.PlayerID),
		PlayerSourceID: m.PlayerSourceID,
		Competition:    m.Competition,
		Season:         m.Season,
		PlayerName:     m.PlayerName,
		ClubName:       m.ClubName,
		Position:       player.Position(m.Position),
		Appearances:    m.Appearances,
		Minutes:        m.Minutes,
		Goals:          m.Goals,
		Assists:        m.Assists,
		YellowCards:    m.YellowCards,
		RedCards:       m.RedCards,
		Saves:          nullIntToPtr(m.Saves),
		CleanSheets:    nullIntToPtr(m.CleanSheets),
		ExpectedGoals:  m.ExpectedGoals,
		Rating:         m.Rating,
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}
