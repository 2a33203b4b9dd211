package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/football-hub/internal/domain/standing"
)

type standingTableModel struct {
	ID             int64         `db:"id,readonly"`
	ClubID         sql.NullInt64 `db:"club_id"`
	ClubSourceID   string        `db:"club_source_id"`
	Competition    string        `db:"competition"`
	Season         string        `db:"season"`
	GroupName      string        `db:"group_name"`
	TeamName       string        `db:"team_name"`
	TeamShort      string        `db:"team_short"`
	TeamBadge      string        `db:"team_badge"`
	Position       int           `db:"position"`
	Played         int           `db:"played"`
	Won            int           `db:"won"`
	Drawn          int           `db:"drawn"`
	Lost           int           `db:"lost"`
	GoalsFor       int           `db:"goals_for"`
	GoalsAgainst   int           `db:"goals_against"`
	GoalDifference int           `db:"goal_difference"`
	Points         int           `db:"points"`
	Deduction      int           `db:"deduction"`
	Zone           string        `db:"zone"`
	ZoneLabel      string        `db:"zone_label"`
	Form           string        `db:"form"`
	Stale          bool          `db:"stale"`
	CreatedAt      time.Time     `db:"created_at,readonly"`
	UpdatedAt      time.Time     `db:"updated_at,readonly"`
}

func standingToModel(r standing.Row) standingTableModel {
	return standingTableModel{
		ID:             r.ID,
		ClubID:         nullableID(r.ClubID),
		ClubSourceID:   r.ClubSourceID,
		Competition:    r.Competition,
		Season:         r.Season,
		GroupName:      r.Group,
		TeamName:       r.TeamName,
		TeamShort:      r.TeamShort,
		TeamBadge:      r.TeamBadge,
		Position:       r.Position,
		Played:         r.Played,
		Won:            r.Won,
		Drawn:          r.Drawn,
		Lost:           r.Lost,
		GoalsFor:       r.GoalsFor,
		GoalsAgainst:   r.GoalsAgainst,
		GoalDifference: r.GoalDifference,
		Points:         r.Points,
		Deduction:      r.Deduction,
		Zone:           string(r.Zone),
		ZoneLabel:      r.ZoneLabel,
		Form:           r.Form,
		Stale:          r.Stale,
	}
}

func (m standingTableModel) toDomain() standing.Row {
	return standing.Row{
		ID:             m.ID,
		ClubID:         nullIDToPtr(m.ClubID),
		ClubSourceID:   m.ClubSourceID,
		Competition:    m.Competition,
		Season:         m.Season,
		Group:          m.GroupName,
		TeamName:       m.TeamName,
		TeamShort:      m.TeamShort,
		TeamBadge:      m.TeamBadge,
		Position:       m.Position,
		Played:         m.Played,
		Won:            m.Won,
		Drawn:          m.Drawn,
		Lost:           m.Lost,
		GoalsFor:       m.GoalsFor,
		GoalsAgainst:   m.GoalsAgainst,
		GoalDifference: m.GoalDifference,
		Points:         m.Points,
		Deduction:      m.Deduction,
		Zone:           standing.Zone(m.Zone),
		ZoneLabel:      m.ZoneLabel,
		Form:           m.Form,
		Stale:          m.Stale,
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}
