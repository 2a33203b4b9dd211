package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/news"
	"github.com/riskibarqy/football-hub/internal/domain/player"
)

// CompetitionSummary counts the stored records of one competition season.
type CompetitionSummary struct {
	Competition string
	Season      string
	Clubs       int
	Standings   int
	Matches     int
	Players     int
	News        int
}

// Summary reads the store directly, bypassing the cache.
func (a *App) Summary(ctx context.Context) ([]CompetitionSummary, error) {
	out := make([]CompetitionSummary, 0, len(a.Competitions))
	for _, comp := range a.Competitions {
		code := string(comp.Code)
		row := CompetitionSummary{Competition: code, Season: comp.Season}

		clubs, err := a.Store.Clubs.ListByCompetition(ctx, code, comp.Season)
		if err != nil {
			return nil, fmt.Errorf("count clubs competition=%s: %w", code, err)
		}
		row.Clubs = len(clubs)

		standings, err := a.Store.Standings.List(ctx, code, comp.Season, "")
		if err != nil {
			return nil, fmt.Errorf("count standings competition=%s: %w", code, err)
		}
		row.Standings = len(standings)

		_, row.Matches, err = a.Store.Matches.List(ctx, match.Filter{Competition: code, Season: comp.Season, Page: 1, PerPage: 1})
		if err != nil {
			return nil, fmt.Errorf("count matches competition=%s: %w", code, err)
		}
		_, row.Players, err = a.Store.Players.List(ctx, player.Filter{Competition: code, Season: comp.Season, Page: 1, PerPage: 1})
		if err != nil {
			return nil, fmt.Errorf("count players competition=%s: %w", code, err)
		}
		_, row.News, err = a.Store.News.List(ctx, news.Filter{Competition: code, Page: 1, PerPage: 1})
		if err != nil {
			return nil, fmt.Errorf("count news competition=%s: %w", code, err)
		}

		out = append(out, row)
	}
	return out, nil
}
