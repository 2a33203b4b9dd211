package usecase

import (
	"context"

	"github.com/riskibarqy/football-hub/internal/domain/club"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/news"
	"github.com/riskibarqy/football-hub/internal/domain/player"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
	"github.com/riskibarqy/football-hub/internal/domain/statistic"
)

// PlayerRecord pairs a canonical player with its season statistics.
type PlayerRecord struct {
	Player    player.Player
	Statistic statistic.Statistic
}

// FootballSource is the provider side of the crawl. Implementations return
// canonical records; a failed batch is an empty slice with a nil error and
// only context cancellation is returned as an error.
type FootballSource interface {
	FetchClubs(ctx context.Context, comp competition.Competition) ([]club.Club, error)
	FetchStandings(ctx context.Context, comp competition.Competition) ([]standing.Row, error)
	FetchMatches(ctx context.Context, comp competition.Competition) ([]match.Match, error)
	FetchMatchDetails(ctx context.Context, comp competition.Competition, sourceIDs []string) ([]match.Match, error)
	FetchPlayers(ctx context.Context, comp competition.Competition) ([]PlayerRecord, error)
}

type NewsSource interface {
	FetchNews(ctx context.Context, comp competition.Competition) ([]news.Item, error)
}

// LLMClient answers one prompt.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, turns []ChatTurn, message string) (string, error)
}

// ChatTurn is one earlier message of a conversation. Role is "user" or
// "assistant".
type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}
