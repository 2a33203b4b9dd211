package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/football-hub/internal/canonical"
	"github.com/riskibarqy/football-hub/internal/domain/club"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/news"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
	"github.com/riskibarqy/football-hub/internal/domain/statistic"
	"github.com/riskibarqy/football-hub/internal/metrics"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
)

const (
	ChatSourceLLM     = "llm"
	ChatSourceKeyword = "keyword"

	maxChatHistory = 10
)

const chatSystemPrompt = `You are the football assistant of this site.
You have the current data of the Premier League (PL) and the UEFA Champions League (UCL).

Rules:
1. Answer in English, briefly and to the point.
2. Do not use emoji or markdown markers such as *, **, --- or ###.
3. One to three sentences with concrete numbers is ideal.
4. Use the conversation history when the question refers to an earlier one.
5. For questions outside football, answer only "I can only help with football."

Data:
`

const chatHelpText = "I can answer questions about:\n" +
	"- PL/UCL standings\n" +
	"- fixtures and results\n" +
	"- top scorers and assists\n" +
	"- live matches\n" +
	"- the latest football news"

type ChatInput struct {
	Message string     `json:"message"`
	League  string     `json:"league"`
	History []ChatTurn `json:"history" validate:"dive"`
}

type ChatReply struct {
	Reply  string `json:"reply"`
	Source string `json:"source"`
	League string `json:"league"`
}

type ChatRepositories struct {
	Clubs      club.Repository
	Standings  standing.Repository
	Matches    match.Repository
	Statistics statistic.Repository
	News       news.Repository
}

// ChatService answers free-text questions from the stored data. The LLM path
// is optional; every failure falls back to keyword intents, so a caller
// always receives a reply.
type ChatService struct {
	competitions []competition.Competition
	repos        ChatRepositories
	llm          LLMClient
	validator    *validator.Validate
	logger       *logging.Logger
	now          func() time.Time
}

func NewChatService(competitions []competition.Competition, repos ChatRepositories, llm LLMClient, logger *logging.Logger) *ChatService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatService{
		competitions: competitions,
		repos:        repos,
		llm:          llm,
		validator:    validator.New(),
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ChatService) Reply(ctx context.Context, input ChatInput) ChatReply {
	ctx, span := spans.Start(ctx, "usecase.ChatService.Reply")
	defer span.End()

	comp := s.resolveLeague(input.League)
	out := ChatReply{Source: ChatSourceKeyword, League: string(comp.Code)}

	message := strings.TrimSpace(input.Message)
	if message == "" {
		out.Reply = "What would you like to know about football? Write a question."
		metrics.ObserveChatReply(out.Source)
		return out
	}

	history := input.History
	if err := s.validator.StructCtx(ctx, input); err != nil {
		s.logger.DebugContext(ctx, "chat history dropped", "error", err)
		history = nil
	}
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}

	if s.llm != nil {
		answer, err := s.llmReply(ctx, comp, history, message)
		if err == nil && strings.TrimSpace(answer) != "" {
			out.Reply = strings.TrimSpace(answer)
			out.Source = ChatSourceLLM
			metrics.ObserveChatReply(out.Source)
			return out
		}
		if err != nil {
			s.logger.WarnContext(ctx, "llm reply failed, using keyword responder", "error", err)
		}
	}

	out.Reply = s.keywordReply(ctx, comp, message)
	metrics.ObserveChatReply(out.Source)
	return out
}

func (s *ChatService) resolveLeague(raw string) competition.Competition {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		code = string(competition.PL)
	}
	for _, comp := range s.competitions {
		if string(comp.Code) == code {
			return comp
		}
	}
	if len(s.competitions) > 0 {
		return s.competitions[0]
	}
	comp, _ := competition.Lookup(string(competition.PL))
	return comp
}

func (s *ChatService) llmReply(ctx context.Context, preferred competition.Competition, history []ChatTurn, message string) (string, error) {
	snapshot := s.Snapshot(ctx, preferred)
	return s.llm.Generate(ctx, chatSystemPrompt+snapshot, history, message)
}

// Snapshot renders the stored data of every competition as plain text, the
// preferred competition first. Sections that fail to load are left out.
func (s *ChatService) Snapshot(ctx context.Context, preferred competition.Competition) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	ordered := make([]competition.Competition, 0, len(s.competitions))
	ordered = append(ordered, preferred)
	for _, comp := range s.competitions {
		if comp.Code != preferred.Code {
			ordered = append(ordered, comp)
		}
	}

	now := s.now().UTC()
	for _, comp := range ordered {
		s.writeCompetition(ctx, buf, comp, now)
	}

	if live, err := s.repos.Matches.ListLive(ctx, ""); err == nil && len(live) > 0 {
		buf.WriteString("\nLIVE NOW:\n")
		for _, m := range live {
			fmt.Fprintf(buf, "  %s | %s %s %s (%d')\n", m.Competition, m.HomeTeamName, scoreLine(m), m.AwayTeamName, m.Minute)
		}
	}
	return buf.String()
}

func (s *ChatService) writeCompetition(ctx context.Context, buf *bytebufferpool.ByteBuffer, comp competition.Competition, now time.Time) {
	code := string(comp.Code)
	fmt.Fprintf(buf, "\n== %s (%s) %s ==\n", comp.Name, code, comp.SeasonLabel)

	if rows, err := s.repos.Standings.List(ctx, code, comp.Season, ""); err == nil && len(rows) > 0 {
		if groups, err := s.repos.Standings.Groups(ctx, code, comp.Season); err == nil && len(groups) > 1 {
			fmt.Fprintf(buf, "Groups: %d\n", len(groups))
		}
		buf.WriteString("Standings:\n")
		for _, r := range rows {
			group := ""
			if r.Group != "" {
				group = "[" + r.Group + "] "
			}
			fmt.Fprintf(buf, "  %s%2d. %s P%d W%d D%d L%d %d-%d (%+d) %d pts\n",
				group, r.Position, r.TeamName, r.Played, r.Won, r.Drawn, r.Lost,
				r.GoalsFor, r.GoalsAgainst, r.GoalDifference, r.Points)
		}
	}

	if results, err := s.repos.Matches.Results(ctx, code, 0, 10); err == nil && len(results) > 0 {
		buf.WriteString("Latest results:\n")
		for _, m := range results {
			fmt.Fprintf(buf, "  %s %s %s %s\n", formatDay(m.KickoffAt), m.HomeTeamName, scoreLine(m), m.AwayTeamName)
		}
	}

	if upcoming, err := s.repos.Matches.Upcoming(ctx, code, now, 5); err == nil && len(upcoming) > 0 {
		buf.WriteString("Next fixtures:\n")
		for _, m := range upcoming {
			fmt.Fprintf(buf, "  %s | %s vs %s\n", formatKickoff(m.KickoffAt), m.HomeTeamName, m.AwayTeamName)
		}
	}

	s.writeLeaders(ctx, buf, comp, statistic.SortGoals, "Top scorers")
	s.writeLeaders(ctx, buf, comp, statistic.SortAssists, "Top assists")

	if clubs, err := s.repos.Clubs.ListByCompetition(ctx, code, comp.Season); err == nil && len(clubs) > 0 {
		names := make([]string, 0, len(clubs))
		for _, c := range clubs {
			names = append(names, c.Name)
		}
		fmt.Fprintf(buf, "Clubs (%d): %s\n", len(clubs), strings.Join(names, ", "))
	}

	if items, err := s.repos.News.Latest(ctx, code, 5); err == nil && len(items) > 0 {
		buf.WriteString("Latest news:\n")
		for _, n := range items {
			fmt.Fprintf(buf, "  [%s] %s\n", formatDay(n.PublishedAt), n.Title)
		}
	}

	if comp.HasKnockout {
		if ko, err := s.repos.Matches.ListKnockout(ctx, code, comp.Season); err == nil && len(ko) > 0 {
			buf.WriteString("Knockout ties:\n")
			for _, tie := range match.PairTies(ko) {
				line := fmt.Sprintf("  %s: %s %d-%d %s", tie.Round, tie.TeamA, tie.GoalsA, tie.GoalsB, tie.TeamB)
				if tie.Decided {
					line += " => through: " + tie.Winner
				} else {
					line += " (undecided)"
				}
				buf.WriteString(line + "\n")
			}
		}
	}
}

func (s *ChatService) writeLeaders(ctx context.Context, buf *bytebufferpool.ByteBuffer, comp competition.Competition, sort statistic.SortField, title string) {
	rows, _, err := s.repos.Statistics.Top(ctx, statistic.Filter{Competition: string(comp.Code), Season: comp.Season, Sort: sort, PerPage: 10})
	if err != nil || len(rows) == 0 {
		return
	}
	buf.WriteString(title + ":\n")
	for i, st := range rows {
		fmt.Fprintf(buf, "  %2d. %s (%s) %d goals, %d assists, %d apps\n",
			i+1, st.PlayerName, st.ClubName, st.Goals, st.Assists, st.Appearances)
	}
}

type chatIntent struct {
	keywords []string
	answer   func(*ChatService, context.Context, competition.Competition) string
}

var chatIntents = []chatIntent{
	{keywords: []string{"bang xep hang", "bxh", "xep hang", "standings", "table"}, answer: (*ChatService).standingsReply},
	{keywords: []string{"lich thi dau", "sap toi", "upcoming", "fixtures", "lich dau"}, answer: (*ChatService).upcomingReply},
	{keywords: []string{"ket qua", "result", "hom qua"}, answer: (*ChatService).resultsReply},
	{keywords: []string{"live", "truc tiep", "dang da"}, answer: (*ChatService).liveReply},
	{keywords: []string{"vua pha luoi", "ghi ban nhieu", "top scorer", "scorer"}, answer: (*ChatService).scorersReply},
	{keywords: []string{"kien tao", "assist"}, answer: (*ChatService).assistsReply},
	{keywords: []string{"tin tuc", "news"}, answer: (*ChatService).newsReply},
}

func (s *ChatService) keywordReply(ctx context.Context, comp competition.Competition, message string) string {
	text := strings.ToLower(canonical.FoldAccents(message))
	for _, intent := range chatIntents {
		for _, kw := range intent.keywords {
			if strings.Contains(text, kw) {
				return intent.answer(s, ctx, comp)
			}
		}
	}
	return chatHelpText
}

func (s *ChatService) standingsReply(ctx context.Context, comp competition.Competition) string {
	rows, err := s.repos.Standings.List(ctx, string(comp.Code), comp.Season, "")
	if err != nil || len(rows) == 0 {
		return "No " + string(comp.Code) + " standings yet."
	}
	lines := []string{"Top 5 " + string(comp.Code) + " standings:"}
	for _, r := range firstN(rows, 5) {
		lines = append(lines, fmt.Sprintf("%d. %s - %d pts", r.Position, r.TeamName, r.Points))
	}
	return strings.Join(lines, "\n")
}

func (s *ChatService) upcomingReply(ctx context.Context, comp competition.Competition) string {
	items, err := s.repos.Matches.Upcoming(ctx, string(comp.Code), s.now().UTC(), 3)
	if err != nil || len(items) == 0 {
		return "No upcoming " + string(comp.Code) + " matches."
	}
	lines := []string{"Next " + string(comp.Code) + " matches:"}
	for _, m := range items {
		lines = append(lines, fmt.Sprintf("- %s vs %s | %s", m.HomeTeamName, m.AwayTeamName, formatKickoff(m.KickoffAt)))
	}
	return strings.Join(lines, "\n")
}

func (s *ChatService) resultsReply(ctx context.Context, comp competition.Competition) string {
	items, err := s.repos.Matches.Results(ctx, string(comp.Code), 0, 5)
	if err != nil || len(items) == 0 {
		return "No " + string(comp.Code) + " results yet."
	}
	lines := []string{"Latest " + string(comp.Code) + " results:"}
	for _, m := range items {
		lines = append(lines, fmt.Sprintf("- %s %s %s", m.HomeTeamName, scoreLine(m), m.AwayTeamName))
	}
	return strings.Join(lines, "\n")
}

func (s *ChatService) liveReply(ctx context.Context, _ competition.Competition) string {
	items, err := s.repos.Matches.ListLive(ctx, "")
	if err != nil || len(items) == 0 {
		return "No match is being played right now."
	}
	lines := []string{"Live now:"}
	for _, m := range items {
		lines = append(lines, fmt.Sprintf("- %s %s %s", m.HomeTeamName, scoreLine(m), m.AwayTeamName))
	}
	return strings.Join(lines, "\n")
}

func (s *ChatService) scorersReply(ctx context.Context, comp competition.Competition) string {
	return s.leadersReply(ctx, comp, statistic.SortGoals, "Top scorers", "goals", func(st statistic.Statistic) int { return st.Goals })
}

func (s *ChatService) assistsReply(ctx context.Context, comp competition.Competition) string {
	return s.leadersReply(ctx, comp, statistic.SortAssists, "Most assists", "assists", func(st statistic.Statistic) int { return st.Assists })
}

func (s *ChatService) leadersReply(ctx context.Context, comp competition.Competition, sort statistic.SortField, title, unit string, value func(statistic.Statistic) int) string {
	rows, _, err := s.repos.Statistics.Top(ctx, statistic.Filter{Competition: string(comp.Code), Season: comp.Season, Sort: sort, PerPage: 5})
	if err != nil || len(rows) == 0 {
		return "No " + string(comp.Code) + " " + unit + " data yet."
	}
	lines := []string{title + " " + string(comp.Code) + ":"}
	for i, st := range rows {
		lines = append(lines, fmt.Sprintf("%d. %s - %d %s", i+1, st.PlayerName, value(st), unit))
	}
	return strings.Join(lines, "\n")
}

func (s *ChatService) newsReply(ctx context.Context, comp competition.Competition) string {
	items, err := s.repos.News.Latest(ctx, string(comp.Code), 3)
	if err != nil || len(items) == 0 {
		return "No " + string(comp.Code) + " news yet."
	}
	lines := []string{"Latest " + string(comp.Code) + " news:"}
	for _, n := range items {
		lines = append(lines, "- "+n.Title)
	}
	return strings.Join(lines, "\n")
}

func scoreLine(m match.Match) string {
	return scoreValue(m.HomeScore) + "-" + scoreValue(m.AwayScore)
}

func scoreValue(v *int) string {
	if v == nil {
		return "0"
	}
	return strconv.Itoa(*v)
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("02/01")
}

func formatKickoff(t time.Time) string {
	if t.IsZero() {
		return "TBD"
	}
	return t.UTC().Format("02/01 15:04")
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
