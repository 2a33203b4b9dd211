package fotmob

import (
	"context"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/football-hub/internal/canonical"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/match"
)

// FetchMatchDetails refetches a small set of matches one by one. It feeds
// the end-of-match detector, so only ids that resolve are returned.
func (c *Client) FetchMatchDetails(ctx context.Context, comp competition.Competition, sourceIDs []string) ([]match.Match, error) {
	results := make([]*match.Match, len(sourceIDs))
	p := pool.New().WithMaxGoroutines(c.concurrency)
	for i, id := range sourceIDs {
		i, id := i, strings.TrimSpace(id)
		if id == "" {
			continue
		}
		p.Go(func() {
			doc, err := c.getDocument(ctx, "matchDetails", c.matchDetailsURL(id))
			if err != nil {
				if !isCanceled(ctx, err) {
					c.logger.WarnContext(ctx, "fetch match details failed", "competition", comp.Code, "match_id", id, "error", err)
				}
				return
			}
			if m, ok := parseMatchDetails(comp, id, doc); ok {
				results[i] = &m
			}
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]match.Match, 0, len(results))
	for _, m := range results {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out, nil
}

func parseMatchDetails(comp competition.Competition, sourceID string, doc map[string]any) (match.Match, bool) {
	header := getMap(doc, "header")
	general := getMap(doc, "general")
	teams := getMaps(header, "teams")
	if len(teams) < 2 {
		return match.Match{}, false
	}
	home, away := teams[0], teams[1]
	if getString(home, "name") == "" || getString(away, "name") == "" {
		return match.Match{}, false
	}

	status := getMap(header, "status")
	reason := getMap(status, "reason")
	short := getString(reason, "short")
	long := getString(reason, "long")
	st := canonical.DeriveStatus(canonical.StatusFlags{
		Started:     getBool(status, "started"),
		Finished:    getBool(status, "finished"),
		Cancelled:   getBool(status, "cancelled"),
		ReasonShort: short,
		ReasonLong:  long,
		Text:        getString(status, "statusText"),
	})

	round := canonical.LabelRound(comp, firstNonEmpty(getString(general, "matchRound"), getString(general, "leagueRoundName")))
	homeID := getString(home, "id")
	awayID := getString(away, "id")
	m := match.Match{
		SourceID:     sourceID,
		Competition:  string(comp.Code),
		Season:       comp.Season,
		Matchweek:    round.Matchweek,
		Round:        round.Label,
		HomeSourceID: homeID,
		AwaySourceID: awayID,
		HomeTeamName: getString(home, "name"),
		AwayTeamName: getString(away, "name"),
		HomeBadge:    badgeURL(homeID),
		AwayBadge:    badgeURL(awayID),
		Status:       st,
		IsKnockout:   round.IsKnockout,
	}
	if !round.IsKnockout {
		m.Group = comp.DefaultGroup
	}
	if t := parseTime(firstNonEmpty(getString(status, "utcTime"), getString(general, "matchTimeUTCDate"))); t != nil {
		m.KickoffAt = *t
	}

	if st != match.StatusScheduled {
		score := canonical.ParseScore(getString(status, "scoreStr"))
		if !score.Known {
			if h, a := getOptionalInt(home, "score"), getOptionalInt(away, "score"); h != nil && a != nil {
				score = canonical.Score{Home: *h, Away: *a, Known: true}
			}
		}
		m.HomeScore, m.AwayScore = score.HomePtr(), score.AwayPtr()
	}
	if st == match.StatusLive {
		m.Minute, _ = canonical.ParseLiveMinute(getString(getMap(status, "liveTime"), "short"))
	}
	if st.IsFinished() {
		m.EndedAET = canonical.EndedAfterExtraTime(short, long)
		m.EndedPen = canonical.EndedOnPenalties(short, long)
		if m.EndedPen {
			pen := getMap(status, "penScore")
			m.HomeScorePen, m.AwayScorePen = getOptionalInt(pen, "home"), getOptionalInt(pen, "away")
		}
	}
	facts := asMaps(getPath(doc, "content", "matchFacts", "events", "events"))
	m.HomeScoreHT, m.AwayScoreHT = halfTimeScore(facts)
	if st != match.StatusScheduled {
		m.Events = matchEvents(facts)
	}
	return m, true
}

// halfTimeScore reads the "Half" marker from the match facts events.
func halfTimeScore(facts []map[string]any) (*int, *int) {
	for _, ev := range facts {
		if !strings.EqualFold(getString(ev, "type"), "half") {
			continue
		}
		key := strings.ToLower(firstNonEmpty(getString(ev, "halfStrKey"), getString(ev, "halfStrShort")))
		if key != "" && !strings.Contains(key, "halftime") && key != "ht" {
			continue
		}
		home, away := getOptionalInt(ev, "homeScore"), getOptionalInt(ev, "awayScore")
		if home != nil && away != nil {
			return home, away
		}
	}
	return nil, nil
}

// matchEvents keeps goals, cards and missed penalties in match-clock order.
// Shootout kicks are not match events and are dropped.
func matchEvents(facts []map[string]any) []match.Event {
	out := make([]match.Event, 0, len(facts))
	for _, ev := range facts {
		if getBool(ev, "isPenaltyShootoutEvent") {
			continue
		}
		kind, ok := eventType(ev)
		if !ok {
			continue
		}
		side := match.SideAway
		if getBool(ev, "isHome") {
			side = match.SideHome
		}
		out = append(out, match.Event{
			Type:      kind,
			Minute:    getInt(ev, "time"),
			AddedTime: getInt(ev, "overloadTime"),
			Side:      side,
			Player:    firstNonEmpty(getString(getMap(ev, "player"), "name"), getString(ev, "fullName"), getString(ev, "nameStr")),
			Assist:    assistName(ev),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Minute != out[j].Minute {
			return out[i].Minute < out[j].Minute
		}
		return out[i].AddedTime < out[j].AddedTime
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

func eventType(ev map[string]any) (match.EventType, bool) {
	switch strings.ToLower(getString(ev, "type")) {
	case "goal":
		desc := strings.ToLower(getString(ev, "goalDescription"))
		switch {
		case getBool(ev, "ownGoal") || strings.Contains(desc, "own goal"):
			return match.EventOwnGoal, true
		case strings.Contains(desc, "penalty"):
			return match.EventPenaltyGoal, true
		default:
			return match.EventGoal, true
		}
	case "missedpenalty":
		return match.EventPenaltyMiss, true
	case "card":
		switch strings.ToLower(getString(ev, "card")) {
		case "yellow":
			return match.EventYellowCard, true
		case "red", "yellowred":
			return match.EventRedCard, true
		}
	}
	return "", false
}

func assistName(ev map[string]any) string {
	if name := getString(ev, "assistInput"); name != "" {
		return name
	}
	const prefix = "assist by "
	s := getString(ev, "assistStr")
	if len(s) > len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return strings.TrimSpace(s[len(prefix):])
	}
	return ""
}
