package fotmob

import (
	"context"
	"strings"

	"github.com/riskibarqy/football-hub/internal/canonical"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/match"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
)

func (c *Client) fetchLeague(ctx context.Context, comp competition.Competition) (map[string]any, error) {
	return c.getDocument(ctx, "leagues", c.leagueURL(comp.ProviderLeagueID))
}

// FetchStandings reads the league table. A failed fetch yields no rows.
func (c *Client) FetchStandings(ctx context.Context, comp competition.Competition) ([]standing.Row, error) {
	doc, err := c.fetchLeague(ctx, comp)
	if err != nil {
		if isCanceled(ctx, err) {
			return nil, ctx.Err()
		}
		c.logger.WarnContext(ctx, "fetch standings failed", "competition", comp.Code, "error", err)
		return []standing.Row{}, nil
	}
	rows := parseStandings(comp, doc)
	c.logger.InfoContext(ctx, "fetched standings", "competition", comp.Code, "rows", len(rows))
	return rows, nil
}

type tableGroup struct {
	name string
	rows []map[string]any
}

func parseStandings(comp competition.Competition, doc map[string]any) []standing.Row {
	groups := collectTableGroups(comp, doc)
	out := make([]standing.Row, 0, 40)
	for _, group := range groups {
		for idx, item := range group.rows {
			row, ok := parseStandingRow(comp, group.name, idx, len(group.rows), item)
			if ok {
				out = append(out, row)
			}
		}
	}
	return out
}

// collectTableGroups understands the single-table format
// (table[].data.table.all) and the older group formats
// (table[].data.tables[] and table.groups[]).
func collectTableGroups(comp competition.Competition, doc map[string]any) []tableGroup {
	out := make([]tableGroup, 0, 1)
	for _, section := range asMaps(doc["table"]) {
		data := getMap(section, "data")
		if data == nil {
			data = section
		}
		if all := asMaps(getPath(data, "table", "all")); len(all) > 0 {
			out = append(out, tableGroup{name: comp.DefaultGroup, rows: all})
			continue
		}
		for _, sub := range getMaps(data, "tables") {
			rows := asMaps(getPath(sub, "table", "all"))
			if len(rows) == 0 {
				continue
			}
			out = append(out, tableGroup{name: firstNonEmpty(getString(sub, "leagueName"), comp.DefaultGroup), rows: rows})
		}
		for _, grp := range asMaps(getPath(data, "table", "groups")) {
			out = append(out, tableGroup{name: firstNonEmpty(getString(grp, "name"), "Group"), rows: getMaps(grp, "rows")})
		}
	}
	if tableObj := getMap(doc, "table"); tableObj != nil {
		for _, grp := range getMaps(tableObj, "groups") {
			out = append(out, tableGroup{name: firstNonEmpty(getString(grp, "name"), "Group"), rows: getMaps(grp, "rows")})
		}
	}
	return out
}

func parseStandingRow(comp competition.Competition, group string, idx, size int, item map[string]any) (standing.Row, bool) {
	sourceID := getString(item, "id")
	name := getString(item, "name")
	if sourceID == "" || name == "" {
		return standing.Row{}, false
	}

	position := getInt(item, "idx")
	if position <= 0 {
		position = idx + 1
	}
	goals := canonical.ParseScore(getString(item, "scoresStr"))
	tableSize := size
	if tableSize == 0 {
		tableSize = comp.TableSize
	}
	zone := canonical.QualificationZone(comp, getString(item, "qualColor"), position, tableSize)

	row := standing.Row{
		ClubSourceID:   sourceID,
		Competition:    string(comp.Code),
		Season:         comp.Season,
		Group:          group,
		TeamName:       name,
		TeamShort:      getString(item, "shortName"),
		TeamBadge:      badgeURL(sourceID),
		Position:       position,
		Played:         getInt(item, "played"),
		Won:            getInt(item, "wins"),
		Drawn:          getInt(item, "draws"),
		Lost:           getInt(item, "losses"),
		GoalsFor:       goals.Home,
		GoalsAgainst:   goals.Away,
		GoalDifference: getInt(item, "goalConDiff"),
		Points:         getInt(item, "pts"),
		Deduction:      getInt(item, "deduction"),
		Zone:           zone,
		ZoneLabel:      canonical.ZoneLabel(comp, zone),
		Form:           parseForm(item["form"], comp.FormLength),
	}
	if row.GoalDifference == 0 && goals.Known {
		row.GoalDifference = goals.Home - goals.Away
	}
	return row, true
}

// parseForm keeps the last n results as a "WDLWW" string. It accepts a list
// of strings, a list of {result} objects or a single string.
func parseForm(value any, n int) string {
	letters := make([]string, 0, 8)
	switch typed := value.(type) {
	case string:
		for _, r := range strings.ToUpper(typed) {
			if r == 'W' || r == 'D' || r == 'L' {
				letters = append(letters, string(r))
			}
		}
	case []any:
		for _, item := range typed {
			var raw string
			switch v := item.(type) {
			case string:
				raw = v
			case map[string]any:
				raw = firstNonEmpty(getString(v, "result"), getString(v, "resultString"), getString(v, "outcome"))
			}
			if raw = strings.ToUpper(strings.TrimSpace(raw)); raw != "" {
				letters = append(letters, raw[:1])
			}
		}
	}
	if n > 0 && len(letters) > n {
		letters = letters[len(letters)-n:]
	}
	return strings.Join(letters, "")
}

// FetchMatches collects every fixture through the competition paths and
// enriches knockout legs from the playoff bracket.
func (c *Client) FetchMatches(ctx context.Context, comp competition.Competition) ([]match.Match, error) {
	doc, err := c.fetchLeague(ctx, comp)
	if err != nil {
		if isCanceled(ctx, err) {
			return nil, ctx.Err()
		}
		c.logger.WarnContext(ctx, "fetch matches failed", "competition", comp.Code, "error", err)
		return []match.Match{}, nil
	}
	items := parseMatches(comp, doc)
	c.logger.InfoContext(ctx, "fetched matches", "competition", comp.Code, "matches", len(items))
	return items, nil
}

func parseMatches(comp competition.Competition, doc map[string]any) []match.Match {
	var raw []map[string]any
	for _, path := range comp.FixturePaths {
		if raw = asMaps(getPath(doc, path...)); len(raw) > 0 {
			break
		}
	}

	out := make([]match.Match, 0, len(raw))
	index := make(map[string]int, len(raw))
	for _, item := range raw {
		m, ok := parseMatch(comp, item)
		if !ok {
			continue
		}
		if _, dup := index[m.SourceID]; dup {
			continue
		}
		index[m.SourceID] = len(out)
		out = append(out, m)
	}

	if comp.HasKnockout {
		out = applyBracket(comp, doc, out, index)
	}
	return out
}

func parseMatch(comp competition.Competition, item map[string]any) (match.Match, bool) {
	sourceID := getString(item, "id")
	home := getMap(item, "home")
	away := getMap(item, "away")
	homeName := getString(home, "name")
	awayName := getString(away, "name")
	if sourceID == "" || homeName == "" || awayName == "" {
		return match.Match{}, false
	}

	status := getMap(item, "status")
	reason := getMap(status, "reason")
	short := getString(reason, "short")
	long := getString(reason, "long")
	st := canonical.DeriveStatus(canonical.StatusFlags{
		Started:     getBool(status, "started"),
		Finished:    getBool(status, "finished"),
		Cancelled:   getBool(status, "cancelled"),
		ReasonShort: short,
		ReasonLong:  long,
	})

	roundRaw := firstNonEmpty(getString(item, "round"), getString(item, "roundName"))
	round := canonical.LabelRound(comp, roundRaw)
	if round.Matchweek == 0 && roundRaw != getString(item, "roundName") {
		if alt := canonical.LabelRound(comp, getString(item, "roundName")); alt.Matchweek > 0 {
			round = alt
		}
	}

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
		HomeTeamName: homeName,
		AwayTeamName: awayName,
		HomeBadge:    badgeURL(homeID),
		AwayBadge:    badgeURL(awayID),
		Status:       st,
		IsKnockout:   round.IsKnockout,
		Leg:          getInt(item, "leg"),
	}
	if !round.IsKnockout {
		m.Group = comp.DefaultGroup
	}
	if t := parseTime(status["utcTime"]); t != nil {
		m.KickoffAt = *t
	} else if t := parseTime(item["utcTime"]); t != nil {
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
	if agg := canonical.ParseScore(getString(status, "aggregatedStr")); agg.Known {
		m.AggHome, m.AggAway = agg.HomePtr(), agg.AwayPtr()
	}
	m.Venue = getString(getMap(item, "venue"), "name")
	return m, true
}

// applyBracket sets leg, knockout flag and aggregate from
// playoff.rounds[].matchups[] on matches already collected.
func applyBracket(comp competition.Competition, doc map[string]any, items []match.Match, index map[string]int) []match.Match {
	for _, rnd := range asMaps(getPath(doc, "playoff", "rounds")) {
		stage := canonical.LabelRound(comp, getString(rnd, "stage"))
		for _, mu := range getMaps(rnd, "matchups") {
			agg := getMap(mu, "aggregatedResult")
			aggHome := getOptionalInt(agg, "homeScore")
			aggAway := getOptionalInt(agg, "awayScore")
			for leg, m := range getMaps(mu, "matches") {
				id := firstNonEmpty(getString(m, "matchId"), getString(m, "id"))
				pos, ok := index[id]
				if !ok {
					continue
				}
				items[pos].Leg = leg + 1
				items[pos].IsKnockout = true
				items[pos].Group = ""
				if stage.IsKnockout && items[pos].Matchweek == 0 {
					items[pos].Matchweek = stage.Matchweek
					items[pos].Round = stage.Label
				}
				if aggHome != nil && aggAway != nil {
					items[pos].AggHome, items[pos].AggAway = aggHome, aggAway
				}
			}
		}
	}
	return items
}
