package fotmob

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/football-hub/internal/canonical"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/player"
	"github.com/riskibarqy/football-hub/internal/domain/statistic"
	"github.com/riskibarqy/football-hub/internal/usecase"
)

// statLists are the stats feed documents merged per participant.
var statLists = []string{
	"goals", "goal_assist", "rating", "mins_played", "clean_sheet",
	"saves", "yellow_card", "red_card", "expected_goals",
}

type playerAcc struct {
	id       string
	name     string
	teamID   string
	teamName string
	statsPos []int

	goals, assists, yellow, red int
	apps, minutes               int
	saves, cleanSheets          *int
	xg, rating                  float64

	hasSquad    bool
	desc        string
	section     string
	role        string
	shirt       int
	nationality string
	dob         string
	height      int
}

// FetchPlayers merges the stats feed lists with club squads.
func (c *Client) FetchPlayers(ctx context.Context, comp competition.Competition) ([]usecase.PlayerRecord, error) {
	players := make(map[string]*playerAcc, 512)
	for _, stat := range statLists {
		doc, err := c.getDocument(ctx, "stats", c.statsURL(comp.ProviderLeagueID, comp.StatsSeasonID, stat))
		if err != nil {
			if isCanceled(ctx, err) {
				return nil, ctx.Err()
			}
			c.logger.WarnContext(ctx, "fetch stat list failed", "competition", comp.Code, "stat", stat, "error", err)
			continue
		}
		mergeStatList(players, stat, doc)
	}

	doc, err := c.fetchLeague(ctx, comp)
	if err != nil {
		if isCanceled(ctx, err) {
			return nil, ctx.Err()
		}
		c.logger.WarnContext(ctx, "fetch league for squads failed", "competition", comp.Code, "error", err)
	} else {
		c.mergeSquads(ctx, comp, doc, players)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := buildPlayerRecords(comp, players)
	c.logger.InfoContext(ctx, "fetched players", "competition", comp.Code, "players", len(out))
	return out, nil
}

func mergeStatList(players map[string]*playerAcc, stat string, doc map[string]any) {
	for _, top := range getMaps(doc, "TopLists") {
		for _, e := range getMaps(top, "StatList") {
			id := firstNonEmpty(getString(e, "ParticiantId"), getString(e, "ParticipantId"))
			if id == "" {
				continue
			}
			acc, ok := players[id]
			if !ok {
				acc = &playerAcc{id: id}
				players[id] = acc
			}
			acc.name = firstNonEmpty(acc.name, getString(e, "ParticipantName"))
			acc.teamID = firstNonEmpty(acc.teamID, getString(e, "TeamId"))
			acc.teamName = firstNonEmpty(acc.teamName, getString(e, "TeamName"))
			if len(acc.statsPos) == 0 {
				acc.statsPos = getInts(e, "Positions")
			}

			value := getFloat(e, "StatValue")
			played := getInt(e, "MatchesPlayed")
			minutes := getInt(e, "MinutesPlayed")
			switch stat {
			case "goals":
				acc.goals = int(value)
				acc.apps, acc.minutes = played, minutes
			case "goal_assist":
				acc.assists = int(value)
			case "yellow_card":
				acc.yellow = int(value)
			case "red_card":
				acc.red = int(value)
			case "saves":
				v := int(value)
				acc.saves = &v
			case "clean_sheet":
				v := int(value)
				acc.cleanSheets = &v
			case "rating":
				acc.rating = value
			case "expected_goals":
				acc.xg = value
			}
			if acc.apps == 0 {
				acc.apps = played
			}
			if acc.minutes == 0 {
				acc.minutes = minutes
			}
		}
	}
}

type squadMember struct {
	teamID   string
	teamName string
	section  string
	member   map[string]any
}

func (c *Client) mergeSquads(ctx context.Context, comp competition.Competition, doc map[string]any, players map[string]*playerAcc) {
	refs := squadClubs(comp, doc)

	var mu sync.Mutex
	members := make([]squadMember, 0, len(refs)*30)
	tops := make([]map[string]any, 0, len(refs))
	p := pool.New().WithMaxGoroutines(c.concurrency)
	for _, ref := range refs {
		ref := ref
		p.Go(func() {
			team, err := c.fetchTeam(ctx, ref.id)
			if err != nil {
				if !isCanceled(ctx, err) {
					c.logger.WarnContext(ctx, "fetch squad failed", "competition", comp.Code, "team_id", ref.id, "error", err)
				}
				return
			}
			teamName := firstNonEmpty(getString(getMap(team, "details"), "name"), ref.name)
			found := make([]squadMember, 0, 32)
			for _, section := range asMaps(getPath(team, "squad", "squad")) {
				title := strings.ToLower(getString(section, "title"))
				if strings.Contains(title, "coach") {
					continue
				}
				for _, m := range getMaps(section, "members") {
					found = append(found, squadMember{teamID: ref.id, teamName: teamName, section: title, member: m})
				}
			}
			top := getMap(getMap(team, "overview"), "topPlayers")

			mu.Lock()
			defer mu.Unlock()
			members = append(members, found...)
			if top != nil {
				tops = append(tops, top)
			}
		})
	}
	p.Wait()

	sort.SliceStable(members, func(i, j int) bool {
		if members[i].teamID != members[j].teamID {
			return members[i].teamID < members[j].teamID
		}
		return getString(members[i].member, "id") < getString(members[j].member, "id")
	})
	for _, sm := range members {
		applySquadMember(players, sm)
	}
	for _, top := range tops {
		applyTopPlayers(players, top)
	}
}

// squadClubs reads club ids from the fixtures and falls back to the table.
func squadClubs(comp competition.Competition, doc map[string]any) []clubRef {
	fixturesFirst := comp
	fixturesFirst.ClubSource = competition.ClubsFromFixtures
	fixturesFirst.ClubCap = 0
	if refs := discoverClubs(fixturesFirst, doc); len(refs) > 0 {
		return refs
	}
	tableFirst := fixturesFirst
	tableFirst.ClubSource = competition.ClubsFromTable
	return discoverClubs(tableFirst, doc)
}

func applySquadMember(players map[string]*playerAcc, sm squadMember) {
	m := sm.member
	id := getString(m, "id")
	if id == "" {
		return
	}
	role := strings.ToLower(getString(getMap(m, "role"), "key"))
	if strings.Contains(role, "coach") {
		return
	}

	acc, ok := players[id]
	if !ok {
		// Squad-only players are added when they are keepers.
		if !strings.Contains(sm.section, "keeper") {
			return
		}
		acc = &playerAcc{id: id, name: getString(m, "name"), teamID: sm.teamID, teamName: sm.teamName}
		players[id] = acc
	}
	acc.hasSquad = true
	acc.name = firstNonEmpty(acc.name, getString(m, "name"))
	acc.teamID = firstNonEmpty(acc.teamID, sm.teamID)
	acc.teamName = firstNonEmpty(acc.teamName, sm.teamName)
	acc.desc = getString(m, "positionIdsDesc")
	acc.section = sm.section
	acc.role = role
	acc.shirt = getIntAny(m, "shirtNumber", "shirt")
	acc.nationality = firstNonEmpty(getString(m, "ccode"), getString(m, "countryCode"))
	acc.height = getInt(m, "height")
	if t := parseTime(m["dateOfBirth"]); t != nil {
		acc.dob = t.Format("2006-01-02")
	}
}

// applyTopPlayers fills values the stat lists did not carry.
func applyTopPlayers(players map[string]*playerAcc, top map[string]any) {
	for _, board := range []string{"byGoals", "byAssists", "byRating"} {
		for _, entry := range getMaps(getMap(top, board), "players") {
			acc, ok := players[getString(entry, "id")]
			if !ok {
				continue
			}
			value := getFloat(entry, "value")
			switch board {
			case "byGoals":
				if acc.goals == 0 {
					acc.goals = int(value)
				}
			case "byAssists":
				if acc.assists == 0 {
					acc.assists = int(value)
				}
			case "byRating":
				if acc.rating == 0 {
					acc.rating = value
				}
			}
		}
	}
}

func buildPlayerRecords(comp competition.Competition, players map[string]*playerAcc) []usecase.PlayerRecord {
	ids := make([]string, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]usecase.PlayerRecord, 0, len(ids))
	for _, id := range ids {
		acc := players[id]
		if acc.name == "" {
			continue
		}
		stat := statistic.Statistic{
			PlayerSourceID: acc.id,
			Competition:    string(comp.Code),
			Season:         comp.Season,
			PlayerName:     acc.name,
			ClubName:       acc.teamName,
			Appearances:    acc.apps,
			Minutes:        acc.minutes,
			Goals:          acc.goals,
			Assists:        acc.assists,
			YellowCards:    acc.yellow,
			RedCards:       acc.red,
			Saves:          acc.saves,
			CleanSheets:    acc.cleanSheets,
			ExpectedGoals:  acc.xg,
			Rating:         acc.rating,
		}

		position := canonical.ClassifyPosition(canonical.PositionSignals{
			Description:  acc.desc,
			SectionTitle: acc.section,
			RoleKey:      acc.role,
			StatsIDs:     acc.statsPos,
		})
		position = player.ApplyKeeperSignal(position, stat.HasKeeperFields())
		stat.Position = position

		p := player.Player{
			SourceID:       acc.id,
			Competition:    string(comp.Code),
			Season:         comp.Season,
			Name:           acc.name,
			Position:       position,
			PositionDetail: acc.desc,
			ClubSourceID:   acc.teamID,
			ClubName:       acc.teamName,
			Nationality:    acc.nationality,
			ShirtNumber:    acc.shirt,
			HeightCM:       acc.height,
			PhotoURL:       player.PhotoURL(acc.id),
		}
		if acc.dob != "" {
			if t := parseTime(acc.dob); t != nil {
				p.DateOfBirth = t
			}
		}
		out = append(out, usecase.PlayerRecord{Player: p, Statistic: stat})
	}
	return out
}
