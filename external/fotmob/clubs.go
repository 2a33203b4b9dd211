package fotmob

import (
	"context"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/football-hub/internal/canonical"
	"github.com/riskibarqy/football-hub/internal/domain/club"
	"github.com/riskibarqy/football-hub/internal/domain/competition"
)

type clubRef struct {
	id    string
	name  string
	short string
}

// FetchClubs discovers the competition's clubs and enriches each one from
// its team document. A missing team document keeps the minimal club.
func (c *Client) FetchClubs(ctx context.Context, comp competition.Competition) ([]club.Club, error) {
	doc, err := c.fetchLeague(ctx, comp)
	if err != nil {
		if isCanceled(ctx, err) {
			return nil, ctx.Err()
		}
		c.logger.WarnContext(ctx, "fetch clubs failed", "competition", comp.Code, "error", err)
		return []club.Club{}, nil
	}

	refs := discoverClubs(comp, doc)
	out := make([]club.Club, len(refs))
	p := pool.New().WithMaxGoroutines(c.concurrency)
	for i, ref := range refs {
		i, ref := i, ref
		p.Go(func() {
			base := minimalClub(comp, ref)
			team, err := c.fetchTeam(ctx, ref.id)
			if err != nil {
				if !isCanceled(ctx, err) {
					c.logger.WarnContext(ctx, "fetch team failed, keeping minimal club", "competition", comp.Code, "team_id", ref.id, "error", err)
				}
				out[i] = base
				return
			}
			out[i] = enrichClub(base, team)
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "fetched clubs", "competition", comp.Code, "clubs", len(out))
	return out, nil
}

func (c *Client) fetchTeam(ctx context.Context, teamID string) (map[string]any, error) {
	return c.getDocument(ctx, "teams", c.teamURL(teamID))
}

// discoverClubs reads clubs from the table or from fixture home/away sides,
// sorted by id so the cap is deterministic.
func discoverClubs(comp competition.Competition, doc map[string]any) []clubRef {
	seen := make(map[string]clubRef)
	add := func(id, name, short string) {
		if id == "" || name == "" {
			return
		}
		if _, ok := seen[id]; !ok {
			seen[id] = clubRef{id: id, name: name, short: short}
		}
	}

	switch comp.ClubSource {
	case competition.ClubsFromFixtures:
		for _, m := range fixtureItems(comp, doc) {
			for _, side := range []string{"home", "away"} {
				team := getMap(m, side)
				add(getString(team, "id"), getString(team, "name"), getString(team, "shortName"))
			}
		}
	default:
		for _, group := range collectTableGroups(comp, doc) {
			for _, row := range group.rows {
				add(getString(row, "id"), getString(row, "name"), getString(row, "shortName"))
			}
		}
	}

	out := make([]clubRef, 0, len(seen))
	for _, ref := range seen {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	if comp.ClubCap > 0 && len(out) > comp.ClubCap {
		out = out[:comp.ClubCap]
	}
	return out
}

func fixtureItems(comp competition.Competition, doc map[string]any) []map[string]any {
	for _, path := range comp.FixturePaths {
		if items := asMaps(getPath(doc, path...)); len(items) > 0 {
			return items
		}
	}
	return nil
}

func minimalClub(comp competition.Competition, ref clubRef) club.Club {
	return club.Club{
		SourceID:    ref.id,
		Competition: string(comp.Code),
		Season:      comp.Season,
		Name:        ref.name,
		ShortName:   ref.short,
		BadgeURL:    badgeURL(ref.id),
	}
}

func enrichClub(base club.Club, team map[string]any) club.Club {
	details := getMap(team, "details")
	overview := getMap(team, "overview")
	out := base
	out.Name = firstNonEmpty(getString(details, "name"), base.Name)
	out.ShortName = firstNonEmpty(getString(details, "shortName"), base.ShortName)
	out.Country = firstNonEmpty(getString(details, "country"), base.Country)

	venue := getMap(overview, "venue")
	widget := getMap(venue, "widget")
	out.Stadium = getString(widget, "name")
	out.StadiumCity = getString(widget, "city")
	for _, pair := range getSlice(venue, "statPairs") {
		kv, ok := pair.([]any)
		if !ok || len(kv) != 2 {
			continue
		}
		if label, _ := kv[0].(string); strings.EqualFold(strings.TrimSpace(label), "capacity") {
			out.StadiumCapacity = canonical.SafeInt(kv[1])
		}
	}

	colors := getMap(overview, "teamColors")
	out.PrimaryColor = firstNonEmpty(getString(colors, "color"), getString(colors, "primary"), getString(getMap(colors, "lightMode"), "color"))
	out.Manager = managerName(team, overview)
	return out
}

// managerName prefers the first member of the coach squad section, then the
// most recent coach history entry.
func managerName(team, overview map[string]any) string {
	for _, section := range asMaps(getPath(team, "squad", "squad")) {
		title := strings.ToLower(getString(section, "title"))
		if title != "coach" && title != "coaches" {
			continue
		}
		if members := getMaps(section, "members"); len(members) > 0 {
			if name := getString(members[0], "name"); name != "" {
				return name
			}
		}
	}

	var best string
	bestYear := -1
	for _, entry := range getMaps(overview, "coachHistory") {
		year := 0
		if season := getString(entry, "season"); season != "" {
			start, _, _ := strings.Cut(season, "/")
			year = canonical.SafeInt(start)
		}
		if year > bestYear {
			bestYear = year
			best = getString(entry, "name")
		}
	}
	return best
}
