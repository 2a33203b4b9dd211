package canonical

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/football-hub/internal/domain/competition"
)

type RoundInfo struct {
	Label      string
	Matchweek  int
	IsKnockout bool
}

// LabelRound maps a provider round value to a display label and matchweek.
// Knockout stages get synthetic matchweeks after the league phase.
func LabelRound(comp competition.Competition, raw string) RoundInfo {
	value := strings.TrimSpace(raw)
	if n, ok := roundNumber(value); ok {
		if comp.DefaultGroup != "" {
			return RoundInfo{Label: comp.DefaultGroup, Matchweek: n}
		}
		return RoundInfo{Label: "GW " + strconv.Itoa(n), Matchweek: n}
	}
	if value == "" {
		if comp.DefaultGroup != "" {
			return RoundInfo{Label: comp.DefaultGroup}
		}
		return RoundInfo{}
	}

	key := normalizeKey(value)
	for _, rule := range comp.KnockoutRounds {
		for _, alias := range rule.Aliases {
			if key == alias {
				return RoundInfo{Label: rule.Label, Matchweek: rule.Matchweek, IsKnockout: true}
			}
		}
	}
	return RoundInfo{Label: value, IsKnockout: comp.HasKnockout}
}

// RoundListLabel is the label of one matchweek in a rounds listing.
func RoundListLabel(comp competition.Competition, matchweek int) string {
	if comp.HasKnockout {
		if matchweek >= 1 && matchweek <= comp.LeaguePhaseRounds {
			return "Matchday " + strconv.Itoa(matchweek)
		}
		for _, rule := range comp.KnockoutRounds {
			if rule.Matchweek == matchweek {
				return rule.Label
			}
		}
	}
	return "GW " + strconv.Itoa(matchweek)
}

func roundNumber(value string) (int, bool) {
	lower := strings.ToLower(value)
	for _, prefix := range []string{"round ", "matchday ", "gw ", "gameweek "} {
		if strings.HasPrefix(lower, prefix) {
			lower = strings.TrimSpace(strings.TrimPrefix(lower, prefix))
			break
		}
	}
	n, ok := parseNonNegative(lower)
	if !ok || n == 0 {
		return 0, false
	}
	return n, true
}
