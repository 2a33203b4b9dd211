package match

import (
	"sort"
	"strings"
)

// Tie is one knockout pairing made of its leg records.
type Tie struct {
	Round   string
	TeamA   string
	TeamB   string
	GoalsA  int
	GoalsB  int
	Legs    []Match
	Winner  string
	Decided bool
}

type tieKey struct {
	round string
	a, b  string
}

// PairTies groups knockout matches into ties by round and the unordered pair
// of team names. Goals are summed per team over finished legs only, so the
// home/away swap between legs does not matter. A two-legged tie is decided
// once both legs are FINISHED and the totals differ; a single-leg final is
// decided by its score, then by penalties.
func PairTies(matches []Match) []Tie {
	byKey := make(map[tieKey]*Tie)
	order := make([]tieKey, 0)
	for _, m := range matches {
		if !m.IsKnockout {
			continue
		}
		home := strings.TrimSpace(m.HomeTeamName)
		away := strings.TrimSpace(m.AwayTeamName)
		if home == "" || away == "" {
			continue
		}
		a, b := home, away
		if b < a {
			a, b = b, a
		}
		key := tieKey{round: m.Round, a: a, b: b}
		tie, ok := byKey[key]
		if !ok {
			tie = &Tie{Round: m.Round, TeamA: a, TeamB: b}
			byKey[key] = tie
			order = append(order, key)
		}
		tie.Legs = append(tie.Legs, m)
	}

	out := make([]Tie, 0, len(order))
	for _, key := range order {
		tie := byKey[key]
		sort.SliceStable(tie.Legs, func(i, j int) bool {
			if tie.Legs[i].Leg != tie.Legs[j].Leg {
				return tie.Legs[i].Leg < tie.Legs[j].Leg
			}
			return tie.Legs[i].KickoffAt.Before(tie.Legs[j].KickoffAt)
		})
		resolveTie(tie)
		out = append(out, *tie)
	}
	return out
}

// TwoLegWinner returns the winner name of the tie formed by legs, or "" when
// the tie is not decided yet.
func TwoLegWinner(legs []Match) string {
	legs = append([]Match(nil), legs...)
	for i := range legs {
		legs[i].IsKnockout = true
	}
	ties := PairTies(legs)
	if len(ties) != 1 || !ties[0].Decided {
		return ""
	}
	return ties[0].Winner
}

func resolveTie(tie *Tie) {
	finished := 0
	penA, penB := 0, 0
	for _, leg := range tie.Legs {
		if !leg.Status.IsFinished() || leg.HomeScore == nil || leg.AwayScore == nil {
			continue
		}
		finished++
		if leg.HomeTeamName == tie.TeamA {
			tie.GoalsA += *leg.HomeScore
			tie.GoalsB += *leg.AwayScore
			if leg.HomeScorePen != nil && leg.AwayScorePen != nil {
				penA, penB = *leg.HomeScorePen, *leg.AwayScorePen
			}
		} else {
			tie.GoalsA += *leg.AwayScore
			tie.GoalsB += *leg.HomeScore
			if leg.HomeScorePen != nil && leg.AwayScorePen != nil {
				penA, penB = *leg.AwayScorePen, *leg.HomeScorePen
			}
		}
	}

	complete := finished == 2 || (finished == 1 && len(tie.Legs) == 1 && isSingleLegRound(tie.Round))
	if !complete {
		return
	}
	switch {
	case tie.GoalsA > tie.GoalsB:
		tie.Winner, tie.Decided = tie.TeamA, true
	case tie.GoalsB > tie.GoalsA:
		tie.Winner, tie.Decided = tie.TeamB, true
	case penA > penB:
		tie.Winner, tie.Decided = tie.TeamA, true
	case penB > penA:
		tie.Winner, tie.Decided = tie.TeamB, true
	}
}

func isSingleLegRound(round string) bool {
	return strings.EqualFold(strings.TrimSpace(round), "final")
}
