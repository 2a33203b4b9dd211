package canonical

import (
	"strings"

	"github.com/riskibarqy/football-hub/internal/domain/player"
)

// PositionSignals are every position hint a provider gives for one player,
// ordered by how much they are trusted.
type PositionSignals struct {
	Description  string
	SectionTitle string
	RoleKey      string
	StatsIDs     []int
}

type codeSet []string

func (s codeSet) has(code string) bool {
	for _, c := range s {
		if c == code {
			return true
		}
	}
	return false
}

var (
	goalkeeperCodes = codeSet{"GK"}
	defenderCodes   = codeSet{"CB", "LB", "RB", "SW"}
	wingBackCodes   = codeSet{"LWB", "RWB"}
	midfieldCodes   = codeSet{"CM", "CDM", "CAM", "LM", "RM", "AM", "DM"}
	forwardCodes    = codeSet{"ST", "CF", "LW", "RW", "SS", "WF"}
)

// ClassifyPosition resolves GK/DEF/MID/FWD from the strongest available
// signal and defaults to FWD.
func ClassifyPosition(sig PositionSignals) player.Position {
	if p, ok := PositionFromDescription(sig.Description, sig.SectionTitle); ok {
		return p
	}
	if p, ok := PositionFromRole(sig.RoleKey); ok {
		return p
	}
	if len(sig.StatsIDs) > 0 {
		return PositionFromStatsIDs(sig.StatsIDs)
	}
	if p, ok := PositionFromSection(sig.SectionTitle); ok {
		return p
	}
	return player.PositionForward
}

// PositionFromDescription reads a squad description such as "LWB, CB" with
// the squad section title as tie-breaker for wing-backs.
func PositionFromDescription(desc, section string) (player.Position, bool) {
	codes := make([]string, 0, 4)
	for _, part := range strings.Split(desc, ",") {
		if code := strings.ToUpper(strings.TrimSpace(part)); code != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return "", false
	}
	sec := strings.ToLower(section)
	first := codes[0]

	switch {
	case goalkeeperCodes.has(first):
		return player.PositionGoalkeeper, true
	case wingBackCodes.has(first):
		return wingBackPosition(codes, sec), true
	case defenderCodes.has(first):
		return player.PositionDefender, true
	case midfieldCodes.has(first):
		return player.PositionMidfielder, true
	case forwardCodes.has(first):
		return player.PositionForward, true
	}

	var def, mid, fwd int
	for _, code := range codes {
		switch {
		case defenderCodes.has(code), wingBackCodes.has(code):
			def++
		case midfieldCodes.has(code):
			mid++
		case forwardCodes.has(code):
			fwd++
		}
	}
	if def == 0 && mid == 0 && fwd == 0 {
		return "", false
	}
	switch {
	case def >= mid && def >= fwd:
		return player.PositionDefender, true
	case mid >= fwd:
		return player.PositionMidfielder, true
	default:
		return player.PositionForward, true
	}
}

func wingBackPosition(codes []string, sec string) player.Position {
	rest := codes[1:]
	anyIn := func(set codeSet) bool {
		for _, c := range rest {
			if set.has(c) {
				return true
			}
		}
		return false
	}

	if strings.Contains(sec, "attack") || strings.Contains(sec, "forward") {
		return player.PositionForward
	}
	if strings.Contains(sec, "mid") && anyIn(forwardCodes) {
		return player.PositionForward
	}
	defensive := 0
	for _, c := range codes {
		if defenderCodes.has(c) || wingBackCodes.has(c) {
			defensive++
		}
	}
	if defensive*2 >= len(codes) {
		return player.PositionDefender
	}
	if strings.Contains(sec, "mid") && anyIn(midfieldCodes) {
		return player.PositionMidfielder
	}
	return player.PositionDefender
}

var roleKeys = []struct {
	needle   string
	position player.Position
}{
	{"keeper", player.PositionGoalkeeper},
	{"goalkeeper", player.PositionGoalkeeper},
	{"defender", player.PositionDefender},
	{"midfielder", player.PositionMidfielder},
	{"forward", player.PositionForward},
	{"attacker", player.PositionForward},
	{"striker", player.PositionForward},
}

func PositionFromRole(key string) (player.Position, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return "", false
	}
	for _, rk := range roleKeys {
		if strings.Contains(k, rk.needle) {
			return rk.position, true
		}
	}
	return "", false
}

// PositionFromStatsIDs maps the first provider position id.
func PositionFromStatsIDs(ids []int) player.Position {
	if len(ids) == 0 {
		return player.PositionForward
	}
	id := ids[0]
	switch {
	case id == 11:
		return player.PositionGoalkeeper
	case (id >= 32 && id <= 38) || id == 51 || id == 59 || id == 62:
		return player.PositionDefender
	case (id >= 64 && id <= 68) || (id >= 71 && id <= 79) || id == 82:
		return player.PositionMidfielder
	case (id >= 83 && id <= 88) || (id >= 103 && id <= 107) || id == 115:
		return player.PositionForward
	case id <= 62:
		return player.PositionDefender
	case id <= 82:
		return player.PositionMidfielder
	default:
		return player.PositionForward
	}
}

func PositionFromSection(section string) (player.Position, bool) {
	sec := strings.ToLower(section)
	switch {
	case strings.Contains(sec, "keeper"):
		return player.PositionGoalkeeper, true
	case strings.Contains(sec, "defend"):
		return player.PositionDefender, true
	case strings.Contains(sec, "attack"), strings.Contains(sec, "forward"):
		return player.PositionForward, true
	case strings.Contains(sec, "mid"):
		return player.PositionMidfielder, true
	}
	return "", false
}
