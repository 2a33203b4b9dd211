package canonical

import (
	"strings"

	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
)

// QualificationZone prefers the upstream colour and falls back to the
// competition's position bands when the colour is missing or unknown.
func QualificationZone(comp competition.Competition, colour string, position, tableSize int) standing.Zone {
	if zone, ok := zoneFromColour(comp, colour); ok {
		return zone
	}
	return zoneFromPosition(comp.ZoneBands, position, tableSize)
}

func zoneFromColour(comp competition.Competition, colour string) (standing.Zone, bool) {
	c := strings.ToLower(strings.TrimSpace(colour))
	if c == "" {
		return "", false
	}
	bare := strings.TrimPrefix(c, "#")
	for _, rule := range comp.ZoneColors {
		for _, needle := range rule.Needles {
			if strings.HasPrefix(needle, "#") {
				if bare == strings.TrimPrefix(needle, "#") {
					return rule.Zone, true
				}
				continue
			}
			if strings.Contains(c, needle) {
				return rule.Zone, true
			}
		}
	}
	return "", false
}

func zoneFromPosition(bands competition.ZoneBands, position, tableSize int) standing.Zone {
	if position <= 0 {
		return standing.ZoneNormal
	}
	switch {
	case position <= bands.Advance:
		return standing.ZoneAdvances
	case bands.Playoff > 0 && position <= bands.Playoff:
		return standing.ZonePlayoff
	case bands.EliminateRest:
		return standing.ZoneEliminated
	case bands.Relegated > 0 && tableSize > 0 && position > tableSize-bands.Relegated:
		return standing.ZoneEliminated
	}
	return standing.ZoneNormal
}

func ZoneLabel(comp competition.Competition, zone standing.Zone) string {
	switch zone {
	case standing.ZoneAdvances:
		return comp.ZoneLabels.Advances
	case standing.ZonePlayoff:
		return comp.ZoneLabels.Playoff
	case standing.ZoneEliminated:
		return comp.ZoneLabels.Eliminated
	}
	return ""
}
