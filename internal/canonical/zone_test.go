package canonical

import (
	"testing"

	"github.com/riskibarqy/football-hub/internal/domain/competition"
	"github.com/riskibarqy/football-hub/internal/domain/standing"
)

func TestQualificationZone(t *testing.T) {
	t.Parallel()

	pl, _ := competition.Lookup("PL")
	ucl, _ := competition.Lookup("UCL")

	cases := []struct {
		name     string
		comp     competition.Competition
		colour   string
		position int
		size     int
		want     standing.Zone
	}{
		{name: "pl colour without hash", comp: pl, colour: "2AD572", position: 9, size: 20, want: standing.ZoneAdvances},
		{name: "pl europa colour", comp: pl, colour: "#fd7e14", position: 5, size: 20, want: standing.ZonePlayoff},
		{name: "pl relegation colour", comp: pl, colour: "#FF0000", position: 18, size: 20, want: standing.ZoneEliminated},
		{name: "pl 5 of 20 is normal", comp: pl, position: 5, size: 20, want: standing.ZoneNormal},
		{name: "pl top four", comp: pl, position: 4, size: 20, want: standing.ZoneAdvances},
		{name: "pl bottom three", comp: pl, position: 18, size: 20, want: standing.ZoneEliminated},
		{name: "pl 17 is normal", comp: pl, colour: "#123456", position: 17, size: 20, want: standing.ZoneNormal},
		{name: "ucl keyword", comp: ucl, colour: "Orange", position: 2, size: 36, want: standing.ZonePlayoff},
		{name: "ucl top eight", comp: ucl, position: 8, size: 36, want: standing.ZoneAdvances},
		{name: "ucl playoff band", comp: ucl, position: 24, size: 36, want: standing.ZonePlayoff},
		{name: "ucl eliminated", comp: ucl, position: 25, size: 36, want: standing.ZoneEliminated},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := QualificationZone(tc.comp, tc.colour, tc.position, tc.size); got != tc.want {
				t.Fatalf("QualificationZone = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestZoneLabel(t *testing.T) {
	t.Parallel()

	ucl, _ := competition.Lookup("UCL")
	if got := ZoneLabel(ucl, standing.ZoneAdvances); got != "Advance to Round of 16" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := ZoneLabel(ucl, standing.ZoneNormal); got != "" {
		t.Fatalf("normal zone has no label, got %q", got)
	}
}

func TestLabelRound(t *testing.T) {
	t.Parallel()

	pl, _ := competition.Lookup("PL")
	ucl, _ := competition.Lookup("UCL")

	cases := []struct {
		comp competition.Competition
		raw  string
		want RoundInfo
	}{
		{pl, "12", RoundInfo{Label: "GW 12", Matchweek: 12}},
		{pl, "Round 3", RoundInfo{Label: "GW 3", Matchweek: 3}},
		{ucl, "5", RoundInfo{Label: "League Phase", Matchweek: 5}},
		{ucl, "playoff", RoundInfo{Label: "Playoff", Matchweek: 9, IsKnockout: true}},
		{ucl, "round_of_16", RoundInfo{Label: "Round of 16", Matchweek: 10, IsKnockout: true}},
		{ucl, "1/8", RoundInfo{Label: "Round of 16", Matchweek: 10, IsKnockout: true}},
		{ucl, "Quarter-finals", RoundInfo{Label: "Quarter-finals", Matchweek: 11, IsKnockout: true}},
		{ucl, "1/2", RoundInfo{Label: "Semi-finals", Matchweek: 12, IsKnockout: true}},
		{ucl, "FINAL", RoundInfo{Label: "Final", Matchweek: 13, IsKnockout: true}},
	}
	for _, tc := range cases {
		if got := LabelRound(tc.comp, tc.raw); got != tc.want {
			t.Fatalf("LabelRound(%s, %q) = %+v, want %+v", tc.comp.Code, tc.raw, got, tc.want)
		}
	}

	if got := RoundListLabel(ucl, 3); got != "Matchday 3" {
		t.Fatalf("unexpected list label %q", got)
	}
	if got := RoundListLabel(ucl, 11); got != "Quarter-finals" {
		t.Fatalf("unexpected list label %q", got)
	}
	if got := RoundListLabel(pl, 11); got != "GW 11" {
		t.Fatalf("unexpected list label %q", got)
	}
}
