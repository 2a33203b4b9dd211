package canonical

import (
	"testing"

	"github.com/riskibarqy/football-hub/internal/domain/match"
)

func TestParseScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw   string
		home  int
		away  int
		known bool
	}{
		{raw: "4 - 2", home: 4, away: 2, known: true},
		{raw: "2:1", home: 2, away: 1, known: true},
		{raw: " 0 : 0 ", home: 0, away: 0, known: true},
		{raw: "abc"},
		{raw: ""},
		{raw: "1-2-3"},
		{raw: "1:"},
		{raw: "-1:2"},
		{raw: "1.5:2"},
	}
	for _, tc := range cases {
		got := ParseScore(tc.raw)
		if got.Known != tc.known || got.Home != tc.home || got.Away != tc.away {
			t.Fatalf("ParseScore(%q) = %+v", tc.raw, got)
		}
	}
	if ParseScore("abc").HomePtr() != nil {
		t.Fatalf("unknown score must have nil pointers")
	}
	if p := ParseScore("3:0").HomePtr(); p == nil || *p != 3 {
		t.Fatalf("unexpected home pointer: %v", p)
	}
}

func TestDeriveStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		flags StatusFlags
		want  match.Status
	}{
		{name: "cancelled wins", flags: StatusFlags{Cancelled: true, Finished: true}, want: match.StatusCancelled},
		{name: "postponed short", flags: StatusFlags{ReasonShort: "PP"}, want: match.StatusPostponed},
		{name: "postponed long", flags: StatusFlags{ReasonShort: "Postp.", ReasonLong: "Postponed"}, want: match.StatusPostponed},
		{name: "finished", flags: StatusFlags{Started: true, Finished: true, ReasonShort: "FT"}, want: match.StatusFinished},
		{name: "halftime", flags: StatusFlags{Started: true, ReasonShort: "ht"}, want: match.StatusHalftime},
		{name: "live", flags: StatusFlags{Started: true}, want: match.StatusLive},
		{name: "scheduled", flags: StatusFlags{}, want: match.StatusScheduled},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DeriveStatus(tc.flags); got != tc.want {
				t.Fatalf("DeriveStatus(%+v) = %s, want %s", tc.flags, got, tc.want)
			}
		})
	}
}

func TestMapStatusText(t *testing.T) {
	t.Parallel()

	cases := map[string]match.Status{
		"FT": match.StatusFinished, "aet": match.StatusFinished, "AP": match.StatusFinished,
		"HT": match.StatusHalftime, "In Progress": match.StatusLive, "2H": match.StatusLive,
		"pp": match.StatusPostponed, "Abandoned": match.StatusCancelled, "whatever": match.StatusScheduled,
	}
	for raw, want := range cases {
		if got := MapStatusText(raw); got != want {
			t.Fatalf("MapStatusText(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestEndedFlags(t *testing.T) {
	t.Parallel()

	if !EndedAfterExtraTime("AET", "") || !EndedAfterExtraTime("", "After extra time") || EndedAfterExtraTime("FT", "Full-Time") {
		t.Fatalf("unexpected extra time detection")
	}
	if !EndedOnPenalties("Pen", "") || !EndedOnPenalties("", "Won on penalties") || EndedOnPenalties("AET", "") {
		t.Fatalf("unexpected penalties detection")
	}
}

func TestParseLiveMinute(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw           string
		minute, added int
	}{
		{"45+2", 47, 2},
		{"67", 67, 0},
		{"90+4'", 94, 4},
		{"HT", 0, 0},
		{"", 0, 0},
	}
	for _, tc := range cases {
		m, a := ParseLiveMinute(tc.raw)
		if m != tc.minute || a != tc.added {
			t.Fatalf("ParseLiveMinute(%q) = %d, %d", tc.raw, m, a)
		}
	}
}
