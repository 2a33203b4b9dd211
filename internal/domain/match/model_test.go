package match

import (
	"testing"
	"time"
)

func TestMerge_FinishedIsMonotonic(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2025, 9, 20, 14, 0, 0, 0, time.UTC)
	stored := Match{
		ID: 7, SourceID: "999", Competition: "PL", Season: "2025",
		HomeTeamName: "Arsenal", AwayTeamName: "Chelsea",
		Status: StatusFinished, Minute: 90, KickoffAt: kickoff,
		HomeScore: IntPtr(2), AwayScore: IntPtr(1),
	}
	stale := Match{
		SourceID: "999", Competition: "PL", Season: "2025",
		HomeTeamName: "Arsenal FC", AwayTeamName: "Chelsea",
		Status: StatusLive, Minute: 70, KickoffAt: kickoff,
		HomeScore: IntPtr(1), AwayScore: IntPtr(1),
	}

	got := Merge(stored, stale)
	if got.Status != StatusFinished || *got.HomeScore != 2 || *got.AwayScore != 1 || got.Minute != 90 {
		t.Fatalf("finished match must not regress: %+v", got)
	}
	if got.HomeTeamName != "Arsenal FC" {
		t.Fatalf("descriptive fields must refresh, got %q", got.HomeTeamName)
	}
	if got.ID != 7 {
		t.Fatalf("merge must keep stored id, got %d", got.ID)
	}
}

func TestMerge_FinishedPollWithoutScoreKeepsResult(t *testing.T) {
	t.Parallel()

	stored := Match{
		ID: 7, SourceID: "999", Competition: "PL", Season: "2025",
		Status: StatusFinished, HomeScore: IntPtr(2), AwayScore: IntPtr(1),
		HomeScorePen: IntPtr(4), AwayScorePen: IntPtr(3),
	}
	incoming := Match{SourceID: "999", Competition: "PL", Season: "2025", Status: StatusFinished}

	got := Merge(stored, incoming)
	if got.HomeScore == nil || got.AwayScore == nil || *got.HomeScore != 2 || *got.AwayScore != 1 {
		t.Fatalf("stored score must survive an unparsed poll: %v-%v", got.HomeScore, got.AwayScore)
	}
	if got.HomeScorePen == nil || *got.HomeScorePen != 4 {
		t.Fatalf("stored penalties must survive an unparsed poll: %v", got.HomeScorePen)
	}
	if !SameContent(stored, Merge(stored, incoming)) {
		t.Fatalf("an unparsed finished poll should not change the row")
	}

	corrected := Merge(stored, Match{SourceID: "999", Competition: "PL", Season: "2025", Status: StatusFinished, HomeScore: IntPtr(2), AwayScore: IntPtr(2)})
	if *corrected.AwayScore != 2 {
		t.Fatalf("a parsed finished score must still replace the stored one, got %d", *corrected.AwayScore)
	}
}

func TestMerge_PostponedCanBeRescheduled(t *testing.T) {
	t.Parallel()

	stored := Match{SourceID: "1", Competition: "PL", Status: StatusPostponed}
	incoming := Match{SourceID: "1", Competition: "PL", Status: StatusScheduled}
	if got := Merge(stored, incoming); got.Status != StatusScheduled {
		t.Fatalf("postponed match must move on, got %s", got.Status)
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	if s, ok := ParseStatus("ht"); !ok || s != StatusHalftime {
		t.Fatalf("unexpected status: %s %v", s, ok)
	}
	if _, ok := ParseStatus("nope"); ok {
		t.Fatalf("unknown status must fail")
	}
	if !StatusHalftime.IsLive() || StatusFinished.IsLive() {
		t.Fatalf("unexpected live classification")
	}
}

func TestTwoLegWinner(t *testing.T) {
	t.Parallel()

	legs := []Match{
		{HomeTeamName: "Inter", AwayTeamName: "Bayern", Leg: 1, Status: StatusFinished, HomeScore: IntPtr(2), AwayScore: IntPtr(1)},
		{HomeTeamName: "Bayern", AwayTeamName: "Inter", Leg: 2, Status: StatusFinished, HomeScore: IntPtr(2), AwayScore: IntPtr(0)},
	}
	if got := TwoLegWinner(legs); got != "Bayern" {
		t.Fatalf("expected Bayern on 3-2 aggregate, got %q", got)
	}
	for _, leg := range legs {
		if leg.IsKnockout {
			t.Fatalf("caller's legs must not be modified: %+v", leg)
		}
	}

	level := []Match{
		{HomeTeamName: "Inter", AwayTeamName: "Bayern", Leg: 1, Status: StatusFinished, HomeScore: IntPtr(1), AwayScore: IntPtr(0)},
		{HomeTeamName: "Bayern", AwayTeamName: "Inter", Leg: 2, Status: StatusFinished, HomeScore: IntPtr(1), AwayScore: IntPtr(0)},
	}
	if got := TwoLegWinner(level); got != "" {
		t.Fatalf("level aggregate must be undecided, got %q", got)
	}

	pending := []Match{
		{HomeTeamName: "Inter", AwayTeamName: "Bayern", Leg: 1, Status: StatusFinished, HomeScore: IntPtr(3), AwayScore: IntPtr(0)},
		{HomeTeamName: "Bayern", AwayTeamName: "Inter", Leg: 2, Status: StatusScheduled},
	}
	if got := TwoLegWinner(pending); got != "" {
		t.Fatalf("tie with an unplayed leg must be undecided, got %q", got)
	}
}

func TestPairTies_SingleLegFinalOnPenalties(t *testing.T) {
	t.Parallel()

	ties := PairTies([]Match{{
		Round: "Final", IsKnockout: true, HomeTeamName: "PSG", AwayTeamName: "Inter",
		Status: StatusFinished, HomeScore: IntPtr(1), AwayScore: IntPtr(1),
		HomeScorePen: IntPtr(3), AwayScorePen: IntPtr(4),
	}})
	if len(ties) != 1 || !ties[0].Decided || ties[0].Winner != "Inter" {
		t.Fatalf("unexpected final tie: %+v", ties)
	}
}
