package player

import "testing"

func TestParsePosition(t *testing.T) {
	t.Parallel()

	cases := map[string]Position{"gk": PositionGoalkeeper, " DEF ": PositionDefender, "Mid": PositionMidfielder, "fwd": PositionForward}
	for raw, want := range cases {
		got, ok := ParsePosition(raw)
		if !ok || got != want {
			t.Fatalf("ParsePosition(%q) = %q, %v", raw, got, ok)
		}
	}
	if _, ok := ParsePosition("striker"); ok {
		t.Fatalf("expected unknown position to fail")
	}
}

func TestApplyKeeperSignal(t *testing.T) {
	t.Parallel()

	if got := ApplyKeeperSignal(PositionForward, true); got != PositionGoalkeeper {
		t.Fatalf("keeper stats must force GK, got %s", got)
	}
	if got := ApplyKeeperSignal(PositionMidfielder, false); got != PositionMidfielder {
		t.Fatalf("no keeper stats must keep position, got %s", got)
	}
}
