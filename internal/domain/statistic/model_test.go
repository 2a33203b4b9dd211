package statistic

import "testing"

func TestParseSort(t *testing.T) {
	t.Parallel()

	t.Run("whitelisted", func(t *testing.T) {
		t.Parallel()
		got, ok := ParseSort(" Clean_Sheets ")
		if !ok || got != SortCleanSheets {
			t.Fatalf("unexpected sort: %q %v", got, ok)
		}
	})

	t.Run("fallback to goals", func(t *testing.T) {
		t.Parallel()
		got, ok := ParseSort("goals; DROP TABLE statistics")
		if ok || got != SortGoals {
			t.Fatalf("unexpected fallback: %q %v", got, ok)
		}
	})
}

func TestHasKeeperFields(t *testing.T) {
	t.Parallel()

	zero := 0
	three := 3
	if (Statistic{}).HasKeeperFields() {
		t.Fatalf("empty statistic has no keeper fields")
	}
	if (Statistic{Saves: &zero}).HasKeeperFields() {
		t.Fatalf("zero saves is not a keeper signal")
	}
	if !(Statistic{CleanSheets: &three}).HasKeeperFields() {
		t.Fatalf("clean sheets must be a keeper signal")
	}
}
