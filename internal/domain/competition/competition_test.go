package competition

import "testing"

func TestRegistry_LookupAndOrder(t *testing.T) {
	t.Parallel()

	reg := NewRegistry("", "")
	all := reg.All()
	if len(all) != 2 || all[0].Code != PL || all[1].Code != UCL {
		t.Fatalf("unexpected registry order: %+v", all)
	}

	ucl, ok := reg.Lookup(" ucl ")
	if !ok {
		t.Fatalf("expected UCL lookup to succeed")
	}
	if ucl.ProviderLeagueID != 42 || ucl.StatsSeasonID != 28184 {
		t.Fatalf("unexpected UCL ids: %+v", ucl)
	}
	if ucl.FixturePaths[0][0] != "matches" {
		t.Fatalf("UCL must prefer matches.allMatches, got %v", ucl.FixturePaths)
	}
	if _, ok := reg.Lookup("SERIEA"); ok {
		t.Fatalf("unknown competition must not resolve")
	}
}

func TestRegistry_SeasonOverrideAndFilter(t *testing.T) {
	t.Parallel()

	reg := NewRegistry("2026", "2026/27")
	pl, _ := reg.Lookup("PL")
	if pl.Season != "2026" || pl.SeasonLabel != "2026/27" {
		t.Fatalf("season override not applied: %+v", pl)
	}

	got := reg.Filter([]string{"ucl"})
	if len(got) != 1 || got[0].Code != UCL {
		t.Fatalf("unexpected filter result: %+v", got)
	}
	if len(reg.Filter(nil)) != 2 {
		t.Fatalf("empty filter must keep all competitions")
	}
}
