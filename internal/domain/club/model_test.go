package club

import "testing"

func TestMerge_KeepsRicherFields(t *testing.T) {
	t.Parallel()

	stored := Club{ID: 3, SourceID: "8650", Competition: "PL", Season: "2025", Name: "Liverpool", Stadium: "Anfield", StadiumCapacity: 61276, Manager: "Arne Slot"}
	minimal := Club{SourceID: "8650", Competition: "PL", Season: "2025", Name: "Liverpool", ShortName: "LIV", BadgeURL: "https://images.fotmob.com/image_resources/logo/teamlogo/8650_small.png"}

	got := Merge(stored, minimal)
	if got.ID != 3 || got.Stadium != "Anfield" || got.Manager != "Arne Slot" || got.StadiumCapacity != 61276 {
		t.Fatalf("rich fields lost: %+v", got)
	}
	if got.ShortName != "LIV" || got.BadgeURL == "" {
		t.Fatalf("new fields not applied: %+v", got)
	}
	if SameContent(stored, got) {
		t.Fatalf("merged club should differ from stored one")
	}
	if !SameContent(got, Merge(got, minimal)) {
		t.Fatalf("second merge of the same sighting must be a no-op")
	}
}

func TestKey_DistinguishesCompetitions(t *testing.T) {
	t.Parallel()

	pl := Club{SourceID: "8456", Competition: "PL", Season: "2025"}
	ucl := Club{SourceID: "8456", Competition: "UCL", Season: "2025"}
	if pl.Key() == ucl.Key() {
		t.Fatalf("same source id in two competitions must produce distinct keys")
	}
}
