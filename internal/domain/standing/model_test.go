package standing

import "testing"

func TestRerank_DenseWithinGroup(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{ClubSourceID: "a", Group: "", Position: 3, Points: 10},
		{ClubSourceID: "b", Group: "", Position: 1, Points: 20},
		{ClubSourceID: "c", Group: "", Position: 7, Points: 5},
		{ClubSourceID: "d", Group: "B", Position: 2, Points: 3},
	}
	if IsDense(rows) {
		t.Fatalf("input with gaps must not be dense")
	}

	got := Rerank(rows)
	if !IsDense(got) {
		t.Fatalf("rerank must produce dense positions: %+v", got)
	}
	if got[0].ClubSourceID != "b" || got[0].Position != 1 || got[2].ClubSourceID != "c" || got[2].Position != 3 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[3].Group != "B" || got[3].Position != 1 {
		t.Fatalf("group B must restart at 1: %+v", got[3])
	}
}
