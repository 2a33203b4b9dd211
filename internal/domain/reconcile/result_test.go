package reconcile

import (
	"errors"
	"testing"
)

func TestBatchResult_Counts(t *testing.T) {
	t.Parallel()

	var r BatchResult
	r.Add(Inserted)
	r.Add(Updated)
	r.Add(Unchanged)
	r.Fail("club:PL:8456", errors.New("constraint"))

	if r.Written() != 3 || r.Skipped != 1 {
		t.Fatalf("unexpected counts: %+v", r)
	}
	if r.Err() == nil {
		t.Fatalf("expected joined error")
	}

	var total BatchResult
	total.Merge(r)
	total.Merge(BatchResult{Inserted: 2})
	if total.Inserted != 3 || len(total.Errors) != 1 {
		t.Fatalf("unexpected merge result: %+v", total)
	}
}
