package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_Prefix(t *testing.T) {
	t.Parallel()

	got := NewUUIDGenerator("run").NewID()
	if !strings.HasPrefix(got, "run-") {
		t.Fatalf("expected run- prefix, got=%q", got)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(got, "run-")); err != nil {
		t.Fatalf("expected uuid suffix: %v", err)
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	seq := &Sequence{Prefix: "job"}
	if got := seq.NewID(); got != "job-1" {
		t.Fatalf("unexpected first id: %q", got)
	}
	if got := seq.NewID(); got != "job-2" {
		t.Fatalf("unexpected second id: %q", got)
	}
}
