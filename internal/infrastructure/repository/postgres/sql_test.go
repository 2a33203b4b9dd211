package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches wrapped no rows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("select club: %w", sql.ErrNoRows)) {
			t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fakeErr("pq: relation clubs does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestNullableConversions(t *testing.T) {
	t.Run("int round trip", func(t *testing.T) {
		v := 3
		got := nullIntToPtr(nullableInt(&v))
		if got == nil || *got != 3 {
			t.Fatalf("unexpected int: %v", got)
		}
		if nullIntToPtr(nullableInt(nil)) != nil {
			t.Fatalf("nil int should stay nil")
		}
	})

	t.Run("zero time is null", func(t *testing.T) {
		var zero time.Time
		if nullableTime(&zero).Valid {
			t.Fatalf("zero time should be null")
		}
	})

	t.Run("empty string is nil", func(t *testing.T) {
		if optionalString("") != nil {
			t.Fatalf("empty string should be nil")
		}
	})
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

func TestPayloadRoundTrip(t *testing.T) {
	raw, err := marshalPayload(map[string]any{"competition": "PL", "inserted": 3})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	got, err := unmarshalPayload(raw)
	if err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got["competition"] != "PL" {
		t.Fatalf("unexpected payload: %+v", got)
	}

	empty, _ := marshalPayload(nil)
	if empty != "{}" {
		t.Fatalf("empty payload should encode as {}, got %q", empty)
	}
}

func TestStandingRefreshKey(t *testing.T) {
	if got := standingRefreshKey("8456", "Group A"); got != "8456|Group A" {
		t.Fatalf("unexpected refresh key: %q", got)
	}
}
