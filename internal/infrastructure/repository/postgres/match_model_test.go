package postgres

import (
	"strings"
	"testing"

	"github.com/riskibarqy/football-hub/internal/domain/match"
)

func TestMatchModel_Events(t *testing.T) {
	t.Run("no events store an empty array", func(t *testing.T) {
		model, err := matchToModel(match.Match{SourceID: "1", Competition: "PL", Status: match.StatusScheduled})
		if err != nil {
			t.Fatalf("to model: %v", err)
		}
		if model.Events != "[]" {
			t.Fatalf("unexpected events column: %q", model.Events)
		}
	})

	t.Run("events survive the json column", func(t *testing.T) {
		events := []match.Event{
			{Type: match.EventPenaltyGoal, Minute: 45, AddedTime: 2, Side: match.SideHome, Player: "Bukayo Saka"},
			{Type: match.EventYellowCard, Minute: 61, Side: match.SideAway, Player: "Moisés Caicedo"},
		}
		model, err := matchToModel(match.Match{SourceID: "1", Competition: "PL", Status: match.StatusFinished, Events: events})
		if err != nil {
			t.Fatalf("to model: %v", err)
		}
		if !strings.Contains(model.Events, `"type":"penalty_goal"`) || !strings.Contains(model.Events, `"added_time":2`) {
			t.Fatalf("unexpected events json: %s", model.Events)
		}

		got, err := model.toDomain()
		if err != nil {
			t.Fatalf("to domain: %v", err)
		}
		if len(got.Events) != 2 || got.Events[0] != events[0] || got.Events[1] != events[1] {
			t.Fatalf("events changed in storage: %+v", got.Events)
		}
	})

	t.Run("corrupt events column is an error", func(t *testing.T) {
		if _, err := (matchTableModel{ID: 9, Events: "{"}).toDomain(); err == nil {
			t.Fatalf("expected decode error")
		}
	})
}
