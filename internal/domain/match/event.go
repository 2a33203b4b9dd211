package match

type EventType string

const (
	EventGoal        EventType = "goal"
	EventOwnGoal     EventType = "own_goal"
	EventPenaltyGoal EventType = "penalty_goal"
	EventPenaltyMiss EventType = "penalty_miss"
	EventYellowCard  EventType = "yellow_card"
	EventRedCard     EventType = "red_card"
)

func (t EventType) IsGoal() bool {
	return t == EventGoal || t == EventOwnGoal || t == EventPenaltyGoal
}

// Side is the team an event counts for. An own goal counts for the side
// that benefits from it.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Event is one goal or card in a match, in match-clock order.
type Event struct {
	Type      EventType `json:"type"`
	Minute    int       `json:"minute"`
	AddedTime int       `json:"added_time,omitempty"`
	Side      Side      `json:"side"`
	Player    string    `json:"player,omitempty"`
	Assist    string    `json:"assist,omitempty"`
}

func sameEvents(a, b []Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
