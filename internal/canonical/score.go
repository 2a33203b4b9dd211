// Package canonical holds the pure rules that turn provider values into
// canonical records. Nothing here touches the network or the store.
package canonical

import (
	"strconv"
	"strings"
	"unicode"
)

// Score is a parsed "home:away" pair. Known is false when the input could
// not be read.
type Score struct {
	Home  int
	Away  int
	Known bool
}

// ParseScore accepts "2:1", "4 - 2" and similar. Anything that is not
// exactly two non-negative integers is unknown.
func ParseScore(raw string) Score {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	compact = strings.ReplaceAll(compact, "-", ":")

	parts := strings.Split(compact, ":")
	if len(parts) != 2 {
		return Score{}
	}
	home, ok := parseNonNegative(parts[0])
	if !ok {
		return Score{}
	}
	away, ok := parseNonNegative(parts[1])
	if !ok {
		return Score{}
	}
	return Score{Home: home, Away: away, Known: true}
}

// HomePtr and AwayPtr return nil for an unknown score.
func (s Score) HomePtr() *int {
	if !s.Known {
		return nil
	}
	v := s.Home
	return &v
}

func (s Score) AwayPtr() *int {
	if !s.Known {
		return nil
	}
	v := s.Away
	return &v
}

func parseNonNegative(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
