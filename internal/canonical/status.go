package canonical

import (
	"strings"

	"github.com/riskibarqy/football-hub/internal/domain/match"
)

// StatusFlags are the raw status signals of a provider match.
type StatusFlags struct {
	Started     bool
	Finished    bool
	Cancelled   bool
	ReasonShort string
	ReasonLong  string
	Text        string
}

func DeriveStatus(flags StatusFlags) match.Status {
	short := strings.ToUpper(strings.TrimSpace(flags.ReasonShort))
	long := strings.ToLower(strings.TrimSpace(flags.ReasonLong))

	switch {
	case flags.Cancelled:
		return match.StatusCancelled
	case short == "PP" || strings.HasPrefix(short, "POSTP") || strings.Contains(long, "postponed"):
		return match.StatusPostponed
	case flags.Finished:
		return match.StatusFinished
	case flags.Started:
		if short == "HT" {
			return match.StatusHalftime
		}
		return match.StatusLive
	}
	if strings.TrimSpace(flags.Text) != "" {
		return MapStatusText(flags.Text)
	}
	return match.StatusScheduled
}

var statusText = []struct {
	status match.Status
	codes  []string
}{
	{match.StatusFinished, []string{"ft", "finished", "aet", "pen", "ap", "fulltime", "ended"}},
	{match.StatusHalftime, []string{"ht", "halftime"}},
	{match.StatusLive, []string{"live", "inprogress", "1h", "2h", "et"}},
	{match.StatusPostponed, []string{"postponed", "pp"}},
	{match.StatusCancelled, []string{"cancelled", "canceled", "abandoned"}},
}

// MapStatusText maps free-text status codes; unknown text is SCHEDULED.
func MapStatusText(text string) match.Status {
	code := normalizeKey(text)
	for _, entry := range statusText {
		for _, c := range entry.codes {
			if code == c {
				return entry.status
			}
		}
	}
	return match.StatusScheduled
}

func EndedAfterExtraTime(short, long string) bool {
	s := strings.ToUpper(strings.TrimSpace(short))
	return s == "AET" || s == "AP" || strings.Contains(strings.ToLower(long), "extra time")
}

func EndedOnPenalties(short, long string) bool {
	s := strings.ToUpper(strings.TrimSpace(short))
	return s == "PEN" || s == "P" || s == "AP" || strings.Contains(strings.ToLower(long), "penalt")
}

// ParseLiveMinute reads "67", "45+2" or "67'" and returns the total minute
// plus the added time. Unreadable input gives 0, 0.
func ParseLiveMinute(raw string) (minute, added int) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "'"))
	if s == "" {
		return 0, 0
	}
	base, extra, hasExtra := strings.Cut(s, "+")
	b, ok := parseNonNegative(strings.TrimSpace(base))
	if !ok {
		return 0, 0
	}
	if !hasExtra {
		return b, 0
	}
	e, ok := parseNonNegative(strings.TrimSuffix(strings.TrimSpace(extra), "'"))
	if !ok {
		return b, 0
	}
	return b + e, e
}

// normalizeKey lowercases and drops separators so "In Progress",
// "in_progress" and "inprogress" compare equal.
func normalizeKey(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		switch r {
		case ' ', '_', '-', '.', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
