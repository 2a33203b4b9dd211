package fotmob

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/football-hub/internal/canonical"
)

func getMap(src map[string]any, key string) map[string]any {
	if src == nil {
		return nil
	}
	value, _ := src[key].(map[string]any)
	return value
}

func getSlice(src map[string]any, key string) []any {
	if src == nil {
		return nil
	}
	value, _ := src[key].([]any)
	return value
}

// getMaps keeps the object entries of an array value.
func getMaps(src map[string]any, key string) []map[string]any {
	items := getSlice(src, key)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// getPath walks nested objects, e.g. getPath(doc, "fixtures", "allMatches").
func getPath(src map[string]any, path ...string) any {
	var cur any = src
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func asMaps(value any) []map[string]any {
	items, _ := value.([]any)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	switch value := src[key].(type) {
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatInt(int64(value), 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

func getStringAny(src map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := getString(src, key); value != "" {
			return value
		}
	}
	return ""
}

func getInt(src map[string]any, key string) int {
	if src == nil {
		return 0
	}
	return canonical.SafeInt(src[key])
}

func getIntAny(src map[string]any, keys ...string) int {
	for _, key := range keys {
		if value := getInt(src, key); value != 0 {
			return value
		}
	}
	return 0
}

// getOptionalInt distinguishes an absent value from zero.
func getOptionalInt(src map[string]any, key string) *int {
	if src == nil {
		return nil
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return nil
	}
	if s, isString := raw.(string); isString && strings.TrimSpace(s) == "" {
		return nil
	}
	value := canonical.SafeInt(raw)
	return &value
}

func getFloat(src map[string]any, key string) float64 {
	if src == nil {
		return 0
	}
	return canonical.SafeFloat(src[key])
}

func getBool(src map[string]any, key string) bool {
	if src == nil {
		return false
	}
	value, _ := src[key].(bool)
	return value
}

func getInts(src map[string]any, key string) []int {
	items := getSlice(src, key)
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, canonical.SafeInt(item))
	}
	return out
}

// parseTime accepts RFC3339 strings, "2006-01-02" dates, {utcTime} objects
// and epoch milliseconds.
func parseTime(value any) *time.Time {
	switch typed := value.(type) {
	case string:
		s := strings.TrimSpace(typed)
		if s == "" {
			return nil
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				utc := parsed.UTC()
				return &utc
			}
		}
		return nil
	case float64:
		if typed <= 0 {
			return nil
		}
		parsed := time.UnixMilli(int64(typed)).UTC()
		return &parsed
	case map[string]any:
		return parseTime(typed["utcTime"])
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}

func badgeURL(teamID string) string {
	if teamID == "" {
		return ""
	}
	return "https://images.fotmob.com/image_resources/logo/teamlogo/" + teamID + ".png"
}
