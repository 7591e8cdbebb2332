package podcast

import (
	"strconv"
	"strings"
)

// parseDurationSeconds parses an episode duration string of the form
// HH:MM:SS, MM:SS, or SS into a total number of seconds. It returns
// false when s doesn't match any of those shapes.
func parseDurationSeconds(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	parts := strings.Split(s, ":")
	if len(parts) == 0 || len(parts) > 3 {
		return 0, false
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}

// parseExplicit maps an iTunes explicit tag string to a tri-state
// bool: {yes, explicit, true} -> true, {no, clean, false} -> false,
// anything else -> unknown (nil).
func parseExplicit(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "explicit", "true":
		v := true
		return &v
	case "no", "clean", "false":
		v := false
		return &v
	default:
		return nil
	}
}
