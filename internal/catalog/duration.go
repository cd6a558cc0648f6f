package catalog

import (
	"strconv"
	"strings"
)

// ParseDuration parses "mm:ss" or "hh:mm:ss" into seconds.
// Returns false for anything else, including placeholders like "--:--".
func ParseDuration(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	total := 0
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		// Every component but the leading one is base 60.
		if i > 0 && n >= 60 {
			return 0, false
		}
		total = total*60 + n
	}
	return float64(total), true
}
