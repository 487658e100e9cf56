// Package timeutil parses the day windows used by reports.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "1w"

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitDays      = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
		"mo":    30,
		"month": 30,
	}
)

// ParseDays reads a window such as "3d", "2w" or "1w2d" and returns its
// length in days with a compact label. Empty input means DefaultWindow.
func ParseDays(input string) (int, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		remaining = DefaultWindow
	}

	total := 0
	for len(remaining) > 0 {
		m := windowPattern.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", m[1], err)
		}
		unit, ok := unitDays[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q", m[2])
		}
		total += n * unit
		remaining = remaining[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("window must be at least one day")
	}
	return total, FormatDays(total), nil
}

// FormatDays renders n days as weeks and days, e.g. "1w2d".
func FormatDays(n int) string {
	if n <= 0 {
		return "0d"
	}
	var b strings.Builder
	if w := n / 7; w > 0 {
		fmt.Fprintf(&b, "%dw", w)
	}
	if d := n % 7; d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	return b.String()
}
