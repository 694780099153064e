package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultWindow is the fallback lookahead used when none is provided.
	DefaultWindow = "2w"

	// DefaultWindowDays is DefaultWindow expressed in days.
	DefaultWindowDays = 14
)

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
	}
)

// ParseWindow parses a human-friendly lookahead window (for example "2w",
// "10d", or "1w3d") and returns the number of days it covers along with a
// canonical, compact representation. When the input is empty, the default
// window of two weeks is used.
func ParseWindow(input string) (int, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultWindow
	}

	remaining := strings.ToLower(trimmed)
	total := 0
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}

		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		days, ok := unitDays[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q", matches[2])
		}
		total += value * days

		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("window must cover at least one day")
	}

	return total, FormatWindow(total), nil
}

// FormatWindow renders a day count using week/day tokens.
func FormatWindow(days int) string {
	if days <= 0 {
		return "0d"
	}

	var parts []string
	if weeks := days / 7; weeks > 0 {
		parts = append(parts, fmt.Sprintf("%dw", weeks))
	}
	if rest := days % 7; rest > 0 {
		parts = append(parts, fmt.Sprintf("%dd", rest))
	}
	return strings.Join(parts, "")
}
