package zone

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const maxOffsetSeconds = 18 * 60 * 60

var offsetPrefixes = []string{"UTC", "GMT", "UT"}

// parsePrefixed handles UTC, GMT and UT optionally followed by a signed offset.
// ok is false when id does not start with one of the prefixes.
func parsePrefixed(id string) (loc *time.Location, ok bool, err error) {
	for _, prefix := range offsetPrefixes {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		rest := id[len(prefix):]
		if rest == "" {
			return time.UTC, true, nil
		}
		if rest[0] != '+' && rest[0] != '-' {
			// UTC is a prefix of UTCx, not a fixed offset; let region lookup decide.
			return nil, false, nil
		}
		seconds, err := parseOffset(rest)
		if err != nil {
			return nil, true, err
		}
		return fixedZone(seconds), true, nil
	}
	return nil, false, nil
}

// parseOffset parses +h, +hh, +hh:mm, +hhmm, +hh:mm:ss and +hhmmss (or the
// same with a leading minus) into signed seconds east of UTC.
func parseOffset(raw string) (int, error) {
	if len(raw) < 2 {
		return 0, fmt.Errorf("offset %q too short", raw)
	}
	sign := 1
	switch raw[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, fmt.Errorf("offset %q must start with + or -", raw)
	}
	body := raw[1:]

	var hh, mm, ss string
	switch {
	case len(body) <= 2 && !strings.Contains(body, ":"):
		hh = body
	case strings.Contains(body, ":"):
		parts := strings.Split(body, ":")
		if len(parts) > 3 || len(parts[0]) != 2 {
			return 0, fmt.Errorf("offset %q malformed", raw)
		}
		hh = parts[0]
		mm = parts[1]
		if len(parts) == 3 {
			ss = parts[2]
		}
	case len(body) == 4:
		hh, mm = body[:2], body[2:]
	case len(body) == 6:
		hh, mm, ss = body[:2], body[2:4], body[4:]
	default:
		return 0, fmt.Errorf("offset %q malformed", raw)
	}

	hours, err := offsetField(hh, 18)
	if err != nil {
		return 0, fmt.Errorf("offset %q: hours: %w", raw, err)
	}
	minutes, err := offsetField(mm, 59)
	if err != nil {
		return 0, fmt.Errorf("offset %q: minutes: %w", raw, err)
	}
	secs, err := offsetField(ss, 59)
	if err != nil {
		return 0, fmt.Errorf("offset %q: seconds: %w", raw, err)
	}

	total := hours*3600 + minutes*60 + secs
	if total > maxOffsetSeconds {
		return 0, fmt.Errorf("offset %q out of range", raw)
	}
	return sign * total, nil
}

func offsetField(raw string, max int) (int, error) {
	if raw == "" {
		return 0, nil
	}
	if len(raw) > 2 {
		return 0, fmt.Errorf("%q has too many digits", raw)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not numeric", raw)
		}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v > max {
		return 0, fmt.Errorf("%d exceeds %d", v, max)
	}
	return v, nil
}

// fixedZone names the location after its offset: +03, -0530, +053015, and
// UTC for a zero offset.
func fixedZone(seconds int) *time.Location {
	if seconds == 0 {
		return time.UTC
	}
	return time.FixedZone(offsetName(seconds), seconds)
}

func offsetName(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	switch {
	case s != 0:
		return fmt.Sprintf("%c%02d%02d%02d", sign, h, m, s)
	case m != 0:
		return fmt.Sprintf("%c%02d%02d", sign, h, m)
	default:
		return fmt.Sprintf("%c%02d", sign, h)
	}
}
