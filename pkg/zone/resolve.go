package zone

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"
)

// Default is the zone used when a request carries no timezone at all.
const Default = "UTC"

// ErrInvalidTimezone is returned for any identifier that cannot be resolved.
var ErrInvalidTimezone = errors.New("invalid timezone")

var regionPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9~/._+-]+$`)

// Names inside a zoneinfo directory that are not region ids. LoadLocation
// reads the host database first, so these must be rejected up front.
var (
	nonRegionFiles = map[string]struct{}{
		"Factory":           {},
		"Local":             {},
		"iso3166.tab":       {},
		"leap-seconds.list": {},
		"leapseconds":       {},
		"localtime":         {},
		"posixrules":        {},
		"tzdata.zi":         {},
		"zone.tab":          {},
		"zone1970.tab":      {},
		"zonenow.tab":       {},
	}
	nonRegionDirs = []string{"posix/", "right/"}
)

// Normalize restores '+' characters that arrived as spaces after form
// decoding, so "UTC 3" becomes "UTC+3". Every space is replaced.
func Normalize(raw string) string {
	return strings.ReplaceAll(raw, " ", "+")
}

// Resolve maps id to a location. It does not normalize id; callers that take
// input from a query string should run Normalize first.
func Resolve(id string) (*time.Location, error) {
	loc, err := resolve(id, true)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidTimezone, id, err)
	}
	return loc, nil
}

// Valid reports whether id resolves.
func Valid(id string) bool {
	_, err := Resolve(id)
	return err == nil
}

func resolve(id string, followAlias bool) (*time.Location, error) {
	if id == "" {
		return nil, errors.New("empty identifier")
	}
	if id == "Z" {
		return time.UTC, nil
	}
	if id[0] == '+' || id[0] == '-' {
		seconds, err := parseOffset(id)
		if err != nil {
			return nil, err
		}
		return fixedZone(seconds), nil
	}
	if loc, ok, err := parsePrefixed(id); ok {
		return loc, err
	}

	if followAlias {
		table, err := loadAliases()
		if err != nil {
			return nil, err
		}
		if target, ok := table[id]; ok {
			return resolve(target, false)
		}
	}

	if !regionPattern.MatchString(id) {
		return nil, errors.New("malformed region id")
	}
	if !isRegionID(id) {
		return nil, errors.New("not a region id")
	}
	return time.LoadLocation(id)
}

func isRegionID(id string) bool {
	if _, ok := nonRegionFiles[id]; ok {
		return false
	}
	for _, dir := range nonRegionDirs {
		if strings.HasPrefix(id, dir) {
			return false
		}
	}
	return true
}
