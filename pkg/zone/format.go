package zone

import "time"

// Layout renders as 2024-06-01 14:23:05 EDT.
const Layout = "2006-01-02 15:04:05 MST"

// Format converts t into loc and renders it with Layout.
func Format(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(Layout)
}

// Now resolves id and formats now in it.
func Now(now time.Time, id string) (string, error) {
	loc, err := Resolve(id)
	if err != nil {
		return "", err
	}
	return Format(now, loc), nil
}
