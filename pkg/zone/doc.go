// Package zone resolves timezone identifiers into *time.Location values.
//
// Resolve accepts region ids from the runtime tz database (America/New_York),
// fixed offsets with or without a UTC/GMT/UT prefix (UTC+3, GMT-05:30, +02:00,
// Z) and a small table of three-letter short ids (EST, PST, IST). Every failure
// is reported as ErrInvalidTimezone so callers can treat malformed syntax and
// unknown regions the same way.
package zone
