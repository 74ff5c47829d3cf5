// Package timepage serves an HTML page showing the current time in a
// caller-chosen timezone.
//
// Requests flow through two stages. Validator reads the timezone query
// parameter, turns spaces back into '+' and rejects identifiers that do not
// resolve with a 400 page. Renderer picks the effective timezone (the
// validated parameter, else the stored cookie, else the default zone),
// renders the "time" template with a currentTime variable and stores a
// parameter-supplied timezone in a cookie for 24 hours.
//
// By default the cookie fallback takes the first cookie the client sent and
// does not validate it, so a stale value yields a 500. WithCookieByName and
// WithValidateCookie switch to a name lookup and to falling back to the
// default zone.
package timepage
