package timepage

import (
	"context"
	"net/http"
)

type contextKey struct{}

// timezoneValue distinguishes "validator ran, no timezone" from "validator
// never ran".
type timezoneValue struct {
	id string
}

// WithTimezone returns a copy of ctx carrying the normalized timezone id. An
// empty id records that the request carried no timezone.
func WithTimezone(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, timezoneValue{id: id})
}

// TimezoneFromContext returns the id attached by the validator. ok is false
// when the request did not pass through the validator.
func TimezoneFromContext(ctx context.Context) (id string, ok bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(contextKey{}).(timezoneValue)
	if !ok {
		return "", false
	}
	return v.id, true
}

func requestTimezone(r *http.Request) string {
	id, _ := TimezoneFromContext(r.Context())
	return id
}
