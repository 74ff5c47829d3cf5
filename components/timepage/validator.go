package timepage

import (
	"log/slog"
	"net/http"

	"github.com/goliatone/go-timepage/pkg/zone"
)

// Validator gates next on the timezone parameter. A missing or empty value
// passes through with an empty marker; a value that resolves after
// normalization is attached to the request context; anything else gets the
// 400 invalid timezone page and next is not called.
func Validator(next http.Handler, fns ...OptionFn) http.Handler {
	return ValidatorWithOptions(next, NewOptions(fns...))
}

// ValidatorWithOptions is Validator with a pre-built Options value.
func ValidatorWithOptions(next http.Handler, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	log := opts.Logger

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.FormValue(opts.Param)
		if raw == "" {
			next.ServeHTTP(w, r.WithContext(WithTimezone(r.Context(), "")))
			return
		}

		id := zone.Normalize(raw)
		loc, err := zone.Resolve(id)
		if err != nil {
			log.Warn("timezone rejected",
				slog.String("param", opts.Param),
				slog.String("timezone", id),
				slog.Any("error", err),
			)
			writeHTMLError(w, r, http.StatusBadRequest, InvalidTimezoneMessage, id)
			return
		}

		log.Debug("timezone resolved",
			slog.String("timezone", id),
			slog.String("location", loc.String()),
		)
		next.ServeHTTP(w, r.WithContext(WithTimezone(r.Context(), id)))
	})
}
