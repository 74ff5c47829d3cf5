package timepage

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-timepage/pkg/zone"
)

// ErrNoRenderer is returned by the renderer when Options.Renderer is nil.
var ErrNoRenderer = errors.New("timepage: no template renderer configured")

// Handler builds the full /time pipeline: method check, Validator, Renderer,
// wrapped in the metrics middleware when Options.Metrics is set.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions is Handler with a pre-built Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	pipeline := ValidatorWithOptions(RendererWithOptions(opts), opts)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			writeStatusError(w, r, StatusError{Code: http.StatusMethodNotAllowed})
			return
		}
		pipeline.ServeHTTP(w, r)
	})
	return opts.Metrics.Instrument(h)
}

// Renderer renders the time template for the effective timezone. It expects
// requests that already passed through Validator.
func Renderer(fns ...OptionFn) http.Handler {
	return RendererWithOptions(NewOptions(fns...))
}

// RendererWithOptions is Renderer with a pre-built Options value.
func RendererWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	log := opts.Logger
	maxAge := cookieMaxAgeSeconds(opts.CookieMaxAge)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := requestTimezone(r)
		source := "param"
		if id != "" {
			http.SetCookie(w, &http.Cookie{
				Name:   opts.CookieName,
				Value:  id,
				MaxAge: maxAge,
			})
		} else {
			id, source = fallbackTimezone(r, opts)
		}

		loc, err := zone.Resolve(id)
		if err != nil && source == "cookie" && opts.ValidateCookie {
			log.Warn("stale timezone cookie ignored",
				slog.String("timezone", id),
				slog.String("default", opts.DefaultZone),
			)
			id, source = opts.DefaultZone, "default"
			loc, err = zone.Resolve(id)
		}
		if err != nil {
			log.Error("resolve effective timezone",
				slog.String("timezone", id),
				slog.String("source", source),
				slog.Any("error", err),
			)
			writeStatusError(w, r, StatusError{Code: http.StatusInternalServerError, Err: err})
			return
		}

		page, err := renderPage(opts, pageData{
			CurrentTime: zone.Format(opts.Now(), loc),
			Timezone:    id,
		})
		if err != nil {
			log.Error("render time page", slog.String("timezone", id), slog.Any("error", err))
			writeStatusError(w, r, StatusError{Code: http.StatusInternalServerError, Err: err})
			return
		}

		w.Header().Set("Content-Type", htmlContentType)
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		if _, err := w.Write(page); err != nil {
			log.Debug("write time page", slog.Any("error", err))
		}
	})
}

// cookieMaxAgeSeconds rounds d up to whole seconds so a positive duration
// never turns into a cookie without Max-Age.
func cookieMaxAgeSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}

// fallbackTimezone picks the timezone for a request without a parameter: the
// stored cookie when there is one, DefaultZone otherwise.
func fallbackTimezone(r *http.Request, opts Options) (string, string) {
	if opts.CookieByName {
		if c, err := r.Cookie(opts.CookieName); err == nil {
			return c.Value, "cookie"
		}
		return opts.DefaultZone, "default"
	}

	cookies := r.Cookies()
	if len(cookies) > 0 {
		return cookies[0].Value, "cookie"
	}
	return opts.DefaultZone, "default"
}

type pageData struct {
	CurrentTime string
	Timezone    string
}

// pageView is the time template context, keyed by its json tags.
type pageView struct {
	CurrentTime string   `json:"currentTime"`
	Timezone    string   `json:"timezone"`
	Zones       []string `json:"zones"`
	Param       string   `json:"param"`
	Action      string   `json:"action"`
}

func renderPage(opts Options, data pageData) ([]byte, error) {
	if opts.Renderer == nil {
		return nil, ErrNoRenderer
	}

	zones := opts.Zones
	if zones == nil {
		loaded, err := DefaultZones()
		if err != nil {
			return nil, fmt.Errorf("timepage: load zone suggestions: %w", err)
		}
		zones = loaded
	}

	var buf bytes.Buffer
	_, err := opts.Renderer.RenderTemplate(opts.TemplateName, pageView{
		CurrentTime: data.CurrentTime,
		Timezone:    data.Timezone,
		Zones:       zones,
		Param:       opts.Param,
		Action:      opts.RoutePath,
	}, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
