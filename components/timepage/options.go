package timepage

import (
	"io"
	"log/slog"
	"time"

	"github.com/goliatone/go-timepage/pkg/render/template"
	"github.com/goliatone/go-timepage/pkg/zone"
)

const (
	defaultRoutePath    = "/time"
	defaultParam        = "timezone"
	defaultCookieName   = "timezone"
	defaultCookieMaxAge = 24 * time.Hour
)

// Options configures the validator and renderer.
type Options struct {
	RoutePath string
	// Param is the query parameter carrying the requested timezone.
	Param string

	CookieName   string
	CookieMaxAge time.Duration
	DefaultZone  string

	// CookieByName makes the fallback look for CookieName. When false the
	// first cookie the client sent is used whatever its name.
	CookieByName bool
	// ValidateCookie resolves the fallback cookie before use and falls back to
	// DefaultZone when it is stale. When false a stale cookie fails the request.
	ValidateCookie bool

	Renderer     template.TemplateRenderer
	TemplateName string
	// Zones are offered as suggestions on the page. nil uses DefaultZones.
	Zones []string

	Now     func() time.Time
	Logger  *slog.Logger
	Metrics *Metrics
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		Param:        defaultParam,
		CookieName:   defaultCookieName,
		CookieMaxAge: defaultCookieMaxAge,
		DefaultZone:  zone.Default,
		TemplateName: TimeTemplate,
		Now:          time.Now,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.Param == "" {
		opts.Param = defaultParam
	}
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}
	if opts.CookieMaxAge <= 0 {
		opts.CookieMaxAge = defaultCookieMaxAge
	}
	if opts.DefaultZone == "" {
		opts.DefaultZone = zone.Default
	}
	if opts.TemplateName == "" {
		opts.TemplateName = TimeTemplate
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Zones != nil {
		opts.Zones = append([]string{}, opts.Zones...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Param = name
	}
}

func WithCookie(name string, maxAge time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CookieName = name
		o.CookieMaxAge = maxAge
	}
}

func WithDefaultZone(id string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultZone = id
	}
}

func WithCookieByName(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CookieByName = enabled
	}
}

func WithValidateCookie(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ValidateCookie = enabled
	}
}

func WithRenderer(renderer template.TemplateRenderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithTemplateName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TemplateName = name
	}
}

func WithZones(zones []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if zones == nil {
			o.Zones = nil
			return
		}
		o.Zones = append([]string{}, zones...)
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Now = now
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithMetrics(m *Metrics) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Metrics = m
	}
}
