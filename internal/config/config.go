package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v7"
)

// Prefix is prepended to every environment key read by Load.
const Prefix = "TIMEPAGE_"

// Config holds the service configuration. Values come from TIMEPAGE_*
// environment variables.
type Config struct {
	Host string `env:"HOST" envDefault:""`
	Port string `env:"PORT" envDefault:"8080"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// TemplatesDir overrides the embedded page templates when set.
	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:""`
	PageTitle    string `env:"PAGE_TITLE"    envDefault:"Current time"`

	DefaultZone  string        `env:"DEFAULT_ZONE"   envDefault:"UTC"`
	CookieName   string        `env:"COOKIE_NAME"    envDefault:"timezone"`
	CookieMaxAge time.Duration `env:"COOKIE_MAX_AGE" envDefault:"24h"`

	// CookieByName looks the fallback cookie up by CookieName instead of
	// taking the first cookie the client sent.
	CookieByName bool `env:"COOKIE_BY_NAME" envDefault:"false"`
	// ValidateCookie re-resolves the fallback cookie and uses DefaultZone
	// when it is stale instead of failing the request.
	ValidateCookie bool `env:"VALIDATE_COOKIE" envDefault:"false"`

	ShutdownGrace  time.Duration `env:"SHUTDOWN_GRACE"  envDefault:"5s"`
	MetricsEnabled bool          `env:"METRICS_ENABLED" envDefault:"true"`

	// TraceURL is the OTLP/HTTP traces endpoint. Tracing is off when unset.
	TraceURL   url.URL `env:"TRACE_URL"`
	TraceRatio float64 `env:"TRACE_RATIO" envDefault:"1.0"`
}

// TracingEnabled reports whether a trace exporter endpoint is configured.
func (c Config) TracingEnabled() bool {
	return c.TraceURL.Host != ""
}

// Load parses the environment into a Config. opts are passed to env.Parse;
// the Prefix is applied unless an option sets its own.
func Load(opts ...env.Options) (Config, error) {
	var cfg Config

	if len(opts) == 0 {
		opts = []env.Options{{}}
	}
	for i := range opts {
		if opts[i].Prefix == "" {
			opts[i].Prefix = Prefix
		}
	}

	if err := env.Parse(&cfg, opts...); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Address joins Host and Port for http.Server.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}
