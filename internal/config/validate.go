package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-timepage/internal/logger"
	"github.com/goliatone/go-timepage/pkg/zone"
)

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %q", c.Port))
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	if _, err := zone.Resolve(c.DefaultZone); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_ZONE: %w", err))
	}

	if strings.TrimSpace(c.CookieName) == "" {
		errs = append(errs, errors.New("COOKIE_NAME must not be empty"))
	}
	if c.CookieMaxAge < time.Second {
		errs = append(errs, fmt.Errorf("COOKIE_MAX_AGE must be at least 1s, got %s", c.CookieMaxAge))
	}
	if c.ShutdownGrace <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_GRACE must be positive, got %s", c.ShutdownGrace))
	}

	if c.TraceRatio < 0 || c.TraceRatio > 1 {
		errs = append(errs, fmt.Errorf("TRACE_RATIO must be between 0 and 1, got %v", c.TraceRatio))
	}
	if c.TracingEnabled() && c.TraceURL.Scheme != "http" && c.TraceURL.Scheme != "https" {
		errs = append(errs, fmt.Errorf("TRACE_URL must be an http or https URL, got %q", c.TraceURL.String()))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w", errors.Join(errs...))
}
