package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-timepage/components/timepage"
	"github.com/goliatone/go-timepage/internal/config"
	tplog "github.com/goliatone/go-timepage/internal/logger"
	"github.com/goliatone/go-timepage/internal/tracing"
	"github.com/goliatone/go-timepage/pkg/render/template/gotemplate"
)

const svcName = "timepage"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load configuration: %v", err)
		return 1
	}

	logger, err := tplog.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Printf("failed to init logger: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp := otel.GetTracerProvider()
	if cfg.TracingEnabled() {
		sdkProvider, err := tracing.NewProvider(ctx, svcName, cfg.TraceURL, cfg.TraceRatio)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to init tracing: %s", err))
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
			defer cancel()
			if err := sdkProvider.Shutdown(shutdownCtx); err != nil {
				logger.Error(fmt.Sprintf("error shutting down tracer provider: %s", err))
			}
		}()
		tp = sdkProvider
		logger.Info(fmt.Sprintf("%s exporting traces to %s", svcName, cfg.TraceURL.String()))
	}

	handler, err := newRouter(cfg, logger, prometheus.DefaultRegisterer, tp)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to build %s router: %s", svcName, err))
		return 1
	}

	if err := serve(ctx, cfg, handler, logger); err != nil {
		logger.Error(fmt.Sprintf("%s service terminated: %s", svcName, err))
		return 1
	}
	return 0
}

// newRouter wires the time page, health check and metrics endpoints.
func newRouter(cfg config.Config, logger *slog.Logger, reg prometheus.Registerer, tp trace.TracerProvider) (http.Handler, error) {
	engine, err := timepage.NewEngine(cfg.TemplatesDir, gotemplate.WithGlobalData(map[string]any{
		"title": cfg.PageTitle,
	}))
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	opts := []timepage.OptionFn{
		timepage.WithRenderer(engine),
		timepage.WithLogger(logger),
		timepage.WithDefaultZone(cfg.DefaultZone),
		timepage.WithCookie(cfg.CookieName, cfg.CookieMaxAge),
		timepage.WithCookieByName(cfg.CookieByName),
		timepage.WithValidateCookie(cfg.ValidateCookie),
	}
	if cfg.MetricsEnabled {
		metrics, err := timepage.NewMetrics(reg, svcName)
		if err != nil {
			return nil, err
		}
		opts = append(opts, timepage.WithMetrics(metrics))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	page := timepage.New(opts...)
	if _, err := page.RegisterRoutes(otelRouter{Router: r, tp: tp}, "/"); err != nil {
		return nil, err
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.MetricsEnabled {
		if gatherer, ok := reg.(prometheus.Gatherer); ok {
			r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
		}
	}
	return r, nil
}

// otelRouter traces every handler registered through it with tp.
type otelRouter struct {
	chi.Router
	tp trace.TracerProvider
}

func (o otelRouter) Handle(pattern string, h http.Handler) {
	o.Router.Handle(pattern, otelhttp.NewHandler(h, pattern, otelhttp.WithTracerProvider(o.tp)))
}

func serve(ctx context.Context, cfg config.Config, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{
		Addr:    cfg.Address(),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("%s service http server listening at %s", svcName, server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown at %s: %w", server.Addr, err)
	}
	logger.Info(fmt.Sprintf("%s service shutdown of http at %s", svcName, server.Addr))
	return nil
}
