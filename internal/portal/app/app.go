package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/aussiebroadwan/portalgate/internal/portal/events"
	"github.com/aussiebroadwan/portalgate/internal/portal/guard"
	httpapi "github.com/aussiebroadwan/portalgate/internal/portal/http"
	"github.com/aussiebroadwan/portalgate/internal/portal/metrics"
	"github.com/aussiebroadwan/portalgate/internal/portal/policy"
	"github.com/aussiebroadwan/portalgate/internal/portal/recaptcha"
	"github.com/aussiebroadwan/portalgate/internal/portal/service"
	"github.com/aussiebroadwan/portalgate/internal/portal/store"
	"github.com/aussiebroadwan/portalgate/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/portalgate/internal/portal/throttle"
	"github.com/aussiebroadwan/portalgate/internal/portal/websession"
	"github.com/aussiebroadwan/portalgate/pkg/cryptox"
	"github.com/aussiebroadwan/portalgate/pkg/httpx"
	"github.com/aussiebroadwan/portalgate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	appKeySize = 32
)

// Application encapsulates the portal service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	registry *prometheus.Registry
	metrics  *metrics.Collector
	bus      *events.Bus
	sessions *websession.Manager

	// Services
	loginService        *service.LoginService
	tracker             *service.SessionTracker
	housekeepingService *service.HousekeepingService
	gate                *policy.Gate

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "portal-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := httpx.SetTrustedProxies(app.cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.seed(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	appKey, err := cryptox.LoadOrGenerateSecret(app.cfg.AppKeyFile, appKeySize)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to load app key: %w", err)
	}

	app.initMetrics()
	app.initServices([]byte(appKey))
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.housekeepingService.Start()

	app.logger.Info("portal service starting", "port", app.cfg.Port, "version", BuildVersion)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		app.logger.Info("shutdown requested", "cause", context.Cause(ctx))
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down portal service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("portal service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// seed loads SEED_FILE into an empty database.
func (app *Application) seed(ctx context.Context) error {
	if app.cfg.SeedFile == "" {
		return nil
	}

	data, err := LoadSeedFile(app.cfg.SeedFile)
	if err != nil {
		return err
	}

	seeder := &service.SeedService{Store: app.db}
	err = seeder.Seed(slogx.WithContext(ctx, app.logger), data)
	if errors.Is(err, service.ErrSeedAlready) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	return nil
}

func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.NewCollector(app.registry)
}

// initServices initializes all business logic services.
func (app *Application) initServices(appKey []byte) {
	app.bus = events.NewBus()
	app.bus.OnError = app.metrics.TrackingFailed

	app.tracker = &service.SessionTracker{
		Store:        app.db,
		LoginGuards:  app.cfg.TrackLoginGuards,
		LogoutGuards: app.cfg.TrackLogoutGuards,
	}
	app.tracker.Register(app.bus)

	if untracked := service.UntrackedGuards(app.cfg.TrackLoginGuards, app.cfg.TrackLogoutGuards); len(untracked) > 0 {
		app.logger.Warn("logout tracking covers guards whose logins are never recorded",
			"guards", untracked,
			"login_guards", app.cfg.TrackLoginGuards,
			"logout_guards", app.cfg.TrackLogoutGuards,
		)
	}

	guards := make(map[string]service.Guard)
	for name, g := range guard.NewSet(app.db) {
		guards[name] = g
	}

	verifier := recaptcha.New(app.cfg.RecaptchaSecret, app.cfg.RecaptchaVerifyURL, app.cfg.RecaptchaMinScore)
	if _, noop := verifier.(recaptcha.Noop); noop {
		app.logger.Warn("RECAPTCHA_SECRET not set, reCAPTCHA verification is disabled")
	}

	app.loginService = &service.LoginService{
		Store:     app.db,
		Guards:    guards,
		Throttle:  throttle.NewLimiter(app.cfg.LoginMaxAttempts, app.cfg.LoginDecay),
		Recaptcha: verifier,
		Events:    app.bus,
		Metrics:   app.metrics,
		Access:    &service.AccessChecker{Store: app.db, AdminRoles: app.cfg.AdminRoles()},
		Tracer:    otel.Tracer("portalgate/service"),
	}

	app.gate = policy.NewGate(app.metrics)

	app.sessions = &websession.Manager{
		Store:      app.db,
		CookieName: app.cfg.SessionCookieName,
		Lifetime:   app.cfg.SessionLifetime,
		Secure:     app.cfg.SessionCookieSecure,
		Key:        appKey,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.StaleSessionAfter,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.sessions, app.logger)

	// Wire services to router
	router.LoginService = app.loginService
	router.Tracker = app.tracker
	router.Gate = app.gate
	router.MetricsHandler = metrics.Handler(app.registry)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
