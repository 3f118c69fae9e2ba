package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"time"

	httpapi "github.com/aussiebroadwan/arcade/internal/auth/http"
	"github.com/aussiebroadwan/arcade/internal/auth/metrics"
	"github.com/aussiebroadwan/arcade/internal/auth/service"
	"github.com/aussiebroadwan/arcade/internal/auth/store"
	"github.com/aussiebroadwan/arcade/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/arcade/pkg/cryptox"
	"github.com/aussiebroadwan/arcade/pkg/httpx"
	"github.com/aussiebroadwan/arcade/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// pepperSize is the number of random bytes in a generated pepper.
const pepperSize = 32

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	keys   *AuthKeys
	hasher *cryptox.PasswordHasher
	issuer *service.TokenIssuer

	// Services
	userService *service.UserService
	mfaService  *service.MFAService

	// HTTP server
	trustedProxies []netip.Prefix
	registry       *prometheus.Registry
	server   *http.Server
	router   *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
// logOutput may be nil for stdout.
func New(cfg Config, logOutput io.Writer) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  logOutput,
		}),
	}

	proxies, err := httpx.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	app.trustedProxies = proxies

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	pepper, err := cryptox.LoadOrCreateSecret(cfg.PepperFile, pepperSize)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher, err = cryptox.NewPasswordHasher(string(pepper))
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	app.keys, err = InitAuthKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Users provisions accounts. Used by the admin CLI.
func (app *Application) Users() *service.UserService { return app.userService }

// MFA manages second factor enrolment. Used by the admin CLI.
func (app *Application) MFA() *service.MFAService { return app.mfaService }

// Handler is the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run listens on the configured port and serves until ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.server.Addr, err)
	}
	return app.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (app *Application) Serve(ctx context.Context, ln net.Listener) error {
	app.logger.Info("auth service starting", "addr", ln.Addr().String(), "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		_ = app.db.Close()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		app.logger.Info("shutdown requested", "cause", context.Cause(ctx))
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		<-serverErrors
		return nil
	}
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.Close(); err != nil {
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// Close releases the database without touching the HTTP server. The admin
// CLI uses it in place of Shutdown.
func (app *Application) Close() error {
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
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

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.issuer = &service.TokenIssuer{
		Signer:       app.keys.Signer,
		Issuer:       app.cfg.Issuer,
		AccessTTL:    app.cfg.AccessTTL,
		RefreshTTL:   app.cfg.RefreshTTL,
		TwoFactorTTL: app.cfg.TwoFactorTTL,
	}

	app.userService = &service.UserService{Store: app.db, Hasher: app.hasher}
	app.mfaService = &service.MFAService{Store: app.db, Issuer: app.cfg.Issuer}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.RegisterMetrics(app.registry)

	router := httpapi.NewRouter(
		app.keys.KeySet,
		app.keys.Signer,
		app.keys.Verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// The two flows differ only in authenticator and success strategy
	router.PasswordAuthenticator = &service.PasswordAuthenticator{Store: app.db, Hasher: app.hasher}
	router.SecondFactorAuthenticator = &service.SecondFactorAuthenticator{Store: app.db, Verifier: app.keys.Verifier}
	router.PrimarySuccess = service.PrimarySuccess{Issuer: app.issuer}
	router.SecondFactorSuccess = service.SecondFactorSuccess{Issuer: app.issuer}

	router.TokenLimit = app.cfg.TokenLimit
	router.PublicLimit = app.cfg.PublicLimit
	router.TrustedProxies = app.trustedProxies
	router.Metrics = promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{Registry: app.registry})
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
