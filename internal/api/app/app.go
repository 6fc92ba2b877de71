package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/so-ota-biz/fridge-chef/internal/api/http"
	"github.com/so-ota-biz/fridge-chef/internal/api/identity"
	"github.com/so-ota-biz/fridge-chef/internal/api/service"
	"github.com/so-ota-biz/fridge-chef/internal/api/store"
	"github.com/so-ota-biz/fridge-chef/internal/api/store/drivers/sqlite"
	"github.com/so-ota-biz/fridge-chef/pkg/cookiex"
	"github.com/so-ota-biz/fridge-chef/pkg/cryptox"
	"github.com/so-ota-biz/fridge-chef/pkg/jwtx"
	"github.com/so-ota-biz/fridge-chef/pkg/slogx"
)

const (
	// BuildVersion is overridden at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the API service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	codec    *jwtx.Codec
	identity identity.Provider

	sessionService      *service.SessionService
	userService         *service.UserService
	recordService       *service.RecordService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New validates cfg and initializes every dependency.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "fridge-chef-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	codec, err := jwtx.NewCodec(jwtx.Config{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  cfg.AccessTokenMaxAge,
		RefreshTTL: cfg.RefreshTokenMaxAge,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("api service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"require_email_confirmation", app.cfg.RequireEmailConfirmation,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the HTTP server, stops housekeeping and closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down api service...")

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

	app.logger.Info("api service stopped")
	return nil
}

// initDatabase opens the database and applies migrations. The pragmas go in
// the DSN so every pooled connection gets them.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		app.cfg.DatabaseFile,
	)
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

func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	app.identity = &identity.Local{
		Store:  app.db,
		Hasher: cryptox.NewPasswordHasher(pepper),
		Notifier: identity.LogNotifier{
			Logger:  app.logger,
			BaseURL: app.cfg.PublicBaseURL,
		},
		Logger:              app.logger,
		RequireConfirmation: app.cfg.RequireEmailConfirmation,
		ConfirmationTTL:     app.cfg.ConfirmationTokenTTL,
	}

	app.sessionService = &service.SessionService{
		Identity: app.identity,
		Store:    app.db,
		Codec:    app.codec,
	}
	app.userService = &service.UserService{Identity: app.identity, Store: app.db}
	app.recordService = &service.RecordService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

func (app *Application) initHTTP() {
	cookies := &httpapi.Cookies{
		Policy: cookiex.NewPolicy(cookiex.Config{
			Secure:     app.cfg.CookieSecure,
			SameSite:   app.cfg.CookieSameSite,
			Domain:     app.cfg.CookieDomain,
			Production: app.cfg.Production(),
		}, app.logger),
		AccessMaxAge:  app.cfg.AccessTokenMaxAge,
		RefreshMaxAge: app.cfg.RefreshTokenMaxAge,
		CSRFMaxAge:    app.cfg.CSRFTokenMaxAge,
	}

	router := httpapi.NewRouter(app.codec, cookies, BuildVersion, app.db, app.logger)
	router.SessionService = app.sessionService
	router.UserService = app.userService
	router.RecordService = app.recordService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
