package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/Achrafml23/nutrition-app/internal/auth/http"
	"github.com/Achrafml23/nutrition-app/internal/auth/service"
	"github.com/Achrafml23/nutrition-app/internal/auth/store"
	"github.com/Achrafml23/nutrition-app/internal/auth/store/drivers/sqlite"
	"github.com/Achrafml23/nutrition-app/pkg/jwtx"
	"github.com/Achrafml23/nutrition-app/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.Signer

	sessionService *service.SessionService
	userService    *service.UserService
	resetService   *service.PasswordResetService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized: logger,
// database with migrations applied, token signer, services, and the HTTP
// server. The first superuser is seeded here if the database is empty.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, err := jwtx.NewSigner([]byte(cfg.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer

	app.initServices()

	if err := app.seedSuperuser(); err != nil {
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
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

func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Signer:     app.signer,
		Store:      app.db,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
	}
	app.userService = &service.UserService{Store: app.db}
	app.resetService = &service.PasswordResetService{
		Signer:       app.signer,
		Store:        app.db,
		Mailer:       service.LogMailer{},
		ResetTTL:     app.cfg.ResetTokenTTL,
		FrontendHost: app.cfg.FrontendHost,
	}
}

func (app *Application) seedSuperuser() error {
	if app.cfg.FirstSuperuser == "" || app.cfg.FirstSuperuserPassword == "" {
		return nil
	}

	boot := &service.BootstrapService{
		Store:             app.db,
		SuperuserEmail:    app.cfg.FirstSuperuser,
		SuperuserPassword: app.cfg.FirstSuperuserPassword,
	}

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := boot.EnsureSuperuser(ctx); err != nil {
		return fmt.Errorf("failed to seed superuser: %w", err)
	}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		httpapi.CookieConfig{
			Secure:     app.cfg.Production(),
			RefreshTTL: app.cfg.RefreshTokenTTL,
		},
		app.db,
		app.logger,
	)
	router.SessionService = app.sessionService
	router.UserService = app.userService
	router.ResetService = app.resetService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
