package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/ltj54/restructuring/internal/server/http"
	"github.com/ltj54/restructuring/internal/server/service"
	"github.com/ltj54/restructuring/internal/server/store"
	"github.com/ltj54/restructuring/internal/server/store/drivers/postgres"
	"github.com/ltj54/restructuring/internal/server/store/drivers/sqlite"
	"github.com/ltj54/restructuring/pkg/httpx"
	"github.com/ltj54/restructuring/pkg/jwtx"
	"github.com/ltj54/restructuring/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application wires configuration, storage, services and the HTTP surface
// together and owns their lifecycle.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	codec *jwtx.Codec

	server *http.Server
	router *httpapi.Router
}

// New builds the application. Key material is validated here: a missing or
// undersized signing secret aborts startup rather than letting the process
// serve unverifiable tokens.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: cfg.AppName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	key, err := jwtx.LoadSigningKey(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("load signing key: %w", err)
	}
	app.codec = jwtx.NewCodec(key, cfg.TokenTTL.Duration)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("server starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database_driver", app.cfg.DatabaseDriver,
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

// Shutdown drains in-flight requests within the grace period and closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod.Duration)
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

	app.logger.Info("server stopped")
	return nil
}

func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.DatabaseDSN)
	default:
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseDSN)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := app.db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(
		httpapi.Config{
			AppName: app.cfg.AppName,
			Version: BuildVersion,
			Env:     app.cfg.Env,
			Port:    app.cfg.Port,
			CORS:    httpx.CORSConfig{AllowedOrigins: app.cfg.CORSAllowedOrigins},
		},
		app.codec,
		&service.PrincipalResolver{Store: app.db},
		app.db,
		app.logger,
	)

	app.router.AuthService = &service.AuthService{Store: app.db, Codec: app.codec}
	app.router.UserService = &service.UserService{Store: app.db}
	app.router.JournalService = &service.JournalService{Store: app.db}
	app.router.PlanService = &service.PlanService{Store: app.db}
	app.router.InsuranceService = &service.InsuranceService{Store: app.db}
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
