// Package server wires the gophnotes backend together: configuration,
// logging, storage, services and the HTTP and gRPC transports. It also
// handles graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/config"
	"github.com/dmitrijs2005/gophnotes/internal/server/httpapi"
	"github.com/dmitrijs2005/gophnotes/internal/server/objectstore"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"

	gs "github.com/dmitrijs2005/gophnotes/internal/server/grpc"
)

// seams for tests
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepositoryManager = func() repomanager.RepositoryManager {
		return repomanager.NewPostgresRepositoryManager()
	}
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	limiter     httpapi.RateLimiter
	userService *services.UserService
	noteService *services.NoteService
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	us := services.NewUserService(db, rm, auth.NewBcryptHasher(c.BcryptCost), logger, c)
	ns := services.NewNoteService(db, rm, objectstore.NewS3Store(c), logger)

	app := &App{config: c, logger: logger, db: db, userService: us, noteService: ns}
	app.limiter = app.newRateLimiter(ctx)

	return app, nil
}

// newRateLimiter prefers Redis when configured and falls back to memory
// when Redis is unreachable at startup.
func (app *App) newRateLimiter(ctx context.Context) httpapi.RateLimiter {
	if app.config.RateLimitPerMinute <= 0 {
		return nil
	}
	if app.config.RedisAddr != "" {
		rl, err := httpapi.NewRedisRateLimiter(ctx, app.config.RedisAddr, app.config.RedisPassword, app.config.RedisDB, app.logger)
		if err == nil {
			return rl
		}
		app.logger.Warn(ctx, "redis unavailable, using in-memory rate limiter", "error", err)
	}
	return httpapi.NewMemoryRateLimiter()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	router := httpapi.NewRouter(httpapi.Options{
		Users:              app.userService,
		Notes:              app.noteService,
		DB:                 app.db,
		Limiter:            app.limiter,
		RateLimitPerMinute: app.config.RateLimitPerMinute,
		SecretKey:          app.config.SecretKey,
		Logger:             app.logger,
	})

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, router.Handler(), app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.db, app.config.HealthCheckInterval, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails,
// then releases the database and rate limiter.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.close(ctx)
}

func (app *App) close(ctx context.Context) {
	if app.limiter != nil {
		app.limiter.Close()
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
