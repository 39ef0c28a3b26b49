// Package server initializes and runs the application server. It selects the
// storage backend once at startup, wires the services, and exposes the HTTP
// endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"

	"github.com/heirloomhq/heirloom/internal/cryptox"
	"github.com/heirloomhq/heirloom/internal/logging"
	"github.com/heirloomhq/heirloom/internal/server/config"
	"github.com/heirloomhq/heirloom/internal/server/repositories/repomanager"
	"github.com/heirloomhq/heirloom/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger

	db     *sql.DB // nil when the in-memory backend is bound
	dbKind string  // "postgres" or "in-memory", fixed at startup

	UserService      *services.UserService
	MemoryService    *services.MemoryService
	CommentService   *services.CommentService
	StoryService     *services.StoryService
	HighlightService *services.HighlightService
	CapsuleService   *services.CapsuleService
	ImportService    *services.ImportService
	AccountService   *services.AccountService
}

// NewApp builds the application. The relational backend is attempted once:
// when opening, pinging or migrating fails, the in-memory store is bound for
// the lifetime of the process and the choice is never re-evaluated.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	s := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(s)

	codec, err := cryptox.New(cfg.MasterSecret)
	if err != nil {
		return nil, fmt.Errorf("codec init error: %w", err)
	}

	app := &App{config: cfg, logger: logger}

	manager := app.selectBackend(ctx, cfg)

	app.UserService = services.NewUserService(manager)
	app.MemoryService = services.NewMemoryService(manager, codec)
	app.CommentService = services.NewCommentService(manager, codec)
	app.StoryService = services.NewStoryService(manager, codec)
	app.HighlightService = services.NewHighlightService(manager)
	app.CapsuleService = services.NewCapsuleService(manager, codec)
	app.ImportService = services.NewImportService(manager)
	app.AccountService = services.NewAccountService(manager)

	return app, nil
}

// selectBackend returns the Postgres repository manager when the database is
// reachable and migrated, and the in-memory manager otherwise.
func (app *App) selectBackend(ctx context.Context, cfg *config.Config) repomanager.RepositoryManager {

	if cfg.UsePostgres {
		manager, err := app.initPostgres(ctx, cfg)
		if err == nil {
			app.dbKind = "postgres"
			app.logger.Info(ctx, "backend selected", "database", app.dbKind)
			return manager
		}
		app.logger.Warn(ctx, "relational backend unavailable, falling back to in-memory store", "error", err.Error())
	}

	manager, _ := repomanager.NewInMemoryRepositoryManager()
	app.dbKind = "in-memory"
	app.logger.Info(ctx, "backend selected", "database", app.dbKind)
	return manager
}

func (app *App) initPostgres(ctx context.Context, cfg *config.Config) (repomanager.RepositoryManager, error) {

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	backoff := retry.WithMaxRetries(3, retry.NewConstant(2*time.Second))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	manager, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := manager.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	app.db = db
	return manager, nil
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

// healthz reports the fixed startup decisions: encryption is always on and
// the database kind never changes while the process lives.
func (app *App) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":     "ok",
		"encryption": "enabled",
		"database":   app.dbKind,
	})
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", app.healthz)

	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http shutdown error", "error", err.Error())
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err.Error())
		}
	}
}
