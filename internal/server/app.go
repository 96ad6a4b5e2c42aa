// Package server initializes and runs the backend: it opens the database,
// applies migrations, wires the service layer to object storage and the
// summarization model, and serves the REST API until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jkuschner/Document-Storage-App/internal/logging"
	"github.com/jkuschner/Document-Storage-App/internal/server/config"
	internalhttp "github.com/jkuschner/Document-Storage-App/internal/server/http"
	"github.com/jkuschner/Document-Storage-App/internal/server/repositories/repomanager"
	"github.com/jkuschner/Document-Storage-App/internal/server/services"
	"github.com/jkuschner/Document-Storage-App/internal/server/storage"
)

const sharePurgeInterval = time.Hour

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	repomanager  repomanager.RepositoryManager
	httpServer   *internalhttp.Server
	shareService *services.ShareService
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	store := storage.NewObjectStore(cfg)

	userService := services.NewUserService(db, rm, cfg, logger)
	fileService := services.NewFileService(db, rm, store, logger)
	shareService := services.NewShareService(db, rm, store, cfg, logger)
	summaryService := services.NewSummaryService(db, rm, store, cfg, logger)

	httpServer := internalhttp.NewServer(cfg, userService, fileService, shareService, summaryService, logger)

	return &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		repomanager:  rm,
		httpServer:   httpServer,
		shareService: shareService,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) runSharePurge(ctx context.Context) {
	ticker := time.NewTicker(sharePurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.shareService.PurgeExpired(ctx)
			if err != nil {
				app.logger.Warn(ctx, "share purge failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "expired shares purged", "count", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runSharePurge(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close failed", "error", err)
	}
	return nil
}
