package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/maturity-backend/internal/data/db"
	"github.com/yungbote/maturity-backend/internal/http"
	httpH "github.com/yungbote/maturity-backend/internal/http/handlers"
	"github.com/yungbote/maturity-backend/internal/observability"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients

	pg           *db.PostgresService
	otelShutdown func(context.Context) error
}

var openDatabase = db.NewPostgresService

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	LoadEnvFiles(log)
	log.Info("Loading environment variables...")
	return newWithConfig(ctx, log, LoadConfig(log))
}

// newWithConfig owns everything it opens: on error it is all closed again.
func newWithConfig(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	pg, err := openDatabase(log, cfg.DB)
	if err != nil {
		if otelShutdown != nil {
			_ = otelShutdown(ctx)
		}
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}

	a := &App{
		Log:          log,
		DB:           pg.DB(),
		Cfg:          cfg,
		pg:           pg,
		otelShutdown: otelShutdown,
	}
	if err := a.wire(ctx); err != nil {
		a.Close(ctx)
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context) error {
	if err := db.AutoMigrateAll(a.DB); err != nil {
		return fmt.Errorf("database automigrate: %w", err)
	}

	clients, err := wireClients(ctx, a.Log, a.Cfg)
	if err != nil {
		return err
	}
	a.Clients = clients
	a.Repos = wireRepos(a.DB, a.Log)

	a.Services, err = wireServices(a.DB, a.Log, a.Cfg, a.Repos, a.Clients)
	if err != nil {
		return err
	}

	if err := httpH.RegisterValidators(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}
	handlerset := wireHandlers(a.DB, a.Log, a.Services)
	middleware := wireMiddleware(a.Log, a.Services)
	a.Router = wireRouter(a.Log, a.Cfg, handlerset, middleware)
	return nil
}

// Run serves the router until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("HTTP server listening", "addr", addr)
	srv := &http.Server{Engine: a.Router}
	return srv.Run(ctx, addr)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.pg != nil {
		if err := a.pg.Close(); err != nil && a.Log != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
