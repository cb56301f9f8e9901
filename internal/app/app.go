package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/levelpath-backend/internal/db"
	httpx "github.com/yungbote/levelpath-backend/internal/http"
	"github.com/yungbote/levelpath-backend/internal/jobs"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/realtime"
	"github.com/yungbote/levelpath-backend/internal/realtime/bus"
	"github.com/yungbote/levelpath-backend/internal/services"
)

type App struct {
	Log       *logger.Logger
	Cfg       *Config
	Database  db.DatabaseService
	Repos     Repos
	Services  services.Set
	SSEHub    *realtime.SSEHub
	Server    *httpx.Server
	Scheduler *jobs.Scheduler

	sseBus bus.Bus
	cancel context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := db.NewDatabaseService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}

	hub := realtime.NewSSEHub(log)

	var sseBus bus.Bus
	if cfg.RedisBusEnabled {
		sseBus, err = bus.NewRedisBus(log)
		if err != nil {
			log.Warn("redis SSE bus unavailable; running with local hub only", "error", err)
			sseBus = nil
		}
	}

	reposet := wireRepos(database.DB(), log)
	serviceset := wireServices(database.DB(), log, cfg, reposet, hub, sseBus)
	handlerset := wireHandlers(serviceset, hub)
	authMW := wireMiddleware(log, serviceset)
	server := wireRouter(log, handlerset, authMW)

	var scheduler *jobs.Scheduler
	if cfg.EnableScheduler {
		scheduler = jobs.NewScheduler(log, serviceset.Daily)
	}

	return &App{
		Log:       log,
		Cfg:       cfg,
		Database:  database,
		Repos:     reposet,
		Services:  serviceset,
		SSEHub:    hub,
		Server:    server,
		Scheduler: scheduler,
		sseBus:    sseBus,
	}, nil
}

// Start launches the background pieces: the cross-instance SSE forwarder and
// the cron scheduler.
func (a *App) Start() error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.sseBus != nil {
		if err := a.sseBus.StartForwarder(ctx, a.SSEHub.Broadcast); err != nil {
			return fmt.Errorf("start SSE forwarder: %w", err)
		}
	}
	if a.Scheduler != nil {
		if err := a.Scheduler.Start(); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}
	return nil
}

func (a *App) Run() error {
	return a.Server.Run(":" + a.Cfg.Port)
}

func (a *App) Shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.sseBus != nil {
		_ = a.sseBus.Close()
	}
	if a.Database != nil {
		_ = a.Database.Close()
	}
	a.Log.Sync()
}
