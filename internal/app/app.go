package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tonypeanut/fullstack-notes-full/internal/api"
	"github.com/tonypeanut/fullstack-notes-full/internal/config"
	"github.com/tonypeanut/fullstack-notes-full/internal/httpserver"
	"github.com/tonypeanut/fullstack-notes-full/internal/httpserver/deps"
	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
	"github.com/tonypeanut/fullstack-notes-full/internal/redis"
	"github.com/tonypeanut/fullstack-notes-full/internal/scheduler"
	"github.com/tonypeanut/fullstack-notes-full/internal/session"
	"github.com/tonypeanut/fullstack-notes-full/internal/syncer"
	"github.com/tonypeanut/fullstack-notes-full/internal/version"
	"github.com/tonypeanut/fullstack-notes-full/internal/web"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	session     *session.Store
	syncer      *syncer.Syncer
	refresher   *scheduler.Refresher
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Durable session storage - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}

	sess := session.New(session.NewRedisCell(redisClient), loggerClient)
	apiClient := api.New(cfg.APIBaseURL, cfg.RequestTimeout, sess.Token, loggerClient)
	sync := syncer.New(apiClient, loggerClient)

	refreshTrigger := make(chan struct{}, 1)

	// Keep the mirror coupled to the session lifecycle: logout drops all
	// local state, a fresh login forces an immediate re-sync.
	sess.Subscribe(func(token string) {
		if token == "" {
			sync.Clear()
			return
		}
		select {
		case refreshTrigger <- struct{}{}:
		default:
		}
	})

	// Pick up a token persisted before the last restart.
	if err := sess.Restore(context.Background()); err != nil {
		loggerClient.Warn("failed to restore persisted session", logger.Error(err))
	}

	renderer, err := web.NewRenderer(loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to parse templates: %v", err)
		os.Exit(1)
	}

	refresher := scheduler.NewRefresher(sync, sess, loggerClient, cfg.RefreshInterval, refreshTrigger)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		Session:        sess,
		Syncer:         sync,
		API:            apiClient,
		Renderer:       renderer,
		RefreshTrigger: refreshTrigger,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		session:     sess,
		syncer:      sync,
		refresher:   refresher,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting notes gateway v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("notesgw %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.refresher.Start(ctx)
	if a.cfg.RefreshInterval > 0 {
		a.logger.Info("background refresher started",
			logger.Duration("interval", a.cfg.RefreshInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		a.logger.Error("failed to stop http server cleanly", logger.Error(err))
	}

	if err := a.redisClient.Close(); err != nil {
		a.logger.Warn("failed to close redis client", logger.Error(err))
	}

	_ = a.logger.Sync()
	return nil
}
