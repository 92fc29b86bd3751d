package main

import (
	"context"
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/config"
	"github.com/iliyamo/room-booking/internal/database"
	"github.com/iliyamo/room-booking/internal/handler"
	"github.com/iliyamo/room-booking/internal/logger"
	"github.com/iliyamo/room-booking/internal/queue"
	"github.com/iliyamo/room-booking/internal/repository"
	"github.com/iliyamo/room-booking/internal/router"
	"github.com/iliyamo/room-booking/internal/service"
)

var configModule = fx.Module("config",
	fx.Provide(
		config.Load,
		func(cfg config.Config) (*zap.Logger, error) { return logger.New(cfg.Log) },
	),
)

var storageModule = fx.Module("storage",
	fx.Provide(
		newDB,
		newRedis,
	),
)

var repositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(repository.NewUserRepo, fx.As(new(handler.UserStore))),
		fx.Annotate(repository.NewBookingRepo, fx.As(new(handler.BookingStore))),
		fx.Annotate(repository.NewGameRoomRepo, fx.As(new(handler.GameRoomStore))),
		fx.Annotate(repository.NewCinemaRoomRepo, fx.As(new(handler.CinemaRoomStore))),
		fx.Annotate(
			func(cfg config.Config, log *zap.Logger) service.StatusPublisher {
				return service.NewStatusPublisher(cfg.Queue, log)
			},
			fx.As(new(handler.EventPublisher)),
		),
	),
)

var handlerModule = fx.Module("handler",
	fx.Provide(
		handler.NewAuthHandler,
		handler.NewBookingHandler,
		handler.NewAdminHandler,
		func(cfg config.Config, rdb *redis.Client, log *zap.Logger) router.Deps {
			return router.Deps{Cfg: cfg, Redis: rdb, Log: log}
		},
		router.New,
	),
	fx.Invoke(registerRoutes),
)

// newDB opens the pool, applies the schema when enabled and watches the pool
// for the lifetime of the app.
func newDB(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*sql.DB, error) {
	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go database.WatchPool(ctx, db, cfg.DB.HealthInterval, log)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return db.Close()
		},
	})
	return db, nil
}

// newRedis may return nil; caching and rate limiting are then disabled.
func newRedis(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) *redis.Client {
	rdb := config.NewRedisClient(cfg.Redis, log)
	if rdb != nil {
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return rdb.Close() }})
	}
	return rdb
}

func registerRoutes(
	e *echo.Echo,
	db *sql.DB,
	d router.Deps,
	auth *handler.AuthHandler,
	bookings *handler.BookingHandler,
	admin *handler.AdminHandler,
) {
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, auth, d)
	router.RegisterBooking(e, bookings, d)
	router.RegisterAdmin(e, admin, d)
}

// startConsumer runs the status event consumer in the background when it is
// enabled.
func startConsumer(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) {
	if !cfg.Queue.ConsumerEnabled {
		return
	}
	c := &queue.Consumer{URL: cfg.Queue.URL, Queue: cfg.Queue.Name, LogPath: cfg.Queue.LogPath, Log: log}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := c.Run(ctx); err != nil && ctx.Err() == nil {
					log.Error("status consumer stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(stop context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stop.Done():
			}
			return nil
		},
	})
}
