package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/iliyamo/room-booking/internal/config"
)

// startServer binds the HTTP listener when the app starts and drains it on
// stop.
func startServer(lc fx.Lifecycle, e *echo.Echo, cfg config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			addr := ":" + cfg.App.Port
			log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.App.Env))
			go func() {
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down")
			return e.Shutdown(ctx)
		},
	})
}

func appOptions() fx.Option {
	return fx.Options(
		configModule,
		storageModule,
		repositoryModule,
		handlerModule,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Invoke(startConsumer, startServer),
	)
}

func main() {
	app := fx.New(appOptions())

	if err := app.Start(context.Background()); err != nil {
		// the logger may not exist yet
		fmt.Fprintln(os.Stderr, "startup failed:", err)
		os.Exit(1)
	}

	<-app.Done()

	ctx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "shutdown failed:", err)
		os.Exit(1)
	}
}
