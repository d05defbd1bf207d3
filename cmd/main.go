package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/orderhub/order-admin/internal/app"
	"github.com/orderhub/order-admin/internal/catalog"
	"github.com/orderhub/order-admin/internal/config"
	"github.com/orderhub/order-admin/internal/gateway"
	"github.com/orderhub/order-admin/internal/web"
)

func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	gw := gateway.New(logger, gateway.Config{
		BaseURL:           conf.API.BaseURL,
		Timeout:           conf.API.Timeout,
		RetryMaxAttempts:  conf.API.RetryMaxAttempts,
		RetryInitialDelay: conf.API.RetryInitialDelay,
		RetryMaxDelay:     conf.API.RetryMaxDelay,
		RetryMultiplier:   conf.API.RetryMultiplier,
		CreateSyncDelay:   conf.API.CreateSyncDelay,
	})
	products := catalog.New()

	handler, err := web.NewHandler(logger, gw, products, conf.API.ReconcileDelay)
	panicIfErr("failed to create web handler", err)

	app := app.New(logger, conf)
	app.SetHTTPHandlers(handler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app.Start(ctx)
	<-ctx.Done()
	app.Stop()
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
