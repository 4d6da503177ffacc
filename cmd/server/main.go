package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/furyblack/blog-platform/api"
	"github.com/furyblack/blog-platform/api/validator"
	"github.com/furyblack/blog-platform/config"
	"github.com/furyblack/blog-platform/postgres"
	"github.com/furyblack/blog-platform/redis"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting blog-platform", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	connectCtx, connectCancel := context.WithTimeout(rootCtx, 10*time.Second)
	defer connectCancel()

	pg, err := postgres.Connect(connectCtx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("Could not connect to postgres", "error", err.Error())
		os.Exit(1)
	}
	defer pg.Close()
	if err := pg.EnsureSchema(connectCtx); err != nil {
		log.Error("Could not ensure schema", "error", err.Error())
		os.Exit(1)
	}

	cache, err := redis.Connect(connectCtx, cfg.Redis.Addr)
	if err != nil {
		log.Error("Could not connect to redis", "error", err.Error())
		os.Exit(1)
	}

	a := &api.API{
		Logger: log,
		DB:     pg,
		Cache:  cache,
		Val:    validator.New(),
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           a,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-rootCtx.Done():
		log.Info("Shutdown requested")
	case err := <-serveErr:
		if err != nil {
			log.Error("Server failed", "error", err.Error())
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown failed", "error", err.Error())
	}
	log.Info("Stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envLocal:
		fallthrough
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
