package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dverbeek/promptbooth/internal/config"
	"github.com/dverbeek/promptbooth/internal/handler"
	"github.com/dverbeek/promptbooth/internal/inject"
	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/samber/do"
)

func main() {
	configPath := flag.String("config", "", "path to the yaml config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.New(os.Stderr, false).Error("loading config failed", "error", err)
		os.Exit(1)
	}

	logger := log.New(os.Stderr, *debug || cfg.Debug)
	ctx := log.NewContext(context.Background(), logger)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	injector := inject.Setup(ctx, cfg)
	server := do.MustInvoke[*handler.Server](injector)

	// advisory only; the server comes up even when the backend is down
	server.CheckBackend(ctx)

	// requests carry the logger but not the signal context, so a shutdown
	// drains in-flight generations instead of cancelling them
	baseCtx := log.NewContext(context.Background(), logger)
	srv := &http.Server{
		Addr:        cfg.ListenAddress,
		Handler:     server.Routes(),
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "address", cfg.ListenAddress)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	_ = injector.Shutdown()
	logger.Info("shut down cleanly")
}
