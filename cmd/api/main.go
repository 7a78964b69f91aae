package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estatehub/internal/app"
	"estatehub/internal/server"

	logger "github.com/Bparsons0904/goLogger"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	log := logger.New("main").Function("run")

	estatehub, err := app.New()
	if err != nil {
		log.Er("failed to initialize app", err)
		return 1
	}
	defer func() {
		if err := estatehub.Close(); err != nil {
			log.Er("failed to close app", err)
		}
	}()

	appServer, err := server.New(estatehub)
	if err != nil {
		log.Er("failed to initialize server", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- appServer.Listen(estatehub.Config.ServerPort)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			log.Er("server stopped", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := appServer.Shutdown(shutdownCtx); err != nil {
		log.Er("server forced to shutdown", err)
		return 1
	}

	log.Info("graceful shutdown complete")
	return 0
}
