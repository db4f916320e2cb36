// Package server owns the application lifecycle: boot the support
// services, mount the kernel, serve, and shut down cleanly.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/risewynn/qellum/config"
	"github.com/risewynn/qellum/internal/kernel"
	"github.com/risewynn/qellum/pkg/cache"
	"github.com/risewynn/qellum/pkg/database"
	"github.com/risewynn/qellum/pkg/logger"
	"github.com/risewynn/qellum/pkg/storage"
)

// Start boots every subsystem and serves HTTP until interrupted.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := logger.ConnectSink(); err != nil {
		logger.Warn("server: log sink unavailable", "error", err)
	}
	defer logger.CloseSink()

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close()

	// Redis is an optimisation, not a dependency. Run without it.
	if err := cache.Connect(); err != nil {
		logger.Warn("server: cache unavailable, balance reads go to the database", "error", err)
	}
	defer cache.Close()

	storage.Connect()
	registerListeners()
	defer shutdownListeners()

	httpKernel := kernel.NewHTTPKernel()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
