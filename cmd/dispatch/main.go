package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/taylorconnect/hub/config"
	"github.com/taylorconnect/hub/internal/app"
	"github.com/taylorconnect/hub/pkg/logger"
)

var osExit = os.Exit

// runDispatch runs one pass over the due chat notifications. A pass with any
// errored notification counts as a failure.
func runDispatch(ctx context.Context, appInstance app.AppInterface, appLogger logger.Logger) int {
	defer func() {
		if err := appInstance.Close(); err != nil {
			appLogger.WithField("error", err.Error()).Warn("Error releasing resources")
		}
	}()

	if err := appInstance.Bootstrap(); err != nil {
		appLogger.WithField("error", err.Error()).Error("Failed to bootstrap application")
		return 1
	}

	result, err := appInstance.GetDispatchService().Run(ctx)
	if err != nil {
		appLogger.WithField("error", err.Error()).Error("Dispatch pass failed")
		return 1
	}

	appLogger.WithFields(map[string]interface{}{
		"sent":       result.Sent,
		"suppressed": result.Suppressed,
		"errored":    result.Errored,
	}).Info("Dispatch pass finished")

	if result.Errored > 0 {
		return 1
	}
	return 0
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	code := runDispatch(ctx, app.NewApp(cfg, app.WithLogger(appLogger)), appLogger)
	stop()
	osExit(code)
}
