package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/taylorconnect/hub/config"
	"github.com/taylorconnect/hub/internal/app"
	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/pkg/logger"
)

// defaultImpactValue is written for every impact key that has no row yet
const defaultImpactValue = "100"

var osExit = os.Exit

// runSeed makes sure the homepage impact block has a row for every statistic
func runSeed(ctx context.Context, appInstance app.AppInterface, appLogger logger.Logger) int {
	defer func() {
		if err := appInstance.Close(); err != nil {
			appLogger.WithField("error", err.Error()).Warn("Error releasing resources")
		}
	}()

	if err := appInstance.Bootstrap(); err != nil {
		appLogger.WithField("error", err.Error()).Error("Failed to bootstrap application")
		return 1
	}

	keys := make([]string, len(domain.StatTypes))
	for i, st := range domain.StatTypes {
		keys[i] = string(st)
	}

	entries, err := appInstance.GetContentService().SeedDefaults(ctx, domain.ImpactPage, domain.ImpactSection, keys, defaultImpactValue)
	for _, e := range entries {
		appLogger.WithFields(map[string]interface{}{
			"key":   e.Key,
			"value": e.Value,
		}).Info("Impact content present")
	}
	if err != nil {
		appLogger.WithField("error", err.Error()).Error("Failed to seed impact content")
		return 1
	}
	return 0
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	code := runSeed(ctx, app.NewApp(cfg, app.WithLogger(appLogger)), appLogger)
	cancel()
	osExit(code)
}
