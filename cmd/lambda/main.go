package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/taylorconnect/hub/config"
	"github.com/taylorconnect/hub/internal/app"
	"github.com/taylorconnect/hub/pkg/lambdahttp"
	"github.com/taylorconnect/hub/pkg/logger"
)

// The app is built once per container and reused across invocations
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	appInstance := app.NewApp(cfg, app.WithLogger(appLogger))
	if err := appInstance.Initialize(); err != nil {
		appLogger.WithField("error", err.Error()).Fatal("Failed to initialize application")
	}

	appLogger.Info("Serving API Gateway events")
	lambda.Start(lambdahttp.New(appInstance.Handler()).Proxy)
}
