package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/flowsentry/flowsentry/internal/artifact"
	"github.com/flowsentry/flowsentry/internal/bootstrap"
	"github.com/flowsentry/flowsentry/internal/config/structs"
	"github.com/flowsentry/flowsentry/internal/server"
	"github.com/flowsentry/flowsentry/internal/server/api"
	"github.com/flowsentry/flowsentry/pkg/httpframework"
	"github.com/flowsentry/flowsentry/pkg/logger"
	"github.com/flowsentry/flowsentry/pkg/metric"
	"github.com/flowsentry/flowsentry/pkg/profiling"
	"github.com/flowsentry/flowsentry/pkg/tracing"
)

func main() {
	bootstrap.InitServing()
	appConfig := structs.GetAppConfig().Configs
	logger.InitLogger(appConfig.AppName, appConfig.AppLogLevel)
	metric.Init()
	tracing.Init()
	defer tracing.Shutdown(context.Background())
	profiling.Init()

	// Eagerly load the artifact; a failure degrades to "model not loaded"
	// rather than crashing the process (restart to reload the model).
	if _, err := artifact.Instance().Load(); err != nil {
		log.Error().Err(err).Msg("Failed to load model at startup, serving will report model not loaded")
	}

	httpframework.Init()
	api.Init()
	server.InitServer(appConfig.Port)
}
