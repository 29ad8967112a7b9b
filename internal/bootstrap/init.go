package bootstrap

import (
	"github.com/flowsentry/flowsentry/internal/artifact"
	"github.com/flowsentry/flowsentry/internal/config"
	"github.com/flowsentry/flowsentry/internal/config/structs"
	"github.com/flowsentry/flowsentry/pkg/inmemorycache"
)

// InitServing wires the serving process bottom-up: config, then the
// artifact registry and caches the handlers depend on.
func InitServing() {
	config.InitConfig(structs.GetAppConfig())
	appConfig := structs.GetAppConfig().Configs
	artifact.Init(appConfig.ModelPath)
	if appConfig.PredictionCacheEnabled {
		inmemorycache.Init(1)
	}
}
