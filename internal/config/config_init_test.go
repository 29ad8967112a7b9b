package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/flowsentry/flowsentry/internal/config/structs"
)

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	appConfig := &structs.AppConfig{}
	InitConfig(appConfig)

	assert.Equal(t, "flowsentry", appConfig.Configs.AppName)
	assert.Equal(t, 5000, appConfig.Configs.Port)
	assert.Equal(t, "ids_pipeline.json", appConfig.Configs.ModelPath)
	assert.Equal(t, "INFO", appConfig.Configs.AppLogLevel)
	assert.False(t, appConfig.Configs.PredictionCacheEnabled)
}

func TestInitConfigFromEnv(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	t.Setenv("PORT", "8080")
	t.Setenv("MODEL_PATH", "/models/pipeline.json")
	t.Setenv("PREDICTION_CACHE_ENABLED", "true")
	t.Setenv("APP_ENV", "staging")

	appConfig := &structs.AppConfig{}
	InitConfig(appConfig)

	assert.Equal(t, 8080, appConfig.Configs.Port)
	assert.Equal(t, "/models/pipeline.json", appConfig.Configs.ModelPath)
	assert.True(t, appConfig.Configs.PredictionCacheEnabled)
	assert.Equal(t, "staging", appConfig.Configs.AppEnv)
}
