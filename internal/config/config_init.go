package config

import (
	"log"

	"github.com/spf13/viper"

	"github.com/flowsentry/flowsentry/internal/config/structs"
)

const (
	defaultPort      = 5000
	defaultModelPath = "ids_pipeline.json"
)

// InitConfig reads the static configuration from the environment into the
// given AppConfig. Uses the stdlib logger since it runs before the zerolog
// setup.
func InitConfig(appConfig *structs.AppConfig) {
	viper.AutomaticEnv()
	staticConfig := appConfig.GetStaticConfig()
	cfg, ok := staticConfig.(*structs.Configs)
	if !ok {
		log.Fatal("Failed to cast static config to *Configs")
	}
	bindEnvVars()
	setDefaults()
	if err := viper.Unmarshal(cfg); err != nil {
		log.Fatalf("Failed to unmarshal config from environment: %v", err)
	}
}

func bindEnvVars() {
	viper.BindEnv("app_name", "APP_NAME")
	viper.BindEnv("app_env", "APP_ENV")
	viper.BindEnv("app_log_level", "APP_LOG_LEVEL")
	viper.BindEnv("port", "PORT")
	viper.BindEnv("model_path", "MODEL_PATH")
	viper.BindEnv("prediction_cache_enabled", "PREDICTION_CACHE_ENABLED")
	viper.BindEnv("prediction_cache_ttl_sec", "PREDICTION_CACHE_TTL_SEC")
	viper.BindEnv("metric_sampling_rate", "METRIC_SAMPLING_RATE")
	viper.BindEnv("statsd_host", "STATSD_HOST")
	viper.BindEnv("statsd_port", "STATSD_PORT")
}

func setDefaults() {
	viper.SetDefault("app_name", "flowsentry")
	viper.SetDefault("app_log_level", "INFO")
	viper.SetDefault("port", defaultPort)
	viper.SetDefault("model_path", defaultModelPath)
}
