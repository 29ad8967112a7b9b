package structs

var (
	appConfig AppConfig
)

type AppConfig struct {
	Configs Configs
}

func (cfg *AppConfig) GetStaticConfig() interface{} {
	return &cfg.Configs
}

func GetAppConfig() *AppConfig {
	return &appConfig
}

type Configs struct {
	AppName                string  `mapstructure:"app_name"`
	AppEnv                 string  `mapstructure:"app_env"`
	AppLogLevel            string  `mapstructure:"app_log_level"`
	Port                   int     `mapstructure:"port"`
	ModelPath              string  `mapstructure:"model_path"`
	PredictionCacheEnabled bool    `mapstructure:"prediction_cache_enabled"`
	PredictionCacheTtlSec  int     `mapstructure:"prediction_cache_ttl_sec"`
	MetricSamplingRate     float64 `mapstructure:"metric_sampling_rate"`
	StatsdHost             string  `mapstructure:"statsd_host"`
	StatsdPort             string  `mapstructure:"statsd_port"`
}
