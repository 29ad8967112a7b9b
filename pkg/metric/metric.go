package metric

import (
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ApiRequestCount   = "api_request_count"
	ApiRequestLatency = "api_request_latency"

	TagPath           = "path"
	TagMethod         = "method"
	TagHttpStatusCode = "http_status_code"
)

var (
	// It is safe to use one Client from multiple goroutines simultaneously
	client *statsd.Client

	// by default full sampling
	samplingRate = 1.0
)

// Init builds the statsd client from the environment. A missing or
// unreachable agent is not fatal; metrics become no-ops for the process.
func Init() {
	host := viper.GetString("STATSD_HOST")
	port := viper.GetString("STATSD_PORT")
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "8125"
	}
	if viper.IsSet("METRIC_SAMPLING_RATE") {
		samplingRate = viper.GetFloat64("METRIC_SAMPLING_RATE")
	}

	globalTags := []string{
		"env:" + viper.GetString("APP_ENV"),
		"service:" + viper.GetString("APP_NAME"),
	}

	c, err := statsd.New(host+":"+port, statsd.WithTags(globalTags))
	if err != nil {
		// In local/dev environments the agent may not be running; log and
		// continue instead of crashing the service.
		log.Error().Err(err).Msg("StatsD client initialization failed, metrics will be unavailable")
		return
	}
	client = c
	log.Info().Msgf("Metrics client initialized with address %s:%s and sampling rate %f", host, port, samplingRate)
}

func Incr(name string, tags []string) {
	Count(name, 1, tags)
}

func Count(name string, value int64, tags []string) {
	if client == nil {
		return
	}
	if err := client.Count(name, value, tags, samplingRate); err != nil {
		log.Warn().Err(err).Msg("statsd count failed")
	}
}

func Timing(name string, value time.Duration, tags []string) {
	if client == nil {
		return
	}
	if err := client.Timing(name, value, tags, samplingRate); err != nil {
		log.Warn().Err(err).Msg("statsd timing failed")
	}
}

func Gauge(name string, value float64, tags []string) {
	if client == nil {
		return
	}
	if err := client.Gauge(name, value, tags, samplingRate); err != nil {
		log.Warn().Err(err).Msg("statsd gauge failed")
	}
}

// NewTag formats a single statsd tag.
func NewTag(key, value string) string {
	return key + ":" + value
}

// BuildTag collects tags into the slice shape the statsd client expects.
func BuildTag(tags ...string) []string {
	return tags
}
