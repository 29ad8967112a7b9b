package tracing

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	endpointEnv   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	samplerArgEnv = "OTEL_TRACES_SAMPLER_ARG"

	defaultSamplingRatio = 0.1
)

var (
	once sync.Once
	tp   *sdktrace.TracerProvider
)

// Init wires an OTLP gRPC exporter behind the global tracer provider.
// When TRACING_ENABLED is false or no collector endpoint is configured the
// service keeps running with the noop provider, so spans created by the
// gin middleware cost nothing.
func Init() {
	if !viper.GetBool("TRACING_ENABLED") {
		log.Info().Msg("Tracing is not enabled")
		return
	}
	once.Do(initProvider)
}

func initProvider() {
	ctx := context.Background()

	serviceName := viper.GetString("APP_NAME")
	collectorURL := viper.GetString(endpointEnv)
	if collectorURL == "" {
		log.Warn().Msgf("%s is not set, tracing stays disabled", endpointEnv)
		return
	}

	exporter, err := otlptrace.New(ctx,
		otlptracegrpc.NewClient(
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(collectorURL),
		),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create OTLP trace exporter, tracing stays disabled")
		return
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to build trace resource, tracing stays disabled")
		return
	}

	viper.SetDefault(samplerArgEnv, defaultSamplingRatio)
	samplingRatio := viper.GetFloat64(samplerArgEnv)

	tp = sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(samplingRatio))),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	log.Info().
		Str("collectorURL", collectorURL).
		Str("serviceName", serviceName).
		Float64("samplingRatio", samplingRatio).
		Msg("Tracer initialized")
}

// GetTracer returns a tracer for the given instrumentation name, falling
// back to a noop tracer when Init never configured a provider.
func GetTracer(name string) trace.Tracer {
	if tp == nil {
		return noop.NewTracerProvider().Tracer(name)
	}
	return tp.Tracer(name)
}

// Shutdown flushes buffered spans. Safe to call when tracing was never
// initialized.
func Shutdown(ctx context.Context) {
	if tp == nil {
		return
	}
	if err := tp.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Tracer shutdown failed")
		return
	}
	log.Info().Msg("Tracer shutdown complete")
}
