package predict

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/flowsentry/flowsentry/internal/artifact"
	"github.com/flowsentry/flowsentry/pkg/inmemorycache"
	"github.com/flowsentry/flowsentry/pkg/metric"
	"github.com/flowsentry/flowsentry/pkg/tracing"
)

const (
	requestTypePredict = "predict"
	tracerName         = "github.com/flowsentry/flowsentry/internal/serving/handlers/predict"
)

// HandlerV1 serves single-record predictions against the loaded artifact.
type HandlerV1 struct {
	registry     *artifact.Registry
	cache        inmemorycache.InMemoryCache
	cacheEnabled bool
	cacheTtlSec  int
}

// Predict handles POST /predict.
func (h *HandlerV1) Predict(ctx *gin.Context) {
	startTime := time.Now()
	tags := metric.BuildTag(metric.NewTag("request_type", requestTypePredict))
	metric.Incr("predict_request", tags)

	pkg, err := h.registry.Load()
	if err != nil {
		metric.Incr("predict_request_5xx", tags)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Model not loaded"})
		return
	}

	if !isJSONContentType(ctx.ContentType()) {
		metric.Incr("predict_request_4xx", tags)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Expected JSON body"})
		return
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		metric.Incr("predict_request_4xx", tags)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Expected JSON body"})
		return
	}
	payload, err := parsePayload(body)
	if err != nil {
		metric.Incr("predict_request_4xx", tags)
		if errors.Is(err, ErrNotObject) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Expected JSON object (dictionary)"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Expected JSON body"})
		return
	}

	schema := pkg.RequiredFeatures()
	vector, err := validateFeatures(payload, schema)
	if err != nil {
		var missingErr *MissingFieldsError
		var typeErr *TypeErrorsError
		switch {
		case errors.As(err, &missingErr):
			metric.Incr("predict_request_4xx", tags)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "missing_fields": missingErr.Fields})
		case errors.As(err, &typeErr):
			metric.Incr("predict_request_4xx", tags)
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Wrong types for fields", "details": typeErr.Details})
		default:
			log.Error().Err(err).Msg("Unexpected failure while preparing prediction input")
			metric.Incr("predict_request_5xx", tags)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error while preparing input"})
		}
		return
	}

	var key []byte
	if h.cacheEnabled {
		key = cacheKey(vector)
		if cached, ok := lookupCachedResponse(h.cache, key, tags); ok {
			metric.Timing("predict_request_latency", time.Since(startTime), tags)
			ctx.JSON(http.StatusOK, cached)
			return
		}
	}

	_, span := tracing.GetTracer(tracerName).Start(ctx.Request.Context(), "predict.pipeline")
	response, err := infer(pkg.Pipeline, pkg.Codec, vector)
	span.End()
	if err != nil {
		log.Error().Err(err).Msg("Prediction failed")
		metric.Incr("predict_request_5xx", tags)
		var inferenceErr *InferenceError
		message := err.Error()
		if errors.As(err, &inferenceErr) {
			message = inferenceErr.Cause.Error()
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during prediction", "message": message})
		return
	}

	if h.cacheEnabled {
		storeCachedResponse(h.cache, key, response, h.cacheTtlSec)
	}

	metric.Timing("predict_request_latency", time.Since(startTime), tags)
	ctx.JSON(http.StatusOK, response)
}
