package predict

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowsentry/flowsentry/internal/artifact"
	"github.com/flowsentry/flowsentry/internal/pipeline"
)

func newLoadedRegistry(t *testing.T, p pipeline.Pipeline, schema []string, labelMapping map[string]any) *artifact.Registry {
	t.Helper()
	codec, err := artifact.BuildLabelCodec(labelMapping)
	require.NoError(t, err)
	return artifact.NewRegistryWithLoader("test", func(string) (*artifact.Package, error) {
		return &artifact.Package{
			Pipeline:            p,
			RequiredRawFeatures: &schema,
			LabelMapping:        labelMapping,
			Codec:               codec,
		}, nil
	})
}

func performPredictWithContentType(handler *HandlerV1, body, contentType string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	handler.Predict(c)
	return w
}

func performPredict(handler *HandlerV1, body string) *httptest.ResponseRecorder {
	return performPredictWithContentType(handler, body, "application/json")
}

func TestPredictEndToEnd(t *testing.T) {
	stub := &pipeline.MockPipeline{}
	batch := [][]float64{{1, 2.5}}
	stub.On("Predict", batch).Return([]any{1}, nil)
	stub.On("PredictProba", batch).Return([][]float64{{0.1, 0.9}}, nil)

	registry := newLoadedRegistry(t, stub, []string{"a", "b"}, map[string]any{"1": "DDoS"})
	handler := NewHandlerV1(registry, nil, 0)

	w := performPredict(handler, `{"a": 1, "b": "2.5"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var response PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "DDoS", response.Prediction)
	assert.Equal(t, 0.9, response.Confidence)
}

func TestPredictMissingFields(t *testing.T) {
	registry := newLoadedRegistry(t, &pipeline.MockPipeline{}, []string{"a", "b"}, nil)
	handler := NewHandlerV1(registry, nil, 0)

	// "a" has a bad type, but the type check must not run on a request with
	// missing fields.
	w := performPredict(handler, `{"a": "x"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error         string   `json:"error"`
		MissingFields []string `json:"missing_fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Missing required fields", body.Error)
	assert.Equal(t, []string{"b"}, body.MissingFields)
}

func TestPredictTypeErrors(t *testing.T) {
	registry := newLoadedRegistry(t, &pipeline.MockPipeline{}, []string{"a", "b"}, nil)
	handler := NewHandlerV1(registry, nil, 0)

	w := performPredict(handler, `{"a": true, "b": {"nested": 1}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Wrong types for fields", body.Error)
	assert.Len(t, body.Details, 2)
}

func TestPredictModelNotLoaded(t *testing.T) {
	registry := artifact.NewRegistryWithLoader("test", func(string) (*artifact.Package, error) {
		return nil, artifact.ErrNotFound
	})
	handler := NewHandlerV1(registry, nil, 0)

	w := performPredict(handler, `{"a": 1}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Model not loaded")
}

func TestPredictRejectsNonJSONContentType(t *testing.T) {
	// No expectations on the stub: the request must be rejected before the
	// pipeline is ever consulted.
	registry := newLoadedRegistry(t, &pipeline.MockPipeline{}, []string{"a"}, nil)
	handler := NewHandlerV1(registry, nil, 0)

	for _, contentType := range []string{"text/plain", "application/x-www-form-urlencoded", ""} {
		w := performPredictWithContentType(handler, `{"a": 1}`, contentType)
		assert.Equal(t, http.StatusBadRequest, w.Code, "content type %q", contentType)
		assert.Contains(t, w.Body.String(), "Expected JSON body")
	}
}

func TestPredictAcceptsJSONSuffixContentType(t *testing.T) {
	stub := &pipeline.MockPipeline{}
	batch := [][]float64{{1}}
	stub.On("Predict", batch).Return([]any{0}, nil)
	stub.On("PredictProba", batch).Return([][]float64{{1.0}}, nil)

	registry := newLoadedRegistry(t, stub, []string{"a"}, nil)
	handler := NewHandlerV1(registry, nil, 0)

	w := performPredictWithContentType(handler, `{"a": 1}`, "application/vnd.api+json; charset=utf-8")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPredictMalformedBody(t *testing.T) {
	registry := newLoadedRegistry(t, &pipeline.MockPipeline{}, []string{"a"}, nil)
	handler := NewHandlerV1(registry, nil, 0)

	w := performPredict(handler, `{`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Expected JSON body")
}

func TestPredictNonObjectBody(t *testing.T) {
	registry := newLoadedRegistry(t, &pipeline.MockPipeline{}, []string{"a"}, nil)
	handler := NewHandlerV1(registry, nil, 0)

	w := performPredict(handler, `[1, 2, 3]`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Expected JSON object (dictionary)")
}

func TestPredictPipelineFailure(t *testing.T) {
	stub := &pipeline.MockPipeline{}
	stub.On("Predict", [][]float64{{1}}).Return(nil, errors.New("singular matrix"))

	registry := newLoadedRegistry(t, stub, []string{"a"}, nil)
	handler := NewHandlerV1(registry, nil, 0)

	w := performPredict(handler, `{"a": 1}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error during prediction", body.Error)
	assert.Contains(t, body.Message, "singular matrix")
}

func TestPredictServesRepeatRequestFromCache(t *testing.T) {
	stub := &pipeline.MockPipeline{}
	batch := [][]float64{{1, 2.5}}
	stub.On("Predict", batch).Return([]any{1}, nil).Once()
	stub.On("PredictProba", batch).Return([][]float64{{0.1, 0.9}}, nil).Once()

	registry := newLoadedRegistry(t, stub, []string{"a", "b"}, map[string]any{"1": "DDoS"})
	handler := NewHandlerV1(registry, newFreecacheForTest(t), 0)

	first := performPredict(handler, `{"a": 1, "b": 2.5}`)
	assert.Equal(t, http.StatusOK, first.Code)

	second := performPredict(handler, `{"a": 1, "b": 2.5}`)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	// The pipeline ran exactly once; the repeat was a cache hit.
	stub.AssertExpectations(t)
}

func TestPredictEmptySchemaStillPredicts(t *testing.T) {
	stub := &pipeline.MockPipeline{}
	batch := [][]float64{{}}
	stub.On("Predict", batch).Return([]any{0}, nil)
	stub.On("PredictProba", batch).Return([][]float64{{1.0}}, nil)

	registry := newLoadedRegistry(t, stub, []string{}, nil)
	handler := NewHandlerV1(registry, nil, 0)

	w := performPredict(handler, `{}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
