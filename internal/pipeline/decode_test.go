package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPipelineDoc = `{
	"steps": [
		{"type": "column_selector", "columns": ["flow_duration", "total_fwd_packets"]},
		{"type": "standard_scaler", "mean": [0, 0], "scale": [1, 1]},
		{"type": "pca", "mean": [0, 0], "components": [[1, 0], [0, 1]]},
		{"type": "logistic_regression", "coefficients": [[1, -1]], "intercepts": [0], "classes": [0, 1]}
	]
}`

func TestDecodeFullPipeline(t *testing.T) {
	chain, err := Decode([]byte(fullPipelineDoc))
	require.NoError(t, err)

	columns, ok := chain.RequiredColumns()
	assert.True(t, ok)
	assert.Equal(t, []string{"flow_duration", "total_fwd_packets"}, columns)

	preds, err := chain.Predict([][]float64{{3, 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, preds[0])

	probas, err := chain.PredictProba([][]float64{{3, 1}})
	require.NoError(t, err)
	require.Len(t, probas, 1)
	assert.Len(t, probas[0], 2)
}

func TestDecodeCanonicalizesIntegerClasses(t *testing.T) {
	chain, err := Decode([]byte(fullPipelineDoc))
	require.NoError(t, err)

	preds, err := chain.Predict([][]float64{{0, 5}})
	require.NoError(t, err)
	// Class labels decode to int, not float64.
	assert.IsType(t, int(0), preds[0])
}

func TestDecodeStringClasses(t *testing.T) {
	doc := `{"steps": [{"type": "logistic_regression", "coefficients": [[1]], "intercepts": [0], "classes": ["BENIGN", "DDoS"]}]}`
	chain, err := Decode([]byte(doc))
	require.NoError(t, err)

	preds, err := chain.Predict([][]float64{{10}})
	require.NoError(t, err)
	assert.Equal(t, "DDoS", preds[0])
}

func TestDecodeErrors(t *testing.T) {
	t.Run("unknown step type", func(t *testing.T) {
		doc := `{"steps": [{"type": "random_forest"}]}`
		_, err := Decode([]byte(doc))
		assert.ErrorContains(t, err, "unknown pipeline step type")
	})

	t.Run("no steps", func(t *testing.T) {
		_, err := Decode([]byte(`{"steps": []}`))
		assert.Error(t, err)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := Decode([]byte(`{`))
		assert.Error(t, err)
	})

	t.Run("classifier not last", func(t *testing.T) {
		doc := `{"steps": [{"type": "standard_scaler", "mean": [0], "scale": [1]}]}`
		_, err := Decode([]byte(doc))
		assert.ErrorContains(t, err, "not a classifier")
	})

	t.Run("classifier in the middle", func(t *testing.T) {
		doc := `{"steps": [
			{"type": "logistic_regression", "coefficients": [[1]], "intercepts": [0], "classes": [0, 1]},
			{"type": "logistic_regression", "coefficients": [[1]], "intercepts": [0], "classes": [0, 1]}
		]}`
		_, err := Decode([]byte(doc))
		assert.ErrorContains(t, err, "not a transformer")
	})
}

func TestRequiredColumnsWithoutSelector(t *testing.T) {
	doc := `{"steps": [
		{"type": "standard_scaler", "mean": [0], "scale": [1]},
		{"type": "logistic_regression", "coefficients": [[1]], "intercepts": [0], "classes": [0, 1]}
	]}`
	chain, err := Decode([]byte(doc))
	require.NoError(t, err)

	_, ok := chain.RequiredColumns()
	assert.False(t, ok)
}
