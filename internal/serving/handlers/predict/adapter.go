package predict

import (
	"fmt"
	"math"

	"github.com/flowsentry/flowsentry/internal/artifact"
	"github.com/flowsentry/flowsentry/internal/pipeline"
)

// infer wraps the coerced vector into a single-row batch, runs predict and
// predict_proba, and decodes the winning class through the codec. Pipeline
// failures are wrapped as InferenceError and never retried.
func infer(p pipeline.Pipeline, codec *artifact.LabelCodec, vector []float64) (*PredictResponse, error) {
	batch := [][]float64{vector}

	predictions, err := p.Predict(batch)
	if err != nil {
		return nil, &InferenceError{Cause: err}
	}
	probabilities, err := p.PredictProba(batch)
	if err != nil {
		return nil, &InferenceError{Cause: err}
	}
	if len(predictions) == 0 || len(probabilities) == 0 || len(probabilities[0]) == 0 {
		return nil, &InferenceError{Cause: fmt.Errorf("pipeline returned an empty prediction for a single-row batch")}
	}

	confidence := probabilities[0][0]
	for _, p := range probabilities[0][1:] {
		if p > confidence {
			confidence = p
		}
	}

	return &PredictResponse{
		Prediction: codec.Decode(predictions[0]),
		Confidence: roundConfidence(confidence),
	}, nil
}

// roundConfidence rounds to 4 decimal places.
func roundConfidence(v float64) float64 {
	return math.Round(v*10000) / 10000
}
