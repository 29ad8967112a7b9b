package predict

import (
	"errors"
	"fmt"
	"strings"
)

// PredictResponse is the success payload of POST /predict.
type PredictResponse struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

var (
	// ErrMalformedBody means the request body is not parseable JSON.
	ErrMalformedBody = errors.New("expected JSON body")
	// ErrNotObject means the body parsed but is not a key-value object.
	ErrNotObject = errors.New("expected JSON object")
)

// MissingFieldsError reports every schema field absent from the request,
// in schema order.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// TypeErrorsError reports every field that failed numeric coercion, with the
// reason per field.
type TypeErrorsError struct {
	Details map[string]string
}

func (e *TypeErrorsError) Error() string {
	return fmt.Sprintf("wrong types for %d field(s)", len(e.Details))
}

// InferenceError wraps a failure raised by the pipeline itself.
type InferenceError struct {
	Cause error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Cause)
}

func (e *InferenceError) Unwrap() error {
	return e.Cause
}
