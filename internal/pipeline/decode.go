package pipeline

import (
	"encoding/json"
	"fmt"
	"math"
)

type chainDoc struct {
	Steps []json.RawMessage `json:"steps"`
}

type stepTag struct {
	Type string `json:"type"`
}

// Decode deserializes a pipeline document: {"steps": [{"type": ..., ...}]}.
// Each step is a tagged variant; unknown tags fail the decode.
func Decode(raw []byte) (*Chain, error) {
	var doc chainDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("malformed pipeline document: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("pipeline document has no steps")
	}

	steps := make([]Step, 0, len(doc.Steps))
	for i, rawStep := range doc.Steps {
		step, err := decodeStep(rawStep)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return NewChain(steps)
}

func decodeStep(raw json.RawMessage) (Step, error) {
	var tag stepTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("malformed step: %w", err)
	}

	var step Step
	switch tag.Type {
	case StepTypeColumnSelector:
		step = &ColumnSelector{}
	case StepTypeStandardScaler:
		step = &StandardScaler{}
	case StepTypePCA:
		step = &PCA{}
	case StepTypeLogisticRegression:
		step = &LogisticRegression{}
	default:
		return nil, fmt.Errorf("unknown pipeline step type %q", tag.Type)
	}

	if err := json.Unmarshal(raw, step); err != nil {
		return nil, fmt.Errorf("decoding %q step: %w", tag.Type, err)
	}
	if classifier, ok := step.(*LogisticRegression); ok {
		classifier.Classes = canonicalizeClasses(classifier.Classes)
	}
	return step, nil
}

// canonicalizeClasses rewrites integral JSON numbers as ints so that class
// ids survive the float64 round-trip of encoding/json.
func canonicalizeClasses(classes []any) []any {
	out := make([]any, len(classes))
	for i, class := range classes {
		if f, ok := class.(float64); ok && f == math.Trunc(f) {
			out[i] = int(f)
			continue
		}
		out[i] = class
	}
	return out
}
