package pipeline

import (
	"fmt"
)

// Pipeline runs a fixed preprocessing-and-classification chain over a
// row-major batch of numeric feature vectors.
type Pipeline interface {
	// Predict returns the winning class label per row. Labels are either
	// integer class ids or string class names, depending on how the
	// classifier was trained.
	Predict(rows [][]float64) ([]any, error)
	// PredictProba returns the per-class probability distribution per row.
	PredictProba(rows [][]float64) ([][]float64, error)
}

// Chain is a serialized pipeline: zero or more transformers followed by a
// terminal classifier.
type Chain struct {
	transformers []Transformer
	classifier   Classifier
}

// NewChain validates the step ordering and builds a Chain.
func NewChain(steps []Step) (*Chain, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("pipeline must have at least one step")
	}
	classifier, ok := steps[len(steps)-1].(Classifier)
	if !ok {
		return nil, fmt.Errorf("last pipeline step %q is not a classifier", steps[len(steps)-1].StepType())
	}
	transformers := make([]Transformer, 0, len(steps)-1)
	for _, step := range steps[:len(steps)-1] {
		transformer, ok := step.(Transformer)
		if !ok {
			return nil, fmt.Errorf("intermediate pipeline step %q is not a transformer", step.StepType())
		}
		transformers = append(transformers, transformer)
	}
	return &Chain{transformers: transformers, classifier: classifier}, nil
}

func (c *Chain) Predict(rows [][]float64) ([]any, error) {
	transformed, err := c.transform(rows)
	if err != nil {
		return nil, err
	}
	return c.classifier.Predict(transformed)
}

func (c *Chain) PredictProba(rows [][]float64) ([][]float64, error) {
	transformed, err := c.transform(rows)
	if err != nil {
		return nil, err
	}
	return c.classifier.PredictProba(transformed)
}

func (c *Chain) transform(rows [][]float64) ([][]float64, error) {
	current := rows
	for _, transformer := range c.transformers {
		next, err := transformer.Transform(current)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", transformer.StepType(), err)
		}
		current = next
	}
	return current, nil
}

// RequiredColumns reports the column list configured on a leading
// column-selection step, when the chain has one. The second return is false
// when the first step is not a column selector.
func (c *Chain) RequiredColumns() ([]string, bool) {
	if len(c.transformers) == 0 {
		return nil, false
	}
	selector, ok := c.transformers[0].(*ColumnSelector)
	if !ok {
		return nil, false
	}
	return selector.Columns, true
}
