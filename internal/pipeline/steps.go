package pipeline

import (
	"fmt"
	"math"
)

const (
	StepTypeColumnSelector     = "column_selector"
	StepTypeStandardScaler     = "standard_scaler"
	StepTypePCA                = "pca"
	StepTypeLogisticRegression = "logistic_regression"
)

// Step is one stage of a serialized pipeline.
type Step interface {
	StepType() string
}

// Transformer maps a feature batch to a new feature batch.
type Transformer interface {
	Step
	Transform(rows [][]float64) ([][]float64, error)
}

// Classifier is the terminal pipeline stage.
type Classifier interface {
	Step
	Predict(rows [][]float64) ([]any, error)
	PredictProba(rows [][]float64) ([][]float64, error)
}

// ColumnSelector pins the raw feature names and their order. Callers assemble
// vectors in this order, so at runtime it only asserts the expected width;
// its column list feeds schema introspection.
type ColumnSelector struct {
	Columns []string `json:"columns"`
}

func (s *ColumnSelector) StepType() string { return StepTypeColumnSelector }

func (s *ColumnSelector) Transform(rows [][]float64) ([][]float64, error) {
	for i, row := range rows {
		if len(row) != len(s.Columns) {
			return nil, fmt.Errorf("row %d has %d values, selector expects %d columns", i, len(row), len(s.Columns))
		}
	}
	return rows, nil
}

// StandardScaler applies (x - mean) / scale per column.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) StepType() string { return StepTypeStandardScaler }

func (s *StandardScaler) Transform(rows [][]float64) ([][]float64, error) {
	if len(s.Mean) != len(s.Scale) {
		return nil, fmt.Errorf("scaler mean has %d entries, scale has %d", len(s.Mean), len(s.Scale))
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("row %d has %d values, scaler expects %d", i, len(row), len(s.Mean))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			if s.Scale[j] == 0 {
				scaled[j] = 0
			} else {
				scaled[j] = (v - s.Mean[j]) / s.Scale[j]
			}
		}
		out[i] = scaled
	}
	return out, nil
}

// PCA projects rows onto the component matrix: y_j = (x - mean) . components_j.
type PCA struct {
	Mean       []float64   `json:"mean"`
	Components [][]float64 `json:"components"`
}

func (s *PCA) StepType() string { return StepTypePCA }

func (s *PCA) Transform(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("row %d has %d values, pca expects %d", i, len(row), len(s.Mean))
		}
		projected := make([]float64, len(s.Components))
		for j, component := range s.Components {
			if len(component) != len(row) {
				return nil, fmt.Errorf("pca component %d has %d weights, expected %d", j, len(component), len(row))
			}
			var sum float64
			for k, v := range row {
				sum += (v - s.Mean[k]) * component[k]
			}
			projected[j] = sum
		}
		out[i] = projected
	}
	return out, nil
}

// LogisticRegression scores rows against the coefficient matrix. A single
// coefficient row means binary classification via the sigmoid; multiple rows
// mean one-vs-rest scoring normalized with a softmax.
type LogisticRegression struct {
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
	Classes      []any       `json:"classes"`
}

func (s *LogisticRegression) StepType() string { return StepTypeLogisticRegression }

func (s *LogisticRegression) Predict(rows [][]float64) ([]any, error) {
	probas, err := s.PredictProba(rows)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(probas))
	for i, proba := range probas {
		out[i] = s.Classes[argmax(proba)]
	}
	return out, nil
}

func (s *LogisticRegression) PredictProba(rows [][]float64) ([][]float64, error) {
	if err := s.validateShape(); err != nil {
		return nil, err
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scores, err := s.decisionScores(i, row)
		if err != nil {
			return nil, err
		}
		if len(s.Coefficients) == 1 {
			p := sigmoid(scores[0])
			out[i] = []float64{1 - p, p}
		} else {
			out[i] = softmax(scores)
		}
	}
	return out, nil
}

func (s *LogisticRegression) validateShape() error {
	if len(s.Coefficients) == 0 {
		return fmt.Errorf("classifier has no coefficients")
	}
	if len(s.Intercepts) != len(s.Coefficients) {
		return fmt.Errorf("classifier has %d coefficient rows but %d intercepts", len(s.Coefficients), len(s.Intercepts))
	}
	expectedClasses := len(s.Coefficients)
	if expectedClasses == 1 {
		expectedClasses = 2
	}
	if len(s.Classes) != expectedClasses {
		return fmt.Errorf("classifier declares %d classes, expected %d", len(s.Classes), expectedClasses)
	}
	return nil
}

func (s *LogisticRegression) decisionScores(rowIdx int, row []float64) ([]float64, error) {
	scores := make([]float64, len(s.Coefficients))
	for c, coefficients := range s.Coefficients {
		if len(coefficients) != len(row) {
			return nil, fmt.Errorf("row %d has %d values, classifier expects %d", rowIdx, len(row), len(coefficients))
		}
		score := s.Intercepts[c]
		for j, v := range row {
			score += coefficients[j] * v
		}
		scores[c] = score
	}
	return scores, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func softmax(scores []float64) []float64 {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	exps := make([]float64, len(scores))
	var total float64
	for i, s := range scores {
		exps[i] = math.Exp(s - maxScore)
		total += exps[i]
	}
	for i := range exps {
		exps[i] /= total
	}
	return exps
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
