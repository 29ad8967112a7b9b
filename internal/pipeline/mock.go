package pipeline

import "github.com/stretchr/testify/mock"

type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Predict(rows [][]float64) ([]any, error) {
	args := m.Called(rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}

func (m *MockPipeline) PredictProba(rows [][]float64) ([][]float64, error) {
	args := m.Called(rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float64), args.Error(1)
}
