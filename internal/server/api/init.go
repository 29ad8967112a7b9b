package api

import (
	"github.com/flowsentry/flowsentry/internal/serving/handlers/predict"
	"github.com/flowsentry/flowsentry/pkg/httpframework"
)

const (
	healthCheckPath = "/health"
	predictPath     = "/predict"
)

// Init registers the serving routes. Expects the http framework to be
// initialized before calling this function.
func Init() {
	httpframework.Instance().GET(healthCheckPath, healthProvider)
	httpframework.Instance().POST(predictPath, predict.GetHandler(1).Predict)
}
