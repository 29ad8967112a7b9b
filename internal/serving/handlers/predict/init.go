package predict

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/flowsentry/flowsentry/internal/artifact"
	"github.com/flowsentry/flowsentry/internal/config/structs"
	"github.com/flowsentry/flowsentry/pkg/inmemorycache"
)

// Handler is the serving surface of the predict domain.
type Handler interface {
	Predict(ctx *gin.Context)
}

var (
	v1   *HandlerV1
	once sync.Once
)

// GetHandler returns the predict handler for the given version.
func GetHandler(version int) Handler {
	switch version {
	case 1:
		return initV1Handler()
	default:
		return nil
	}
}

func initV1Handler() *HandlerV1 {
	once.Do(func() {
		appConfig := structs.GetAppConfig().Configs
		v1 = &HandlerV1{
			registry:     artifact.Instance(),
			cacheEnabled: appConfig.PredictionCacheEnabled,
			cacheTtlSec:  appConfig.PredictionCacheTtlSec,
		}
		if v1.cacheEnabled {
			v1.cache = inmemorycache.Instance()
		}
	})
	return v1
}

// NewHandlerV1 builds a handler with explicit collaborators. Intended for tests.
func NewHandlerV1(registry *artifact.Registry, cache inmemorycache.InMemoryCache, cacheTtlSec int) *HandlerV1 {
	return &HandlerV1{
		registry:     registry,
		cache:        cache,
		cacheEnabled: cache != nil,
		cacheTtlSec:  cacheTtlSec,
	}
}
