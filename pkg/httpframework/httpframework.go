package httpframework

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/flowsentry/flowsentry/pkg/middleware"
)

var (
	router *gin.Engine
	once   sync.Once
)

// Init builds the shared gin engine. Tracing, access logging and panic
// recovery are always installed; any extra middlewares run after them.
func Init(middlewares ...gin.HandlerFunc) {
	once.Do(func() {
		if isProdEnv(viper.GetString("APP_ENV")) {
			gin.SetMode(gin.ReleaseMode)
		}
		appName := viper.GetString("APP_NAME")
		if appName == "" {
			log.Fatal().Msg("APP_NAME cannot be empty")
		}
		router = gin.New()
		router.Use(otelgin.Middleware(appName), middleware.HTTPLogger(), middleware.HTTPRecovery())
		router.Use(middlewares...)
	})
}

func isProdEnv(env string) bool {
	return env == "prod" || env == "production"
}

// Instance returns the shared engine. Init must run first.
func Instance() *gin.Engine {
	if router == nil {
		log.Fatal().Msg("Router not initialized")
	}
	return router
}

// ResetForTesting resets the global state. Only for tests.
func ResetForTesting() {
	router = nil
	once = sync.Once{}
}
