package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowsentry/flowsentry/internal/artifact"
)

// healthProvider reports process liveness and whether the model artifact is
// usable. It never touches the pipeline itself.
var healthProvider = func(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"model_loaded": artifact.Instance().ModelLoaded(),
	})
}
