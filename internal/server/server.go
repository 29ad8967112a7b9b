package server

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/flowsentry/flowsentry/pkg/httpframework"
)

// InitServer blocks serving HTTP on the given port.
func InitServer(port int) {
	if port == 0 {
		log.Panic().Msg("PORT not set")
	}

	log.Info().Msgf("Starting server on port %d", port)
	err := http.ListenAndServe(":"+strconv.Itoa(port), httpframework.Instance())
	if err != nil {
		// panic and stop the app if server does not start
		log.Panic().Msgf("There's an error while starting the server!, error - %v", err)
	}
}
