package artifact

import (
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	registry *Registry
	once     sync.Once
)

// Init wires the process-wide registry for the artifact at path. The load
// itself stays lazy; call Load on the instance to force it.
func Init(path string) {
	once.Do(func() {
		registry = NewRegistry(path)
	})
}

// Instance returns the process-wide registry. Ensure Init was called first.
func Instance() *Registry {
	if registry == nil {
		log.Panic().Msg("artifact registry not initialized, call Init first")
	}
	return registry
}

// SetInstanceForTesting swaps the process-wide registry. Only for tests.
func SetInstanceForTesting(r *Registry) {
	registry = r
	once.Do(func() {})
}
