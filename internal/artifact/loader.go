package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/flowsentry/flowsentry/internal/pipeline"
)

// Registry owns the process-wide load-once state for the model artifact.
// The first caller to observe "not yet loaded" deserializes under the lock;
// everyone else gets the cached package (or the cached failure — the model
// is reloaded by restarting the process).
type Registry struct {
	path   string
	loadFn func(path string) (*Package, error)

	mu      sync.Mutex
	loaded  atomic.Bool
	pkg     *Package
	loadErr error
}

// NewRegistry builds a registry for the artifact at path.
func NewRegistry(path string) *Registry {
	return &Registry{path: path, loadFn: loadArtifactFile}
}

// NewRegistryWithLoader builds a registry with a custom load function.
// Intended for tests.
func NewRegistryWithLoader(path string, loadFn func(path string) (*Package, error)) *Registry {
	return &Registry{path: path, loadFn: loadFn}
}

// Load returns the cached package, performing the deserialization at most
// once across all callers.
func (r *Registry) Load() (*Package, error) {
	if r.loaded.Load() {
		return r.pkg, r.loadErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded.Load() {
		return r.pkg, r.loadErr
	}
	r.pkg, r.loadErr = r.loadFn(r.path)
	r.loaded.Store(true)
	if r.loadErr != nil {
		log.Error().Err(r.loadErr).Msgf("Failed to load model artifact from %s", r.path)
	} else {
		log.Info().Msgf("Model artifact loaded from %s with %d required features", r.path, len(r.pkg.RequiredFeatures()))
	}
	return r.pkg, r.loadErr
}

// ModelLoaded reports whether a usable package is cached.
func (r *Registry) ModelLoaded() bool {
	return r.loaded.Load() && r.loadErr == nil
}

// containerDoc is the wrapper shape of an artifact saved with metadata. The
// pipeline may sit under any of the accepted keys.
type containerDoc struct {
	Pipeline            json.RawMessage `json:"pipeline"`
	Model               json.RawMessage `json:"model"`
	PipelineObj         json.RawMessage `json:"pipeline_obj"`
	RequiredRawFeatures *[]string       `json:"required_raw_features"`
	LabelMapping        map[string]any  `json:"label_mapping"`
	ModelMetadata       map[string]any  `json:"model_metadata"`
}

func loadArtifactFile(path string) (*Package, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return normalizePackage(raw)
}

// normalizePackage detects whether the document is a metadata container or a
// bare pipeline, and reduces both to the canonical Package record.
func normalizePackage(raw []byte) (*Package, error) {
	var container containerDoc
	if err := json.Unmarshal(raw, &container); err != nil {
		return nil, fmt.Errorf("malformed artifact: %w", err)
	}

	rawPipeline := pickPipelineDoc(&container)
	if rawPipeline == nil {
		// Not a container; the whole document may be a bare pipeline.
		chain, err := pipeline.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		return &Package{Pipeline: chain}, nil
	}

	chain, err := pipeline.Decode(rawPipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	codec, err := BuildLabelCodec(container.LabelMapping)
	if err != nil {
		return nil, err
	}

	return &Package{
		Pipeline:            chain,
		RequiredRawFeatures: container.RequiredRawFeatures,
		LabelMapping:        container.LabelMapping,
		Metadata:            container.ModelMetadata,
		Codec:               codec,
	}, nil
}

func pickPipelineDoc(container *containerDoc) json.RawMessage {
	for _, candidate := range []json.RawMessage{container.Pipeline, container.Model, container.PipelineObj} {
		if len(candidate) > 0 && string(candidate) != "null" {
			return candidate
		}
	}
	return nil
}
