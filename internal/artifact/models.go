package artifact

import (
	"errors"

	"github.com/flowsentry/flowsentry/internal/pipeline"
)

var (
	// ErrNotFound means the artifact file does not exist at the configured path.
	ErrNotFound = errors.New("artifact file not found")
	// ErrInvalid means no pipeline object could be identified in the artifact.
	ErrInvalid = errors.New("artifact is missing a pipeline")
)

// Package is the canonical in-memory shape of a loaded artifact. All
// downstream code operates on this record regardless of which container
// shape the artifact was saved in.
type Package struct {
	Pipeline pipeline.Pipeline

	// RequiredRawFeatures distinguishes a missing declaration (nil) from an
	// explicitly empty one (&[]string{}); only the former falls through to
	// pipeline introspection.
	RequiredRawFeatures *[]string

	// LabelMapping is the raw id/name mapping as saved, orientation unknown.
	LabelMapping map[string]any

	// Metadata is free-form and carried through untouched.
	Metadata map[string]any

	// Codec is built once from LabelMapping at load time; nil when the
	// artifact carries no label metadata.
	Codec *LabelCodec
}

// RequiredFeatures resolves the ordered feature schema: the declared list
// when present (an empty declared list is honored), otherwise the column
// list of a leading column-selection pipeline step, otherwise empty.
func (p *Package) RequiredFeatures() []string {
	if p.RequiredRawFeatures != nil {
		return *p.RequiredRawFeatures
	}
	if provider, ok := p.Pipeline.(interface{ RequiredColumns() ([]string, bool) }); ok {
		if columns, ok := provider.RequiredColumns(); ok {
			return columns
		}
	}
	return []string{}
}
