package pipeline

import "github.com/joeydtaylor/ppglab/pkg/internal/types"

// GetComponentMetadata returns the pipeline metadata.
func (p *Pipeline) GetComponentMetadata() types.ComponentMetadata {
	return p.componentMetadata
}

// SetComponentMetadata updates the pipeline name and id.
// Panics if called after Freeze.
func (p *Pipeline) SetComponentMetadata(name string, id string) {
	p.requireNotFrozen("SetComponentMetadata")

	p.componentMetadata = types.ComponentMetadata{Name: name, ID: id, Type: p.componentMetadata.Type}
}
