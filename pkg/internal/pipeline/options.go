package pipeline

import "github.com/joeydtaylor/ppglab/pkg/internal/types"

// WithLogger registers loggers for the pipeline.
func WithLogger(l ...types.Logger) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.ConnectLogger(l...)
	}
}

// WithSensor registers sensors for the pipeline.
func WithSensor(s ...types.Sensor) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.ConnectSensor(s...)
	}
}

// WithComponentMetadata overrides the pipeline name and id.
func WithComponentMetadata(name string, id string) types.Option[*Pipeline] {
	return func(p *Pipeline) {
		p.SetComponentMetadata(name, id)
	}
}
