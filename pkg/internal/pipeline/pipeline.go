// Package pipeline threads a PPG window through preprocessing, peak detection,
// quality assessment, heart-rate estimation and the dual-channel analysis, and
// assembles the partial-tolerant AnalysisResult.
package pipeline

import (
	"sync"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/joeydtaylor/ppglab/pkg/internal/utils"
)

// Pipeline carries the telemetry of analysis calls. It holds no per-call state:
// Analyze may run concurrently once construction is done.
// Loggers and sensors are immutable after Freeze, which the first Analyze call implies.
type Pipeline struct {
	componentMetadata types.ComponentMetadata

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex

	frozen int32
}

// NewPipeline constructs a Pipeline and applies options.
func NewPipeline(options ...types.Option[*Pipeline]) *Pipeline {
	p := &Pipeline{
		loggers: make([]types.Logger, 0),
		sensors: make([]types.Sensor, 0),
		componentMetadata: types.ComponentMetadata{
			Type: "PIPELINE",
			ID:   utils.GenerateUniqueHash(),
		},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}

	return p
}
