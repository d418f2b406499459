package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure kind a stage can report. Stage code wraps these with
// fmt.Errorf("%w: ...") so callers can match with errors.Is.
var (
	ErrInvalidFilterParameters = errors.New("invalid filter parameters")
	ErrInvalidParameters       = errors.New("invalid parameters")
	ErrInsufficientSamples     = errors.New("insufficient samples")
	ErrDegenerateSignal        = errors.New("degenerate signal")
	ErrInsufficientBeats       = errors.New("insufficient beats")
	ErrCalibrationOutOfRange   = errors.New("calibration out of range")
	ErrStructuralInput         = errors.New("structural input error")
	ErrUpstreamFailed          = errors.New("upstream stage failed")
)

// ErrorKind names a failure class in a form that survives serialization.
type ErrorKind string

const (
	KindInvalidFilterParameters ErrorKind = "InvalidFilterParameters"
	KindInvalidParameters       ErrorKind = "InvalidParameters"
	KindInsufficientSamples     ErrorKind = "InsufficientSamples"
	KindDegenerateSignal        ErrorKind = "DegenerateSignal"
	KindInsufficientBeats       ErrorKind = "InsufficientBeats"
	KindCalibrationOutOfRange   ErrorKind = "CalibrationOutOfRange"
	KindStructuralInput         ErrorKind = "StructuralInputError"
	KindUpstreamFailed          ErrorKind = "UpstreamFailed"
	KindUnknown                 ErrorKind = "Unknown"
)

var kindTable = []struct {
	err  error
	kind ErrorKind
}{
	{ErrInvalidFilterParameters, KindInvalidFilterParameters},
	{ErrInvalidParameters, KindInvalidParameters},
	{ErrInsufficientSamples, KindInsufficientSamples},
	{ErrDegenerateSignal, KindDegenerateSignal},
	{ErrInsufficientBeats, KindInsufficientBeats},
	{ErrCalibrationOutOfRange, KindCalibrationOutOfRange},
	{ErrStructuralInput, KindStructuralInput},
	{ErrUpstreamFailed, KindUpstreamFailed},
}

// KindOf classifies err against the sentinel errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	for _, entry := range kindTable {
		if errors.Is(err, entry.err) {
			return entry.kind
		}
	}
	return KindUnknown
}

// Stage identifies one step of the analysis pipeline.
type Stage string

const (
	StageValidate    Stage = "validate"
	StagePreprocess  Stage = "preprocess"
	StagePeaks       Stage = "peaks"
	StageHeartRate   Stage = "heart_rate"
	StageQuality     Stage = "quality"
	StageDualChannel Stage = "dual_channel"
	StageSDPPG       Stage = "sdppg"
)

// StageError records why a stage produced no (or only a partial) value.
type StageError struct {
	Stage   Stage     `json:"stage"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// NewStageError captures err for stage. It returns nil for a nil error.
func NewStageError(stage Stage, err error) *StageError {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Kind: KindOf(err), Message: err.Error()}
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

// Is lets errors.Is match a StageError against the sentinel of its kind.
func (e *StageError) Is(target error) bool {
	for _, entry := range kindTable {
		if entry.kind == e.Kind {
			return target == entry.err
		}
	}
	return false
}
