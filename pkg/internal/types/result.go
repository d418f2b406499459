package types

// Outcome is the tagged result of one stage: a value, a failure reason, or both when
// a stage degrades instead of failing outright.
type Outcome[T any] struct {
	Value *T          `json:"value,omitempty"`
	Err   *StageError `json:"error,omitempty"`
}

// Present wraps a successful value.
func Present[T any](v T) Outcome[T] {
	return Outcome[T]{Value: &v}
}

// Absent records a failed stage.
func Absent[T any](stage Stage, err error) Outcome[T] {
	return Outcome[T]{Err: NewStageError(stage, err)}
}

// Partial records a value that was produced together with a failure reason.
func Partial[T any](v T, stage Stage, err error) Outcome[T] {
	return Outcome[T]{Value: &v, Err: NewStageError(stage, err)}
}

// OutcomeOf builds an Outcome from a stage's (value, error) pair; the value is dropped
// when err is non-nil.
func OutcomeOf[T any](stage Stage, v T, err error) Outcome[T] {
	if err != nil {
		return Absent[T](stage, err)
	}
	return Present(v)
}

// OK reports whether the stage produced a value.
func (o Outcome[T]) OK() bool { return o.Value != nil }

// Failed reports whether the stage recorded an error, with or without a value.
func (o Outcome[T]) Failed() bool { return o.Err != nil }

// Get returns the value and whether one is present.
func (o Outcome[T]) Get() (T, bool) {
	if o.Value == nil {
		var zero T
		return zero, false
	}
	return *o.Value, true
}

// Error returns the recorded failure as an error, or nil.
func (o Outcome[T]) Error() error {
	if o.Err == nil {
		return nil
	}
	return o.Err
}

// Channel names used in results.
const (
	ChannelSignal = "signal"
	ChannelRed    = "red"
	ChannelIR     = "ir"
)

// ChannelResult holds the per-channel stage outputs.
type ChannelResult struct {
	Name     string                  `json:"name"`
	Filtered Outcome[Waveform]       `json:"filtered"`
	Extrema  Outcome[ExtremaSet]     `json:"extrema"`
	Quality  Outcome[QualityMetrics] `json:"quality"`
	SDPPG    Outcome[Waveform]       `json:"sdppg,omitempty"`
}

// AnalysisResult is the immutable output of one pipeline call. It shares no memory with
// the input window.
type AnalysisResult struct {
	Channels  []ChannelResult             `json:"channels"`
	Primary   string                      `json:"primary"`
	HeartRate Outcome[HeartRateResult]    `json:"heart_rate"`
	Dual      *Outcome[DualChannelResult] `json:"dual,omitempty"`
}

// Channel returns the named channel result.
func (r AnalysisResult) Channel(name string) (ChannelResult, bool) {
	for _, c := range r.Channels {
		if c.Name == name {
			return c, true
		}
	}
	return ChannelResult{}, false
}

// IsDual reports whether the result came from a dual-channel window.
func (r AnalysisResult) IsDual() bool { return r.Dual != nil }

// Failures lists every stage error recorded anywhere in the result.
func (r AnalysisResult) Failures() []StageError {
	var out []StageError
	add := func(e *StageError) {
		if e != nil {
			out = append(out, *e)
		}
	}
	for _, c := range r.Channels {
		add(c.Filtered.Err)
		add(c.Extrema.Err)
		add(c.Quality.Err)
		add(c.SDPPG.Err)
	}
	add(r.HeartRate.Err)
	if r.Dual != nil {
		add(r.Dual.Err)
		if d, ok := r.Dual.Get(); ok {
			add(d.RRatio.Err)
			add(d.Oxygenation.Err)
			add(d.CrossCorrelation.Err)
			add(d.Coherence.Err)
			add(d.RedTemplate.Err)
			add(d.IRTemplate.Err)
		}
	}
	return out
}
