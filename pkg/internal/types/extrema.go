package types

// ExtremumKind tags an extremum as a peak or a trough.
type ExtremumKind string

const (
	PeakKind   ExtremumKind = "peak"
	TroughKind ExtremumKind = "trough"
)

// Extremum is one detected local maximum or minimum.
type Extremum struct {
	Index      int          `json:"index"`
	Kind       ExtremumKind `json:"kind"`
	Time       float64      `json:"time"`
	Value      float64      `json:"value"`
	Prominence float64      `json:"prominence"`
}

// ExtremaSet is a list of extrema sorted by strictly increasing sample index.
type ExtremaSet struct {
	Items []Extremum `json:"items"`
}

// Len returns the number of extrema.
func (s ExtremaSet) Len() int { return len(s.Items) }

// Empty reports whether nothing was detected.
func (s ExtremaSet) Empty() bool { return len(s.Items) == 0 }

// Of returns the extrema of one kind, in order.
func (s ExtremaSet) Of(kind ExtremumKind) []Extremum {
	var out []Extremum
	for _, e := range s.Items {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// PeakIndices returns the sample indices of the peaks.
func (s ExtremaSet) PeakIndices() []int { return s.indices(PeakKind) }

// TroughIndices returns the sample indices of the troughs.
func (s ExtremaSet) TroughIndices() []int { return s.indices(TroughKind) }

// PeakTimes returns the timestamps of the peaks in seconds.
func (s ExtremaSet) PeakTimes() []float64 {
	var out []float64
	for _, e := range s.Items {
		if e.Kind == PeakKind {
			out = append(out, e.Time)
		}
	}
	return out
}

func (s ExtremaSet) indices(kind ExtremumKind) []int {
	var out []int
	for _, e := range s.Items {
		if e.Kind == kind {
			out = append(out, e.Index)
		}
	}
	return out
}
