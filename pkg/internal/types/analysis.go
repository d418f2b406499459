package types

// RatePoint is one heart-rate sample, stamped at the later peak of its beat.
type RatePoint struct {
	Time      float64 `json:"time"`
	BPM       float64 `json:"bpm"`
	IBI       float64 `json:"ibi"`
	Plausible bool    `json:"plausible"`
}

// PoincarePoint pairs consecutive plausible inter-beat intervals (seconds).
type PoincarePoint struct {
	Current float64 `json:"current"`
	Next    float64 `json:"next"`
}

// Variability holds dispersion statistics of the plausible inter-beat intervals.
// Interval statistics are in milliseconds.
type Variability struct {
	Beats     int             `json:"beats"`
	MeanIBIMs float64         `json:"mean_ibi_ms"`
	MeanBPM   float64         `json:"mean_bpm"`
	SDNNMs    float64         `json:"sdnn_ms"`
	RMSSDMs   float64         `json:"rmssd_ms"`
	SDSDMs    float64         `json:"sdsd_ms"`
	SD1Ms     float64         `json:"sd1_ms"`
	SD2Ms     float64         `json:"sd2_ms"`
	Poincare  []PoincarePoint `json:"poincare"`
}

// HeartRateResult is the output of the heart-rate estimator.
type HeartRateResult struct {
	Raw         []RatePoint `json:"raw"`
	Smoothed    []RatePoint `json:"smoothed"`
	Implausible int         `json:"implausible"`
	Variability Variability `json:"variability"`
	// SpectralBPM is the Welch-PSD rate estimate; nil when it could not be computed.
	SpectralBPM *float64 `json:"spectral_bpm,omitempty"`
}

// Metric is one quality descriptor. Unavailable metrics carry a zero Value.
type Metric struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
	Unit      string  `json:"unit,omitempty"`
}

// Quality metric names.
const (
	MetricMean          = "mean"
	MetricStd           = "std"
	MetricRMS           = "rms"
	MetricPeakToPeak    = "peak_to_peak"
	MetricCrestFactor   = "crest_factor"
	MetricShapeFactor   = "shape_factor"
	MetricImpulseFactor = "impulse_factor"
	MetricSNR           = "snr"
	MetricDynamicRange  = "dynamic_range"
	MetricSkewness      = "skewness"
	MetricKurtosis      = "kurtosis"
	MetricQuickSNR      = "quick_snr"
)

// QualityMetrics maps metric names to values.
type QualityMetrics map[string]Metric

// Get returns the metric and whether it is both present and available.
func (q QualityMetrics) Get(name string) (float64, bool) {
	m, ok := q[name]
	if !ok || !m.Available {
		return 0, false
	}
	return m.Value, true
}

// RRatioPoint is the ratio-of-ratios of one beat common to both channels.
type RRatioPoint struct {
	Time      float64 `json:"time"`
	R         float64 `json:"r"`
	SpO2      float64 `json:"spo2"`
	InRange   bool    `json:"in_range"`
	ACRed     float64 `json:"ac_red"`
	DCRed     float64 `json:"dc_red"`
	ACIR      float64 `json:"ac_ir"`
	DCIR      float64 `json:"dc_ir"`
	BeatStart int     `json:"beat_start"`
	BeatEnd   int     `json:"beat_end"`
}

// Oxygenation is the calibrated window-level estimate.
type Oxygenation struct {
	MedianR         float64 `json:"median_r"`
	SpO2            float64 `json:"spo2"`
	PerfusionIndex  float64 `json:"perfusion_index"`
	BeatsUsed       int     `json:"beats_used"`
	BeatsOutOfRange int     `json:"beats_out_of_range"`
}

// CrossCorrelation summarizes the lag search between the two channels.
type CrossCorrelation struct {
	Peak        float64   `json:"peak"`
	LagSamples  int       `json:"lag_samples"`
	LagSeconds  float64   `json:"lag_seconds"`
	Lags        []float64 `json:"lags"`
	Correlation []float64 `json:"correlation"`
}

// Coherence summarizes magnitude-squared coherence between the channels.
type Coherence struct {
	Frequencies []float64 `json:"frequencies"`
	Values      []float64 `json:"values"`
	BandMean    float64   `json:"band_mean"`
	AtHeartRate *float64  `json:"at_heart_rate,omitempty"`
}

// BeatTemplate is an ensemble-averaged beat on a normalized phase axis [0, 1].
type BeatTemplate struct {
	Phase []float64 `json:"phase"`
	Mean  []float64 `json:"mean"`
	Std   []float64 `json:"std"`
	Beats int       `json:"beats"`
}

// DualChannelResult is the output of the dual-channel analyzer. Sub-analyses that
// can fail on their own are Outcomes.
type DualChannelResult struct {
	RRatio           Outcome[[]RRatioPoint]    `json:"r_ratio"`
	Oxygenation      Outcome[Oxygenation]      `json:"oxygenation"`
	CrossCorrelation Outcome[CrossCorrelation] `json:"cross_correlation"`
	Coherence        Outcome[Coherence]        `json:"coherence"`
	RedTemplate      Outcome[BeatTemplate]     `json:"red_template"`
	IRTemplate       Outcome[BeatTemplate]     `json:"ir_template"`
}
