package builder

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvPrefix prefixes every key ConfigFromEnv reads.
const DefaultEnvPrefix = "PPG"

// EnvOr returns the trimmed env value or def when empty.
func EnvOr(key, def string) string {
	v := strings.TrimSpace(strings.Trim(os.Getenv(key), `"`))
	if v == "" {
		return def
	}
	return v
}

// EnvIntOr returns the parsed int env value or def on empty/parse failure.
func EnvIntOr(key string, def int) int {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvFloatOr returns the parsed float env value or def on empty/parse failure.
func EnvFloatOr(key string, def float64) float64 {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// EnvFloatsOr parses a comma-separated list of floats. Any bad element returns def.
func EnvFloatsOr(key string, def []float64) []float64 {
	v := EnvOr(key, "")
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return def
		}
		out = append(out, f)
	}
	return out
}

// LoadEnvFile loads KEY=VALUE pairs from the given files (".env" when none) without
// overriding variables already set. Missing files are ignored.
func LoadEnvFile(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ConfigFromEnv overlays <prefix>_* environment variables on DefaultConfig. An empty
// prefix means DefaultEnvPrefix. Unset or unparsable numbers keep their defaults;
// unknown filter family or response names and an invalid result are errors.
func ConfigFromEnv(prefix string) (Config, error) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	key := func(name string) string { return prefix + "_" + name }

	cfg := DefaultConfig()
	spec := cfg.Filter.Spec

	if v := EnvOr(key("FILTER_FAMILY"), ""); v != "" {
		family, err := ParseFilterFamily(v)
		if err != nil {
			return Config{}, err
		}
		spec.Family = family
	}
	if v := EnvOr(key("FILTER_RESPONSE"), ""); v != "" {
		response, err := ParseFilterResponse(v)
		if err != nil {
			return Config{}, err
		}
		spec.Response = response
	}
	spec.Order = EnvIntOr(key("FILTER_ORDER"), spec.Order)

	low, high := spec.Band()
	low = EnvFloatOr(key("CUTOFF_LOW"), low)
	high = EnvFloatOr(key("CUTOFF_HIGH"), high)
	switch spec.Response {
	case Lowpass:
		spec.Cutoff = []float64{high}
	case Highpass:
		spec.Cutoff = []float64{low}
	default:
		spec.Cutoff = []float64{low, high}
	}

	spec.Ripple.PassbandDB = EnvFloatOr(key("RIPPLE_PASS_DB"), spec.Ripple.PassbandDB)
	spec.Ripple.StopbandDB = EnvFloatOr(key("RIPPLE_STOP_DB"), spec.Ripple.StopbandDB)
	cfg.Filter.Spec = spec

	if mode := EnvOr(key("APPLY_MODE"), ""); mode != "" {
		cfg.Filter.Mode = ApplyMode(strings.ToLower(mode))
	}
	if hz := EnvFloatOr(key("NOTCH_HZ"), 0); hz > 0 {
		n := NotchSpec{Frequency: hz}.WithDefaults()
		cfg.Notch = &n
	}

	cfg.Peaks.MinBeatDistanceBPM = EnvFloatOr(key("MIN_BEAT_DISTANCE_BPM"), cfg.Peaks.MinBeatDistanceBPM)
	cfg.HeartRate.HRMin = EnvFloatOr(key("HR_MIN"), cfg.HeartRate.HRMin)
	cfg.HeartRate.HRMax = EnvFloatOr(key("HR_MAX"), cfg.HeartRate.HRMax)

	if coeffs := EnvFloatsOr(key("SPO2_COEFFS"), nil); len(coeffs) > 0 {
		cfg.Dual.Calibration.Coefficients = coeffs
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
