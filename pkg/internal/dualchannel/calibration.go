package dualchannel

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
)

// monotonicSteps is the number of intervals the derivative is sampled on when a
// calibration is validated.
const monotonicSteps = 256

// Calibration maps a ratio-of-ratios to an oxygen saturation percentage with a
// polynomial valid on [RMin, RMax]. Coefficients are in ascending powers of R.
type Calibration struct {
	Coefficients []float64 `json:"coefficients"`
	RMin         float64   `json:"r_min"`
	RMax         float64   `json:"r_max"`
}

// DefaultCalibration returns the empirical quadratic 94.845 + 30.354R - 45.06R^2,
// valid on [0.4, 1.8].
func DefaultCalibration() Calibration {
	return Calibration{
		Coefficients: []float64{94.845, 30.354, -45.06},
		RMin:         0.4,
		RMax:         1.8,
	}
}

// Validate rejects empty polynomials, inverted domains and curves that are not
// monotonic over their domain.
func (c Calibration) Validate() error {
	if len(c.Coefficients) == 0 {
		return fmt.Errorf("%w: calibration has no coefficients", types.ErrInvalidParameters)
	}
	for _, v := range append([]float64{c.RMin, c.RMax}, c.Coefficients...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: calibration values must be finite", types.ErrInvalidParameters)
		}
	}
	if !(c.RMin < c.RMax) {
		return fmt.Errorf("%w: calibration domain must satisfy min < max, got [%v, %v]", types.ErrInvalidParameters, c.RMin, c.RMax)
	}

	var rising, falling bool
	step := (c.RMax - c.RMin) / monotonicSteps
	for i := 0; i <= monotonicSteps; i++ {
		d := c.derivative(c.RMin + float64(i)*step)
		switch {
		case d > 0:
			rising = true
		case d < 0:
			falling = true
		}
	}
	if rising == falling {
		return fmt.Errorf("%w: calibration is not monotonic on [%v, %v]", types.ErrInvalidParameters, c.RMin, c.RMax)
	}
	return nil
}

// Contains reports whether r lies inside the valid domain.
func (c Calibration) Contains(r float64) bool {
	return r >= c.RMin && r <= c.RMax
}

// Estimate evaluates the calibration at r. It never extrapolates.
func (c Calibration) Estimate(r float64) (float64, error) {
	if !c.Contains(r) {
		return 0, fmt.Errorf("%w: R=%.4f outside [%v, %v]", types.ErrCalibrationOutOfRange, r, c.RMin, c.RMax)
	}
	return c.eval(r), nil
}

func (c Calibration) eval(r float64) float64 {
	var y float64
	for i := len(c.Coefficients) - 1; i >= 0; i-- {
		y = y*r + c.Coefficients[i]
	}
	return y
}

func (c Calibration) derivative(r float64) float64 {
	var y float64
	for i := len(c.Coefficients) - 1; i >= 1; i-- {
		y = y*r + float64(i)*c.Coefficients[i]
	}
	return y
}
