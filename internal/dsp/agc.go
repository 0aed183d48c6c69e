package dsp

import "math"

// AGC tracks a running average of |x| with an attack/release time constant
// and divides each sample by that average (floored at epsilon) to normalize
// perceived loudness.
type AGC struct {
	alpha   float64
	average float64
	epsilon float64
}

// NewAGC builds an AGC with the given time constant in seconds at
// sampleRate Hz.
func NewAGC(sampleRate, timeConstant float64) *AGC {
	return &AGC{
		alpha:   1 - math.Exp(-1/(timeConstant*sampleRate)),
		epsilon: 1e-6,
	}
}

// InPlace normalizes x by the AGC's running average magnitude.
func (a *AGC) InPlace(x []float64) {
	for n := range x {
		mag := math.Abs(x[n])
		a.average += a.alpha * (mag - a.average)
		denom := a.average
		if denom < a.epsilon {
			denom = a.epsilon
		}
		v := x[n] / denom
		x[n] = clamp(v, -1, 1)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
