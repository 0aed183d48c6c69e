package dsp

import "math"

// DCBlocker is a one-pole high-pass filter used to strip the DC bias an AM
// envelope detector leaves behind.
type DCBlocker struct {
	alpha float64
	prev  float64
}

// NewDCBlocker builds a DC blocker from a raw pole coefficient in (0, 1).
func NewDCBlocker(alpha float64) *DCBlocker {
	return &DCBlocker{alpha: alpha}
}

// NewDCBlockerHz builds a DC blocker whose corner sits at cornerHz for the
// given sample rate, using the same one-pole time-constant relationship as
// Deemphasis.
func NewDCBlockerHz(cornerHz, sampleRate float64) *DCBlocker {
	tau := 1 / (2 * math.Pi * cornerHz)
	alpha := 1 - math.Exp(-1/(tau*sampleRate))
	return &DCBlocker{alpha: alpha}
}

// InPlace removes the running DC average from x.
func (d *DCBlocker) InPlace(x []float64) {
	for n := range x {
		d.prev += d.alpha * (x[n] - d.prev)
		x[n] -= d.prev
	}
}
