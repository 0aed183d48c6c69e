package dsp

import "math"

// Time constant presets: 50us for Europe/S.Korea (spec default), 75us for
// the US.
const (
	TauEurope = 50e-6
	TauUS     = 75e-6
)

// Deemphasis implements the one-pole low-pass filter used for FM
// de-emphasis: y[n] = y[n-1] + alpha*(x[n]-y[n-1]), with
// alpha = 1 - exp(-1/(tau*sampleRate)).
type Deemphasis struct {
	alpha float64
	prev  float64
}

// NewDeemphasis creates a new de-emphasis filter.
// sampleRate is the audio sample rate.
// tau is the time constant (e.g., TauEurope or TauUS).
func NewDeemphasis(sampleRate int, tau float64) *Deemphasis {
	alpha := 1 - math.Exp(-1/(tau*float64(sampleRate)))
	return &Deemphasis{alpha: alpha}
}

// Filter applies the de-emphasis filter to a single sample and returns the
// filtered value.
func (d *Deemphasis) Filter(x float64) float64 {
	d.prev += d.alpha * (x - d.prev)
	return d.prev
}

// InPlace applies Filter across a whole block, replacing each sample with
// its filtered value.
func (d *Deemphasis) InPlace(x []float64) {
	for n := range x {
		x[n] = d.Filter(x[n])
	}
}
