package dsp

import "math"

// FMDiscriminator recovers the modulating signal from a complex FM signal
// via a polar discriminator: the phase of each sample times the conjugate
// of the previous one, normalized by the maximum deviation. This avoids
// explicit phase unwrapping.
type FMDiscriminator struct {
	prevI, prevQ float64
	maxDevNorm   float64 // maxDeviationHz / outRate
}

// NewFMDiscriminator builds a discriminator for the given max deviation and
// output sample rate, both in Hz.
func NewFMDiscriminator(maxDeviationHz, outRate float64) *FMDiscriminator {
	return &FMDiscriminator{maxDevNorm: maxDeviationHz / outRate}
}

// Process demodulates a block of I/Q into a real composite/audio signal of
// the same length, carrying state across calls.
func (d *FMDiscriminator) Process(i, q []float64) []float64 {
	out := make([]float64, len(i))
	pi, pq := d.prevI, d.prevQ
	for n := range i {
		ci, cq := i[n], q[n]
		num := cq*pi - ci*pq
		den := ci*pi + cq*pq
		phi := math.Atan2(num, den)
		out[n] = phi / (2 * math.Pi * d.maxDevNorm)
		pi, pq = ci, cq
	}
	d.prevI, d.prevQ = pi, pq
	return out
}
