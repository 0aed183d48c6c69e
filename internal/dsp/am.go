package dsp

import "math"

// AMEnvelopeDetector recovers audio from an AM signal by taking the complex
// magnitude and then high-pass filtering to remove the DC bias the carrier
// leaves behind.
type AMEnvelopeDetector struct {
	dc *DCBlocker
}

// NewAMEnvelopeDetector builds a detector whose DC-removal corner sits
// around 20 Hz at the given output sample rate.
func NewAMEnvelopeDetector(outRate float64) *AMEnvelopeDetector {
	return &AMEnvelopeDetector{dc: NewDCBlockerHz(20, outRate)}
}

// Process converts I/Q envelope magnitude into a DC-free audio signal.
func (a *AMEnvelopeDetector) Process(i, q []float64) []float64 {
	out := make([]float64, len(i))
	for n := range i {
		out[n] = math.Hypot(i[n], q[n])
	}
	a.dc.InPlace(out)
	return out
}
