package dsp

import "math"

// FrequencyShifter multiplies a complex baseband signal by exp(j*2*pi*f*t),
// carrying phase continuously across calls so consecutive blocks translate
// coherently. Positive frequencies move spectra up, negative move them down.
type FrequencyShifter struct {
	sampleRate float64
	phase      float64 // turns, kept in [0, 1)
}

// NewFrequencyShifter creates a shifter for the given sample rate in Hz.
func NewFrequencyShifter(sampleRate float64) *FrequencyShifter {
	return &FrequencyShifter{sampleRate: sampleRate}
}

// InPlace mixes I/Q by fHz, updating the shifter's phase for the next call.
func (s *FrequencyShifter) InPlace(i, q []float64, fHz float64) {
	if s.sampleRate == 0 {
		return
	}
	dPhase := fHz / s.sampleRate // turns per sample
	for n := range i {
		theta := 2 * math.Pi * s.phase
		c, sn := math.Cos(theta), math.Sin(theta)
		ii, qq := i[n], q[n]
		i[n] = ii*c - qq*sn
		q[n] = ii*sn + qq*c

		s.phase += dPhase
		s.phase -= math.Floor(s.phase)
	}
}

// Phase returns the shifter's current phase in turns, mostly for tests.
func (s *FrequencyShifter) Phase() float64 {
	return s.phase
}
