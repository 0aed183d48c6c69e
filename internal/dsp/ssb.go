package dsp

// Sideband selects which sideband a SSBDemodulator recovers.
type Sideband int

const (
	// LowerSideband recovers LSB: output = I + Hilbert(Q).
	LowerSideband Sideband = iota
	// UpperSideband recovers USB: output = I - Hilbert(Q).
	UpperSideband
)

// SSBDemodulator implements the Weaver-style architecture: the upstream
// complex low-pass has already restricted bandwidth to the wanted sideband
// plus its image, and this stage cancels the image by summing I with a
// 90-degree-shifted version of Q (or subtracting, for the other sideband).
// The phasing method only cancels the image if both branches are time
// aligned, so I is run through a matching pure-delay line equal to the
// Hilbert filter's group delay before the two are combined.
type SSBDemodulator struct {
	sideband Sideband
	hilbert  *FIRFilter
	delay    []float64
}

// NewSSBDemodulator builds a demodulator for the given sideband. hilbertTaps
// controls the accuracy of the internal 90-degree phase shifter.
func NewSSBDemodulator(sideband Sideband, hilbertTaps int) *SSBDemodulator {
	hilbert := NewFIRFilter(HilbertKernel(hilbertTaps))
	return &SSBDemodulator{
		sideband: sideband,
		hilbert:  hilbert,
		delay:    make([]float64, hilbert.GroupDelay()),
	}
}

// Process demodulates a block of I/Q into real audio samples.
func (s *SSBDemodulator) Process(i, q []float64) []float64 {
	shiftedQ := append([]float64(nil), q...)
	s.hilbert.InPlace(shiftedQ)
	delayedI := s.delayI(i)

	out := make([]float64, len(i))
	switch s.sideband {
	case LowerSideband:
		for n := range delayedI {
			out[n] = delayedI[n] + shiftedQ[n]
		}
	case UpperSideband:
		for n := range delayedI {
			out[n] = delayedI[n] - shiftedQ[n]
		}
	}
	return out
}

// delayI shifts i by the Hilbert filter's group delay, carrying history
// across calls the same way FIRFilter's delay line does.
func (s *SSBDemodulator) delayI(i []float64) []float64 {
	n := len(s.delay)
	if n == 0 {
		return append([]float64(nil), i...)
	}
	extended := make([]float64, n+len(i))
	copy(extended, s.delay)
	copy(extended[n:], i)
	out := append([]float64(nil), extended[:len(i)]...)
	copy(s.delay, extended[len(extended)-n:])
	return out
}

// SetSideband switches the demodulator between USB and LSB without
// resetting the internal Hilbert filter state.
func (s *SSBDemodulator) SetSideband(sb Sideband) {
	s.sideband = sb
}
