package dsp

import "math"

// StereoSeparator recovers the L-R difference signal from an FM composite
// baseband using a 19 kHz pilot phase-locked loop, per spec §4.7.
type StereoSeparator struct {
	sampleRate float64

	ncoPhase float64 // radians
	ncoFreq  float64 // radians/sample, nominal 19kHz

	// loop filter (proportional + integral)
	kp, ki     float64
	integrator float64

	pilotLPF *FIRFilter
	diffLPF  *FIRFilter

	// pilot amplitude smoothing, used to decide `found`
	pilotEnergy float64
	threshold   float64
}

// StereoResult carries the outcome of separating one block of composite
// audio.
type StereoResult struct {
	Found bool
	Diff  []float64
}

// NewStereoSeparator builds a pilot PLL for the given intermediate sample
// rate.
func NewStereoSeparator(sampleRate float64) *StereoSeparator {
	const pilotHz = 19000.0
	return &StereoSeparator{
		sampleRate: sampleRate,
		ncoFreq:    2 * math.Pi * pilotHz / sampleRate,
		kp:         0.02,
		ki:         0.0004,
		pilotLPF:   NewFIRFilter(LowPassKernel(31, 2000/sampleRate)),
		diffLPF:    NewFIRFilter(LowPassKernel(31, 15000/sampleRate)),
		threshold:  0.01,
	}
}

// Process runs the PLL over one block of composite baseband, returning
// whether the pilot was found and the recovered L-R difference signal.
func (s *StereoSeparator) Process(composite []float64) StereoResult {
	n := len(composite)
	pilotMixed := make([]float64, n)
	diffMixed := make([]float64, n)

	for k, x := range composite {
		pilotSin := math.Sin(s.ncoPhase)
		pilotCos := math.Cos(s.ncoPhase)
		// Error signal: mix composite by the NCO and low-pass; used to steer
		// the loop toward the pilot's phase.
		pilotMixed[k] = x * pilotSin

		// Difference signal: mix by the doubled (38kHz) NCO to bring L-R to
		// baseband. sin(2*theta) = 2*sin(theta)*cos(theta).
		doubled := 2 * pilotSin * pilotCos
		diffMixed[k] = x * doubled * 2

		s.ncoPhase += s.ncoFreq
		if s.ncoPhase > 2*math.Pi {
			s.ncoPhase -= 2 * math.Pi
		}
	}

	errSignal := append([]float64(nil), pilotMixed...)
	s.pilotLPF.InPlace(errSignal)

	var energy float64
	for _, e := range errSignal {
		// Proportional-integral loop filter steering NCO phase toward the
		// pilot.
		s.integrator += s.ki * e
		correction := s.kp*e + s.integrator
		s.ncoFreq += correction * 1e-6
		energy += e * e
	}
	if n > 0 {
		energy /= float64(n)
	}
	const smoothing = 0.05
	s.pilotEnergy = (1-smoothing)*s.pilotEnergy + smoothing*energy

	diff := append([]float64(nil), diffMixed...)
	s.diffLPF.InPlace(diff)

	found := s.pilotEnergy > s.threshold*s.threshold
	if !found {
		for i := range diff {
			diff[i] = 0
		}
	}

	return StereoResult{Found: found, Diff: diff}
}
