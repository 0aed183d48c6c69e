package pipeline

import (
	"github.com/rtlsdr-web/radiocore/internal/dsp"
	"github.com/rtlsdr-web/radiocore/internal/mode"
)

// ssbAGCTimeConstant is the fixed 3-second AGC time constant spec §4.14
// prescribes for both sidebands.
const ssbAGCTimeConstant = 3.0

// SSB is the single-sideband pipeline, configured at construction for
// either upper or lower sideband recovery.
type SSB struct {
	inRate, outRate float64
	m               mode.Mode
	sideband        dsp.Sideband

	shifter  *dsp.FrequencyShifter
	complexD *dsp.ComplexDownsampler
	demod    *dsp.SSBDemodulator
	lpf      *dsp.FIRFilter
	agc      *dsp.AGC
}

// NewSSB builds an SSB pipeline for scheme (mode.USB or mode.LSB).
func NewSSB(scheme mode.Scheme, inRate, outRate float64, m mode.Mode) *SSB {
	sb := dsp.LowerSideband
	if scheme == mode.USB {
		sb = dsp.UpperSideband
	}
	s := &SSB{inRate: inRate, outRate: outRate, sideband: sb}
	s.buildFilters(m)
	return s
}

func (s *SSB) buildFilters(m mode.Mode) {
	s.m = m
	s.shifter = dsp.NewFrequencyShifter(s.inRate)
	s.complexD = dsp.NewComplexDownsampler(s.inRate, s.outRate, 101)
	s.demod = dsp.NewSSBDemodulator(s.sideband, 101)
	cutoff := (m.BandwidthHz() / 2) / s.outRate
	s.lpf = dsp.NewFIRFilter(dsp.LowPassKernel(151, cutoff))
	s.agc = dsp.NewAGC(s.outRate, ssbAGCTimeConstant)
}

// Scheme implements Pipeline.
func (s *SSB) Scheme() mode.Scheme {
	if s.sideband == dsp.UpperSideband {
		return mode.USB
	}
	return mode.LSB
}

// SetParams implements Pipeline.
func (s *SSB) SetParams(m mode.Mode) error {
	if m.Scheme() != s.Scheme() {
		return errWrongScheme(s.Scheme(), m.Scheme())
	}
	if m.BandwidthHz() != s.m.BandwidthHz() {
		s.buildFilters(m)
		return nil
	}
	s.m = m
	return nil
}

// Squelch returns the configured squelch threshold for the controller's
// squelch gate.
func (s *SSB) Squelch() float64 { return s.m.Squelch() }

// Demodulate implements Pipeline.
func (s *SSB) Demodulate(i, q []float64, freqOffsetHz float64) AudioBlock {
	i = append([]float64(nil), i...)
	q = append([]float64(nil), q...)

	s.shifter.InPlace(i, q, -freqOffsetHz)
	outI, outQ := s.complexD.Process(i, q)
	totalPower := dsp.Power(outI, outQ)

	mono := s.demod.Process(outI, outQ)
	s.lpf.InPlace(mono)
	s.agc.InPlace(mono)

	filteredPower := dsp.Power(mono, mono)
	snr := dsp.LinearSNR(filteredPower, totalPower, s.outRate, s.m.BandwidthHz()*2)

	return AudioBlock{
		Left:  mono,
		Right: append([]float64(nil), mono...),
		SNR:   snr,
	}
}
