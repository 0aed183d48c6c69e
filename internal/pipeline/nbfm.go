package pipeline

import (
	"github.com/rtlsdr-web/radiocore/internal/dsp"
	"github.com/rtlsdr-web/radiocore/internal/mode"
)

// NBFM is the narrowband FM pipeline: shift, complex-downsample straight to
// audio rate, low-pass I/Q at the configured deviation, FM discriminate.
type NBFM struct {
	inRate, outRate float64
	m               mode.Mode

	shifter  *dsp.FrequencyShifter
	complexD *dsp.ComplexDownsampler
	lpfI     *dsp.FIRFilter
	lpfQ     *dsp.FIRFilter
	discrim  *dsp.FMDiscriminator
}

// NewNBFM builds an NBFM pipeline.
func NewNBFM(inRate, outRate float64, m mode.Mode) *NBFM {
	n := &NBFM{inRate: inRate, outRate: outRate}
	n.buildFilters(m)
	return n
}

func (n *NBFM) buildFilters(m mode.Mode) {
	n.m = m
	n.shifter = dsp.NewFrequencyShifter(n.inRate)
	n.complexD = dsp.NewComplexDownsampler(n.inRate, n.outRate, 101)
	cutoff := m.MaxDeviationHz() / n.outRate
	n.lpfI = dsp.NewFIRFilter(dsp.LowPassKernel(101, cutoff))
	n.lpfQ = dsp.NewFIRFilter(dsp.LowPassKernel(101, cutoff))
	n.discrim = dsp.NewFMDiscriminator(m.MaxDeviationHz(), n.outRate)
}

// Scheme implements Pipeline.
func (n *NBFM) Scheme() mode.Scheme { return mode.NBFM }

// SetParams implements Pipeline: a changed max deviation recomputes the
// low-pass kernels and discriminator scale.
func (n *NBFM) SetParams(m mode.Mode) error {
	if m.Scheme() != mode.NBFM {
		return errWrongScheme(mode.NBFM, m.Scheme())
	}
	if m.MaxDeviationHz() != n.m.MaxDeviationHz() {
		n.buildFilters(m)
		return nil
	}
	n.m = m
	return nil
}

// Squelch returns the configured squelch threshold for the controller's
// squelch gate.
func (n *NBFM) Squelch() float64 { return n.m.Squelch() }

// Demodulate implements Pipeline.
func (n *NBFM) Demodulate(i, q []float64, freqOffsetHz float64) AudioBlock {
	i = append([]float64(nil), i...)
	q = append([]float64(nil), q...)

	n.shifter.InPlace(i, q, -freqOffsetHz)
	outI, outQ := n.complexD.Process(i, q)

	totalPower := dsp.Power(outI, outQ)
	n.lpfI.InPlace(outI)
	n.lpfQ.InPlace(outQ)
	filteredPower := dsp.Power(outI, outQ)

	mono := n.discrim.Process(outI, outQ)
	snr := dsp.LinearSNR(filteredPower, totalPower, n.outRate, 2*n.m.MaxDeviationHz())

	return AudioBlock{
		Left:  mono,
		Right: append([]float64(nil), mono...),
		SNR:   snr,
	}
}
