package pipeline

import (
	"github.com/rtlsdr-web/radiocore/internal/dsp"
	"github.com/rtlsdr-web/radiocore/internal/mode"
)

// AM is the amplitude-modulation pipeline: shift, complex-downsample,
// low-pass at half the configured bandwidth, envelope detect, DC block.
type AM struct {
	inRate, outRate float64
	m               mode.Mode

	shifter  *dsp.FrequencyShifter
	complexD *dsp.ComplexDownsampler
	lpfI     *dsp.FIRFilter
	lpfQ     *dsp.FIRFilter
	envelope *dsp.AMEnvelopeDetector
}

// NewAM builds an AM pipeline.
func NewAM(inRate, outRate float64, m mode.Mode) *AM {
	a := &AM{inRate: inRate, outRate: outRate}
	a.buildFilters(inRate, m)
	return a
}

func (a *AM) buildFilters(inRate float64, m mode.Mode) {
	a.m = m
	a.shifter = dsp.NewFrequencyShifter(inRate)
	a.complexD = dsp.NewComplexDownsampler(inRate, a.outRate, 101)
	cutoff := (m.BandwidthHz() / 2) / a.outRate
	a.lpfI = dsp.NewFIRFilter(dsp.LowPassKernel(101, cutoff))
	a.lpfQ = dsp.NewFIRFilter(dsp.LowPassKernel(101, cutoff))
	a.envelope = dsp.NewAMEnvelopeDetector(a.outRate)
}

// Scheme implements Pipeline.
func (a *AM) Scheme() mode.Scheme { return mode.AM }

// SetParams implements Pipeline.
func (a *AM) SetParams(m mode.Mode) error {
	if m.Scheme() != mode.AM {
		return errWrongScheme(mode.AM, m.Scheme())
	}
	if m.BandwidthHz() != a.m.BandwidthHz() {
		a.buildFilters(a.inRate, m)
		return nil
	}
	a.m = m
	return nil
}

// Squelch returns the configured squelch threshold for the controller's
// squelch gate.
func (a *AM) Squelch() float64 { return a.m.Squelch() }

// Demodulate implements Pipeline.
func (a *AM) Demodulate(i, q []float64, freqOffsetHz float64) AudioBlock {
	i = append([]float64(nil), i...)
	q = append([]float64(nil), q...)

	a.shifter.InPlace(i, q, -freqOffsetHz)
	outI, outQ := a.complexD.Process(i, q)

	totalPower := dsp.Power(outI, outQ)
	a.lpfI.InPlace(outI)
	a.lpfQ.InPlace(outQ)
	filteredPower := dsp.Power(outI, outQ)

	mono := a.envelope.Process(outI, outQ)
	snr := dsp.LinearSNR(filteredPower, totalPower, a.outRate, a.m.BandwidthHz())

	return AudioBlock{
		Left:  mono,
		Right: append([]float64(nil), mono...),
		SNR:   snr,
	}
}
