package pipeline

import (
	"github.com/rtlsdr-web/radiocore/internal/dsp"
	"github.com/rtlsdr-web/radiocore/internal/mode"
)

// cwKernelTaps is the default 351-tap low-pass kernel spec §4.15 prescribes
// for CW's narrow bandwidth.
const cwKernelTaps = 351

// cwAGCTimeConstant is the 10-second AGC time constant spec §4.15
// prescribes, much slower than SSB's since CW carries no envelope beyond
// the on/off keying itself.
const cwAGCTimeConstant = 10.0

// CW is the continuous-wave (Morse) pipeline: shift, complex-downsample,
// low-pass at a narrow bandwidth around the carrier, then re-shift the
// baseband up by a beat-note offset so a bare carrier becomes an audible
// tone, followed by a slow AGC.
type CW struct {
	inRate, outRate float64
	m               mode.Mode

	shifter   *dsp.FrequencyShifter
	complexD  *dsp.ComplexDownsampler
	lpfI      *dsp.FIRFilter
	lpfQ      *dsp.FIRFilter
	toneMixer *dsp.FrequencyShifter
	agc       *dsp.AGC
}

// NewCW builds a CW pipeline.
func NewCW(inRate, outRate float64, m mode.Mode) *CW {
	c := &CW{inRate: inRate, outRate: outRate}
	c.buildFilters(m)
	return c
}

func (c *CW) buildFilters(m mode.Mode) {
	c.m = m
	c.shifter = dsp.NewFrequencyShifter(c.inRate)
	c.complexD = dsp.NewComplexDownsampler(c.inRate, c.outRate, 101)
	cutoff := (m.BandwidthHz() / 2) / c.outRate
	c.lpfI = dsp.NewFIRFilter(dsp.LowPassKernel(cwKernelTaps, cutoff))
	c.lpfQ = dsp.NewFIRFilter(dsp.LowPassKernel(cwKernelTaps, cutoff))
	c.toneMixer = dsp.NewFrequencyShifter(c.outRate)
	c.agc = dsp.NewAGC(c.outRate, cwAGCTimeConstant)
}

// Scheme implements Pipeline.
func (c *CW) Scheme() mode.Scheme { return mode.CW }

// SetParams implements Pipeline.
func (c *CW) SetParams(m mode.Mode) error {
	if m.Scheme() != mode.CW {
		return errWrongScheme(mode.CW, m.Scheme())
	}
	if m.BandwidthHz() != c.m.BandwidthHz() {
		c.buildFilters(m)
		return nil
	}
	c.m = m
	return nil
}

// Demodulate implements Pipeline.
func (c *CW) Demodulate(i, q []float64, freqOffsetHz float64) AudioBlock {
	i = append([]float64(nil), i...)
	q = append([]float64(nil), q...)

	c.shifter.InPlace(i, q, -freqOffsetHz)
	outI, outQ := c.complexD.Process(i, q)
	totalPower := dsp.Power(outI, outQ)

	c.lpfI.InPlace(outI)
	c.lpfQ.InPlace(outQ)
	filteredPower := dsp.Power(outI, outQ)

	c.toneMixer.InPlace(outI, outQ, c.m.ToneHz())
	mono := append([]float64(nil), outI...)
	c.agc.InPlace(mono)

	snr := dsp.LinearSNR(filteredPower, totalPower, c.outRate, c.m.BandwidthHz())

	return AudioBlock{
		Left:  mono,
		Right: append([]float64(nil), mono...),
		SNR:   snr,
	}
}
