package pipeline

import (
	"github.com/rtlsdr-web/radiocore/internal/dsp"
	"github.com/rtlsdr-web/radiocore/internal/mode"
)

// wbfmStage1RefBandwidthHz is the constant the reference implementation
// scales stage-1 SNR by, rather than the live bandwidth: WBFM always
// occupies about 150kHz of RF regardless of what stage 2 later decimates
// to. Spec §9 flags this as a deliberate (if unusual) choice worth
// preserving rather than "fixing" to use the live bandwidth.
const wbfmStage1RefBandwidthHz = 150_000.0

const maxInterRateHz = 336_000.0

// WBFM is the two-stage wideband FM pipeline: stage 1 extracts the FM
// composite at an intermediate rate, stage 2 recovers mono/stereo audio at
// the output rate.
type WBFM struct {
	inRate, outRate, interRate float64
	stereoRequested            bool

	shifter  *dsp.FrequencyShifter
	complexD *dsp.ComplexDownsampler
	lpfI     *dsp.FIRFilter
	lpfQ     *dsp.FIRFilter
	discrim  *dsp.FMDiscriminator

	monoDown  *dsp.RealDownsampler
	diffDown  *dsp.RealDownsampler
	stereoSep *dsp.StereoSeparator

	deemphLeft  *dsp.Deemphasis
	deemphRight *dsp.Deemphasis

	deemphTau float64
}

// NewWBFM builds a WBFM pipeline for the given input/output sample rates.
func NewWBFM(inRate, outRate float64, m mode.Mode, deemphTau float64) *WBFM {
	interRate := inRate
	if interRate > maxInterRateHz {
		interRate = maxInterRateHz
	}
	if deemphTau == 0 {
		deemphTau = dsp.TauEurope
	}

	w := &WBFM{
		inRate:          inRate,
		outRate:         outRate,
		interRate:       interRate,
		stereoRequested: m.Stereo(),
		deemphTau:       deemphTau,
	}
	w.shifter = dsp.NewFrequencyShifter(inRate)
	w.complexD = dsp.NewComplexDownsampler(inRate, interRate, 151)
	w.lpfI = dsp.NewFIRFilter(dsp.LowPassKernel(151, 75000/interRate))
	w.lpfQ = dsp.NewFIRFilter(dsp.LowPassKernel(151, 75000/interRate))
	w.discrim = dsp.NewFMDiscriminator(75000, interRate)

	w.monoDown = dsp.NewRealDownsampler(interRate, outRate, 41)
	w.diffDown = dsp.NewRealDownsampler(interRate, outRate, 41)
	w.stereoSep = dsp.NewStereoSeparator(interRate)

	w.deemphLeft = dsp.NewDeemphasis(int(outRate), deemphTau)
	w.deemphRight = dsp.NewDeemphasis(int(outRate), deemphTau)
	return w
}

// Scheme implements Pipeline.
func (w *WBFM) Scheme() mode.Scheme { return mode.WBFM }

// SetParams implements Pipeline: only the stereo flag can change without a
// full pipeline rebuild.
func (w *WBFM) SetParams(m mode.Mode) error {
	if m.Scheme() != mode.WBFM {
		return errWrongScheme(mode.WBFM, m.Scheme())
	}
	w.stereoRequested = m.Stereo()
	return nil
}

// Demodulate implements Pipeline.
func (w *WBFM) Demodulate(i, q []float64, freqOffsetHz float64) AudioBlock {
	i = append([]float64(nil), i...)
	q = append([]float64(nil), q...)

	// Stage 1: baseband extraction.
	w.shifter.InPlace(i, q, -freqOffsetHz)
	interI, interQ := w.complexD.Process(i, q)

	preFilterPower := dsp.Power(interI, interQ)

	w.lpfI.InPlace(interI)
	w.lpfQ.InPlace(interQ)
	filteredPower := dsp.Power(interI, interQ)

	composite := w.discrim.Process(interI, interQ)
	snr := dsp.LinearSNR(filteredPower, preFilterPower, w.outRate, wbfmStage1RefBandwidthHz)

	// Stage 2: audio recovery.
	mono := w.monoDown.Process(composite)
	left := append([]float64(nil), mono...)
	right := append([]float64(nil), mono...)

	found := false
	if w.stereoRequested {
		result := w.stereoSep.Process(composite)
		found = result.Found
		if found {
			diff := w.diffDown.Process(result.Diff)
			n := len(left)
			if len(diff) < n {
				n = len(diff)
			}
			for k := 0; k < n; k++ {
				left[k] += diff[k]
				right[k] -= diff[k]
			}
		}
	}

	w.deemphLeft.InPlace(left)
	w.deemphRight.InPlace(right)

	return AudioBlock{
		Left:   left,
		Right:  right,
		Stereo: found && w.stereoRequested,
		SNR:    snr,
	}
}
