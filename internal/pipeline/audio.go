// Package pipeline implements the per-mode demodulator chains built from
// internal/dsp primitives: WBFM (two-stage, optional stereo), NBFM, AM,
// SSB (USB/LSB), and CW.
package pipeline

import "github.com/rtlsdr-web/radiocore/internal/mode"

// AudioBlock is the pipeline's output unit: a pair of equal-length real
// channels in [-1, +1], a stereo flag, and a linear (not dB) SNR estimate.
type AudioBlock struct {
	Left, Right []float64
	Stereo      bool
	SNR         float64
}

// Pipeline is the uniform interface every mode-specific demodulator
// implements, dispatched by scheme tag rather than by inheritance (spec §9,
// "Extensibility registry").
type Pipeline interface {
	// Demodulate consumes one block of float I/Q sampled at the pipeline's
	// input rate, translated by freqOffsetHz, and returns one audio block.
	Demodulate(i, q []float64, freqOffsetHz float64) AudioBlock

	// SetParams updates the pipeline's mode parameters in place. The
	// scheme of m must match Scheme(); callers that want to switch scheme
	// must build a new Pipeline via New instead.
	SetParams(m mode.Mode) error

	// Scheme reports which modulation scheme this pipeline implements.
	Scheme() mode.Scheme
}

// Squelcher is implemented by pipelines whose scheme exposes a squelch
// threshold (NBFM, AM, USB, LSB). The controller type-asserts for it before
// applying the squelch gate; WBFM and CW simply don't implement it.
type Squelcher interface {
	Squelch() float64
}
