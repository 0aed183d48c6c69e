// Package tuner implements the external tuner contract of spec §6.1: a
// uniform abstraction over real RTL-SDR-style hardware and the
// SimulatedTuner/WavTuner stand-ins used for testing and offline demos.
package tuner

import "github.com/rtlsdr-web/radiocore/internal/radioerr"

// DirectSamplingMode selects which ADC channel, if any, is wired directly
// to the antenna for HF reception below the tuner's normal range.
type DirectSamplingMode int

const (
	DirectSamplingOff DirectSamplingMode = iota
	DirectSamplingIChannel
	DirectSamplingQChannel
)

// directSamplingThresholdHz is the frequency below which direct sampling is
// recommended, per spec §6.1.
const directSamplingThresholdHz = 29_000_000.0

// RecommendDirectSampling reports whether a tuner should enable direct
// sampling for the given centre frequency. Ownership of actually acting on
// this lives with each Tuner implementation, not the demodulation core.
func RecommendDirectSampling(centreHz float64) bool {
	return centreHz < directSamplingThresholdHz
}

// GainSetting is either an explicit dB value or the "auto" marker — a
// distinct zero-information state, not merely a sentinel numeric value.
type GainSetting struct {
	Auto bool
	DB   float64
}

// AutoGain is the explicit "let the tuner decide" gain setting.
func AutoGain() GainSetting { return GainSetting{Auto: true} }

// ManualGain builds an explicit dB gain setting.
func ManualGain(db float64) GainSetting { return GainSetting{DB: db} }

// RawBlock is one block of raw samples read from a Tuner: interleaved
// unsigned 8-bit I/Q bytes plus the metadata the source adapter needs to
// attach to the resulting float block.
type RawBlock struct {
	Frequency      float64
	RawBytes       []byte
	DirectSampling DirectSamplingMode
}

// Tuner is the abstraction the source adapter drives. All operations may
// suspend and may fail with a *radioerr.DeviceError except the pure
// getters.
type Tuner interface {
	SetSampleRate(hz float64) (actualHz float64, err error)
	SetCentreFrequency(hz float64) (actualHz float64, err error)
	SetFrequencyCorrectionPPM(ppm int) error

	SetGain(g GainSetting) error
	GetGain() GainSetting

	SetDirectSampling(mode DirectSamplingMode) error
	GetDirectSampling() DirectSamplingMode

	EnableBiasTee(on bool) error
	BiasTeeEnabled() bool

	// ResetBuffer must be called before the first ReadSamples.
	ResetBuffer() error

	// ReadSamples returns a block of length input samples (2*length raw
	// bytes). length should be a multiple of 512.
	ReadSamples(length int) (RawBlock, error)

	Close() error
}

// ByteToFloat converts one unsigned 8-bit IQ sample to [-1, +1], the exact
// inverse of floatToByte (spec property #9). Exported so the source
// adapter's byte->float conversion (spec §4.17 step 2) runs the identical
// code path for both simulated and real tuners.
func ByteToFloat(b byte) float64 {
	return float64(b)/255.0*2 - 1
}

// floatToByte quantizes a float in [-1, +1] back to an unsigned byte,
// clamping first so out-of-range floats from the gain stage never wrap.
func floatToByte(f float64) byte {
	if f > 1 {
		f = 1
	} else if f < -1 {
		f = -1
	}
	v := (f+1)*255/2 + 0.5 // +0.5 for round-to-nearest via truncation
	return byte(v)
}

// newDeviceError is a small convenience wrapper so every Tuner
// implementation reports failures the same way.
func newDeviceError(op string, err error) error {
	return radioerr.NewDeviceError(op, err)
}
