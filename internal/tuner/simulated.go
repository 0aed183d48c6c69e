package tuner

import "math"

// Generator produces n synthetic (I, Q) samples centred on centreHz, for
// use by SimulatedTuner in tests and demos.
type Generator func(centreHz float64, n int) (i, q []float64)

// SimulatedTuner drives a Generator through the exact same gain-emulation
// and byte-quantization path a real device's samples would take (spec
// §4.17), so pipeline code under test never needs to know it isn't reading
// real hardware.
type SimulatedTuner struct {
	sampleRate     float64
	centreHz       float64
	correctionPPM  int
	gain           GainSetting
	directSampling DirectSamplingMode
	biasTee        bool
	resetCalled    bool

	gen Generator
}

// NewSimulatedTuner builds a SimulatedTuner around gen, defaulting to 25dB
// gain (the emulation's unity point: 10^((25-25)/20) == 1).
func NewSimulatedTuner(gen Generator) *SimulatedTuner {
	return &SimulatedTuner{
		gen:  gen,
		gain: ManualGain(25),
	}
}

func (t *SimulatedTuner) SetSampleRate(hz float64) (float64, error) {
	t.sampleRate = hz
	return hz, nil
}

func (t *SimulatedTuner) SetCentreFrequency(hz float64) (float64, error) {
	t.centreHz = hz
	return hz, nil
}

func (t *SimulatedTuner) SetFrequencyCorrectionPPM(ppm int) error {
	t.correctionPPM = ppm
	return nil
}

func (t *SimulatedTuner) SetGain(g GainSetting) error {
	t.gain = g
	return nil
}

func (t *SimulatedTuner) GetGain() GainSetting { return t.gain }

func (t *SimulatedTuner) SetDirectSampling(mode DirectSamplingMode) error {
	t.directSampling = mode
	return nil
}

func (t *SimulatedTuner) GetDirectSampling() DirectSamplingMode { return t.directSampling }

func (t *SimulatedTuner) EnableBiasTee(on bool) error {
	t.biasTee = on
	return nil
}

func (t *SimulatedTuner) BiasTeeEnabled() bool { return t.biasTee }

func (t *SimulatedTuner) ResetBuffer() error {
	t.resetCalled = true
	return nil
}

// gainMultiplier converts the tuner's gain setting to a linear multiplier
// using the emulation formula spec §4.17 specifies: auto is treated as
// unity gain.
func (t *SimulatedTuner) gainMultiplier() float64 {
	if t.gain.Auto {
		return 1
	}
	return math.Pow(10, (t.gain.DB-25)/20)
}

// ReadSamples runs the generator, applies gain, requantizes to bytes, and
// hands back exactly the RawBlock shape a real Tuner would produce.
func (t *SimulatedTuner) ReadSamples(length int) (RawBlock, error) {
	i, q := t.gen(t.centreHz, length)

	raw := make([]byte, 2*length)
	mult := t.gainMultiplier()
	for n := 0; n < length; n++ {
		iv := clampUnit(i[n] * mult)
		qv := clampUnit(q[n] * mult)
		raw[2*n] = floatToByte(iv)
		raw[2*n+1] = floatToByte(qv)
	}

	return RawBlock{
		Frequency:      t.centreHz,
		RawBytes:       raw,
		DirectSampling: t.directSampling,
	}, nil
}

func (t *SimulatedTuner) Close() error { return nil }

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
