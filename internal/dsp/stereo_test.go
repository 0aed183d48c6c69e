package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// genStereoComposite builds a synthetic FM composite: mono sum, a 19kHz
// pilot, and the 38kHz DSB-SC L-R subcarrier, matching the structure the
// stereo separator expects to lock onto.
func genStereoComposite(n int, rate, left, right float64) []float64 {
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		t := float64(k) / rate
		mono := 0.5 * (math.Sin(2*math.Pi*left*t) + math.Sin(2*math.Pi*right*t))
		pilot := 0.1 * math.Sin(2*math.Pi*19000*t)
		diff := 0.5 * (math.Sin(2*math.Pi*left*t) - math.Sin(2*math.Pi*right*t))
		subcarrier := diff * math.Sin(2*math.Pi*38000*t)
		out[k] = mono + pilot + subcarrier
	}
	return out
}

func TestStereoSeparator_LocksOntoPilot(t *testing.T) {
	const rate = 336000.0
	composite := genStereoComposite(int(rate/2), rate, 600, 400)

	sep := NewStereoSeparator(rate)
	var res StereoResult
	chunk := 4096
	for i := 0; i < len(composite); i += chunk {
		end := i + chunk
		if end > len(composite) {
			end = len(composite)
		}
		res = sep.Process(composite[i:end])
	}

	assert.True(t, res.Found)
}

func TestStereoSeparator_NoPilotStaysUnlocked(t *testing.T) {
	const rate = 336000.0
	n := int(rate / 4)
	composite := make([]float64, n)
	for k := range composite {
		composite[k] = math.Sin(2 * math.Pi * 600 * float64(k) / rate)
	}

	sep := NewStereoSeparator(rate)
	res := sep.Process(composite)
	assert.False(t, res.Found)
	for _, v := range res.Diff {
		assert.Zero(t, v)
	}
}
