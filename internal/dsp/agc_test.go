package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAGC_NormalizesSteadyAmplitude(t *testing.T) {
	agc := NewAGC(48000, 0.5)
	x := make([]float64, 20000)
	for i := range x {
		x[i] = 0.1
	}
	agc.InPlace(x)

	assert.InDelta(t, 1.0, x[len(x)-1], 0.05)
}

func TestAGC_NeverExceedsUnitAmplitude(t *testing.T) {
	agc := NewAGC(48000, 3.0)
	x := []float64{0, 0, 0, 1, 1, 1, 1, 1, 1, 1}
	agc.InPlace(x)
	for _, v := range x {
		assert.LessOrEqual(t, v, 1.0)
		assert.GreaterOrEqual(t, v, -1.0)
	}
}

func TestAGC_SilenceDoesNotDivideByZero(t *testing.T) {
	agc := NewAGC(48000, 1.0)
	x := make([]float64, 100)
	agc.InPlace(x)
	for _, v := range x {
		assert.Equal(t, 0.0, v)
	}
}
