package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtlsdr-web/radiocore/internal/events"
	"github.com/rtlsdr-web/radiocore/internal/tuner"
)

func TestAdapter_ReadBlockConvertsBytesToFloats(t *testing.T) {
	gen := func(centreHz float64, n int) (i, q []float64) {
		i = make([]float64, n)
		q = make([]float64, n)
		for k := range i {
			i[k] = 1
			q[k] = -1
		}
		return i, q
	}
	st := tuner.NewSimulatedTuner(gen)
	_, err := st.SetCentreFrequency(94_500_000)
	require.NoError(t, err)

	bus := events.NewBus()
	adapter := NewAdapter(st, bus, 4)
	require.NoError(t, adapter.Start())

	block, err := adapter.ReadBlock(8)
	require.NoError(t, err)
	assert.Equal(t, 94_500_000.0, block.Frequency)
	assert.Len(t, block.I, 8)
	assert.Len(t, block.Q, 8)
	for _, v := range block.I {
		assert.InDelta(t, 1.0, v, 0.01)
	}
	for _, v := range block.Q {
		assert.InDelta(t, -1.0, v, 0.01)
	}

	adapter.Release(block)
}

func TestAdapter_StartEmitsStartingEvent(t *testing.T) {
	gen := func(centreHz float64, n int) (i, q []float64) { return make([]float64, n), make([]float64, n) }
	st := tuner.NewSimulatedTuner(gen)
	bus := events.NewBus()

	var states []events.RadioLifecycleState
	bus.OnRadioState(func(e events.RadioState) { states = append(states, e.State) })

	adapter := NewAdapter(st, bus, 4)
	require.NoError(t, adapter.Start())
	assert.Contains(t, states, events.Starting)
}

func TestAdapter_DirectSamplingActiveRaisesEvent(t *testing.T) {
	gen := func(centreHz float64, n int) (i, q []float64) { return make([]float64, n), make([]float64, n) }
	st := tuner.NewSimulatedTuner(gen)
	require.NoError(t, st.SetDirectSampling(tuner.DirectSamplingIChannel))

	bus := events.NewBus()
	var states []events.RadioLifecycleState
	bus.OnRadioState(func(e events.RadioState) { states = append(states, e.State) })

	adapter := NewAdapter(st, bus, 4)
	require.NoError(t, adapter.Start())
	assert.Contains(t, states, events.DirectSamplingActive)
}
