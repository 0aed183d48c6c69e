// Package source implements the adapter of spec §4.17: it owns a Tuner,
// converts raw bytes into float I/Q using recycled buffers, and attaches
// the frequency/direct-sampling metadata the controller needs.
package source

import (
	"sync"

	"github.com/rtlsdr-web/radiocore/internal/buffers"
	"github.com/rtlsdr-web/radiocore/internal/events"
	"github.com/rtlsdr-web/radiocore/internal/tuner"
)

// FloatBlock is one converted block ready for the demodulation controller.
type FloatBlock struct {
	I, Q           []float64
	Frequency      float64
	DirectSampling tuner.DirectSamplingMode
}

// Adapter wraps a Tuner, converting its raw byte blocks into FloatBlocks
// and raising radio-state lifecycle events along the way. ReadBlock and
// Release are safe to call from separate goroutines, since the pump keeps
// one read in flight while the previous block is still being released.
type Adapter struct {
	t    tuner.Tuner
	bus  *events.Bus
	pool *buffers.Pool
	mu   sync.Mutex
}

// NewAdapter builds an Adapter around t. bufferPoolCapacity bounds how many
// float slices of each length are retained for reuse.
func NewAdapter(t tuner.Tuner, bus *events.Bus, bufferPoolCapacity int) *Adapter {
	return &Adapter{
		t:    t,
		bus:  bus,
		pool: buffers.NewPool(bufferPoolCapacity),
	}
}

// Start resets the tuner's buffer and raises the "starting" lifecycle
// event, per spec §6.1's "reset_buffer must be invoked before the first
// read_samples".
func (a *Adapter) Start() error {
	if err := a.t.ResetBuffer(); err != nil {
		a.bus.EmitRadioState(events.RadioState{State: events.ErrorState, Cause: err})
		return err
	}
	a.bus.EmitRadioState(events.RadioState{State: events.Starting})
	if a.t.GetDirectSampling() != tuner.DirectSamplingOff {
		a.bus.EmitRadioState(events.RadioState{State: events.DirectSamplingActive})
	}
	return nil
}

// Stop raises the "stopping" lifecycle event and closes the tuner.
func (a *Adapter) Stop() error {
	a.bus.EmitRadioState(events.RadioState{State: events.Stopping})
	return a.t.Close()
}

// ReadBlock performs one length-sample read: raw bytes from the tuner,
// converted pairwise into a float FloatBlock.
func (a *Adapter) ReadBlock(length int) (FloatBlock, error) {
	raw, err := a.t.ReadSamples(length)
	if err != nil {
		a.bus.EmitRadioState(events.RadioState{State: events.ErrorState, Cause: err})
		return FloatBlock{}, err
	}

	a.mu.Lock()
	i := a.pool.Acquire(length)
	q := a.pool.Acquire(length)
	a.mu.Unlock()
	for n := 0; n < length; n++ {
		i[n] = tuner.ByteToFloat(raw.RawBytes[2*n])
		q[n] = tuner.ByteToFloat(raw.RawBytes[2*n+1])
	}

	return FloatBlock{
		I:              i,
		Q:              q,
		Frequency:      raw.Frequency,
		DirectSampling: raw.DirectSampling,
	}, nil
}

// Release returns a FloatBlock's I/Q slices to the pool for reuse once the
// controller is done with them.
func (a *Adapter) Release(b FloatBlock) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pool.Release(b.I)
	a.pool.Release(b.Q)
}
