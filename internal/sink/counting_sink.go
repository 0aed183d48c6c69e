package sink

import "github.com/rtlsdr-web/radiocore/internal/events"

// CountingSink wraps another AudioSink and emits a sample-click event
// after every ⌊sampleRate/ticksPerSecond⌋ accumulated samples, per spec
// §6.3, for UI code that wants a periodic refresh tick without polling.
type CountingSink struct {
	AudioSink
	bus            *events.Bus
	samplesPerTick int
	accumulated    int
}

// NewCountingSink wraps inner, ticking ticksPerSecond times per second of
// audio played.
func NewCountingSink(inner AudioSink, bus *events.Bus, ticksPerSecond int) *CountingSink {
	perTick := 1
	if ticksPerSecond > 0 {
		perTick = inner.SampleRate() / ticksPerSecond
		if perTick < 1 {
			perTick = 1
		}
	}
	return &CountingSink{
		AudioSink:      inner,
		bus:            bus,
		samplesPerTick: perTick,
	}
}

// Play forwards to the wrapped sink, then advances the tick counter and
// emits sample-click events for however many ticks this block crossed.
func (c *CountingSink) Play(left, right []float64) error {
	if err := c.AudioSink.Play(left, right); err != nil {
		return err
	}
	c.accumulated += len(left)
	for c.accumulated >= c.samplesPerTick {
		c.accumulated -= c.samplesPerTick
		c.bus.EmitSampleClick(events.SampleClick{})
	}
	return nil
}
