package sink

// MemorySink is a test double that records every played block instead of
// emitting audio anywhere.
type MemorySink struct {
	sampleRate int
	volume     float64
	Blocks     [][2][]float64
}

// NewMemorySink builds a MemorySink reporting sampleRate to callers.
func NewMemorySink(sampleRate int) *MemorySink {
	return &MemorySink{sampleRate: sampleRate, volume: 1}
}

// SampleRate implements AudioSink.
func (m *MemorySink) SampleRate() int { return m.sampleRate }

// Play implements AudioSink by recording left/right for later inspection.
func (m *MemorySink) Play(left, right []float64) error {
	l := append([]float64(nil), left...)
	r := append([]float64(nil), right...)
	m.Blocks = append(m.Blocks, [2][]float64{l, r})
	return nil
}

// SetVolume implements AudioSink.
func (m *MemorySink) SetVolume(v float64) error {
	m.volume = clampVolume(v)
	return nil
}

// GetVolume implements AudioSink.
func (m *MemorySink) GetVolume() float64 { return m.volume }
