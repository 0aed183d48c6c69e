package tuner

import (
	"os"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestCapture builds a small 8-bit-PCM WAV file containing an
// interleaved I/Q byte sequence, mimicking a captured RTL-SDR recording.
func writeTestCapture(t *testing.T, path string, values []int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, 240000, 8, 2, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 2, SampleRate: 240000},
		Data:   values,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func TestWavTuner_StreamsCaptureBytes(t *testing.T) {
	path := t.TempDir() + "/capture.wav"
	values := make([]int, 0, 200)
	for k := 0; k < 100; k++ {
		values = append(values, 128, 130) // I, Q pairs near mid-scale
	}
	writeTestCapture(t, path, values)

	wt, err := OpenWavTuner(path, 4096, nil)
	require.NoError(t, err)
	defer wt.Close()

	_, err = wt.SetCentreFrequency(94_500_000)
	require.NoError(t, err)

	block, err := wt.ReadSamples(50)
	require.NoError(t, err)
	assert.Equal(t, 94_500_000.0, block.Frequency)
	assert.Len(t, block.RawBytes, 100)
	assert.Equal(t, byte(128), block.RawBytes[0])
	assert.Equal(t, byte(130), block.RawBytes[1])
}

func TestWavTuner_EOFAfterCaptureExhausted(t *testing.T) {
	path := t.TempDir() + "/short.wav"
	writeTestCapture(t, path, []int{128, 128, 200, 60})

	wt, err := OpenWavTuner(path, 4096, nil)
	require.NoError(t, err)
	defer wt.Close()

	_, err = wt.ReadSamples(2) // exactly the 4 bytes available
	require.NoError(t, err)

	_, err = wt.ReadSamples(2) // stream now closed and drained
	assert.Error(t, err)
}

func TestWavTuner_TrailingFragmentTreatedAsEOF(t *testing.T) {
	// Three bytes is not a whole (I, Q) pair, so a request for two full
	// samples (4 bytes) must report end-of-stream rather than handing back
	// a short, misframed block.
	path := t.TempDir() + "/fragment.wav"
	writeTestCapture(t, path, []int{128, 130, 200})

	wt, err := OpenWavTuner(path, 4096, nil)
	require.NoError(t, err)
	defer wt.Close()

	_, err = wt.ReadSamples(2)
	assert.Error(t, err)
}

func TestWavTuner_BufferedReflectsQueuedBytes(t *testing.T) {
	path := t.TempDir() + "/buffered.wav"
	values := make([]int, 0, 200)
	for k := 0; k < 100; k++ {
		values = append(values, 128, 130)
	}
	writeTestCapture(t, path, values)

	wt, err := OpenWavTuner(path, 4096, nil)
	require.NoError(t, err)
	defer wt.Close()

	require.Eventually(t, func() bool {
		return wt.Buffered() >= 200
	}, time.Second, time.Millisecond)

	_, err = wt.ReadSamples(50)
	require.NoError(t, err)
	assert.Equal(t, 100, wt.Buffered())
}
