package tuner

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavStreamChunk is the number of interleaved I/Q byte pairs pulled from
// disk per read, mirroring the teacher's ChunkSize constant.
const wavStreamChunk = 8192

// WavTuner replays a pre-recorded IQ capture stored in a WAV container as
// if it were a live device, backing the Tuner contract for offline testing
// and demos without RTL-SDR hardware (spec §6.1). A background goroutine
// streams the file into an internal buffer so ReadSamples never blocks on
// disk I/O, the same decoupling the teacher's readFileIntoBuffer performs.
type WavTuner struct {
	centreHz       float64
	sampleRate     float64
	directSampling DirectSamplingMode

	buf    *streamBuffer
	file   *os.File
	logger *log.Logger
}

// OpenWavTuner opens path as a WAV-contained 8-bit IQ capture and starts
// streaming it into an internal buffer that lets the disk reader run up to
// bufferBytes worth of decoded chunks ahead of ReadSamples.
func OpenWavTuner(path string, bufferBytes int, logger *log.Logger) (*WavTuner, error) {
	if logger == nil {
		logger = log.Default()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, newDeviceError("open wav tuner", err)
	}

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		file.Close()
		return nil, newDeviceError("open wav tuner", errors.New("not a valid WAV file"))
	}
	if err := decoder.FwdToPCM(); err != nil {
		file.Close()
		return nil, newDeviceError("seek to PCM data", err)
	}
	if decoder.BitDepth != 8 {
		file.Close()
		return nil, newDeviceError("open wav tuner", errors.New("expected 8-bit unsigned IQ samples"))
	}

	capacityChunks := bufferBytes / (wavStreamChunk * 2)
	wt := &WavTuner{
		buf:        newStreamBuffer(capacityChunks),
		file:       file,
		logger:     logger,
		sampleRate: float64(decoder.SampleRate),
	}

	go wt.stream(decoder)
	return wt, nil
}

func (w *WavTuner) stream(decoder *wav.Decoder) {
	defer w.buf.close()
	defer w.file.Close()

	pcm := &audio.IntBuffer{
		Format: decoder.Format(),
		Data:   make([]int, wavStreamChunk*2),
	}

	for {
		n, err := decoder.PCMBuffer(pcm)
		if n > 0 {
			bytes := make([]byte, n)
			for k := 0; k < n; k++ {
				bytes[k] = byte(pcm.Data[k])
			}
			w.buf.write(bytes)
		}
		if err == io.EOF || n == 0 {
			return
		}
		if err != nil {
			w.logger.Error("wav tuner stream read failed", "err", err)
			return
		}
	}
}

func (w *WavTuner) SetSampleRate(hz float64) (float64, error) {
	// The file's sample rate is fixed at capture time; report what the
	// capture actually contains rather than pretending to honor hz.
	return w.sampleRate, nil
}

func (w *WavTuner) SetCentreFrequency(hz float64) (float64, error) {
	w.centreHz = hz
	return hz, nil
}

func (w *WavTuner) SetFrequencyCorrectionPPM(ppm int) error { return nil }

func (w *WavTuner) SetGain(g GainSetting) error { return nil }

func (w *WavTuner) GetGain() GainSetting { return AutoGain() }

func (w *WavTuner) SetDirectSampling(mode DirectSamplingMode) error {
	w.directSampling = mode
	return nil
}

func (w *WavTuner) GetDirectSampling() DirectSamplingMode { return w.directSampling }

func (w *WavTuner) EnableBiasTee(on bool) error { return nil }

func (w *WavTuner) BiasTeeEnabled() bool { return false }

func (w *WavTuner) ResetBuffer() error { return nil }

// ReadSamples pulls 2*length bytes (interleaved I/Q) from the internal
// stream buffer, blocking until they're available or the file is
// exhausted.
func (w *WavTuner) ReadSamples(length int) (RawBlock, error) {
	raw := w.buf.read(2 * length)
	if raw == nil {
		return RawBlock{}, newDeviceError("read samples", io.EOF)
	}
	return RawBlock{
		Frequency:      w.centreHz,
		RawBytes:       raw,
		DirectSampling: w.directSampling,
	}, nil
}

func (w *WavTuner) Close() error {
	return nil
}

// Buffered reports how many raw bytes are queued in the internal stream
// buffer and not yet claimed by ReadSamples, useful for monitoring how far
// disk streaming is running ahead of demodulation.
func (w *WavTuner) Buffered() int {
	return w.buf.buffered()
}
