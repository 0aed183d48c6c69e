package sink

import (
	"encoding/binary"
	"io"

	"github.com/ebitengine/oto/v3"

	"github.com/rtlsdr-web/radiocore/internal/radioerr"
)

// OtoSink drives a real OS audio device via ebitengine/oto, generalizing
// the teacher's fixed mono 16-bit stream into the stereo AudioBlock
// contract: left/right are interleaved into 16-bit PCM frames and written
// through an io.Pipe to an oto.Player, the same plumbing as the teacher's
// main.go.
type OtoSink struct {
	sampleRate int
	volume     float64

	player *oto.Player
	writer *io.PipeWriter
}

// NewOtoSink opens an OS audio device at sampleRate Hz, stereo, 16-bit
// signed little-endian, and starts playback.
func NewOtoSink(sampleRate int) (*OtoSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, radioerr.NewSinkError(err)
	}
	<-ready

	reader, writer := io.Pipe()
	player := ctx.NewPlayer(reader)
	player.Play()

	return &OtoSink{
		sampleRate: sampleRate,
		volume:     1,
		player:     player,
		writer:     writer,
	}, nil
}

// SampleRate implements AudioSink.
func (s *OtoSink) SampleRate() int { return s.sampleRate }

// Play interleaves left/right into 16-bit PCM and writes them to the
// underlying oto player.
func (s *OtoSink) Play(left, right []float64) error {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}

	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		l := int16(clampSample(left[i]*s.volume) * 32767)
		r := int16(clampSample(right[i]*s.volume) * 32767)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(l))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(r))
	}

	if _, err := s.writer.Write(buf); err != nil {
		return radioerr.NewSinkError(err)
	}
	return nil
}

// SetVolume implements AudioSink, clamping to [0, 1].
func (s *OtoSink) SetVolume(v float64) error {
	s.volume = clampVolume(v)
	return nil
}

// GetVolume implements AudioSink.
func (s *OtoSink) GetVolume() float64 { return s.volume }

// Close stops playback and releases the underlying pipe.
func (s *OtoSink) Close() error {
	s.player.Close()
	return s.writer.Close()
}

func clampSample(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
