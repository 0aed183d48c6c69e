package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtlsdr-web/radiocore/internal/mode"
)

// TestWBFM_MonoPilotFreeTone is the spec §8 "WBFM mono pilot-free tone"
// scenario: a 1kHz-modulated 75kHz-deviation FM signal at 1.024 Msps should
// come out at 48kHz with a dominant 1kHz component and SNR > 10.
func TestWBFM_MonoPilotFreeTone(t *testing.T) {
	const inRate = 1_024_000.0
	const outRate = 48_000.0
	const durationSec = 0.25

	n := int(inRate * durationSec)
	i, q := genFMTone(n, inRate, 1000, 75000)

	w := NewWBFM(inRate, outRate, mode.NewWBFM(false), 0)
	block := w.Demodulate(i, q, 0)

	require.NotEmpty(t, block.Left)
	peak := dominantFreq(block.Left, outRate)
	assert.InDelta(t, 1000, peak, 50)
	assert.Greater(t, block.SNR, 10.0)
}

const wbfmStereoTestInterRate = 336_000.0

// genWBFMStereoIQ builds an FM-modulated I/Q stream carrying a stereo
// composite (600Hz left tone, 400Hz right tone, 19kHz pilot, 38kHz DSB-SC
// subcarrier), re-modulated onto a carrier so the pipeline's stage 1 (which
// expects raw I/Q, not a bare composite) has something realistic to
// discriminate back into that same composite.
func genWBFMStereoIQ(n int, interRate float64) (i, q []float64) {
	composite := make([]float64, n)
	for k := range composite {
		tt := float64(k) / interRate
		monoSum := 0.5 * (math.Sin(2*math.Pi*600*tt) + math.Sin(2*math.Pi*400*tt))
		pilot := 0.1 * math.Sin(2*math.Pi*19000*tt)
		diff := 0.5 * (math.Sin(2*math.Pi*600*tt) - math.Sin(2*math.Pi*400*tt))
		sub := diff * math.Sin(2*math.Pi*38000*tt)
		composite[k] = monoSum + pilot + sub
	}

	var phase float64
	i = make([]float64, n)
	q = make([]float64, n)
	for k := 0; k < n; k++ {
		freq := 75000 * composite[k]
		phase += 2 * math.Pi * freq / interRate
		i[k] = math.Cos(phase)
		q[k] = math.Sin(phase)
	}
	return i, q
}

// TestWBFM_Stereo is the spec §8 "WBFM stereo" scenario: a composite with a
// 600Hz left tone and 400Hz right tone should separate correctly once the
// pilot locks.
func TestWBFM_Stereo(t *testing.T) {
	const outRate = 48_000.0
	const durationSec = 0.5

	n := int(wbfmStereoTestInterRate * durationSec)
	i, q := genWBFMStereoIQ(n, wbfmStereoTestInterRate)

	w := NewWBFM(wbfmStereoTestInterRate, outRate, mode.NewWBFM(true), 0)
	block := w.Demodulate(i, q, 0)

	require.NotEmpty(t, block.Left)
	require.NotEmpty(t, block.Right)
	assert.True(t, block.Stereo)

	leftPeak := dominantFreq(block.Left, outRate)
	rightPeak := dominantFreq(block.Right, outRate)
	assert.InDelta(t, 600, leftPeak, 50)
	assert.InDelta(t, 400, rightPeak, 50)
}

// TestWBFM_StereoSumMatchesMono is spec §8 testable property #6: for a
// stereo-separated block with pilot lock, (left+right)/2 must equal the
// mono-only pipeline's output sample-for-sample.
func TestWBFM_StereoSumMatchesMono(t *testing.T) {
	const outRate = 48_000.0
	const durationSec = 0.5

	n := int(wbfmStereoTestInterRate * durationSec)
	i, q := genWBFMStereoIQ(n, wbfmStereoTestInterRate)

	stereo := NewWBFM(wbfmStereoTestInterRate, outRate, mode.NewWBFM(true), 0)
	stereoBlock := stereo.Demodulate(i, q, 0)
	require.True(t, stereoBlock.Stereo)

	mono := NewWBFM(wbfmStereoTestInterRate, outRate, mode.NewWBFM(false), 0)
	monoBlock := mono.Demodulate(i, q, 0)

	require.Len(t, stereoBlock.Left, len(monoBlock.Left))
	require.Len(t, stereoBlock.Right, len(monoBlock.Left))
	for k := range monoBlock.Left {
		sum := (stereoBlock.Left[k] + stereoBlock.Right[k]) / 2
		assert.InDelta(t, monoBlock.Left[k], sum, 1e-6)
	}
}

func TestWBFM_SetParamsRejectsWrongScheme(t *testing.T) {
	w := NewWBFM(1_024_000, 48_000, mode.NewWBFM(false), 0)
	err := w.SetParams(mode.NewAM(10000, 0))
	assert.Error(t, err)
}

func TestWBFM_Scheme(t *testing.T) {
	w := NewWBFM(1_024_000, 48_000, mode.NewWBFM(false), 0)
	assert.Equal(t, mode.WBFM, w.Scheme())
}
