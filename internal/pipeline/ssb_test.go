package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtlsdr-web/radiocore/internal/mode"
)

// TestSSB_USBRecoversTone_LSBRejectsIt is the spec §8 "USB 750 Hz tone"
// scenario: an analytic (single-sided) tone at +750Hz demodulates cleanly
// on USB and is rejected (>30dB down) on LSB.
func TestSSB_USBRecoversTone_LSBRejectsIt(t *testing.T) {
	const inRate = 24_000.0
	const outRate = 8_000.0
	const durationSec = 0.5

	n := int(inRate * durationSec)
	i, q := genSSBTone(n, inRate, 750)

	usb := NewSSB(mode.USB, inRate, outRate, mode.NewUSB(2800, 0))
	usbBlock := usb.Demodulate(i, q, 0)
	require.NotEmpty(t, usbBlock.Left)
	assert.InDelta(t, 750, dominantFreq(usbBlock.Left, outRate), 50)
	usbPeak := peakMagnitude(usbBlock.Left, outRate, 750)

	i2, q2 := genSSBTone(n, inRate, 750)
	lsb := NewSSB(mode.LSB, inRate, outRate, mode.NewLSB(2800, 0))
	lsbBlock := lsb.Demodulate(i2, q2, 0)
	require.NotEmpty(t, lsbBlock.Left)
	lsbPeak := peakMagnitude(lsbBlock.Left, outRate, 750)

	require.Greater(t, usbPeak, 0.0)
	ratioDB := 20 * math.Log10(lsbPeak/usbPeak)
	assert.Less(t, ratioDB, -30.0)
}

func TestSSB_SchemeReflectsSideband(t *testing.T) {
	usb := NewSSB(mode.USB, 24_000, 8_000, mode.NewUSB(2800, 0))
	lsb := NewSSB(mode.LSB, 24_000, 8_000, mode.NewLSB(2800, 0))
	assert.Equal(t, mode.USB, usb.Scheme())
	assert.Equal(t, mode.LSB, lsb.Scheme())
}

func TestSSB_SetParamsRejectsWrongScheme(t *testing.T) {
	usb := NewSSB(mode.USB, 24_000, 8_000, mode.NewUSB(2800, 0))
	err := usb.SetParams(mode.NewLSB(2800, 0))
	assert.Error(t, err)
}

func TestSSB_OutputStaysBounded(t *testing.T) {
	const inRate = 24_000.0
	const outRate = 8_000.0
	i, q := genSSBTone(int(inRate*0.5), inRate, 750)

	usb := NewSSB(mode.USB, inRate, outRate, mode.NewUSB(2800, 0))
	block := usb.Demodulate(i, q, 0)
	for _, v := range block.Left {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}
