// Package dsp implements the signal-processing primitives the demodulation
// pipelines are built from: FIR filtering, frequency translation, real and
// complex downsampling, FM/AM/SSB discrimination, stereo pilot recovery,
// de-emphasis, AGC, DC blocking, and power/SNR estimation.
package dsp

import (
	"math"

	"gonum.org/v1/gonum/dsp/window"
)

// LowPassKernel generates an odd-length, Hamming-windowed sinc low-pass FIR
// kernel with the given cutoff, normalized to unit DC gain. cutoff is
// expressed as a fraction of the sample rate (0, 0.5). numTaps is rounded up
// to the next odd number so the kernel has an integer group delay.
func LowPassKernel(numTaps int, cutoff float64) []float64 {
	if numTaps%2 == 0 {
		numTaps++
	}
	if numTaps < 3 {
		numTaps = 3
	}

	taps := make([]float64, numTaps)
	m := float64(numTaps - 1)
	fc := cutoff * 2

	for n := 0; n < numTaps; n++ {
		x := float64(n) - m/2
		if x == 0 {
			taps[n] = fc
		} else {
			taps[n] = fc * math.Sin(math.Pi*fc*x) / (math.Pi * fc * x)
		}
	}
	window.Hamming(taps)
	normalizeDC(taps)
	return taps
}

// BlackmanWindow returns an n-sample Blackman window, used by the SSB
// Hilbert-transform kernel where the Hamming window's stopband attenuation
// is not enough to keep the image sideband suppressed.
func BlackmanWindow(n int) []float64 {
	if n < 1 {
		return nil
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return window.Blackman(w)
}

// HilbertKernel builds an odd-length FIR approximation of a 90-degree phase
// shifter (discrete Hilbert transform), Blackman-windowed. Even-indexed taps
// (relative to the center) are exactly zero; this is the classical
// windowed-sinc Hilbert design used by Weaver-style SSB demodulators.
func HilbertKernel(numTaps int) []float64 {
	if numTaps%2 == 0 {
		numTaps++
	}
	if numTaps < 3 {
		numTaps = 3
	}
	taps := make([]float64, numTaps)
	center := (numTaps - 1) / 2
	window := BlackmanWindow(numTaps)
	for n := 0; n < numTaps; n++ {
		k := n - center
		if k%2 == 0 {
			taps[n] = 0
			continue
		}
		taps[n] = 2.0 / (math.Pi * float64(k)) * window[n]
	}
	return taps
}

func normalizeDC(taps []float64) {
	var sum float64
	for _, t := range taps {
		sum += t
	}
	if sum == 0 {
		return
	}
	for i := range taps {
		taps[i] /= sum
	}
}
