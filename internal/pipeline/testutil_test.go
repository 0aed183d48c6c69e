package pipeline

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// genFMTone builds an FM-modulated I/Q signal carrying a single audio tone,
// used as a spectral test oracle input for the WBFM and NBFM pipelines.
func genFMTone(n int, sampleRate, toneHz, deviationHz float64) (i, q []float64) {
	i = make([]float64, n)
	q = make([]float64, n)
	var phase float64
	for k := 0; k < n; k++ {
		t := float64(k) / sampleRate
		freq := deviationHz * math.Sin(2*math.Pi*toneHz*t)
		phase += 2 * math.Pi * freq / sampleRate
		i[k] = math.Cos(phase)
		q[k] = math.Sin(phase)
	}
	return i, q
}

// genAMTone builds a 100%-modulated AM I/Q signal at baseband.
func genAMTone(n int, sampleRate, toneHz float64) (i, q []float64) {
	i = make([]float64, n)
	q = make([]float64, n)
	for k := 0; k < n; k++ {
		t := float64(k) / sampleRate
		env := 1 + math.Sin(2*math.Pi*toneHz*t)
		i[k] = env
		q[k] = 0
	}
	return i, q
}

// genSSBTone builds a carrier-suppressed single-tone signal by rotating a
// real cosine into the analytic (single-sided) representation: I=cos, the
// image on the unwanted side is what distinguishes USB from LSB after
// demodulation.
func genSSBTone(n int, sampleRate, toneHz float64) (i, q []float64) {
	i = make([]float64, n)
	q = make([]float64, n)
	for k := 0; k < n; k++ {
		t := float64(k) / sampleRate
		i[k] = math.Cos(2 * math.Pi * toneHz * t)
		q[k] = math.Sin(2 * math.Pi * toneHz * t)
	}
	return i, q
}

// genCarrier builds an unmodulated carrier at baseband, for CW tests.
func genCarrier(n int) (i, q []float64) {
	i = make([]float64, n)
	q = make([]float64, n)
	for k := range i {
		i[k] = 1
		q[k] = 0
	}
	return i, q
}

// dominantFreq runs a real FFT over x and returns the frequency bin with
// the largest magnitude, using gonum's fourier package as a spectral
// oracle independent of the time-domain DSP under test.
func dominantFreq(x []float64, sampleRate float64) float64 {
	fft := fourier.NewFFT(len(x))
	coeff := fft.Coefficients(nil, x)

	bestBin := 0
	bestMag := 0.0
	// Skip DC and the first bin above it to avoid the pipeline's own
	// low-frequency DC-blocking transients dominating the peak search.
	for b := 2; b < len(coeff); b++ {
		mag := cmplx.Abs(coeff[b])
		if mag > bestMag {
			bestMag = mag
			bestBin = b
		}
	}
	return float64(bestBin) * sampleRate / float64(len(x))
}

// peakMagnitude returns the FFT magnitude at the bin nearest freqHz.
func peakMagnitude(x []float64, sampleRate, freqHz float64) float64 {
	fft := fourier.NewFFT(len(x))
	coeff := fft.Coefficients(nil, x)
	bin := int(math.Round(freqHz * float64(len(x)) / sampleRate))
	if bin < 0 || bin >= len(coeff) {
		return 0
	}
	return cmplx.Abs(coeff[bin])
}
