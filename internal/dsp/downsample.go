package dsp

import "math"

// RealDownsampler decimates a real signal from inRate to outRate. It
// low-passes with a corner at outRate/2 to suppress aliases, then reads the
// filtered stream at the nearest input sample to each output instant. The
// nearest-sample step is exact when inRate/outRate is a positive integer;
// otherwise it introduces jitter distortion, which spec §4.3 explicitly
// accepts rather than doing fractional resampling.
type RealDownsampler struct {
	inRate, outRate float64
	filter          *FIRFilter
	// samplesConsumed counts every input sample ever pushed through Process,
	// so that the output-index-to-input-index mapping stays continuous
	// across calls.
	samplesConsumed int
	nextOutputIndex int
}

// NewRealDownsampler builds a downsampler with a low-pass kernel of
// kernelTaps coefficients, corner at outRate/2.
func NewRealDownsampler(inRate, outRate float64, kernelTaps int) *RealDownsampler {
	cutoff := (outRate / 2) / inRate
	return &RealDownsampler{
		inRate:  inRate,
		outRate: outRate,
		filter:  NewFIRFilter(LowPassKernel(kernelTaps, cutoff)),
	}
}

// Process filters and decimates x, returning floor(len(x)*outRate/inRate)
// samples in the steady state (spec property #2, the length law).
func (d *RealDownsampler) Process(x []float64) []float64 {
	filtered := append([]float64(nil), x...)
	d.filter.InPlace(filtered)

	var out []float64
	base := d.samplesConsumed
	for {
		inIdx := int(math.Round(float64(d.nextOutputIndex) * d.inRate / d.outRate))
		localIdx := inIdx - base
		if localIdx >= len(x) {
			break
		}
		if localIdx < 0 {
			d.nextOutputIndex++
			continue
		}
		out = append(out, filtered[localIdx])
		d.nextOutputIndex++
	}
	d.samplesConsumed += len(x)
	return out
}

// ComplexDownsampler runs two RealDownsamplers sharing the same design in
// parallel over I and Q.
type ComplexDownsampler struct {
	i, q *RealDownsampler
}

// NewComplexDownsampler builds a complex downsampler from inRate to outRate
// using kernelTaps for each rail's low-pass kernel.
func NewComplexDownsampler(inRate, outRate float64, kernelTaps int) *ComplexDownsampler {
	return &ComplexDownsampler{
		i: NewRealDownsampler(inRate, outRate, kernelTaps),
		q: NewRealDownsampler(inRate, outRate, kernelTaps),
	}
}

// Process decimates I/Q in lockstep.
func (d *ComplexDownsampler) Process(i, q []float64) (outI, outQ []float64) {
	return d.i.Process(i), d.q.Process(q)
}
