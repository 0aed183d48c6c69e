package dsp

// Power computes the mean I/Q power over a block: sum(I^2+Q^2)/N.
func Power(i, q []float64) float64 {
	if len(i) == 0 {
		return 0
	}
	var sum float64
	for n := range i {
		sum += i[n]*i[n] + q[n]*q[n]
	}
	return sum / float64(len(i))
}

// RealPower computes the mean squared value of a real signal, used by
// pipelines that estimate SNR from a real (already-discriminated) output
// rather than raw I/Q.
func RealPower(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum / float64(len(x))
}

// LinearSNR combines a filtered (in-band) power estimate with the raw total
// power before filtering into the linear SNR ratio spec §4.10 defines:
// (filteredPower * outputSampleRate / signalBandwidthHz) / totalPower.
func LinearSNR(filteredPower, totalPower, outputSampleRate, signalBandwidthHz float64) float64 {
	if totalPower == 0 || signalBandwidthHz == 0 {
		return 0
	}
	return (filteredPower * outputSampleRate / signalBandwidthHz) / totalPower
}
