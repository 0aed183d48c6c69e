// Command radiocore is a CLI front end for the demodulation core: it wires
// a tuner (simulated or WAV-file-backed) through the source adapter and
// controller to an audio sink, driven by flags layered over a YAML config.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/rtlsdr-web/radiocore/internal/config"
	"github.com/rtlsdr-web/radiocore/internal/controller"
	"github.com/rtlsdr-web/radiocore/internal/events"
	"github.com/rtlsdr-web/radiocore/internal/mode"
	"github.com/rtlsdr-web/radiocore/internal/sink"
	"github.com/rtlsdr-web/radiocore/internal/source"
	"github.com/rtlsdr-web/radiocore/internal/tuner"
)

func main() {
	var (
		cfgPath  = pflag.StringP("config", "c", "", "YAML config file overriding the built-in defaults")
		wavPath  = pflag.StringP("wav", "w", "", "replay a WAV-contained IQ capture instead of a simulated source")
		scheme   = pflag.StringP("scheme", "s", "", "demodulation scheme: wbfm, nbfm, am, usb, lsb, cw")
		centreHz = pflag.Float64P("freq", "f", 100_000_000, "centre frequency in Hz (simulated source only)")
		toneHz   = pflag.Float64("tone", 1000, "simulated tone frequency in Hz")
		verbose  = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	logger := log.New(os.Stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg := config.New()
	if *cfgPath != "" {
		if err := cfg.LoadYAML(*cfgPath); err != nil {
			logger.Fatal("loading config", "err", err)
		}
	}
	if *scheme != "" {
		cfg.Scheme = *scheme
	}

	m, err := buildMode(cfg)
	if err != nil {
		logger.Fatal("building mode", "err", err)
	}

	bus := events.NewBus()
	bus.OnRadioState(func(e events.RadioState) {
		if e.State == events.ErrorState {
			logger.Error("radio state", "state", e.State, "cause", e.Cause)
		} else {
			logger.Info("radio state", "state", e.State)
		}
	})
	bus.OnStereoStatus(func(e events.StereoStatus) {
		logger.Info("stereo status changed", "stereo", e.Stereo)
	})

	var t tuner.Tuner
	if *wavPath != "" {
		wt, err := tuner.OpenWavTuner(*wavPath, cfg.RingBufferBytes, logger)
		if err != nil {
			logger.Fatal("opening WAV tuner", "err", err)
		}
		t = wt
	} else {
		t = tuner.NewSimulatedTuner(makeGenerator(*toneHz))
		if _, err := t.SetCentreFrequency(*centreHz); err != nil {
			logger.Fatal("setting centre frequency", "err", err)
		}
		if t.GetDirectSampling() == tuner.DirectSamplingOff && tuner.RecommendDirectSampling(*centreHz) {
			_ = t.SetDirectSampling(tuner.DirectSamplingIChannel)
		}
	}

	adapter := source.NewAdapter(t, bus, cfg.BufferPoolDepth)
	if err := adapter.Start(); err != nil {
		logger.Fatal("starting source adapter", "err", err)
	}

	audioSink, err := sink.NewOtoSink(cfg.OutputSampleRate)
	if err != nil {
		logger.Fatal("opening audio sink", "err", err)
	}
	countingSink := sink.NewCountingSink(audioSink, bus, cfg.SampleClickTPS)

	ctrl, err := controller.New(float64(cfg.InputSampleRate), float64(cfg.OutputSampleRate), m, countingSink, bus, logger, cfg.DeemphTau)
	if err != nil {
		logger.Fatal("building controller", "err", err)
	}

	runPump(adapter, ctrl, cfg.SampleBlockSize, logger)
}

// runPump keeps one tuner read and one block of demodulation+playback in
// flight at all times, per spec §5: as soon as a block lands, the next
// read is issued before that block is demodulated and played, so the
// tuner is never left idle waiting on the previous block's processing.
// The two outstanding operations never touch the tuner concurrently —
// only one ReadBlock call is ever in flight — so a single-threaded
// Tuner implementation (SimulatedTuner's generator, WavTuner's decoder)
// never sees concurrent calls.
func runPump(adapter *source.Adapter, ctrl *controller.Controller, blockSize int, logger *log.Logger) {
	type result struct {
		block source.FloatBlock
		err   error
	}

	reads := make(chan result, 1)
	issueRead := func() {
		go func() {
			b, err := adapter.ReadBlock(blockSize)
			reads <- result{block: b, err: err}
		}()
	}

	issueRead()

	for r := range reads {
		if r.err != nil {
			logger.Error("read failed, stopping", "err", r.err)
			return
		}
		issueRead()
		if err := ctrl.Receive(r.block.I, r.block.Q, r.block.Frequency); err != nil {
			logger.Error("receive failed, stopping", "err", err)
			adapter.Release(r.block)
			return
		}
		adapter.Release(r.block)
	}
}

// buildMode constructs the mode.Mode selected by cfg.Scheme from the
// scheme-specific defaults/overrides in cfg.
func buildMode(cfg *config.Config) (mode.Mode, error) {
	switch cfg.Scheme {
	case "wbfm", "":
		return mode.NewWBFM(cfg.WBFM.Stereo), nil
	case "nbfm":
		return mode.NewNBFM(cfg.NBFM.Hz, cfg.NBFM.Squelch), nil
	case "am":
		return mode.NewAM(cfg.AM.Hz, cfg.AM.Squelch), nil
	case "usb":
		return mode.NewUSB(cfg.USB.Hz, cfg.USB.Squelch), nil
	case "lsb":
		return mode.NewLSB(cfg.LSB.Hz, cfg.LSB.Squelch), nil
	case "cw":
		return mode.NewCW(cfg.CW.BandwidthHz, cfg.CW.ToneHz), nil
	default:
		return mode.Mode{}, fmt.Errorf("unknown scheme %q", cfg.Scheme)
	}
}

// makeGenerator returns a simulated FM-modulated tone generator for
// demoing without hardware, tracking phase continuously across calls the
// way a real oscillator would.
func makeGenerator(toneHz float64) tuner.Generator {
	var phase, sampleCount float64
	const deviation = 5000.0
	const sampleRate = 1_024_000.0
	return func(centreHz float64, n int) (i, q []float64) {
		i = make([]float64, n)
		q = make([]float64, n)
		for k := 0; k < n; k++ {
			freq := deviation * math.Sin(2*math.Pi*toneHz*sampleCount/sampleRate)
			phase += 2 * math.Pi * freq / sampleRate
			i[k] = math.Cos(phase)
			q[k] = math.Sin(phase)
			sampleCount++
		}
		return i, q
	}
}
