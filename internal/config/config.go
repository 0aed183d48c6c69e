// Package config holds the module's ambient configuration: hardcoded
// defaults in the teacher's flat-struct style, optionally overridden by a
// YAML file loaded with gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every parameter needed to stand up a receiver: sample
// rates, buffer sizing, and one block of defaults per demodulation scheme.
type Config struct {
	InputSampleRate  int `yaml:"input_sample_rate"`
	OutputSampleRate int `yaml:"output_sample_rate"`
	SampleBlockSize  int `yaml:"sample_block_size"`

	RingBufferBytes int `yaml:"ring_buffer_bytes"`
	BufferPoolDepth int `yaml:"buffer_pool_depth"`
	SNRHistoryLen   int `yaml:"snr_history_len"`

	Scheme string `yaml:"scheme"`

	WBFM SchemeWBFM      `yaml:"wbfm"`
	NBFM SchemeSquelched `yaml:"nbfm"`
	AM   SchemeSquelched `yaml:"am"`
	USB  SchemeSquelched `yaml:"usb"`
	LSB  SchemeSquelched `yaml:"lsb"`
	CW   SchemeCW        `yaml:"cw"`

	DeemphTau      float64 `yaml:"deemph_tau"`
	SampleClickTPS int     `yaml:"sample_click_ticks_per_second"`
}

// SchemeWBFM holds WBFM's single configurable field.
type SchemeWBFM struct {
	Stereo bool `yaml:"stereo"`
}

// SchemeSquelched holds the (bandwidth-or-deviation, squelch) pair shared
// by NBFM/AM/USB/LSB. Field is either a max deviation (NBFM) or a
// bandwidth (AM/USB/LSB); the mode package clamps to whichever range its
// scheme requires.
type SchemeSquelched struct {
	Hz      float64 `yaml:"hz"`
	Squelch float64 `yaml:"squelch"`
}

// SchemeCW holds CW's bandwidth and beat-tone offset.
type SchemeCW struct {
	BandwidthHz float64 `yaml:"bandwidth_hz"`
	ToneHz      float64 `yaml:"tone_hz"`
}

// New returns a Config populated with the module's hardcoded defaults.
func New() *Config {
	return &Config{
		InputSampleRate:  1_024_000,
		OutputSampleRate: 48_000,
		SampleBlockSize:  4096,

		RingBufferBytes: 2 * 2_000_000 * 2, // 2s of IQ (I+Q) at 2Msps
		BufferPoolDepth: 8,
		SNRHistoryLen:   256,

		Scheme: "wbfm",

		WBFM: SchemeWBFM{Stereo: true},
		NBFM: SchemeSquelched{Hz: 5000, Squelch: 0},
		AM:   SchemeSquelched{Hz: 15000, Squelch: 0},
		USB:  SchemeSquelched{Hz: 2800, Squelch: 0},
		LSB:  SchemeSquelched{Hz: 2800, Squelch: 0},
		CW:   SchemeCW{BandwidthHz: 50, ToneHz: 600},

		DeemphTau:      50e-6, // Europe
		SampleClickTPS: 10,
	}
}

// LoadYAML overlays yaml-file overrides onto c in place. Fields absent
// from the file keep whatever value c already had, so callers should call
// New first and pass its result here rather than a zero Config.
func (c *Config) LoadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}
