// Package mode implements the tagged-union "mode parameters" record from
// the data model, replacing the base-class/subclass configurator hierarchy
// of the original with pure functions over an enumerated tag (spec §9,
// "Configurator polymorphism").
package mode

// Scheme tags one of the six supported modulation schemes.
type Scheme int

const (
	WBFM Scheme = iota
	NBFM
	AM
	USB
	LSB
	CW
)

func (s Scheme) String() string {
	switch s {
	case WBFM:
		return "WBFM"
	case NBFM:
		return "NBFM"
	case AM:
		return "AM"
	case USB:
		return "USB"
	case LSB:
		return "LSB"
	case CW:
		return "CW"
	default:
		return "UNKNOWN"
	}
}

// Range bounds, per spec §3's mode parameters table.
const (
	NBFMDeviationMin, NBFMDeviationMax = 125.0, 15000.0
	NBFMSquelchMin, NBFMSquelchMax     = 0.0, 6.0

	AMBandwidthMin, AMBandwidthMax = 250.0, 30000.0
	AMSquelchMin, AMSquelchMax     = 0.0, 6.0

	SSBBandwidthMin, SSBBandwidthMax = 10.0, 15000.0
	SSBSquelchMin, SSBSquelchMax     = 0.0, 6.0

	CWBandwidthMin, CWBandwidthMax = 5.0, 1000.0
)

// DefaultCWTone is the default beat-note offset applied by the CW pipeline,
// spec §4.15.
const DefaultCWTone = 600.0

// Mode is an immutable record of the active demodulation scheme's
// parameters. Setters (With* below) never mutate a Mode; they return a new,
// clamped one, matching the "immutable once handed to a demodulator"
// lifecycle rule in spec §3.
type Mode struct {
	scheme Scheme

	stereo bool // WBFM

	maxDeviationHz float64 // NBFM

	bandwidthHz float64 // AM, USB, LSB, CW

	squelch float64 // NBFM, AM, USB, LSB

	toneHz float64 // CW
}

// NewWBFM builds a WBFM mode record.
func NewWBFM(stereo bool) Mode {
	return Mode{scheme: WBFM, stereo: stereo}
}

// NewNBFM builds an NBFM mode record, clamping its fields to spec ranges.
func NewNBFM(maxDeviationHz, squelch float64) Mode {
	return Mode{
		scheme:         NBFM,
		maxDeviationHz: clamp(maxDeviationHz, NBFMDeviationMin, NBFMDeviationMax),
		squelch:        clamp(squelch, NBFMSquelchMin, NBFMSquelchMax),
	}
}

// NewAM builds an AM mode record, clamping its fields to spec ranges.
func NewAM(bandwidthHz, squelch float64) Mode {
	return Mode{
		scheme:      AM,
		bandwidthHz: clamp(bandwidthHz, AMBandwidthMin, AMBandwidthMax),
		squelch:     clamp(squelch, AMSquelchMin, AMSquelchMax),
	}
}

// NewUSB builds a USB mode record, clamping its fields to spec ranges.
func NewUSB(bandwidthHz, squelch float64) Mode {
	return Mode{
		scheme:      USB,
		bandwidthHz: clamp(bandwidthHz, SSBBandwidthMin, SSBBandwidthMax),
		squelch:     clamp(squelch, SSBSquelchMin, SSBSquelchMax),
	}
}

// NewLSB builds an LSB mode record, clamping its fields to spec ranges.
func NewLSB(bandwidthHz, squelch float64) Mode {
	return Mode{
		scheme:      LSB,
		bandwidthHz: clamp(bandwidthHz, SSBBandwidthMin, SSBBandwidthMax),
		squelch:     clamp(squelch, SSBSquelchMin, SSBSquelchMax),
	}
}

// NewCW builds a CW mode record. toneHz of 0 selects DefaultCWTone.
func NewCW(bandwidthHz, toneHz float64) Mode {
	if toneHz == 0 {
		toneHz = DefaultCWTone
	}
	return Mode{
		scheme:      CW,
		bandwidthHz: clamp(bandwidthHz, CWBandwidthMin, CWBandwidthMax),
		toneHz:      toneHz,
	}
}

// Scheme returns the record's modulation scheme tag.
func (m Mode) Scheme() Scheme { return m.scheme }

// Stereo returns whether WBFM stereo decoding was requested. Meaningless
// for other schemes.
func (m Mode) Stereo() bool { return m.stereo }

// WithStereo returns a copy of m (which must be WBFM) with stereo set.
func (m Mode) WithStereo(stereo bool) Mode {
	m.stereo = stereo
	return m
}

// HasMaxDeviation reports whether this scheme exposes a max-deviation field
// (NBFM only).
func (m Mode) HasMaxDeviation() bool { return m.scheme == NBFM }

// MaxDeviationHz returns the configured max deviation (NBFM only).
func (m Mode) MaxDeviationHz() float64 { return m.maxDeviationHz }

// WithMaxDeviationHz returns a copy of m with a clamped max deviation.
func (m Mode) WithMaxDeviationHz(hz float64) Mode {
	m.maxDeviationHz = clamp(hz, NBFMDeviationMin, NBFMDeviationMax)
	return m
}

// HasBandwidth reports whether this scheme exposes a bandwidth field (AM,
// USB, LSB, CW).
func (m Mode) HasBandwidth() bool {
	switch m.scheme {
	case AM, USB, LSB, CW:
		return true
	default:
		return false
	}
}

// BandwidthHz returns the configured bandwidth.
func (m Mode) BandwidthHz() float64 { return m.bandwidthHz }

// WithBandwidthHz returns a copy of m with a clamped bandwidth, using the
// range appropriate to m's scheme.
func (m Mode) WithBandwidthHz(hz float64) Mode {
	switch m.scheme {
	case AM:
		m.bandwidthHz = clamp(hz, AMBandwidthMin, AMBandwidthMax)
	case USB, LSB:
		m.bandwidthHz = clamp(hz, SSBBandwidthMin, SSBBandwidthMax)
	case CW:
		m.bandwidthHz = clamp(hz, CWBandwidthMin, CWBandwidthMax)
	}
	return m
}

// HasSquelch reports whether this scheme exposes a squelch field (NBFM, AM,
// USB, LSB — not WBFM or CW).
func (m Mode) HasSquelch() bool {
	switch m.scheme {
	case NBFM, AM, USB, LSB:
		return true
	default:
		return false
	}
}

// Squelch returns the configured squelch level.
func (m Mode) Squelch() float64 { return m.squelch }

// WithSquelch returns a copy of m with a clamped squelch level.
func (m Mode) WithSquelch(s float64) Mode {
	switch m.scheme {
	case NBFM:
		m.squelch = clamp(s, NBFMSquelchMin, NBFMSquelchMax)
	case AM:
		m.squelch = clamp(s, AMSquelchMin, AMSquelchMax)
	case USB, LSB:
		m.squelch = clamp(s, SSBSquelchMin, SSBSquelchMax)
	}
	return m
}

// HasTone reports whether this scheme exposes a beat-tone field (CW only).
func (m Mode) HasTone() bool { return m.scheme == CW }

// ToneHz returns the configured CW beat-note offset.
func (m Mode) ToneHz() float64 { return m.toneHz }

// WithToneHz returns a copy of m (which must be CW) with a new beat tone.
// The tone frequency itself is not range-clamped by spec (it just needs to
// be audible); callers pass 0 through NewCW to mean "use the default".
func (m Mode) WithToneHz(hz float64) Mode {
	if hz == 0 {
		hz = DefaultCWTone
	}
	m.toneHz = hz
	return m
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
