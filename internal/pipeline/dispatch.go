package pipeline

import (
	"github.com/rtlsdr-web/radiocore/internal/mode"
	"github.com/rtlsdr-web/radiocore/internal/radioerr"
)

// New builds the Pipeline for m's scheme. Schemes are dispatched by an
// enumerated tag rather than through an open registry (spec §9,
// "Extensibility registry") — the six modes this package implements are the
// only ones there are.
func New(inRate, outRate float64, m mode.Mode, deemphTau float64) (Pipeline, error) {
	switch m.Scheme() {
	case mode.WBFM:
		return NewWBFM(inRate, outRate, m, deemphTau), nil
	case mode.NBFM:
		return NewNBFM(inRate, outRate, m), nil
	case mode.AM:
		return NewAM(inRate, outRate, m), nil
	case mode.USB:
		return NewSSB(mode.USB, inRate, outRate, m), nil
	case mode.LSB:
		return NewSSB(mode.LSB, inRate, outRate, m), nil
	case mode.CW:
		return NewCW(inRate, outRate, m), nil
	default:
		return nil, radioerr.NewUnknownScheme(m.Scheme())
	}
}
