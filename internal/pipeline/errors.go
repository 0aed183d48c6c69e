package pipeline

import (
	"fmt"

	"github.com/rtlsdr-web/radiocore/internal/mode"
)

func errWrongScheme(have, got mode.Scheme) error {
	return fmt.Errorf("pipeline is %s, cannot SetParams with %s mode: %w", have, got, errSchemeMismatch)
}

var errSchemeMismatch = fmt.Errorf("mode scheme does not match pipeline scheme")
