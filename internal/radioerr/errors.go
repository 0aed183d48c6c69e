// Package radioerr defines the error kinds spec §7 enumerates, shared
// across the tuner, sink, controller, and pipeline packages so callers can
// use errors.As/errors.Is uniformly regardless of which layer raised them.
package radioerr

import "fmt"

// DeviceError wraps a tuner I/O failure, invalid handle, or disconnect. The
// controller stops the pipeline and awaits re-open when one occurs.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device error during %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// NewDeviceError builds a DeviceError for the named tuner operation.
func NewDeviceError(op string, err error) *DeviceError {
	return &DeviceError{Op: op, Err: err}
}

// UnknownScheme is returned when a requested mode scheme tag has no
// registered pipeline constructor. Unlike InvalidParameter, this is a real
// domain error surfaced to the caller — a scheme is not a value that gets
// silently clamped.
type UnknownScheme struct {
	Scheme fmt.Stringer
}

func (e *UnknownScheme) Error() string {
	return fmt.Sprintf("unknown demodulation scheme: %v", e.Scheme)
}

// NewUnknownScheme builds an UnknownScheme error for the given scheme tag.
func NewUnknownScheme(scheme fmt.Stringer) *UnknownScheme {
	return &UnknownScheme{Scheme: scheme}
}

// SinkError wraps an audio sink's refusal to accept a block. It is treated
// as fatal for the current session: the pipeline stops.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("audio sink error: %v", e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// NewSinkError wraps err as a SinkError.
func NewSinkError(err error) *SinkError {
	return &SinkError{Err: err}
}

// InvalidParameter documents an out-of-range field. Spec policy is to clamp
// silently rather than to return this error from setters; it exists so
// tests and API consumers have a concrete type to reference, and so a
// hand-rolled validation layer built on top of this package (e.g. a strict
// mode for configuration files) has somewhere to hang its errors.
type InvalidParameter struct {
	Field string
	Value float64
}

func (e *InvalidParameter) Error() string {
	return fmt.Sprintf("invalid value %v for parameter %q", e.Value, e.Field)
}
