package framesource

import (
	"fmt"
)

// ErrClosed is returned by reads from a closed and drained source.
type ErrClosed struct{}

func (ErrClosed) Error() string {
	return "the frame source is closed"
}

// ErrDeviceUnavailable is returned when the capture device cannot be
// opened or started.
type ErrDeviceUnavailable struct {
	Device string
	Err    error
}

func (e ErrDeviceUnavailable) Error() string {
	return fmt.Sprintf("capture device '%s' is unavailable: %v", e.Device, e.Err)
}

func (e ErrDeviceUnavailable) Unwrap() error {
	return e.Err
}
