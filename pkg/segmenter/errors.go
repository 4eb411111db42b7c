package segmenter

import (
	"fmt"
)

// ErrClassifierFailure means the classifier could not judge a frame. The
// segmenter never substitutes a guess for a failed judgement.
type ErrClassifierFailure struct {
	Err error
}

func (e ErrClassifierFailure) Error() string {
	return fmt.Sprintf("the voice activity classifier failed: %v", e.Err)
}

func (e ErrClassifierFailure) Unwrap() error {
	return e.Err
}

type ErrInvalidConfig struct {
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid segmenter config: %s", e.Reason)
}
