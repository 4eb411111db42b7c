package dataset

import (
	"fmt"
)

type ErrInvalidDefault struct {
	Default Answer
}

func (e ErrInvalidDefault) Error() string {
	return fmt.Sprintf("invalid default answer: '%s'", string(e.Default))
}

type ErrInvalidHeader struct {
	Path   string
	Header []string
}

func (e ErrInvalidHeader) Error() string {
	return fmt.Sprintf("'%s' does not look like a dataset: unexpected header %q", e.Path, e.Header)
}
