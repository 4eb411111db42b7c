package frame

import (
	"fmt"
)

type ErrUnsupportedFormat struct {
	Format Format
	Reason string
}

func (e ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported format %s: %s", e.Format, e.Reason)
}
