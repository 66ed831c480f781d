package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter copies each write to all of its writers, e.g. a log file and stderr.
// A write succeeds as long as one of the writers took the whole buffer.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w != nil {
			cw.Writers = append(cw.Writers, w)
		}
	}
	return cw
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var errs error
	written := false
	for _, w := range cw.Writers {
		n, err := w.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		written = true
	}

	if !written && len(cw.Writers) > 0 {
		return 0, errs
	}
	return len(p), errs
}
