package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes every message to all of its writers, e.g. the log file and stdout.
// A failing writer does not stop the others.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: append([]io.Writer(nil), writers...),
	}
}

// Write reports len(p) when at least one writer got the whole message, so a broken
// stdout never stalls logging to the file. Errors of all writers are combined.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	written := 0
	for _, w := range cw.writers {
		n, wErr := w.Write(p)
		if wErr != nil {
			err = multierr.Append(err, wErr)
			continue
		}
		written = max(written, n)
	}
	return written, err
}
