// File: logsink.go
// Role: LogSink and its two stock implementations.
package iter

import (
	"fmt"
	"io"
)

// LogSink receives one formatted line at a time, exactly as the driver
// wants it recorded. Deliberately narrower than a structured-logging
// interface: Run only ever emits preformatted fixed-width lines, never
// key/value fields, so there is nothing a logging library would buy
// here.
type LogSink interface {
	WriteLine(line string)
}

// header is the column banner printed once before the first
// iteration's line.
const header = "#    |MOVE.|      |FLIP.|      |MERGE|      |SPLIT|"

// formatLine renders one iteration's four counters as right-aligned
// fixed-width columns (widths 11, 13, 13, 13), matching header's
// column boundaries exactly.
func formatLine(nmov, nflp, nzip, ndiv int) string {
	return fmt.Sprintf("%11d%13d%13d%13d", nmov, nflp, nzip, ndiv)
}

// DiscardSink implements LogSink by dropping every line. It is
// Options' default, so a caller who never asks for logging pays
// nothing for it.
type DiscardSink struct{}

// WriteLine discards line.
func (DiscardSink) WriteLine(line string) {}

// PlainTextSink writes header followed by one line per call to an
// io.Writer.
type PlainTextSink struct {
	w           io.Writer
	wroteHeader bool
}

// NewPlainTextSink wraps w. Panics on a nil writer.
func NewPlainTextSink(w io.Writer) *PlainTextSink {
	if w == nil {
		panic("iter: NewPlainTextSink(nil)")
	}
	return &PlainTextSink{w: w}
}

// WriteLine writes header once, then line, each newline-terminated.
func (s *PlainTextSink) WriteLine(line string) {
	if !s.wroteHeader {
		fmt.Fprintln(s.w, header)
		s.wroteHeader = true
	}
	fmt.Fprintln(s.w, line)
}
