// Package diag defines the diagnostic sink injected into the parsing and
// probing components. Malformed input and topology inconsistencies are
// reported here rather than aborting a pass.
package diag

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Sink receives diagnostics emitted while processing simulation files.
type Sink interface {
	// Warnf reports a recoverable problem (malformed block, topology
	// inconsistency). Processing continues after a warning.
	Warnf(format string, args ...interface{})
	// Infof reports progress detail. Discarded unless verbose output
	// was requested.
	Infof(format string, args ...interface{})
}

type writerSink struct {
	logger  *log.Logger
	verbose bool
}

// NewSink returns a Sink writing to w. Infof output is suppressed
// unless verbose is set.
func NewSink(w io.Writer, verbose bool) Sink {
	return &writerSink{logger: log.New(w, "", 0), verbose: verbose}
}

// Stderr returns the default sink used by the command-line tools.
func Stderr(verbose bool) Sink {
	return NewSink(os.Stderr, verbose)
}

func (s *writerSink) Warnf(format string, args ...interface{}) {
	s.logger.Printf("warning: %s", fmt.Sprintf(format, args...))
}

func (s *writerSink) Infof(format string, args ...interface{}) {
	if s.verbose {
		s.logger.Printf(format, args...)
	}
}

type nopSink struct{}

func (nopSink) Warnf(string, ...interface{}) {}
func (nopSink) Infof(string, ...interface{}) {}

// Nop returns a sink that discards everything.
func Nop() Sink { return nopSink{} }
