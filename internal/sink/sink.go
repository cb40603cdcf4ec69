// Package sink defines the pluggable observability interface the
// extraction pipeline reports through, and a default implementation that
// logs in the bracketed-tag style the rest of this codebase uses.
package sink

import (
	"fmt"
	"log"
)

// Sink receives informational, warning, and error messages emitted during
// extraction. Implementations may filter by level or discard messages
// entirely (see Discard).
type Sink interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Default returns a Sink backed by the standard logger, tagging each line
// the way this codebase's services already do ([INFO]/[WARN]/[ERROR]).
func Default() Sink {
	return stdSink{}
}

type stdSink struct{}

func (stdSink) Infof(format string, args ...any) {
	log.Printf("[INFO] "+format, args...)
}

func (stdSink) Warnf(format string, args ...any) {
	log.Printf("[WARN] "+format, args...)
}

func (stdSink) Errorf(format string, args ...any) {
	log.Printf("[ERROR] "+format, args...)
}

// Discard returns a Sink that drops every message, useful for tests.
func Discard() Sink {
	return discardSink{}
}

type discardSink struct{}

func (discardSink) Infof(string, ...any)  {}
func (discardSink) Warnf(string, ...any)  {}
func (discardSink) Errorf(string, ...any) {}

// Collecting returns a Sink that records every message, for tests that
// assert a particular warning fired.
func Collecting() *CollectingSink {
	return &CollectingSink{}
}

// CollectingSink records every message passed to it, grouped by level.
type CollectingSink struct {
	Infos  []string
	Warns  []string
	Errors []string
}

func (c *CollectingSink) Infof(format string, args ...any) {
	c.Infos = append(c.Infos, fmt.Sprintf(format, args...))
}

func (c *CollectingSink) Warnf(format string, args ...any) {
	c.Warns = append(c.Warns, fmt.Sprintf(format, args...))
}

func (c *CollectingSink) Errorf(format string, args ...any) {
	c.Errors = append(c.Errors, fmt.Sprintf(format, args...))
}
