package sink

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/duecredit/godue/pkg/due"
)

// Exporter flushes a set of sinks exactly once at teardown.
//
// The exporter holds a non-owning reference to the collector through its
// sinks; it is responsible for flushing the collector's state, not for its
// lifetime. Close is safe to call multiple times and from multiple exit
// paths (defer, signal handler); only the first call exports.
type Exporter struct {
	sinks  []Sink
	logger *log.Logger

	once sync.Once
	err  error
}

// ExporterOption configures an [Exporter].
type ExporterOption func(*Exporter)

// WithLogger sets the logger used to report per-sink export failures.
// Defaults to [log.Default].
func WithLogger(l *log.Logger) ExporterOption {
	return func(e *Exporter) { e.logger = l }
}

// NewExporter binds the given sinks for teardown export.
func NewExporter(sinks []Sink, opts ...ExporterOption) *Exporter {
	e := &Exporter{sinks: sinks, logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewExporterFromSpec resolves spec via [FromSpec] and binds the resulting
// sinks. An unrecognized identifier fails here, at construction, rather
// than at teardown.
func NewExporterFromSpec(spec string, c *due.Collector, path string, opts ...ExporterOption) (*Exporter, error) {
	sinks, err := FromSpec(spec, c, path)
	if err != nil {
		return nil, err
	}
	return NewExporter(sinks, opts...), nil
}

// Close exports every bound sink exactly once. Sinks are independent: a
// failing sink is logged and its error collected, but the remaining sinks
// still run. Close returns the joined errors (nil if all sinks succeeded);
// repeated calls return the first result without exporting again.
//
// Teardown usually runs during process shutdown where an unhandled failure
// is invisible or disruptive, so callers typically log the returned error
// rather than aborting on it.
func (e *Exporter) Close() error {
	e.once.Do(func() {
		var errs []error
		for _, s := range e.sinks {
			if err := s.Export(); err != nil {
				e.logger.Error("citation export failed", "sink", s.Name(), "err", err)
				errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			}
		}
		e.err = errors.Join(errs...)
	})
	return e.err
}
