// Package sink provides teardown output sinks for citation collectors.
//
// # Overview
//
// A "sink" serializes a [due.Collector]'s accumulated state to one output
// target. This package provides:
//
//   - Text: human-readable report written to a stream (stdout/stderr)
//   - Snapshot: full-fidelity JSON snapshot persisted to a file, readable
//     back with [ReadSnapshot] for cross-run aggregation
//
// Sinks are selected by a comma-separated identifier list (typically the
// DUECREDIT_OUTPUTS environment setting) via [FromSpec]. Recognized
// identifiers are "stdout", "stderr", and "pickle"; anything else is a
// configuration error at construction time, never silently ignored.
//
// # Teardown
//
// An [Exporter] binds the configured sinks and flushes them exactly once
// when closed. Close is wired into the process's normal exit path
// explicitly (a defer in main, or a shutdown hook), never a finalizer:
//
//	sinks, err := sink.FromSpec(cfg.Outputs, collector, cfg.File)
//	if err != nil {
//	    return err
//	}
//	exporter := sink.NewExporter(sinks)
//	defer exporter.Close()
//
// Sinks are independent: a failure in one is logged and collected but does
// not prevent the remaining sinks from exporting.
package sink

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/duecredit/godue/pkg/due"
)

// ErrUnknownOutput is returned by [FromSpec] for an unrecognized sink
// identifier. Unknown identifiers are fatal at construction.
var ErrUnknownOutput = errors.New("unknown output type")

// Sink serializes a collector's current state to one output target.
// The collector is bound at construction; Export reads its state at call
// time, so cites recorded after construction are included.
type Sink interface {
	// Name identifies the sink in logs and error messages ("stdout",
	// "stderr", "pickle").
	Name() string

	// Export writes the collector's current state to the sink's target.
	Export() error
}

// FromSpec builds the sink set selected by a comma-separated identifier
// list such as "stdout,pickle". Identifiers are case-insensitive and
// surrounding whitespace is ignored; empty elements are skipped. path is
// the snapshot file used by the "pickle" sink, defaulting to
// [DefaultSnapshotPath] when empty.
func FromSpec(spec string, c *due.Collector, path string) ([]Sink, error) {
	if path == "" {
		path = DefaultSnapshotPath
	}
	var sinks []Sink
	for _, raw := range strings.Split(spec, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch name {
		case "":
			continue
		case "stdout":
			sinks = append(sinks, NewText(name, os.Stdout, c))
		case "stderr":
			sinks = append(sinks, NewText(name, os.Stderr, c))
		case "pickle":
			sinks = append(sinks, NewSnapshot(path, c))
		default:
			return nil, fmt.Errorf("output %q: %w", name, ErrUnknownOutput)
		}
	}
	return sinks, nil
}
