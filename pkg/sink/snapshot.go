package sink

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/duecredit/godue/pkg/due"
)

// DefaultSnapshotPath is where the "pickle" sink persists the collector
// when no path is configured.
const DefaultSnapshotPath = ".duecredit.p"

// snapshotVersion is the current on-disk format version.
const snapshotVersion = 1

// ErrSnapshotVersion is returned by [DecodeSnapshot] when a snapshot was
// written by a newer format version than this reader understands.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// SnapshotSink persists the collector's full state to a file so external
// tooling (e.g. "godue summary") can aggregate citations across runs.
// The on-disk format is JSON with a version header and a per-run ID.
type SnapshotSink struct {
	path string
	c    *due.Collector
}

// NewSnapshot creates a snapshot sink writing to path.
func NewSnapshot(path string, c *due.Collector) *SnapshotSink {
	if path == "" {
		path = DefaultSnapshotPath
	}
	return &SnapshotSink{path: path, c: c}
}

// Name returns the sink identifier.
func (s *SnapshotSink) Name() string { return "pickle" }

// Export writes the collector's current state to the snapshot file,
// replacing any previous snapshot at that path.
func (s *SnapshotSink) Export() error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	if err := WriteSnapshot(f, s.c); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	return nil
}

type snapshotFile struct {
	Version   int                `json:"version"`
	RunID     string             `json:"run_id"`
	CreatedAt time.Time          `json:"created_at"`
	Entries   []snapshotEntry    `json:"entries"`
	Citations []snapshotCitation `json:"citations"`
}

type snapshotEntry struct {
	Key    string            `json:"key"`
	Kind   string            `json:"kind"`
	Raw    string            `json:"raw,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

type snapshotCitation struct {
	Key   string `json:"key"`
	Use   string `json:"use,omitempty"`
	Level string `json:"level,omitempty"`
	Count int64  `json:"count"`
}

// WriteSnapshot encodes the collector's current state to w. Each write
// gets a fresh run ID and timestamp so snapshots from separate runs stay
// distinguishable during aggregation.
func WriteSnapshot(w io.Writer, c *due.Collector) error {
	out := snapshotFile{
		Version:   snapshotVersion,
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	for _, e := range c.Entries() {
		out.Entries = append(out.Entries, snapshotEntry{
			Key:    e.Key(),
			Kind:   string(e.Kind()),
			Raw:    e.Raw(),
			Fields: e.Fields(),
		})
	}
	for _, cit := range c.Citations() {
		out.Citations = append(out.Citations, snapshotCitation{
			Key:   cit.Entry().Key(),
			Use:   cit.Use(),
			Level: cit.Level(),
			Count: cit.Count(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Snapshot is a decoded snapshot file: run metadata plus a collector
// reconstructed with the original entry keys, uses, levels, and counts.
type Snapshot struct {
	Version   int
	RunID     string
	CreatedAt time.Time
	Collector *due.Collector
}

// ReadSnapshot reads and decodes the snapshot file at path.
func ReadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	snap, err := DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return snap, nil
}

// DecodeSnapshot decodes a snapshot from r and reconstructs an equivalent
// collector. The citation-implies-entry invariant is re-validated during
// restore, so a corrupted snapshot fails instead of producing a collector
// that violates it.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var in snapshotFile
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if in.Version > snapshotVersion {
		return nil, fmt.Errorf("version %d: %w", in.Version, ErrSnapshotVersion)
	}

	entries := make([]*due.Entry, 0, len(in.Entries))
	for _, e := range in.Entries {
		entries = append(entries, due.MakeEntry(e.Key, due.Kind(e.Kind), e.Raw, e.Fields))
	}
	states := make([]due.CitationState, 0, len(in.Citations))
	for _, cit := range in.Citations {
		states = append(states, due.CitationState{
			Key:   cit.Key,
			Use:   cit.Use,
			Level: cit.Level,
			Count: cit.Count,
		})
	}
	c, err := due.Restore(entries, states)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Version:   in.Version,
		RunID:     in.RunID,
		CreatedAt: in.CreatedAt,
		Collector: c,
	}, nil
}
