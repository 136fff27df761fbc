package sink

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/duecredit/godue/pkg/due"
)

func demoCollector(t *testing.T) *due.Collector {
	t.Helper()
	c := due.New()
	c.Add(
		due.NewEntry("K1", map[string]string{"title": "First Paper", "author": "Doe"}),
		due.BibTeX("@article{K2, title={Second}}", "K2"),
	)
	if _, err := c.Cite("K1", due.WithUse("clustering"), due.WithLevel("func pkg.f")); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Cite("K1"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Cite("K2"); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := demoCollector(t)

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, c); err != nil {
		t.Fatalf("WriteSnapshot error: %v", err)
	}

	snap, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot error: %v", err)
	}
	if snap.RunID == "" {
		t.Error("snapshot should carry a run ID")
	}
	if snap.CreatedAt.IsZero() {
		t.Error("snapshot should carry a creation time")
	}

	restored := snap.Collector
	if restored.NumEntries() != 2 || restored.NumCitations() != 2 {
		t.Fatalf("restored %d entries, %d citations; want 2, 2", restored.NumEntries(), restored.NumCitations())
	}

	e, ok := restored.Entry("K1")
	if !ok {
		t.Fatal("entry K1 missing after round trip")
	}
	if e.Field("title") != "First Paper" || e.Field("author") != "Doe" {
		t.Errorf("entry fields lost: %v", e.Fields())
	}

	e2, _ := restored.Entry("K2")
	if e2.Kind() != due.KindBibTeX || !strings.Contains(e2.Raw(), "@article{K2") {
		t.Errorf("bibtex payload lost: kind=%q raw=%q", e2.Kind(), e2.Raw())
	}

	cit, ok := restored.Citation("K1")
	if !ok {
		t.Fatal("citation K1 missing after round trip")
	}
	if cit.Count() != 2 || cit.Use() != "clustering" || cit.Level() != "func pkg.f" {
		t.Errorf("citation state lost: count=%d use=%q level=%q", cit.Count(), cit.Use(), cit.Level())
	}
}

func TestSnapshotSinkWritesFile(t *testing.T) {
	c := demoCollector(t)
	path := filepath.Join(t.TempDir(), "run.p")

	s := NewSnapshot(path, c)
	if s.Name() != "pickle" {
		t.Errorf("Name = %q, want pickle", s.Name())
	}
	if err := s.Export(); err != nil {
		t.Fatalf("Export error: %v", err)
	}

	snap, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot error: %v", err)
	}
	if snap.Collector.NumCitations() != 2 {
		t.Errorf("NumCitations = %d, want 2", snap.Collector.NumCitations())
	}
}

func TestDecodeSnapshotRejectsNewerVersion(t *testing.T) {
	in := strings.NewReader(`{"version": 99, "entries": [], "citations": []}`)
	if _, err := DecodeSnapshot(in); !errors.Is(err, ErrSnapshotVersion) {
		t.Errorf("err = %v, want ErrSnapshotVersion", err)
	}
}

func TestDecodeSnapshotRejectsOrphanCitation(t *testing.T) {
	in := strings.NewReader(`{
		"version": 1,
		"entries": [],
		"citations": [{"key": "ghost", "count": 3}]
	}`)
	if _, err := DecodeSnapshot(in); !errors.Is(err, due.ErrMissingEntry) {
		t.Errorf("err = %v, want due.ErrMissingEntry", err)
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot(strings.NewReader("not json")); err == nil {
		t.Error("garbage input should fail to decode")
	}
}
