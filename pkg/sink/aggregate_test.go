package sink

import (
	"bytes"
	"testing"

	"github.com/duecredit/godue/pkg/due"
)

func snapshotOf(t *testing.T, c *due.Collector) *Snapshot {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, c); err != nil {
		t.Fatal(err)
	}
	snap, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

func TestMergeSumsCountsAcrossRuns(t *testing.T) {
	run1 := due.New()
	run1.Add(due.NewEntry("K1", nil), due.NewEntry("K2", nil))
	for i := 0; i < 3; i++ {
		if _, err := run1.Cite("K1", due.WithUse("first use")); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := run1.Cite("K2"); err != nil {
		t.Fatal(err)
	}

	run2 := due.New()
	run2.Add(due.NewEntry("K1", nil), due.NewEntry("K3", nil))
	for i := 0; i < 2; i++ {
		if _, err := run2.Cite("K1", due.WithUse("second use")); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := run2.Cite("K3"); err != nil {
		t.Fatal(err)
	}

	merged, err := Merge(snapshotOf(t, run1), snapshotOf(t, run2))
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}

	if merged.NumEntries() != 3 || merged.NumCitations() != 3 {
		t.Fatalf("merged %d entries, %d citations; want 3, 3", merged.NumEntries(), merged.NumCitations())
	}

	cit, _ := merged.Citation("K1")
	if cit.Count() != 5 {
		t.Errorf("K1 count = %d, want 3+2", cit.Count())
	}
	if cit.Use() != "first use" {
		t.Errorf("Use = %q, want the first run's use", cit.Use())
	}
}

func TestMergeEmpty(t *testing.T) {
	merged, err := Merge()
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if merged.NumEntries() != 0 || merged.NumCitations() != 0 {
		t.Error("merging nothing should yield an empty collector")
	}
}
