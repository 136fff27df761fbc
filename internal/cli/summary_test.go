package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/duecredit/godue/pkg/due"
	"github.com/duecredit/godue/pkg/sink"
)

func writeSnapshot(t *testing.T, dir, name string, cites map[string]int) string {
	t.Helper()
	c := due.New()
	for key, n := range cites {
		c.Add(due.NewEntry(key, map[string]string{"title": "T " + key}))
		for i := 0; i < n; i++ {
			if _, err := c.Cite(key, due.WithUse("use of "+key)); err != nil {
				t.Fatal(err)
			}
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := sink.WriteSnapshot(f, c); err != nil {
		t.Fatal(err)
	}
	return path
}

func runSummary(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"summary"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSummaryAggregatesRuns(t *testing.T) {
	dir := t.TempDir()
	run1 := writeSnapshot(t, dir, "run1.p", map[string]int{"K1": 3, "K2": 1})
	run2 := writeSnapshot(t, dir, "run2.p", map[string]int{"K1": 2})

	out, err := runSummary(t, "--format", "json", run1, run2)
	if err != nil {
		t.Fatalf("summary error: %v", err)
	}

	var report struct {
		Runs      int `json:"runs"`
		Citations []struct {
			Key   string `json:"key"`
			Count int64  `json:"count"`
		} `json:"citations"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("bad JSON output: %v\n%s", err, out)
	}
	if report.Runs != 2 {
		t.Errorf("runs = %d, want 2", report.Runs)
	}
	counts := map[string]int64{}
	for _, c := range report.Citations {
		counts[c.Key] = c.Count
	}
	if counts["K1"] != 5 || counts["K2"] != 1 {
		t.Errorf("counts = %v, want K1:5 K2:1", counts)
	}
}

func TestSummaryTextOutput(t *testing.T) {
	dir := t.TempDir()
	run := writeSnapshot(t, dir, "run.p", map[string]int{"K1": 2})

	out, err := runSummary(t, run)
	if err != nil {
		t.Fatalf("summary error: %v", err)
	}
	for _, want := range []string{"K1", "2x", "use of K1", "1 citations across 1 run(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryMissingSnapshot(t *testing.T) {
	_, err := runSummary(t, filepath.Join(t.TempDir(), "absent.p"))
	if err == nil {
		t.Error("summary of a missing snapshot should fail")
	}
}

func TestSummaryUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	run := writeSnapshot(t, dir, "run.p", map[string]int{"K1": 1})

	_, err := runSummary(t, "--format", "yaml", run)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("err = %v, want unknown format error", err)
	}
}
