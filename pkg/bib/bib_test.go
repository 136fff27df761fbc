package bib

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/duecredit/godue/pkg/due"
)

const sample = `
This is free text outside any record; BibTeX tools ignore it.

@article{doe2020,
  title   = {A {Nested} Title},
  author  = "Jane Doe and John Roe",
  journal = {J. Irrelevant Results},
  year    = 2020,
}

@comment{this whole block is skipped}

@misc{tool-x,
  title = {Tool X},
  url   = {https://example.org/tool-x}
}
`

func TestParseRecords(t *testing.T) {
	entries, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	first := entries[0]
	if first.Key() != "doe2020" {
		t.Errorf("Key = %q, want doe2020", first.Key())
	}
	if first.Kind() != due.KindBibTeX {
		t.Errorf("Kind = %q, want bibtex", first.Kind())
	}
	if got := first.Field("entrytype"); got != "article" {
		t.Errorf("entrytype = %q, want article", got)
	}
	if got := first.Field("title"); got != "A {Nested} Title" {
		t.Errorf("title = %q (nested braces should be preserved)", got)
	}
	if got := first.Field("author"); got != "Jane Doe and John Roe" {
		t.Errorf("author = %q", got)
	}
	if got := first.Field("year"); got != "2020" {
		t.Errorf("year = %q (bare values)", got)
	}
	if !strings.HasPrefix(first.Raw(), "@article{doe2020") {
		t.Errorf("raw record lost: %q", first.Raw())
	}

	second := entries[1]
	if second.Key() != "tool-x" || second.Field("url") != "https://example.org/tool-x" {
		t.Errorf("second entry = %q url=%q", second.Key(), second.Field("url"))
	}
}

func TestParseCollapsesValueWhitespace(t *testing.T) {
	entries, err := Parse(strings.NewReader("@misc{k, note = {spread\n  over\n  lines}}"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := entries[0].Field("note"); got != "spread over lines" {
		t.Errorf("note = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unbalanced braces", "@article{k, title = {never closed"},
		{"missing key", "@article{, title = {x}}"},
		{"missing equals", "@article{k, title {x}}"},
		{"unterminated quote", `@article{k, title = "open}`},
		{"no brace after type", "@article k,"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tc.src)); err == nil {
				t.Error("expected parse error")
			} else if !strings.Contains(err.Error(), "line ") {
				t.Errorf("error should carry a line position: %v", err)
			}
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	entries, err := Parse(strings.NewReader("just prose, no records"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestLoadAsCollectorLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.bib")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}

	c := due.New(due.WithLoader(".bib", Load))
	if err := c.Load(path); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, ok := c.Entry("doe2020"); !ok {
		t.Error("loaded entries should be registered with the collector")
	}

	if _, err := c.Cite("doe2020", due.WithUse("background")); err != nil {
		t.Errorf("citing a loaded entry: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.bib")); err == nil {
		t.Error("expected error for a missing file")
	}
}
