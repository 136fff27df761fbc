package sink

import (
	"fmt"
	"io"

	"github.com/duecredit/godue/pkg/due"
)

// Text writes a human-readable citation report to a stream. The exact
// formatting is informational only; each citation contributes its entry
// identity, use, level, and count.
type Text struct {
	name string
	w    io.Writer
	c    *due.Collector
}

// NewText creates a text sink writing to w. name identifies the sink in
// logs ("stdout", "stderr").
func NewText(name string, w io.Writer, c *due.Collector) *Text {
	return &Text{name: name, w: w, c: c}
}

// Name returns the sink identifier.
func (t *Text) Name() string { return t.name }

// Export writes one block per citation to the bound stream.
func (t *Text) Export() error {
	citations := t.c.Citations()
	if len(citations) == 0 {
		_, err := fmt.Fprintln(t.w, "godue: no citations recorded.")
		return err
	}

	if _, err := fmt.Fprintf(t.w, "godue report (%d citations):\n", len(citations)); err != nil {
		return err
	}
	for _, cit := range citations {
		e := cit.Entry()
		if _, err := fmt.Fprintf(t.w, "- %s [%s] cited %dx\n", e.Key(), e.Kind(), cit.Count()); err != nil {
			return err
		}
		if use := cit.Use(); use != "" {
			if _, err := fmt.Fprintf(t.w, "    use: %s\n", use); err != nil {
				return err
			}
		}
		if level := cit.Level(); level != "" {
			if _, err := fmt.Fprintf(t.w, "    level: %s\n", level); err != nil {
				return err
			}
		}
	}
	return nil
}
