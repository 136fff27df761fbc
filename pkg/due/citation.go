package due

import (
	"fmt"
	"sync/atomic"
)

// Citation records that a given [Entry] was actually used, together with
// free-text context and an invocation counter.
//
// A collector holds at most one Citation per entry key. The citation does
// not own its entry; the entry is shared with the collector's registry.
// The counter only ever increases while the process runs.
type Citation struct {
	entry *Entry
	use   string
	level string
	count atomic.Int64
}

func newCitation(entry *Entry, use, level string) *Citation {
	return &Citation{entry: entry, use: use, level: level}
}

// Entry returns the cited entry. It is nil only for citations produced by
// the [Inactive] collector.
func (c *Citation) Entry() *Entry { return c.entry }

// Use returns the free-text justification recorded when the citation was
// first created, or "".
func (c *Citation) Use() string { return c.use }

// Level returns the call-site context recorded when the citation was first
// created, e.g. "func github.com/acme/kit/stats.Fit".
func (c *Citation) Level() string { return c.level }

// Count returns the number of times the entry has been cited so far.
// It is safe to call concurrently with cites.
func (c *Citation) Count() int64 { return c.count.Load() }

// String returns a short human-readable form of the citation.
func (c *Citation) String() string {
	key := "<inactive>"
	if c.entry != nil {
		key = c.entry.Key()
	}
	s := fmt.Sprintf("%s: %dx", key, c.Count())
	if c.use != "" {
		s += fmt.Sprintf(" (%s)", c.use)
	}
	return s
}
