package sink

import (
	"github.com/duecredit/godue/pkg/due"
)

// Merge combines snapshots from separate runs into one collector. Counts
// for the same entry key are summed; the first snapshot to cite a key
// contributes its use and level, matching the collector's own first-wins
// rule; the latest snapshot to register a key contributes its entry,
// matching idempotent registration.
func Merge(snaps ...*Snapshot) (*due.Collector, error) {
	var entries []*due.Entry
	var order []string
	totals := make(map[string]due.CitationState)

	for _, snap := range snaps {
		entries = append(entries, snap.Collector.Entries()...)
		for _, cit := range snap.Collector.Citations() {
			key := cit.Entry().Key()
			state, seen := totals[key]
			if !seen {
				state = due.CitationState{Key: key, Use: cit.Use(), Level: cit.Level()}
				order = append(order, key)
			}
			state.Count += cit.Count()
			totals[key] = state
		}
	}

	states := make([]due.CitationState, 0, len(order))
	for _, key := range order {
		states = append(states, totals[key])
	}
	return due.Restore(entries, states)
}
