// Package due implements an in-process registry for citable works.
//
// # Overview
//
// Library code declares the papers, tools, and datasets it builds on as
// [Entry] values. At runtime, every use of such a work is recorded as a
// [Citation] against a process-wide [Collector]. At shutdown the accumulated
// citations are flushed to output sinks (see the sink package), producing a
// report of what was actually used during the run rather than everything
// that could have been.
//
// # Recording usage
//
// Usage is recorded either directly:
//
//	c := due.New()
//	c.Cite(due.Doi("10.1038/nature14539"), due.WithUse("deep learning review"))
//
// or by wrapping a function so that every invocation counts as one use:
//
//	cluster := due.Dcite1(c, "sklearn", clusterFn, due.WithUse("k-means clustering"))
//
// Repeated citations of the same entry key share a single [Citation] whose
// counter increases monotonically. The use and level strings supplied on the
// first citation win; later differing values are ignored.
//
// # Enabling and disabling
//
// Both [Collector] and [Inactive] satisfy the [Citer] interface. Programs
// select one at startup (typically from the DUECREDIT_ENABLE environment
// setting) and pass it to any code that wants to cite. The inactive variant
// performs no bookkeeping and adds no overhead beyond an interface call.
//
// # Concurrency
//
// All Collector methods are safe for concurrent use. Lookup-or-create of a
// Citation and the subsequent counter increment are atomic with respect to
// each entry key, so wrapped functions may be called from multiple
// goroutines without losing counts.
package due
