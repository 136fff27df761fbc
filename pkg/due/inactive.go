package due

// Inactive is the no-op implementation of [Citer], selected when citation
// collection is disabled. It performs no bookkeeping: entries are dropped,
// cites return an inert citation, and Dcite hands back the original
// function untouched.
type Inactive struct{}

// NewInactive creates the no-op citer.
func NewInactive() Inactive { return Inactive{} }

// inertCitation is returned by Inactive.Cite so callers that inspect the
// result never see nil. Its entry is nil and its count stays zero.
var inertCitation = &Citation{}

// Add does nothing.
func (Inactive) Add(entries ...*Entry) {}

// Cite does nothing and returns an inert citation with a nil entry and a
// count of zero.
func (Inactive) Cite(ref any, opts ...CiteOption) (*Citation, error) {
	return inertCitation, nil
}

// Dcite returns a combinator that hands back the original function without
// wrapping it.
func (Inactive) Dcite(ref any, opts ...CiteOption) func(fn any) any {
	return func(fn any) any { return fn }
}

// Load does nothing.
func (Inactive) Load(path string) error { return nil }

// Ensure both variants implement Citer.
var (
	_ Citer = (*Collector)(nil)
	_ Citer = Inactive{}
)
