package due

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// LoaderFunc parses a bibliographic source file into entries.
// Loaders are registered per file extension via [WithLoader].
type LoaderFunc func(path string) ([]*Entry, error)

// Citer is the capability interface for citation recording. It is satisfied
// by [*Collector] (active bookkeeping) and [Inactive] (no-op), so callers can
// cite unconditionally and the variant is selected once at startup.
type Citer interface {
	// Add registers entries, replacing any previous entry with the same key.
	Add(entries ...*Entry)

	// Cite records one use of an entry. ref is either a *Entry (registered
	// as a side effect) or a string key of a previously registered entry.
	Cite(ref any, opts ...CiteOption) (*Citation, error)

	// Dcite returns a wrapping combinator: given a function, it returns a
	// function of identical signature that records one cite per invocation
	// before delegating.
	Dcite(ref any, opts ...CiteOption) func(fn any) any

	// Load reads entries from a bibliographic source file, dispatching on
	// the file extension.
	Load(path string) error
}

// CiteOption configures a single Cite or Dcite call.
type CiteOption func(*citeOptions)

type citeOptions struct {
	use      string
	level    string
	levelSet bool
}

// WithUse attaches a free-text justification ("performs k-means clustering")
// to the citation. Only the first citation of a key records it.
func WithUse(use string) CiteOption {
	return func(o *citeOptions) { o.use = use }
}

// WithLevel attaches a call-site context to the citation. When absent on a
// Dcite call, the level is deduced from the wrapped function's qualified
// name at decoration time.
func WithLevel(level string) CiteOption {
	return func(o *citeOptions) { o.level = level; o.levelSet = true }
}

func resolveCiteOptions(opts []CiteOption) citeOptions {
	var o citeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a [Collector].
type Option func(*Collector)

// WithLoader registers a bibliographic loader for the given file extension
// (including the dot, e.g. ".bib"). The extension match is case-insensitive.
func WithLoader(ext string, fn LoaderFunc) Option {
	return func(c *Collector) { c.loaders[strings.ToLower(ext)] = fn }
}

// WithLogger sets the logger used to report non-fatal problems such as cite
// failures inside decorated functions. Defaults to [log.Default].
func WithLogger(l *log.Logger) Option {
	return func(c *Collector) { c.logger = l }
}

// Collector is the process-wide registry of entries and citations.
//
// One Collector is typically created at startup and passed (directly or via
// the [Citer] interface) to any code that wants to cite. All methods are
// safe for concurrent use.
type Collector struct {
	mu        sync.Mutex
	entries   map[string]*Entry
	citations map[string]*Citation

	loaders map[string]LoaderFunc
	logger  *log.Logger
}

// New creates an empty collector.
func New(opts ...Option) *Collector {
	c := &Collector{
		entries:   make(map[string]*Entry),
		citations: make(map[string]*Citation),
		loaders:   make(map[string]LoaderFunc),
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add registers entries with the collector. Registration is idempotent:
// re-adding a key replaces the stored entry, so the latest entry wins.
// Nil entries are ignored.
func (c *Collector) Add(entries ...*Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		if e != nil {
			c.entries[e.key] = e
		}
	}
}

// Cite records one use of an entry and returns its shared [Citation].
//
// ref is either a *Entry, which is registered (replacing any previous entry
// with the same key) and cited, or a string key, which must identify a
// previously registered entry. Citing an unknown key returns
// [ErrEntryNotFound] and creates nothing.
//
// The Citation is created lazily on the first cite of a key, capturing the
// use and level options; subsequent cites of the same key only increment
// the counter and ignore differing options (first wins).
func (c *Collector) Cite(ref any, opts ...CiteOption) (*Citation, error) {
	return c.cite(ref, resolveCiteOptions(opts))
}

func (c *Collector) cite(ref any, o citeOptions) (*Citation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var entry *Entry
	switch r := ref.(type) {
	case *Entry:
		c.entries[r.key] = r
		entry = r
	case string:
		e, ok := c.entries[r]
		if !ok {
			return nil, fmt.Errorf("cite %q: %w", r, ErrEntryNotFound)
		}
		entry = e
	default:
		return nil, fmt.Errorf("cite %T: %w", ref, ErrInvalidRef)
	}

	cit, ok := c.citations[entry.key]
	if !ok {
		cit = newCitation(entry, o.use, o.level)
		c.citations[entry.key] = cit
	}
	cit.count.Add(1)
	return cit, nil
}

// Load reads entries from a bibliographic source file and registers them.
// The loader is selected by file extension; unregistered extensions return
// [ErrUnsupportedFormat]. An empty path returns [ErrEmptySource].
func (c *Collector) Load(path string) error {
	if path == "" {
		return ErrEmptySource
	}
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := c.loaders[ext]
	if !ok {
		return fmt.Errorf("load %s: %w", path, ErrUnsupportedFormat)
	}
	c.logger.Debug("loading bibliographic source", "path", path)
	entries, err := loader(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	c.Add(entries...)
	return nil
}

// Citation returns the citation recorded for key, if any.
func (c *Collector) Citation(key string) (*Citation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cit, ok := c.citations[key]
	return cit, ok
}

// Entry returns the entry registered under key, if any.
func (c *Collector) Entry(key string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Entries returns all registered entries sorted by key.
func (c *Collector) Entries() []*Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Entry) int { return cmp.Compare(a.key, b.key) })
	return out
}

// Citations returns all recorded citations sorted by entry key.
func (c *Collector) Citations() []*Citation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Citation, 0, len(c.citations))
	for _, cit := range c.citations {
		out = append(out, cit)
	}
	slices.SortFunc(out, func(a, b *Citation) int { return cmp.Compare(a.entry.key, b.entry.key) })
	return out
}

// NumEntries returns the number of registered entries.
func (c *Collector) NumEntries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// NumCitations returns the number of recorded citations.
func (c *Collector) NumCitations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.citations)
}

// String returns a short summary like "Collector 3 entries, 2 citations".
func (c *Collector) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("Collector %d entries, %d citations", len(c.entries), len(c.citations))
}

// CitationState is the serializable form of a citation, used by snapshot
// sinks and readers.
type CitationState struct {
	Key   string
	Use   string
	Level string
	Count int64
}

// Restore rebuilds a collector from previously exported state, validating
// that every citation references a registered entry ([ErrMissingEntry]),
// that citation keys are unique ([ErrDuplicateCitation]), and that counts
// are non-negative ([ErrNegativeCount]).
func Restore(entries []*Entry, citations []CitationState, opts ...Option) (*Collector, error) {
	c := New(opts...)
	c.Add(entries...)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range citations {
		entry, ok := c.entries[s.Key]
		if !ok {
			return nil, fmt.Errorf("restore %q: %w", s.Key, ErrMissingEntry)
		}
		if _, ok := c.citations[s.Key]; ok {
			return nil, fmt.Errorf("restore %q: %w", s.Key, ErrDuplicateCitation)
		}
		if s.Count < 0 {
			return nil, fmt.Errorf("restore %q: %w", s.Key, ErrNegativeCount)
		}
		cit := newCitation(entry, s.Use, s.Level)
		cit.count.Store(s.Count)
		c.citations[s.Key] = cit
	}
	return c, nil
}
