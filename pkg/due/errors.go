package due

import "errors"

var (
	// ErrEntryNotFound is returned by [Collector.Cite] when a string key does
	// not match any registered entry. No Citation is created in that case.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrInvalidRef is returned by [Collector.Cite] when the ref argument is
	// neither a *Entry nor a string key.
	ErrInvalidRef = errors.New("ref must be a *Entry or a string key")

	// ErrUnsupportedFormat is returned by [Collector.Load] when no loader is
	// registered for the source file's extension.
	ErrUnsupportedFormat = errors.New("format not supported")

	// ErrEmptySource is returned by [Collector.Load] when the source path
	// is empty.
	ErrEmptySource = errors.New("source path must not be empty")

	// ErrMissingEntry is returned by [Restore] when a citation references an
	// entry key that is not present in the restored entry set. A Citation
	// cannot exist without its backing Entry.
	ErrMissingEntry = errors.New("citation without backing entry")

	// ErrDuplicateCitation is returned by [Restore] when two citation states
	// carry the same entry key.
	ErrDuplicateCitation = errors.New("duplicate citation key")

	// ErrNegativeCount is returned by [Restore] when a citation state carries
	// a negative invocation count.
	ErrNegativeCount = errors.New("citation count must not be negative")
)
