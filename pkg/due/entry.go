package due

import "maps"

// Kind identifies the bibliographic form an entry was created from.
type Kind string

const (
	// KindGeneric is a plain key/field entry with no specific source format.
	KindGeneric Kind = "generic"
	// KindBibTeX marks an entry backed by a raw BibTeX record.
	KindBibTeX Kind = "bibtex"
	// KindDoi marks an entry identified by a DOI.
	KindDoi Kind = "doi"
	// KindURL marks an entry identified by a plain URL (e.g. a donation or
	// project page).
	KindURL Kind = "url"
)

// Entry describes a citable work: a paper, tool, or dataset with a stable
// identity key. Entries are immutable once created; two entries with the
// same key denote the same work, and re-registering a key replaces the
// stored entry.
type Entry struct {
	key    string
	kind   Kind
	raw    string
	fields map[string]string
}

// NewEntry creates a generic entry with the given key and descriptive
// fields (title, authors, venue, ...). The fields map is copied; the core
// treats it as opaque metadata.
func NewEntry(key string, fields map[string]string) *Entry {
	return &Entry{key: key, kind: KindGeneric, fields: maps.Clone(fields)}
}

// BibTeX creates an entry from a raw BibTeX record. The raw text is kept
// verbatim for export; key identifies the entry within the collector.
func BibTeX(raw, key string) *Entry {
	return &Entry{key: key, kind: KindBibTeX, raw: raw}
}

// Doi creates an entry identified by a DOI. The DOI doubles as the entry key.
func Doi(doi string) *Entry {
	return &Entry{key: doi, kind: KindDoi, raw: doi}
}

// URL creates an entry identified by a URL. The URL doubles as the entry key.
func URL(url string) *Entry {
	return &Entry{key: url, kind: KindURL, raw: url}
}

// MakeEntry creates an entry with an explicit kind, raw payload, and field
// map. It is the general form behind the convenience constructors above,
// used by format parsers and snapshot readers.
func MakeEntry(key string, kind Kind, raw string, fields map[string]string) *Entry {
	if kind == "" {
		kind = KindGeneric
	}
	return &Entry{key: key, kind: kind, raw: raw, fields: maps.Clone(fields)}
}

// Key returns the entry's stable identity key.
func (e *Entry) Key() string { return e.key }

// Kind returns the bibliographic form the entry was created from.
func (e *Entry) Kind() Kind { return e.kind }

// Raw returns the raw payload the entry was created from (BibTeX source,
// DOI, or URL). Empty for generic entries.
func (e *Entry) Raw() string { return e.raw }

// Field returns the named descriptive field, or "" if unset.
func (e *Entry) Field(name string) string { return e.fields[name] }

// Fields returns a copy of the entry's descriptive fields.
func (e *Entry) Fields() map[string]string { return maps.Clone(e.fields) }

// String returns the entry in "kind:key" form.
func (e *Entry) String() string { return string(e.kind) + ":" + e.key }
