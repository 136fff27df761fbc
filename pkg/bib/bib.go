// Package bib reads BibTeX files into citation entries.
//
// The parser covers the subset of BibTeX needed for citation bookkeeping:
// @type{key, field = value, ...} records with brace-delimited, quoted, or
// bare field values, nested braces inside values, and free text between
// records. @comment, @preamble, and @string blocks are skipped. It does not
// expand @string macros or concatenation with "#".
//
// Register it as the ".bib" loader of a collector:
//
//	c := due.New(due.WithLoader(".bib", bib.Load))
//	if err := c.Load("refs.bib"); err != nil { ... }
package bib

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/duecredit/godue/pkg/due"
)

// Load reads a BibTeX file and returns its records as entries.
// The signature matches [due.LoaderFunc].
func Load(path string) ([]*due.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads BibTeX records from r. Each record becomes an entry of kind
// [due.KindBibTeX] whose key is the record's cite key and whose raw text is
// the record as written. Parsed fields (lowercased names) are kept for
// reporting, with the record type under "entrytype".
func Parse(r io.Reader) ([]*due.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	p := &parser{src: string(data), line: 1}
	var entries []*due.Entry
	for {
		e, ok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if e != nil {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

type parser struct {
	src  string
	pos  int
	line int
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.line, fmt.Sprintf(format, args...))
}

// next scans to the following @ record and parses it. It returns ok=false
// at end of input, and a nil entry for skipped blocks (@comment etc).
func (p *parser) next() (*due.Entry, bool, error) {
	for p.pos < len(p.src) && p.src[p.pos] != '@' {
		if p.src[p.pos] == '\n' {
			p.line++
		}
		p.pos++
	}
	if p.pos >= len(p.src) {
		return nil, false, nil
	}

	start := p.pos
	p.pos++ // consume '@'

	typ := p.ident()
	if typ == "" {
		return nil, false, p.errf("expected record type after @")
	}

	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return nil, false, p.errf("expected { after @%s", typ)
	}

	switch strings.ToLower(typ) {
	case "comment", "preamble", "string":
		if _, err := p.braced(); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	p.pos++ // consume '{'
	p.skipSpace()
	key := p.citeKey()
	if key == "" {
		return nil, false, p.errf("@%s record has no cite key", typ)
	}

	fields := map[string]string{"entrytype": strings.ToLower(typ)}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, false, p.errf("unterminated @%s{%s", typ, key)
		}
		switch p.src[p.pos] {
		case '}':
			p.pos++
			raw := strings.TrimSpace(p.src[start:p.pos])
			e := due.MakeEntry(key, due.KindBibTeX, raw, fields)
			return e, true, nil
		case ',':
			p.pos++
		default:
			name, value, err := p.field()
			if err != nil {
				return nil, false, err
			}
			if name != "" {
				fields[strings.ToLower(name)] = value
			}
		}
	}
}

func (p *parser) field() (string, string, error) {
	name := p.ident()
	if name == "" {
		return "", "", p.errf("expected field name")
	}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '=' {
		return "", "", p.errf("expected = after field %q", name)
	}
	p.pos++
	p.skipSpace()
	if p.pos >= len(p.src) {
		return "", "", p.errf("missing value for field %q", name)
	}

	switch p.src[p.pos] {
	case '{':
		v, err := p.braced()
		return name, v, err
	case '"':
		v, err := p.quoted()
		return name, v, err
	default:
		return name, p.bare(), nil
	}
}

// braced consumes a {...} group, tracking nesting, and returns its inner
// text with whitespace collapsed.
func (p *parser) braced() (string, error) {
	startLine := p.line
	p.pos++ // consume '{'
	depth := 1
	var b strings.Builder
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos++
				return collapse(b.String()), nil
			}
		case '\n':
			p.line++
		}
		b.WriteByte(ch)
		p.pos++
	}
	p.line = startLine
	return "", p.errf("unbalanced braces")
}

func (p *parser) quoted() (string, error) {
	startLine := p.line
	p.pos++ // consume '"'
	var b strings.Builder
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		if ch == '"' {
			p.pos++
			return collapse(b.String()), nil
		}
		if ch == '\n' {
			p.line++
		}
		b.WriteByte(ch)
		p.pos++
	}
	p.line = startLine
	return "", p.errf("unterminated quoted value")
}

// bare consumes an unquoted value (a number or macro name) up to the next
// comma or closing brace.
func (p *parser) bare() string {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != '}' && p.src[p.pos] != '\n' {
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos])
}

// citeKey consumes the record key up to the first comma or closing brace.
func (p *parser) citeKey() string {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != '}' && p.src[p.pos] != '\n' {
		p.pos++
	}
	key := strings.TrimSpace(p.src[start:p.pos])
	if p.pos < len(p.src) && p.src[p.pos] == ',' {
		p.pos++
	}
	return key
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '_' || ch == '-' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\n':
			p.line++
			fallthrough
		case ' ', '\t', '\r':
			p.pos++
		default:
			return
		}
	}
}

// collapse normalizes internal whitespace runs to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
