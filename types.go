package flatblog

import (
	"errors"
	"html/template"
	"path"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotFound is returned when a category has no documents or a path matches
// no document.
var ErrNotFound = errors.New("flatblog: not found")

// Metadata is the front-matter of a document, keyed by field name.
type Metadata map[string]string

// Get returns the value stored under key, or fallback when the key is missing
// or empty.
func (m Metadata) Get(key, fallback string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Document is one parsed post from the content directory.
type Document struct {
	Path    string        // slash-separated, relative to the content root, no extension
	Body    string        // raw Markdown after the front-matter
	HTML    template.HTML // rendered Body
	Meta    Metadata
	ModTime time.Time
}

var titleCaser = cases.Title(language.Und)

// Title returns the Title field, or a title derived from the last path segment.
func (d Document) Title() string {
	if t := d.Meta.Get("Title", ""); t != "" {
		return t
	}
	base := path.Base(d.Path)
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return titleCaser.String(base)
}

// Date returns the raw Date field, or "" when absent.
func (d Document) Date() string {
	return d.Meta.Get("Date", "")
}

// Summary returns the Summary field, falling back to Description.
func (d Document) Summary() string {
	return d.Meta.Get("Summary", d.Meta.Get("Description", ""))
}

// DocumentStore gives read access to the current document set.
type DocumentStore interface {
	// Documents returns every document, ordered by path.
	Documents() ([]Document, error)

	// Get returns the document at path.
	// Returns ErrNotFound if no document has that path.
	Get(path string) (Document, error)
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
