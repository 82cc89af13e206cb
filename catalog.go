package flatblog

import (
	"sort"
)

// DefaultCategory is the label given to documents without a Category field.
const DefaultCategory = "uncategorized"

// Catalog derives the read views served by the handlers. It holds no state of
// its own; every call reads the store's current documents.
type Catalog struct {
	store           DocumentStore
	defaultCategory string
}

// NewCatalog creates a Catalog over store. An empty defaultCategory selects
// DefaultCategory.
func NewCatalog(store DocumentStore, defaultCategory string) *Catalog {
	if defaultCategory == "" {
		defaultCategory = DefaultCategory
	}
	return &Catalog{store: store, defaultCategory: defaultCategory}
}

// DefaultCategory returns the label used for documents without a category.
func (c *Catalog) DefaultCategory() string {
	return c.defaultCategory
}

// CategoryOf returns the category label of d.
func (c *Catalog) CategoryOf(d Document) string {
	return CategoryLabel(d, c.defaultCategory)
}

// Snapshot reads the store once. Handlers that need several views of the
// documents take them from one snapshot so they agree with each other.
func (c *Catalog) Snapshot() (Snapshot, error) {
	docs, err := c.store.Documents()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{docs: docs, defaultCategory: c.defaultCategory}, nil
}

// Recent returns every document, most recent Date first.
func (c *Catalog) Recent() ([]Document, error) {
	s, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.Recent(), nil
}

// Categories returns the sorted, distinct category labels of all documents.
func (c *Catalog) Categories() ([]string, error) {
	s, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.Categories(), nil
}

// InCategory returns the documents labelled label, in store order.
// Returns ErrNotFound if none match.
func (c *Catalog) InCategory(label string) ([]Document, error) {
	s, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.InCategory(label)
}

// Document returns the document at path.
// Returns ErrNotFound if none matches.
func (c *Catalog) Document(path string) (Document, error) {
	return c.store.Get(path)
}

// Snapshot is the document set as of one store read.
type Snapshot struct {
	docs            []Document // store order
	defaultCategory string
}

// Recent returns every document, most recent Date first.
func (s Snapshot) Recent() []Document {
	return SortByDate(s.docs)
}

// Categories returns the sorted, distinct category labels.
func (s Snapshot) Categories() []string {
	return CategoryLabels(s.docs, s.defaultCategory)
}

// InCategory returns the documents labelled label, in store order.
// Returns ErrNotFound if none match.
func (s Snapshot) InCategory(label string) ([]Document, error) {
	matched := FilterByCategory(s.docs, label, s.defaultCategory)
	if len(matched) == 0 {
		return nil, ErrNotFound
	}
	return matched, nil
}

// Document returns the document at path.
// Returns ErrNotFound if none matches.
func (s Snapshot) Document(path string) (Document, error) {
	for _, d := range s.docs {
		if d.Path == path {
			return d, nil
		}
	}
	return Document{}, ErrNotFound
}

// CategoryLabel returns d's Category field, or fallback when it is missing or empty.
func CategoryLabel(d Document, fallback string) string {
	return d.Meta.Get("Category", fallback)
}

// SortByDate returns a copy of docs ordered by Date descending. Documents
// without a Date sort last; equal dates keep their input order.
func SortByDate(docs []Document) []Document {
	sorted := make([]Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date() > sorted[j].Date()
	})
	return sorted
}

// CategoryLabels returns the distinct category labels of docs, sorted.
func CategoryLabels(docs []Document, fallback string) []string {
	set := make(map[string]struct{})
	for _, d := range docs {
		set[CategoryLabel(d, fallback)] = struct{}{}
	}
	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// FilterByCategory returns the documents whose label equals label exactly.
func FilterByCategory(docs []Document, label, fallback string) []Document {
	var matched []Document
	for _, d := range docs {
		if CategoryLabel(d, fallback) == label {
			matched = append(matched, d)
		}
	}
	return matched
}
