// Package mock provides function-field test doubles for flatblog interfaces.
package mock

import "github.com/eringen/flatblog"

// Ensure DocumentStore implements flatblog.DocumentStore at compile time.
var _ flatblog.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of flatblog.DocumentStore.
type DocumentStore struct {
	DocumentsFn func() ([]flatblog.Document, error)
	GetFn       func(path string) (flatblog.Document, error)
}

func (s *DocumentStore) Documents() ([]flatblog.Document, error) {
	return s.DocumentsFn()
}

func (s *DocumentStore) Get(path string) (flatblog.Document, error) {
	return s.GetFn(path)
}

// NewDocumentStore returns a DocumentStore serving docs, with Get doing an
// exact path match over them.
func NewDocumentStore(docs ...flatblog.Document) *DocumentStore {
	return &DocumentStore{
		DocumentsFn: func() ([]flatblog.Document, error) {
			return append([]flatblog.Document(nil), docs...), nil
		},
		GetFn: func(path string) (flatblog.Document, error) {
			for _, d := range docs {
				if d.Path == path {
					return d, nil
				}
			}
			return flatblog.Document{}, flatblog.ErrNotFound
		},
	}
}
