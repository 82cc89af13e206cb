// Package content implements flatblog.DocumentStore over a directory of
// Markdown files with front matter.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/eringen/flatblog"
	"github.com/eringen/flatblog/markdown"
)

// Ensure Store implements flatblog.DocumentStore at compile time.
var _ flatblog.DocumentStore = (*Store)(nil)

// Store discovers documents under a root directory and caches their parsed
// form keyed by document path. Each cached entry remembers the file's
// modification time and size; with auto-reload a read rescans the directory
// and re-parses only the files that changed.
type Store struct {
	root       string
	ext        string
	autoReload bool
	useWatcher bool
	renderer   *markdown.Renderer
	logger     *slog.Logger

	mu      sync.RWMutex
	entries map[string]entry
	docs    []flatblog.Document // sorted by path
	index   map[string]int
	loaded  bool

	dirty   atomic.Bool
	watcher *fsnotify.Watcher
}

type entry struct {
	modTime time.Time
	size    int64
	doc     flatblog.Document
}

// Option configures a Store.
type Option func(*Store)

// WithExtension sets the file extension of documents (default ".md").
func WithExtension(ext string) Option {
	return func(s *Store) {
		if ext != "" {
			s.ext = ext
		}
	}
}

// WithAutoReload makes every read pick up added, changed and deleted files.
func WithAutoReload(on bool) Option {
	return func(s *Store) {
		s.autoReload = on
	}
}

// WithWatcher enables auto-reload driven by filesystem notifications: the
// directory is only rescanned after a change was reported.
func WithWatcher() Option {
	return func(s *Store) {
		s.autoReload = true
		s.useWatcher = true
	}
}

// WithRenderer sets the Markdown renderer used for document bodies.
func WithRenderer(r *markdown.Renderer) Option {
	return func(s *Store) {
		s.renderer = r
	}
}

// WithLogger sets the logger for skipped files and watcher events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Open creates a Store over root. Documents are read lazily on first access.
func Open(root string, opts ...Option) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content: %s is not a directory", root)
	}

	s := &Store{
		root:    root,
		ext:     ".md",
		logger:  slog.Default(),
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		r, err := markdown.New(flatblog.DefaultMarkdownExtensions)
		if err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		s.renderer = r
	}
	if s.useWatcher {
		if err := s.startWatcher(); err != nil {
			// Rescanning on every read gives the same results, only slower.
			s.logger.Warn("file watcher unavailable, rescanning on every read", "root", root, "err", err)
		}
	}
	return s, nil
}

// Close stops the file watcher, if any.
func (s *Store) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// Root returns the directory the store reads from.
func (s *Store) Root() string {
	return s.root
}

// Documents returns every document, ordered by path.
func (s *Store) Documents() ([]flatblog.Document, error) {
	docs, _, err := s.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return append([]flatblog.Document(nil), docs...), nil
}

// Get returns the document at docPath.
// Returns flatblog.ErrNotFound if there is none.
func (s *Store) Get(docPath string) (flatblog.Document, error) {
	docs, index, err := s.ensureLoaded()
	if err != nil {
		return flatblog.Document{}, err
	}
	i, ok := index[docPath]
	if !ok {
		return flatblog.Document{}, flatblog.ErrNotFound
	}
	return docs[i], nil
}

func (s *Store) fresh() bool {
	if !s.loaded {
		return false
	}
	if !s.autoReload {
		return true
	}
	return s.watcher != nil && !s.dirty.Load()
}

// ensureLoaded returns the current snapshot after rescanning if needed.
// It tries a read lock first; only takes a write lock if a rescan is needed.
// Snapshots are replaced, never modified, so they stay valid after unlocking.
func (s *Store) ensureLoaded() ([]flatblog.Document, map[string]int, error) {
	s.mu.RLock()
	if s.fresh() {
		docs, index := s.docs, s.index
		s.mu.RUnlock()
		return docs, index, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fresh() {
		if err := s.scan(); err != nil {
			return nil, nil, err
		}
	}
	return s.docs, s.index, nil
}

// scan walks the root and rebuilds the snapshot, reusing entries whose file
// is unchanged. Must be called with mu held for writing.
func (s *Store) scan() error {
	// Cleared first so changes reported during the walk trigger another scan.
	s.dirty.Store(false)

	seen := make(map[string]entry, len(s.entries))
	err := filepath.WalkDir(s.root, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			if file != s.root && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), s.ext) {
			return nil
		}
		docPath := s.documentPath(file)
		if docPath == "" {
			return nil
		}
		info, err := os.Stat(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if e, ok := s.entries[docPath]; ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
			seen[docPath] = e
			return nil
		}
		doc, err := s.parseFile(file, docPath)
		if err != nil {
			s.logger.Warn("skipping document", "file", file, "err", err)
			return nil
		}
		doc.ModTime = info.ModTime()
		seen[docPath] = entry{modTime: info.ModTime(), size: info.Size(), doc: doc}
		return nil
	})
	if err != nil {
		return fmt.Errorf("content: scan %s: %w", s.root, err)
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	docs := make([]flatblog.Document, len(paths))
	index := make(map[string]int, len(paths))
	for i, p := range paths {
		docs[i] = seen[p].doc
		index[p] = i
	}

	if s.loaded && len(seen) != len(s.entries) {
		s.logger.Debug("content rescanned", "root", s.root, "documents", len(docs))
	}
	s.entries = seen
	s.docs = docs
	s.index = index
	s.loaded = true
	return nil
}

// documentPath maps a file under root to its slash-separated document path
// without extension.
func (s *Store) documentPath(file string) string {
	rel, err := filepath.Rel(s.root, file)
	if err != nil {
		return ""
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, s.ext))
}

func (s *Store) parseFile(file, docPath string) (flatblog.Document, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return flatblog.Document{}, err
	}
	return parseDocument(docPath, src, s.renderer)
}
