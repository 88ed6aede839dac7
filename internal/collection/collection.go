// Package collection provides a sorted, duplicate-free document collection
// keyed by each document's full file path.
package collection

import (
	"iter"
	"reflect"
	"slices"
	"strings"

	"cadtools/internal/domain"
)

// Documents is the capability set exposed to callers that only query or mutate
// a document collection.
type Documents[T domain.Document] interface {
	Add(doc T) bool
	Contains(key string) bool
	ContainsDocument(doc T) bool
	Get(key string) (T, bool)
	At(i int) (T, bool)
	Remove(key string) bool
	RemoveAt(i int) bool
	FindByName(text string) (T, bool)
	FilterByType(types ...domain.DocumentType) *Collection[T]
	FileNames() []string
	Len() int
}

type entry[T domain.Document] struct {
	key string
	doc T
}

// Collection keeps documents in ascending byte-wise order of their full path.
// Positional access reflects the current order and is invalidated by any mutation.
// A Collection is not safe for concurrent mutation.
type Collection[T domain.Document] struct {
	entries []entry[T]
}

var _ Documents[domain.Document] = (*Collection[domain.Document])(nil)

// New creates an empty collection.
func New[T domain.Document]() *Collection[T] {
	return &Collection[T]{}
}

// From copies src. A nil source yields an empty collection.
func From[T domain.Document](src *Collection[T]) *Collection[T] {
	if src == nil {
		return New[T]()
	}
	return &Collection[T]{entries: slices.Clone(src.entries)}
}

// Of builds a collection from docs, skipping nil documents and duplicate keys.
func Of[T domain.Document](docs ...T) *Collection[T] {
	c := New[T]()
	for _, doc := range docs {
		c.Add(doc)
	}
	return c
}

func (c *Collection[T]) search(key string) (int, bool) {
	return slices.BinarySearchFunc(c.entries, key, func(e entry[T], k string) int {
		return strings.Compare(e.key, k)
	})
}

// Add inserts doc under its full path. An existing key is left untouched and
// Add reports false; nil documents and a nil collection are ignored.
func (c *Collection[T]) Add(doc T) bool {
	if c == nil || isNil(doc) {
		return false
	}
	key := doc.FullFileName()
	i, found := c.search(key)
	if found {
		return false
	}
	c.entries = slices.Insert(c.entries, i, entry[T]{key: key, doc: doc})
	return true
}

// Contains reports whether key is present. An empty key is never present.
func (c *Collection[T]) Contains(key string) bool {
	if c == nil || key == "" {
		return false
	}
	_, found := c.search(key)
	return found
}

// ContainsDocument reports whether a document with doc's full path is present.
func (c *Collection[T]) ContainsDocument(doc T) bool {
	if isNil(doc) {
		return false
	}
	return c.Contains(doc.FullFileName())
}

// Get returns the document stored under key.
func (c *Collection[T]) Get(key string) (T, bool) {
	var zero T
	if c == nil || key == "" {
		return zero, false
	}
	i, found := c.search(key)
	if !found {
		return zero, false
	}
	return c.entries[i].doc, true
}

// At returns the document at position i of the current order.
// Out-of-range positions return the zero value and false.
func (c *Collection[T]) At(i int) (T, bool) {
	var zero T
	if c == nil || i < 0 || i >= len(c.entries) {
		return zero, false
	}
	return c.entries[i].doc, true
}

// IndexOf returns the current position of key, or -1.
func (c *Collection[T]) IndexOf(key string) int {
	if c == nil || key == "" {
		return -1
	}
	i, found := c.search(key)
	if !found {
		return -1
	}
	return i
}

// Remove deletes the document stored under key.
func (c *Collection[T]) Remove(key string) bool {
	i := c.IndexOf(key)
	if i < 0 {
		return false
	}
	c.entries = slices.Delete(c.entries, i, i+1)
	return true
}

// RemoveDocument deletes the document stored under doc's full path.
func (c *Collection[T]) RemoveDocument(doc T) bool {
	if isNil(doc) {
		return false
	}
	return c.Remove(doc.FullFileName())
}

// RemoveAt deletes the document at position i of the current order.
func (c *Collection[T]) RemoveAt(i int) bool {
	if c == nil || i < 0 || i >= len(c.entries) {
		return false
	}
	c.entries = slices.Delete(c.entries, i, i+1)
	return true
}

// FindByName returns the first document, in order, whose full path contains
// text case-insensitively.
func (c *Collection[T]) FindByName(text string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	needle := strings.ToLower(text)
	for _, e := range c.entries {
		if strings.Contains(strings.ToLower(e.key), needle) {
			return e.doc, true
		}
	}
	return zero, false
}

// FullFileName resolves a full or partial name to the stored full path, or "".
func (c *Collection[T]) FullFileName(text string) string {
	doc, ok := c.FindByName(text)
	if !ok {
		return ""
	}
	return doc.FullFileName()
}

// FilterByType returns a new collection holding the documents whose type is in types.
func (c *Collection[T]) FilterByType(types ...domain.DocumentType) *Collection[T] {
	out := New[T]()
	if c == nil {
		return out
	}
	for _, e := range c.entries {
		if e.doc.DocumentType().In(types...) {
			// entries are already ordered, so appending keeps the invariant
			out.entries = append(out.entries, e)
		}
	}
	return out
}

// FileNames returns the base file name of every document in order.
func (c *Collection[T]) FileNames() []string {
	if c == nil {
		return []string{}
	}
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = domain.BaseName(e.key)
	}
	return names
}

// Keys returns the full paths in order.
func (c *Collection[T]) Keys() []string {
	if c == nil {
		return []string{}
	}
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.key
	}
	return keys
}

// Values returns the documents in order.
func (c *Collection[T]) Values() []T {
	if c == nil {
		return []T{}
	}
	values := make([]T, len(c.entries))
	for i, e := range c.entries {
		values[i] = e.doc
	}
	return values
}

// All iterates over full paths and documents in order.
func (c *Collection[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		if c == nil {
			return
		}
		for _, e := range c.entries {
			if !yield(e.key, e.doc) {
				return
			}
		}
	}
}

// Len returns the number of documents.
func (c *Collection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Clear removes every document.
func (c *Collection[T]) Clear() {
	if c == nil {
		return
	}
	c.entries = nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
