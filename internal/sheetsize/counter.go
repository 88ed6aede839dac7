package sheetsize

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"cadtools/internal/collection"
	"cadtools/internal/domain"
)

// Tally is a snapshot of per-format sheet counts. Every format, including
// domain.SheetSizeNonStandard, is always present.
type Tally struct {
	counts      map[domain.SheetSize]int
	SummaryA4   int
	TotalSheets int
	Documents   int
}

func newTally() *Tally {
	t := &Tally{counts: make(map[domain.SheetSize]int, len(AllSizes()))}
	for _, s := range AllSizes() {
		t.counts[s] = 0
	}
	return t
}

// Count returns the tally for s. The format set is closed and pre-seeded, so a
// missing key is a programming error and panics.
func (t *Tally) Count(s domain.SheetSize) int {
	n, ok := t.counts[s]
	if !ok {
		panic(fmt.Sprintf("sheetsize: no counter for format %v", s))
	}
	return n
}

func (t *Tally) increment(s domain.SheetSize) {
	if _, ok := t.counts[s]; !ok {
		panic(fmt.Sprintf("sheetsize: no counter for format %v", s))
	}
	t.counts[s]++
}

// Entries returns the non-zero formats in table order.
func (t *Tally) Entries() []domain.SheetSizeEntry {
	var out []domain.SheetSizeEntry
	for _, s := range AllSizes() {
		n := t.Count(s)
		if n == 0 {
			continue
		}
		out = append(out, domain.SheetSizeEntry{
			Size:         s,
			Height:       Height(s),
			Width:        Width(s),
			Count:        n,
			A4Equivalent: A4Equivalent(s) * n,
		})
	}
	return out
}

// String lists the non-zero formats, one "NAME: n" per line.
func (t *Tally) String() string {
	var b strings.Builder
	for _, e := range t.Entries() {
		fmt.Fprintf(&b, "%s: %d\n", e.Size, e.Count)
	}
	return b.String()
}

// Report snapshots the tally as a persistable report.
func (t *Tally) Report(id uuid.UUID, createdAt time.Time) *domain.SheetSizeReport {
	entries := t.Entries()
	if entries == nil {
		entries = []domain.SheetSizeEntry{}
	}
	return &domain.SheetSizeReport{
		ID:            id,
		DocumentCount: t.Documents,
		TotalSheets:   t.TotalSheets,
		SummaryA4:     t.SummaryA4,
		Entries:       entries,
		CreatedAt:     createdAt,
	}
}

// Option configures a Counter.
type Option func(*Counter)

// WithOnCounted registers a callback invoked synchronously after every count.
func WithOnCounted(fn func(*Tally)) Option {
	return func(c *Counter) {
		c.onCounted = fn
	}
}

// Counter tallies sheet formats across drawing documents.
type Counter struct {
	onCounted func(*Tally)
}

// NewCounter creates a Counter.
func NewCounter(opts ...Option) *Counter {
	c := &Counter{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Count recomputes a tally from scratch. Nil documents and nil sheets are skipped.
// Each sheet contributes its pre-classified format.
func (c *Counter) Count(drawings []domain.DrawingDocument) *Tally {
	t := newTally()
	for _, d := range drawings {
		if isNilDrawing(d) {
			continue
		}
		t.Documents++
		for _, sheet := range d.DrawingSheets() {
			if sheet == nil {
				continue
			}
			t.increment(sheet.Size)
			t.TotalSheets++
		}
	}
	for _, s := range AllSizes() {
		t.SummaryA4 += A4Equivalent(s) * t.Count(s)
	}
	if c.onCounted != nil {
		c.onCounted(t)
	}
	return t
}

// CountCollection counts the documents held by a collection. A nil collection
// yields an empty tally.
func CountCollection[T domain.DrawingDocument](c *Counter, docs *collection.Collection[T]) *Tally {
	values := docs.Values()
	drawings := make([]domain.DrawingDocument, 0, len(values))
	for _, v := range values {
		drawings = append(drawings, v)
	}
	return c.Count(drawings)
}

// isNilDrawing reports whether d is nil or an interface holding a nil value.
func isNilDrawing(d domain.DrawingDocument) bool {
	if d == nil {
		return true
	}
	rv := reflect.ValueOf(d)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
