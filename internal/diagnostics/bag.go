package diagnostics

import (
	"sync"

	"golang.org/x/exp/slices"
)

// Bag accumulates diagnostics keyed by absolute file path. It is safe for
// concurrent use; entries are only ever appended. An identical diagnostic
// (same file, span, code and message) is stored once.
type Bag struct {
	mu     sync.Mutex
	byFile map[string][]*DiagnosticError
	seen   map[string]bool
	count  int
}

func NewBag() *Bag {
	return &Bag{
		byFile: make(map[string][]*DiagnosticError),
		seen:   make(map[string]bool),
	}
}

// Add appends d unless an identical diagnostic is already present.
func (b *Bag) Add(d *DiagnosticError) {
	if d == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	key := d.Key()
	if b.seen[key] {
		return
	}
	b.seen[key] = true
	b.byFile[d.File] = append(b.byFile[d.File], d)
	b.count++
}

// Merge appends every diagnostic of other.
func (b *Bag) Merge(other *Bag) {
	if other == nil || other == b {
		return
	}
	for _, d := range other.All() {
		b.Add(d)
	}
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func (b *Bag) HasErrors() bool {
	return b.Len() > 0
}

// ForFile returns the diagnostics of one file in source order.
func (b *Bag) ForFile(path string) []*DiagnosticError {
	b.mu.Lock()
	out := slices.Clone(b.byFile[path])
	b.mu.Unlock()
	sortDiagnostics(out)
	return out
}

// Files lists every path with at least one diagnostic, sorted.
func (b *Bag) Files() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	files := make([]string, 0, len(b.byFile))
	for f := range b.byFile {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

// All returns every diagnostic sorted by file, then position, then code.
func (b *Bag) All() []*DiagnosticError {
	b.mu.Lock()
	out := make([]*DiagnosticError, 0, b.count)
	for _, ds := range b.byFile {
		out = append(out, ds...)
	}
	b.mu.Unlock()
	sortDiagnostics(out)
	return out
}

func sortDiagnostics(ds []*DiagnosticError) {
	slices.SortStableFunc(ds, func(a, b *DiagnosticError) int {
		switch {
		case a.File != b.File:
			return compareStrings(a.File, b.File)
		case a.Span.Start != b.Span.Start:
			return a.Span.Start - b.Span.Start
		case a.Span.Stop != b.Span.Stop:
			return a.Span.Stop - b.Span.Stop
		case a.Code != b.Code:
			return compareStrings(string(a.Code), string(b.Code))
		default:
			return compareStrings(a.Message, b.Message)
		}
	})
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
