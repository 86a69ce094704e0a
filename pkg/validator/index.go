// Package validator decides pass/fail for individual documents and keeps
// the run-wide index that makes cross-document checks (reference
// resolution, duplicate IDs) possible.
package validator

import "sync"

// Occurrence records one document observed under a (type, id) pair.
type Occurrence struct {
	Type  string
	ID    string
	Path  string
	Title string
}

// DocumentIndex is the run-scoped directory of known documents. It records
// every insertion per (type, id) key, not just the last writer, so the
// duplicate pass can enumerate all occurrences while reference resolution
// reads the newest one. A single mutex serializes writers; readers never
// observe a partially written entry.
//
// The index is a capability passed into workers, never ambient state.
type DocumentIndex struct {
	mu     sync.RWMutex
	byType map[string]map[string][]Occurrence
}

// NewDocumentIndex creates an empty index.
func NewDocumentIndex() *DocumentIndex {
	return &DocumentIndex{byType: make(map[string]map[string][]Occurrence)}
}

// Insert records a document occurrence.
func (x *DocumentIndex) Insert(o Occurrence) {
	x.mu.Lock()
	defer x.mu.Unlock()

	byID, ok := x.byType[o.Type]
	if !ok {
		byID = make(map[string][]Occurrence)
		x.byType[o.Type] = byID
	}
	byID[o.ID] = append(byID[o.ID], o)
}

// Resolve looks up the newest occurrence for a (type, id) pair.
func (x *DocumentIndex) Resolve(docType, id string) (Occurrence, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	occs := x.byType[docType][id]
	if len(occs) == 0 {
		return Occurrence{}, false
	}
	return occs[len(occs)-1], true
}

// ByID groups every recorded occurrence by document ID, across types.
// The duplicate pass consumes this after all insertions are done.
func (x *DocumentIndex) ByID() map[string][]Occurrence {
	x.mu.RLock()
	defer x.mu.RUnlock()

	out := make(map[string][]Occurrence)
	for _, byID := range x.byType {
		for id, occs := range byID {
			out[id] = append(out[id], occs...)
		}
	}
	return out
}

// Len returns the number of recorded occurrences.
func (x *DocumentIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()

	n := 0
	for _, byID := range x.byType {
		for _, occs := range byID {
			n += len(occs)
		}
	}
	return n
}
