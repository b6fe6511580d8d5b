// Package store holds parsed ZIP code records in memory.
package store

import (
	"cmp"
	"iter"
	"slices"

	"github.com/couchcryptid/zipcode-etl/internal/zipcode"
)

// Store is an ordered collection of records. New records go to the front.
//
// Records are kept in reverse iteration order so InsertFront is an append:
// the front of the store is the last element of items.
type Store struct {
	items []zipcode.Record
}

// New returns an empty store with room for sizeHint records.
func New(sizeHint int) *Store {
	return &Store{items: make([]zipcode.Record, 0, max(sizeHint, 0))}
}

// InsertFront places rec ahead of every record already in the store.
func (s *Store) InsertFront(rec zipcode.Record) {
	s.items = append(s.items, rec)
}

// Len returns the number of records held.
func (s *Store) Len() int { return len(s.items) }

// All iterates records front to back.
func (s *Store) All() iter.Seq[zipcode.Record] {
	return func(yield func(zipcode.Record) bool) {
		for i := len(s.items) - 1; i >= 0; i-- {
			if !yield(s.items[i]) {
				return
			}
		}
	}
}

// SortBy reorders the store so that key is ascending front to back.
// Records with equal keys keep no particular order.
func (s *Store) SortBy(key func(zipcode.Record) string) {
	// Descending in items is ascending in iteration order.
	slices.SortFunc(s.items, func(a, b zipcode.Record) int {
		return cmp.Compare(key(b), key(a))
	})
}

// Filter iterates, front to back, the records for which keep returns true.
// A nil keep yields every record.
func (s *Store) Filter(keep func(zipcode.Record) bool) iter.Seq[zipcode.Record] {
	if keep == nil {
		return s.All()
	}
	return func(yield func(zipcode.Record) bool) {
		for rec := range s.All() {
			if keep(rec) && !yield(rec) {
				return
			}
		}
	}
}

// City is the sort key for city-name ordering.
func City(r zipcode.Record) string { return r.City }
