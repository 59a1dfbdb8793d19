package zipcode

import (
	"errors"
	"slices"
	"strings"
)

// ErrFinalized is returned by Insert once the store has been finalized.
var ErrFinalized = errors.New("zip code store is finalized")

// Store collects records during load. Nothing is ordered until Finalize.
type Store struct {
	records []ZipRecord
	index   *Index
}

func NewStore(sizeHint int) *Store {
	return &Store{
		records: make([]ZipRecord, 0, max(sizeHint, 0)),
	}
}

func (s *Store) Insert(r ZipRecord) error {
	if s.index != nil {
		return ErrFinalized
	}
	s.records = append(s.records, r)
	return nil
}

func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) Finalized() bool {
	return s.index != nil
}

// Finalize sorts the records by city, byte-wise and stable, and returns the
// read-only index. Later calls return the same index.
func (s *Store) Finalize() *Index {
	if s.index != nil {
		return s.index
	}
	slices.SortStableFunc(s.records, compareCity)
	s.index = newIndex(s.records)
	return s.index
}

func compareCity(a, b ZipRecord) int {
	return strings.Compare(a.City, b.City)
}
