package zipcode

import (
	"iter"
	"slices"
)

// span is the half open range of a city's records in the sorted slice.
type span struct {
	start, end int
}

// Index is the finalized, city ordered collection. It is never modified
// after construction and Lookup has no side effects.
type Index struct {
	records []ZipRecord
	cities  map[string]span
}

func newIndex(sorted []ZipRecord) *Index {
	cities := make(map[string]span)
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j].City == sorted[i].City {
			j++
		}
		cities[sorted[i].City] = span{start: i, end: j}
		i = j
	}
	return &Index{
		records: sorted,
		cities:  cities,
	}
}

// Lookup returns every zip whose city equals city exactly, in finalized order.
func (idx *Index) Lookup(city string) ([]string, bool) {
	sp, ok := idx.cities[city]
	if !ok {
		return []string{}, false
	}
	zips := make([]string, 0, sp.end-sp.start)
	for _, r := range idx.records[sp.start:sp.end] {
		zips = append(zips, r.Zip)
	}
	return zips, true
}

// LookupScan is Lookup done as a full linear scan, without the city map.
func (idx *Index) LookupScan(city string) ([]string, bool) {
	zips := []string{}
	for _, r := range idx.records {
		if r.City == city {
			zips = append(zips, r.Zip)
		}
	}
	return zips, len(zips) > 0
}

func (idx *Index) Len() int {
	return len(idx.records)
}

// Records yields all records in finalized order.
func (idx *Index) Records() iter.Seq[ZipRecord] {
	return slices.Values(idx.records)
}

// Cities returns the distinct city names in finalized order.
func (idx *Index) Cities() []string {
	cities := make([]string, 0, len(idx.cities))
	for i := 0; i < len(idx.records); i = idx.cities[idx.records[i].City].end {
		cities = append(cities, idx.records[i].City)
	}
	return cities
}
