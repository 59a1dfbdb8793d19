package zipcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	idx := newTestIndex(t,
		ZipRecord{"Worcester", "01602"},
		ZipRecord{"Worcester", "01603"},
		ZipRecord{"Boston", "02108"},
	)

	cases := []struct {
		query string
		zips  []string
		found bool
	}{
		{"Worcester", []string{"01602", "01603"}, true},
		{"Boston", []string{"02108"}, true},
		{"Cambridge", []string{}, false},
		{"worcester", []string{}, false},
		{" Worcester", []string{}, false},
		{"Worcester ", []string{}, false},
		{"", []string{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			zips, found := idx.Lookup(tc.query)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.zips, zips)

			scanZips, scanFound := idx.LookupScan(tc.query)
			assert.Equal(t, found, scanFound)
			assert.Equal(t, zips, scanZips)
		})
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	idx := newTestIndex(t, ZipRecord{"Boston", "02108"})

	zips, _ := idx.Lookup("Boston")
	zips[0] = "changed"

	again, _ := idx.Lookup("Boston")
	assert.Equal(t, []string{"02108"}, again)
}

func TestCities(t *testing.T) {
	idx := newTestIndex(t,
		ZipRecord{"Worcester", "01602"},
		ZipRecord{"Boston", "02108"},
		ZipRecord{"Worcester", "01603"},
		ZipRecord{"Amherst", "01002"},
	)
	assert.Equal(t, []string{"Amherst", "Boston", "Worcester"}, idx.Cities())
}
