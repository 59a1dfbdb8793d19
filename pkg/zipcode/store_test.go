package zipcode

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T, records ...ZipRecord) *Index {
	t.Helper()
	s := NewStore(len(records))
	for _, r := range records {
		require.NoError(t, s.Insert(r))
	}
	return s.Finalize()
}

func TestFinalizeOrdersByCity(t *testing.T) {
	idx := newTestIndex(t,
		ZipRecord{"worcester", "00001"},
		ZipRecord{"Worcester", "01602"},
		ZipRecord{"Boston", "02108"},
		ZipRecord{"Amherst", "01002"},
		ZipRecord{"Boston", "02109"},
	)

	records := slices.Collect(idx.Records())
	require.Len(t, records, 5)
	for i := 1; i < len(records); i++ {
		assert.LessOrEqual(t, strings.Compare(records[i-1].City, records[i].City), 0)
	}
	// byte order puts upper case before lower case
	assert.Equal(t, "Worcester", records[3].City)
	assert.Equal(t, "worcester", records[4].City)
}

func TestFinalizeIsStable(t *testing.T) {
	idx := newTestIndex(t,
		ZipRecord{"Worcester", "01609"},
		ZipRecord{"Boston", "02108"},
		ZipRecord{"Worcester", "01602"},
		ZipRecord{"Worcester", "01605"},
	)

	zips, found := idx.Lookup("Worcester")
	assert.True(t, found)
	assert.Equal(t, []string{"01609", "01602", "01605"}, zips)
}

func TestFinalizeIsIdempotent(t *testing.T) {
	s := NewStore(0)
	require.NoError(t, s.Insert(ZipRecord{"Boston", "02108"}))
	first := s.Finalize()
	second := s.Finalize()
	assert.Same(t, first, second)
	assert.True(t, s.Finalized())
}

func TestInsertAfterFinalize(t *testing.T) {
	s := NewStore(0)
	require.NoError(t, s.Insert(ZipRecord{"Boston", "02108"}))
	s.Finalize()

	assert.ErrorIs(t, s.Insert(ZipRecord{"Boston", "02109"}), ErrFinalized)
	assert.Equal(t, 1, s.Len())
}

func TestInsertKeepsDuplicates(t *testing.T) {
	idx := newTestIndex(t,
		ZipRecord{"Boston", "02108"},
		ZipRecord{"Boston", "02108"},
	)
	zips, _ := idx.Lookup("Boston")
	assert.Equal(t, []string{"02108", "02108"}, zips)
}

func TestEmptyStore(t *testing.T) {
	idx := NewStore(0).Finalize()
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Cities())

	zips, found := idx.Lookup("Boston")
	assert.False(t, found)
	assert.Empty(t, zips)
}
