package masterdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls  int
	tables Tables
	err    error
}

func (s *countingSource) Tables(ctx context.Context) (Tables, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.tables, nil
}

func TestResolver_KnownAndMissingIDs(t *testing.T) {
	tables := NewTables()
	tables.Set(CategoryBreed, 1, "Gir")
	tables.Set(CategoryLocation, 3, "North Shed")

	r := NewResolver(tables)

	assert.Equal(t, "Gir", r.BreedName(1))
	assert.Equal(t, "North Shed", r.LocationName(3))
	assert.Equal(t, "Breed #7", r.BreedName(7))
	assert.Equal(t, "Species #2", r.SpeciesName(2))
	assert.Equal(t, "Gender #0", r.GenderName(0))
	assert.Equal(t, "Color #-1", r.ColorName(-1))
}

func TestResolver_NilTablesStillResolves(t *testing.T) {
	r := NewResolver(nil)
	assert.Equal(t, "Location #4", r.LocationName(4))

	var nilResolver *TableResolver
	assert.Equal(t, "Breed #1", nilResolver.BreedName(1))
}

func TestTables_SetIgnoresUnknownCategory(t *testing.T) {
	tables := NewTables()
	tables.Set(Category("owner"), 1, "x")
	tables.Set(CategoryColor, 1, "  Red  ")

	assert.Equal(t, 1, tables.Len())
	assert.Equal(t, "Red", tables[CategoryColor][1])
}

func TestTables_CloneIsDeep(t *testing.T) {
	tables := NewTables()
	tables.Set(CategoryBreed, 1, "Gir")

	c := tables.Clone()
	c.Set(CategoryBreed, 1, "Sahiwal")

	assert.Equal(t, "Gir", tables[CategoryBreed][1])
	assert.Equal(t, "Sahiwal", c[CategoryBreed][1])
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" Breed ")
	require.True(t, ok)
	assert.Equal(t, CategoryBreed, c)

	_, ok = ParseCategory("owner")
	assert.False(t, ok)
}

func TestCachedSource_MemoizesUntilInvalidated(t *testing.T) {
	tables := NewTables()
	tables.Set(CategoryBreed, 1, "Gir")
	src := &countingSource{tables: tables}

	c, err := NewCachedSource(src, time.Minute)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := c.Tables(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Gir", got[CategoryBreed][1])
	}
	assert.Equal(t, 1, src.calls)

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)

	c.Invalidate()
	_, err = c.Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	src := &countingSource{err: errors.New("upstream down")}
	c, err := NewCachedSource(src, time.Minute)
	require.NoError(t, err)

	_, err = c.Tables(context.Background())
	require.Error(t, err)

	src.err = nil
	src.tables = NewTables()
	got, err := c.Tables(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, 2, src.calls)
}

func TestNewCachedSource_RequiresSource(t *testing.T) {
	_, err := NewCachedSource(nil, time.Minute)
	assert.ErrorIs(t, err, ErrSourceRequired)
}
