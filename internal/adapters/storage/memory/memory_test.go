package memory

import (
	"context"
	"testing"
	"time"

	"cattle-records/internal/domain/layout"
	"cattle-records/internal/domain/masterdata"
	"cattle-records/internal/domain/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutStore_RoundTripAndIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewLayoutStore()

	_, err := s.Load(ctx, "u1")
	require.ErrorIs(t, err, layout.ErrNotFound)

	blob, err := layout.Encode(layout.DefaultColumns())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "u1", blob))

	got, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	got.Columns[0] = 'X'
	again, _ := s.Load(ctx, "u1")
	assert.Equal(t, blob.Columns, again.Columns, "stored bytes must not alias")
}

func TestRecordSource_SnapshotIsCopy(t *testing.T) {
	src := NewRecordSource([]records.Record{{Name: "Bessie"}})

	snap, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	snap[0].Name = "mutated"

	again, _ := src.Snapshot(context.Background())
	assert.Equal(t, "Bessie", again[0].Name)

	src.Replace(nil)
	again, _ = src.Snapshot(context.Background())
	assert.Empty(t, again)
}

func TestMasterDataSource(t *testing.T) {
	src := NewMasterDataSource(nil)
	src.Set(masterdata.CategoryBreed, 1, "Gir")

	tables, err := src.Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Gir", masterdata.NewResolver(tables).BreedName(1))
}

func TestSampleHerd(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := SampleHerd(25, now, 42)
	b := SampleHerd(25, now, 42)

	require.Len(t, a, 25)
	seen := map[string]bool{}
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name, "same seed, same content")
		assert.NotEqual(t, a[i].UniqueID, b[i].UniqueID)
		assert.False(t, seen[a[i].UniqueID])
		seen[a[i].UniqueID] = true

		if a[i].DateOfBirth != nil {
			assert.False(t, a[i].DateOfBirth.After(now))
		}
	}

	res := masterdata.NewResolver(SampleTables())
	assert.NotContains(t, res.BreedName(a[0].BreedID), "#", "sample ids resolve")
}
