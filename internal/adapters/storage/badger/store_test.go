package badger

import (
	"context"
	"testing"

	"cattle-records/internal/domain/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *LayoutStore {
	t.Helper()
	s, err := Open("", true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLayoutStore_NotFound(t *testing.T) {
	s := newMemoryStore(t)

	_, err := s.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, layout.ErrNotFound)
}

func TestLayoutStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	cols, _ := layout.Toggle(layout.DefaultColumns(), "color")
	blob, err := layout.Encode(cols)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "u1", blob))
	got, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, layout.SchemaVersion, got.Version)

	decoded, err := layout.Decode(got)
	require.NoError(t, err)
	assert.Equal(t, cols, decoded)

	_, err = s.Load(ctx, "u2")
	assert.ErrorIs(t, err, layout.ErrNotFound)
}

func TestLayoutStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(dir, false, nil)
	require.NoError(t, err)
	blob, _ := layout.Encode(layout.DefaultColumns())
	require.NoError(t, s.Save(ctx, "u1", blob))
	require.NoError(t, s.Close())

	s, err = Open(dir, false, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestManagerOverBadger(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	m := layout.NewManager(s, "u1")
	_, outcome := m.Load(ctx)
	require.Equal(t, layout.LoadNotFound, outcome)
	m.Reorder(ctx, "name", "uniqueId")

	cols, outcome := layout.NewManager(s, "u1").Load(ctx)
	assert.Equal(t, layout.LoadRestored, outcome)
	assert.Equal(t, "name", layout.VisibleOrdered(cols)[0].Key)
}
