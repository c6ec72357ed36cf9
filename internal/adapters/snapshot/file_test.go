package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cattle-records/internal/domain/masterdata"
	"cattle-records/internal/domain/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const herdYAML = `
masterData:
  breed:
    1: Gir
    2: Jersey
  location:
    3: North Pasture
  feed:
    1: Hay
records:
  - name: Bessie
    uniqueId: COW-001
    breedId: 2
    locationId: 3
    weight: 450
    dateOfBirth: 2020-04-01T00:00:00Z
    healthStatus: Healthy
    isActive: true
  - name: Daisy
    uniqueId: COW-002
    breedId: 1
    isActive: false
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_YAML(t *testing.T) {
	src := NewFileSource(writeFile(t, "herd.yaml", herdYAML))
	ctx := context.Background()

	recs, err := src.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Bessie", recs[0].Name)
	require.NotNil(t, recs[0].Weight)
	assert.Equal(t, 450.0, *recs[0].Weight)
	require.NotNil(t, recs[0].DateOfBirth)
	assert.Equal(t, 2020, recs[0].DateOfBirth.Year())
	assert.Nil(t, recs[1].Weight)

	tables, err := src.Tables(ctx)
	require.NoError(t, err)
	r := masterdata.NewResolver(tables)
	assert.Equal(t, "Jersey", r.BreedName(2))
	assert.Equal(t, "North Pasture", r.LocationName(3))
	assert.Equal(t, 3, tables.Len(), "unknown categories are dropped")
}

func TestFileSource_WatchReloadsOnChange(t *testing.T) {
	path := writeFile(t, "herd.yaml", herdYAML)
	src := NewFileSource(path)
	require.NoError(t, src.Watch())
	t.Cleanup(func() { _ = src.Close() })

	recs, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	require.NoError(t, os.WriteFile(path, []byte("records: []\n"), 0o644))

	assert.Eventually(t, func() bool {
		recs, err := src.Snapshot(context.Background())
		return err == nil && len(recs) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFileSource_WithoutWatchReadsOnce(t *testing.T) {
	path := writeFile(t, "herd.yaml", herdYAML)
	src := NewFileSource(path)

	recs, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	require.NoError(t, os.WriteFile(path, []byte("records: []\n"), 0o644))

	recs, err = src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.NoError(t, src.Close(), "close without watcher is a no-op")
}

func TestFileSource_WatchMissingDir(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope", "herd.yaml"))
	assert.Error(t, src.Watch())
}

func TestFileSource_Errors(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.yaml")).Snapshot(context.Background())
	assert.Error(t, err)

	_, err = NewFileSource(writeFile(t, "bad.yaml", "records: [\n")).Snapshot(context.Background())
	assert.ErrorContains(t, err, "parse snapshot")
}

func TestWriteRead_JSONAndYAML(t *testing.T) {
	w := 380.5
	tables := masterdata.NewTables()
	tables.Set(masterdata.CategoryBreed, 1, "Gir")
	doc := NewDocument(tables, []records.Record{{Name: "Daisy", UniqueID: "COW-2", BreedID: 1, Weight: &w}})

	for _, name := range []string{"out/herd.yaml", "out/herd.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Write(path, doc))

			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, "Gir", masterdata.NewResolver(got.Tables()).BreedName(1))
			require.Len(t, got.Records, 1)
			assert.Equal(t, 380.5, *got.Records[0].Weight)
		})
	}
}
