// ABOUTME: Tests for push/pull sync between two repositories
// ABOUTME: Uses two SQLite databases standing in for local and cloud stores

package sync

import (
	"path/filepath"
	"testing"

	"github.com/harper/officetime/internal/models"
	"github.com/harper/officetime/internal/storage"
	"github.com/harper/officetime/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepos(t *testing.T) (local, remote storage.Repository) {
	t.Helper()
	dir := t.TempDir()

	l, err := storage.NewSQLiteDB(filepath.Join(dir, "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	r, err := storage.NewSQLiteDB(filepath.Join(dir, "remote.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	return l, r
}

func TestPushDatasetAndOffice(t *testing.T) {
	local, remote := testRepos(t)

	data := []byte(`[{"startTime":"2024-03-01T09:00:00Z"}]`)
	require.NoError(t, local.SaveDataset(models.NewDataset("march.json", 1, data)))
	require.NoError(t, local.SaveOffice(models.NewOffice("HQ", "123 Main St", 37.0, -122.0, 100)))

	res, err := NewSyncer(local, remote).Push()
	require.NoError(t, err)
	assert.True(t, res.DatasetPushed)
	assert.True(t, res.OfficePushed)

	ds, err := remote.GetDataset()
	require.NoError(t, err)
	assert.Equal(t, "march.json", ds.FileName)
	assert.Equal(t, data, ds.Data)

	office, err := remote.GetOffice()
	require.NoError(t, err)
	assert.Equal(t, "HQ", office.Name)
}

func TestPushNothingToPush(t *testing.T) {
	local, remote := testRepos(t)

	res, err := NewSyncer(local, remote).Push()
	require.NoError(t, err)
	assert.False(t, res.DatasetPushed)
	assert.False(t, res.OfficePushed)
}

func TestPullMergesRecords(t *testing.T) {
	local, remote := testRepos(t)

	localData := []byte(`[
		{"startTime":"2024-03-01T09:00:00Z","v":"local"},
		{"startTime":"2024-03-02T09:00:00Z"}
	]`)
	remoteData := []byte(`[
		{"startTime":"2024-03-01T09:00:00Z","v":"remote"},
		{"startTime":"2024-03-03T09:00:00Z"}
	]`)
	require.NoError(t, local.SaveDataset(models.NewDataset("local.json", 2, localData)))
	require.NoError(t, remote.SaveDataset(models.NewDataset("remote.json", 2, remoteData)))

	res, err := NewSyncer(local, remote).Pull()
	require.NoError(t, err)
	assert.Equal(t, 2, res.RecordsBefore)
	assert.Equal(t, 3, res.RecordsAfter)

	ds, err := local.GetDataset()
	require.NoError(t, err)
	assert.Equal(t, 3, ds.RecordCount)

	recs, err := timeline.Parse(ds.Data)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// Remote record wins the 2024-03-01 collision.
	var found bool
	for _, rec := range recs {
		if timeline.Timestamp(rec) == "2024-03-01T09:00:00Z" {
			assert.Equal(t, "remote", rec.Fields["v"])
			found = true
		}
	}
	assert.True(t, found)
}

func TestPullEmptyLocal(t *testing.T) {
	local, remote := testRepos(t)

	remoteData := []byte(`[{"startTime":"2024-03-01T09:00:00Z"}]`)
	require.NoError(t, remote.SaveDataset(models.NewDataset("remote.json", 1, remoteData)))
	require.NoError(t, remote.SaveOffice(models.NewOffice("HQ", "", 37.0, -122.0, 100)))

	res, err := NewSyncer(local, remote).Pull()
	require.NoError(t, err)
	assert.Equal(t, 0, res.RecordsBefore)
	assert.Equal(t, 1, res.RecordsAfter)
	assert.True(t, res.OfficePulled)

	office, err := local.GetOffice()
	require.NoError(t, err)
	assert.Equal(t, "HQ", office.Name)
}

func TestPullEmptyRemote(t *testing.T) {
	local, remote := testRepos(t)

	res, err := NewSyncer(local, remote).Pull()
	require.NoError(t, err)
	assert.Equal(t, 0, res.RecordsAfter)
	assert.False(t, res.OfficePulled)
}
