// ABOUTME: Tests for SQLite dataset and office persistence
// ABOUTME: Verifies the single-slot overwrite semantics and settings round-trips

package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/harper/officetime/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "officetime.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDatasetRoundTrip(t *testing.T) {
	db := newTestDB(t)

	raw := []byte(`{"locations": [{"timestampMs": 1389121315470}]}`)
	ds := models.NewDataset("Records.json", 1, raw)

	require.NoError(t, db.SaveDataset(ds))

	got, err := db.GetDataset()
	require.NoError(t, err)
	assert.Equal(t, ds.UploadID, got.UploadID)
	assert.Equal(t, "Records.json", got.FileName)
	assert.Equal(t, 1, got.RecordCount)
	assert.Equal(t, raw, got.Data, "raw document must be stored byte-for-byte")
}

func TestDatasetSlotOverwrites(t *testing.T) {
	db := newTestDB(t)

	first := models.NewDataset("old.json", 5, []byte(`[1]`))
	second := models.NewDataset("new.json", 9, []byte(`[2]`))

	require.NoError(t, db.SaveDataset(first))
	require.NoError(t, db.SaveDataset(second))

	got, err := db.GetDataset()
	require.NoError(t, err)
	assert.Equal(t, "new.json", got.FileName, "second save must replace the slot")
	assert.Equal(t, second.UploadID, got.UploadID)
}

func TestGetDatasetEmpty(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetDataset()
	assert.True(t, errors.Is(err, ErrNoDataset))
}

func TestDeleteDataset(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.SaveDataset(models.NewDataset("a.json", 0, []byte(`[]`))))
	require.NoError(t, db.DeleteDataset())

	_, err := db.GetDataset()
	assert.True(t, errors.Is(err, ErrNoDataset))

	// Deleting an empty slot is fine.
	require.NoError(t, db.DeleteDataset())
}

func TestOfficeRoundTrip(t *testing.T) {
	db := newTestDB(t)

	office := models.NewOffice("HQ", "233 S Wacker Dr, Chicago", 41.8789, -87.6359, 150)
	require.NoError(t, db.SaveOffice(office))

	got, err := db.GetOffice()
	require.NoError(t, err)
	assert.Equal(t, "HQ", got.Name)
	assert.Equal(t, 41.8789, got.Lat)
	assert.Equal(t, 150.0, got.RadiusMeters)
}

func TestOfficeOverwrite(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.SaveOffice(models.NewOffice("Old", "", 1, 2, 100)))
	require.NoError(t, db.SaveOffice(models.NewOffice("New", "", 3, 4, 200)))

	got, err := db.GetOffice()
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
}

func TestGetOfficeUnset(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetOffice()
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteOffice(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.SaveOffice(models.NewOffice("HQ", "", 1, 2, 100)))
	require.NoError(t, db.DeleteOffice())

	_, err := db.GetOffice()
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestReset(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.SaveDataset(models.NewDataset("a.json", 0, []byte(`[]`))))
	require.NoError(t, db.SaveOffice(models.NewOffice("HQ", "", 1, 2, 100)))
	require.NoError(t, db.Reset())

	_, err := db.GetDataset()
	assert.True(t, errors.Is(err, ErrNoDataset))
	_, err = db.GetOffice()
	assert.True(t, errors.Is(err, ErrNotFound))
}
