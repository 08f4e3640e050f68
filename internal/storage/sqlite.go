// ABOUTME: SQLite storage implementation for the timeline dataset slot
// ABOUTME: Provides local-only persistence using pure Go SQLite driver

package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/harper/officetime/internal/models"
	_ "modernc.org/sqlite"
)

// datasetSlot is the fixed key of the single overwritable dataset record.
const datasetSlot = "current"

// officeKey is the settings key holding the configured office document.
const officeKey = "office"

// SQLiteDB implements Repository with a local SQLite database.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

// Compile-time check that SQLiteDB implements Repository.
var _ Repository = (*SQLiteDB)(nil)

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "officetime", "officetime.db")
}

// NewSQLiteDB creates a new SQLite database at the given path.
// Creates the directory and database file if they don't exist.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteDB{db: db, path: path}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// migrate creates or updates the database schema.
func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS datasets (
			id TEXT PRIMARY KEY,
			upload_id TEXT NOT NULL,
			file_name TEXT NOT NULL,
			uploaded_at DATETIME NOT NULL,
			record_count INTEGER NOT NULL,
			data BLOB NOT NULL
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Reset clears all data from the database.
func (s *SQLiteDB) Reset() error {
	_, err := s.db.Exec("DELETE FROM datasets; DELETE FROM settings;")
	return err
}

// SaveDataset writes the dataset into the single slot, replacing any
// previous upload. The raw document bytes are stored verbatim.
func (s *SQLiteDB) SaveDataset(ds *models.Dataset) error {
	_, err := s.db.Exec(
		`INSERT INTO datasets (id, upload_id, file_name, uploaded_at, record_count, data)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   upload_id = excluded.upload_id,
		   file_name = excluded.file_name,
		   uploaded_at = excluded.uploaded_at,
		   record_count = excluded.record_count,
		   data = excluded.data`,
		datasetSlot, ds.UploadID.String(), ds.FileName, ds.UploadedAt, ds.RecordCount, ds.Data,
	)
	if err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	return nil
}

// GetDataset retrieves the stored dataset, or ErrNoDataset when the slot is empty.
func (s *SQLiteDB) GetDataset() (*models.Dataset, error) {
	row := s.db.QueryRow(
		`SELECT upload_id, file_name, uploaded_at, record_count, data
		 FROM datasets WHERE id = ?`,
		datasetSlot,
	)

	var ds models.Dataset
	var uploadIDStr string
	err := row.Scan(&uploadIDStr, &ds.FileName, &ds.UploadedAt, &ds.RecordCount, &ds.Data)
	if err == sql.ErrNoRows {
		return nil, ErrNoDataset
	}
	if err != nil {
		return nil, fmt.Errorf("scan dataset: %w", err)
	}
	ds.UploadID, _ = uuid.Parse(uploadIDStr)
	return &ds, nil
}

// DeleteDataset clears the dataset slot. Deleting an empty slot is not an error.
func (s *SQLiteDB) DeleteDataset() error {
	_, err := s.db.Exec("DELETE FROM datasets WHERE id = ?", datasetSlot)
	return err
}

// SaveOffice stores the office settings document, replacing any previous one.
func (s *SQLiteDB) SaveOffice(office *models.Office) error {
	data, err := json.Marshal(office)
	if err != nil {
		return fmt.Errorf("marshal office: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		officeKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("save office: %w", err)
	}
	return nil
}

// GetOffice retrieves the configured office, or ErrNotFound when unset.
func (s *SQLiteDB) GetOffice() (*models.Office, error) {
	row := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", officeKey)

	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan office: %w", err)
	}

	var office models.Office
	if err := json.Unmarshal([]byte(value), &office); err != nil {
		return nil, fmt.Errorf("unmarshal office: %w", err)
	}
	return &office, nil
}

// DeleteOffice clears the office settings.
func (s *SQLiteDB) DeleteOffice() error {
	_, err := s.db.Exec("DELETE FROM settings WHERE key = ?", officeKey)
	return err
}
