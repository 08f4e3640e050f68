// ABOUTME: Export functionality for analysis results and data backups
// ABOUTME: Supports CSV visit reports and a YAML backup format

package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/officetime/internal/models"
	"gopkg.in/yaml.v3"
)

// BackupVersion is the current backup format version.
const BackupVersion = "1.0"

// csvTimeFormat matches the en-US long time style the report has always used.
const csvTimeFormat = "3:04:05 PM"

// ExportVisitsCSV renders visit summaries as a CSV report. Start and end
// times come from the underlying records' own startTime/endTime fields and
// fall back to N/A when a record carries neither.
func ExportVisitsCSV(summaries []models.VisitSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Day", "Start Time", "End Time", "Duration"}); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, s := range summaries {
		row := []string{
			s.Date.Format("1/2/2006"),
			s.Date.Weekday().String(),
			recordTime(s.FirstVisit.Record, "startTime"),
			recordTime(s.LastVisit.Record, "endTime"),
			models.FormatDuration(s.Duration),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// recordTime formats the named field of a raw record as a local clock time,
// or "N/A" when the field is absent or unparsable.
func recordTime(rec models.RawRecord, field string) string {
	s, ok := rec.Fields[field].(string)
	if !ok {
		return "N/A"
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return "N/A"
	}
	return t.Local().Format(csvTimeFormat)
}

// Backup represents the YAML backup format.
type Backup struct {
	Version    string         `yaml:"version"`
	ExportedAt time.Time      `yaml:"exported_at"`
	Tool       string         `yaml:"tool"`
	Office     *OfficeBackup  `yaml:"office,omitempty"`
	Dataset    *DatasetBackup `yaml:"dataset,omitempty"`
}

// OfficeBackup represents the office settings in the backup format.
type OfficeBackup struct {
	Name         string    `yaml:"name"`
	Address      string    `yaml:"address,omitempty"`
	Lat          float64   `yaml:"lat"`
	Lng          float64   `yaml:"lng"`
	RadiusMeters float64   `yaml:"radius_meters"`
	SavedAt      time.Time `yaml:"saved_at"`
}

// DatasetBackup wraps the raw timeline document and its metadata.
type DatasetBackup struct {
	UploadID    string    `yaml:"upload_id"`
	FileName    string    `yaml:"file_name"`
	UploadedAt  time.Time `yaml:"uploaded_at"`
	RecordCount int       `yaml:"record_count"`
	Data        string    `yaml:"data"`
}

// ExportBackup exports all stored data to YAML format. Missing pieces are
// simply omitted, so a backup works with only an office or only a dataset.
func ExportBackup(repo Repository) ([]byte, error) {
	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       "officetime",
	}

	office, err := repo.GetOffice()
	switch {
	case err == nil:
		backup.Office = &OfficeBackup{
			Name:         office.Name,
			Address:      office.Address,
			Lat:          office.Lat,
			Lng:          office.Lng,
			RadiusMeters: office.RadiusMeters,
			SavedAt:      office.SavedAt,
		}
	case errors.Is(err, ErrNotFound):
		// no office configured
	default:
		return nil, fmt.Errorf("load office: %w", err)
	}

	ds, err := repo.GetDataset()
	switch {
	case err == nil:
		backup.Dataset = &DatasetBackup{
			UploadID:    ds.UploadID.String(),
			FileName:    ds.FileName,
			UploadedAt:  ds.UploadedAt,
			RecordCount: ds.RecordCount,
			Data:        string(ds.Data),
		}
	case errors.Is(err, ErrNoDataset):
		// nothing loaded
	default:
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	return yaml.Marshal(backup)
}

// ImportBackup restores data from YAML format, overwriting the current slot.
func ImportBackup(repo Repository, data []byte) error {
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if backup.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version: %s (expected %s)", backup.Version, BackupVersion)
	}
	if backup.Tool != "officetime" {
		return fmt.Errorf("wrong tool: %s (expected officetime)", backup.Tool)
	}

	if backup.Office != nil {
		office := &models.Office{
			Name:         backup.Office.Name,
			Address:      backup.Office.Address,
			Lat:          backup.Office.Lat,
			Lng:          backup.Office.Lng,
			RadiusMeters: backup.Office.RadiusMeters,
			SavedAt:      backup.Office.SavedAt,
		}
		if err := repo.SaveOffice(office); err != nil {
			return fmt.Errorf("restore office: %w", err)
		}
	}

	if backup.Dataset != nil {
		uploadID, err := uuid.Parse(backup.Dataset.UploadID)
		if err != nil {
			return fmt.Errorf("invalid upload ID %s: %w", backup.Dataset.UploadID, err)
		}
		ds := &models.Dataset{
			UploadID:    uploadID,
			FileName:    backup.Dataset.FileName,
			UploadedAt:  backup.Dataset.UploadedAt,
			RecordCount: backup.Dataset.RecordCount,
			Data:        []byte(backup.Dataset.Data),
		}
		if err := repo.SaveDataset(ds); err != nil {
			return fmt.Errorf("restore dataset: %w", err)
		}
	}

	return nil
}
