// ABOUTME: Repository interfaces for timeline dataset and office storage
// ABOUTME: Enables testability and storage backend swapping

package storage

import "github.com/harper/officetime/internal/models"

// DatasetRepository manages the single overwritable timeline dataset slot.
// There is one dataset per user context; saving replaces whatever was there.
type DatasetRepository interface {
	SaveDataset(ds *models.Dataset) error
	GetDataset() (*models.Dataset, error)
	DeleteDataset() error
}

// OfficeRepository manages the configured reference office.
type OfficeRepository interface {
	SaveOffice(office *models.Office) error
	GetOffice() (*models.Office, error)
	DeleteOffice() error
}

// Repository combines all repository operations with lifecycle management.
type Repository interface {
	DatasetRepository
	OfficeRepository
	Close() error
}
