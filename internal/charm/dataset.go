// ABOUTME: Dataset and office settings CRUD over Charm KV
// ABOUTME: Implements the storage.Repository interface for cloud-backed storage

package charm

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/charm/kv"
	"github.com/harper/officetime/internal/models"
	"github.com/harper/officetime/internal/storage"
)

// Compile-time check that Client implements storage.Repository.
var _ storage.Repository = (*Client)(nil)

// SaveDataset stores the dataset in the single "current" slot, replacing any
// prior upload.
func (c *Client) SaveDataset(ds *models.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	return c.Set([]byte(DatasetKey), data)
}

// GetDataset retrieves the current dataset.
func (c *Client) GetDataset() (*models.Dataset, error) {
	data, err := c.Get([]byte(DatasetKey))
	if err != nil {
		if errors.Is(err, kv.ErrMissingKey) {
			return nil, storage.ErrNoDataset
		}
		return nil, fmt.Errorf("get dataset: %w", err)
	}

	var ds models.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("unmarshal dataset: %w", err)
	}

	return &ds, nil
}

// DeleteDataset removes the current dataset.
func (c *Client) DeleteDataset() error {
	if err := c.Delete([]byte(DatasetKey)); err != nil {
		if errors.Is(err, kv.ErrMissingKey) {
			return storage.ErrNoDataset
		}
		return fmt.Errorf("delete dataset: %w", err)
	}
	return nil
}

// SaveOffice stores the office settings document.
func (c *Client) SaveOffice(office *models.Office) error {
	data, err := json.Marshal(office)
	if err != nil {
		return fmt.Errorf("marshal office: %w", err)
	}

	return c.Set([]byte(OfficeKey), data)
}

// GetOffice retrieves the office settings.
func (c *Client) GetOffice() (*models.Office, error) {
	data, err := c.Get([]byte(OfficeKey))
	if err != nil {
		if errors.Is(err, kv.ErrMissingKey) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get office: %w", err)
	}

	var office models.Office
	if err := json.Unmarshal(data, &office); err != nil {
		return nil, fmt.Errorf("unmarshal office: %w", err)
	}

	return &office, nil
}

// DeleteOffice removes the office settings.
func (c *Client) DeleteOffice() error {
	if err := c.Delete([]byte(OfficeKey)); err != nil {
		if errors.Is(err, kv.ErrMissingKey) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("delete office: %w", err)
	}
	return nil
}
