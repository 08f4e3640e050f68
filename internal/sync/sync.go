// ABOUTME: Push/pull sync between local storage and the Charm cloud store
// ABOUTME: Pull merges cloud and local timelines by timestamp before saving

package sync

import (
	"errors"
	"fmt"

	"github.com/harper/officetime/internal/models"
	"github.com/harper/officetime/internal/storage"
	"github.com/harper/officetime/internal/timeline"
)

// Syncer copies data between a local repository and a remote one.
type Syncer struct {
	local  storage.Repository
	remote storage.Repository
}

// NewSyncer creates a syncer over the given repositories.
func NewSyncer(local, remote storage.Repository) *Syncer {
	return &Syncer{local: local, remote: remote}
}

// PushResult reports what was uploaded.
type PushResult struct {
	DatasetPushed bool
	OfficePushed  bool
}

// Push uploads the local dataset and office settings to the remote store.
// Missing local data is skipped rather than treated as an error.
func (s *Syncer) Push() (*PushResult, error) {
	res := &PushResult{}

	ds, err := s.local.GetDataset()
	switch {
	case err == nil:
		if err := s.remote.SaveDataset(ds); err != nil {
			return res, fmt.Errorf("push dataset: %w", err)
		}
		res.DatasetPushed = true
	case errors.Is(err, storage.ErrNoDataset):
		// nothing to push
	default:
		return res, fmt.Errorf("load local dataset: %w", err)
	}

	office, err := s.local.GetOffice()
	switch {
	case err == nil:
		if err := s.remote.SaveOffice(office); err != nil {
			return res, fmt.Errorf("push office: %w", err)
		}
		res.OfficePushed = true
	case errors.Is(err, storage.ErrNotFound):
		// nothing to push
	default:
		return res, fmt.Errorf("load local office: %w", err)
	}

	return res, nil
}

// PullResult reports what was downloaded and merged.
type PullResult struct {
	RecordsBefore int
	RecordsAfter  int
	OfficePulled  bool
}

// Pull downloads the remote dataset, merges it with the local one by
// timestamp, and saves the merged result locally. Remote records win on
// timestamp collisions. Office settings are replaced wholesale.
func (s *Syncer) Pull() (*PullResult, error) {
	res := &PullResult{}

	remote, err := s.remote.GetDataset()
	if err != nil && !errors.Is(err, storage.ErrNoDataset) {
		return res, fmt.Errorf("load remote dataset: %w", err)
	}

	if remote != nil {
		merged, err := s.mergeIntoLocal(remote, res)
		if err != nil {
			return res, err
		}
		if err := s.local.SaveDataset(merged); err != nil {
			return res, fmt.Errorf("save merged dataset: %w", err)
		}
	}

	office, err := s.remote.GetOffice()
	switch {
	case err == nil:
		if err := s.local.SaveOffice(office); err != nil {
			return res, fmt.Errorf("save office: %w", err)
		}
		res.OfficePulled = true
	case errors.Is(err, storage.ErrNotFound):
		// remote has no office configured
	default:
		return res, fmt.Errorf("load remote office: %w", err)
	}

	return res, nil
}

// mergeIntoLocal merges the remote dataset records into the local dataset.
// The merged records are persisted as a plain JSON array so the result
// parses as the direct format on the next load.
func (s *Syncer) mergeIntoLocal(remote *models.Dataset, res *PullResult) (*models.Dataset, error) {
	incoming, err := timeline.Parse(remote.Data)
	if err != nil {
		return nil, fmt.Errorf("parse remote dataset: %w", err)
	}

	var existing []models.RawRecord
	local, err := s.local.GetDataset()
	switch {
	case err == nil:
		existing, err = timeline.Parse(local.Data)
		if err != nil {
			return nil, fmt.Errorf("parse local dataset: %w", err)
		}
	case errors.Is(err, storage.ErrNoDataset):
		// first pull on this machine
	default:
		return nil, fmt.Errorf("load local dataset: %w", err)
	}

	res.RecordsBefore = len(existing)
	merged := timeline.Merge(existing, incoming)
	res.RecordsAfter = len(merged)

	data, err := timeline.MarshalRecords(merged)
	if err != nil {
		return nil, fmt.Errorf("marshal merged records: %w", err)
	}

	ds := models.NewDataset(remote.FileName, len(merged), data)
	return ds, nil
}
