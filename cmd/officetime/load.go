// ABOUTME: Load command for importing location history exports
// ABOUTME: Parses the file, detects its format, and stores it as the current dataset

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harper/officetime/internal/models"
	"github.com/harper/officetime/internal/storage"
	"github.com/harper/officetime/internal/timeline"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:     "load <file>",
	Aliases: []string{"l"},
	Short:   "Load a location history export",
	Long: `Load a location history JSON export and store it as the current dataset.

Supported formats are detected automatically: Timeline exports with
timelineObjects or semanticSegments, legacy Location History with a
locations array, and plain record arrays.

Loading merges with any previously loaded data: records are deduplicated
by timestamp, with the new file winning on collisions.

Examples:
  officetime load timeline.json
  officetime load ~/Downloads/location-history.json --replace`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path) //nolint:gosec // user-supplied path is the point
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		incoming, err := timeline.Parse(data)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		if len(incoming) == 0 {
			return fmt.Errorf("no location records found in %s", filepath.Base(path))
		}

		replace, _ := cmd.Flags().GetBool("replace")

		records := incoming
		merged := false
		if !replace {
			existing, err := repo.GetDataset()
			switch {
			case err == nil:
				prior, err := timeline.Parse(existing.Data)
				if err != nil {
					return fmt.Errorf("failed to parse stored dataset: %w", err)
				}
				records = timeline.Merge(prior, incoming)
				merged = len(prior) > 0
			case errors.Is(err, storage.ErrNoDataset):
				// first load
			default:
				return fmt.Errorf("failed to load stored dataset: %w", err)
			}
		}

		stored, err := timeline.MarshalRecords(records)
		if err != nil {
			return fmt.Errorf("failed to encode dataset: %w", err)
		}

		ds := models.NewDataset(filepath.Base(path), len(records), stored)
		if err := repo.SaveDataset(ds); err != nil {
			return fmt.Errorf("failed to save dataset: %w", err)
		}

		color.Green("✓ Loaded %s", ds.FileName)
		if merged {
			fmt.Printf("  %d records after merge (%d new in file), %.1f MB\n",
				len(records), len(incoming), ds.SizeMB())
		} else {
			fmt.Printf("  %d records, %.1f MB\n", len(records), ds.SizeMB())
		}

		return nil
	},
}

func init() {
	loadCmd.Flags().Bool("replace", false, "replace the stored dataset instead of merging")

	rootCmd.AddCommand(loadCmd)
}
