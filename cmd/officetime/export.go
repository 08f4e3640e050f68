// ABOUTME: Export command for writing the stored dataset back to disk
// ABOUTME: Emits the merged record sequence as a plain JSON array

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/harper/officetime/internal/storage"
	"github.com/harper/officetime/internal/timeline"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"e"},
	Short:   "Export the stored location history as JSON",
	Long: `Export the stored (merged) location history as a plain JSON array.

Useful after loading several vendor exports: the output is the
deduplicated union, sorted by timestamp, and loads back in directly.

Examples:
  officetime export --output merged.json
  officetime export > merged.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := repo.GetDataset()
		if err != nil {
			if errors.Is(err, storage.ErrNoDataset) {
				return fmt.Errorf("no location history loaded; run 'officetime load' first")
			}
			return fmt.Errorf("failed to load dataset: %w", err)
		}

		records, err := timeline.Parse(ds.Data)
		if err != nil {
			return fmt.Errorf("failed to parse stored dataset: %w", err)
		}

		data, err := timeline.MarshalRecords(records)
		if err != nil {
			return fmt.Errorf("failed to encode records: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		if output != "" {
			if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for data export files
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %d records to %s\n", len(records), output)
			return nil
		}

		fmt.Println(string(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
