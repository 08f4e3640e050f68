// ABOUTME: Backup command for exporting data to YAML
// ABOUTME: Creates portable backup files for data migration

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harper/officetime/internal/storage"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a YAML backup of all data",
	Long: `Create a YAML backup file containing the stored dataset and office
settings.

The backup file can be used to:
- Migrate data between machines
- Restore after data loss
- Import into a fresh database

Examples:
  officetime backup --output officetime.yaml
  officetime backup -o ~/backups/officetime-$(date +%Y%m%d).yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		data, err := storage.ExportBackup(repo)
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}

		if output == "" {
			// Default filename with timestamp
			output = fmt.Sprintf("officetime-%s.yaml", time.Now().Format("20060102-150405"))
		}

		if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for backup files
			return fmt.Errorf("failed to write backup: %w", err)
		}

		color.Green("Backup created: %s", output)
		return nil
	},
}

func init() {
	backupCmd.Flags().StringP("output", "o", "", "output file (default: officetime-YYYYMMDD-HHMMSS.yaml)")

	rootCmd.AddCommand(backupCmd)
}
