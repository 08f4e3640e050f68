// ABOUTME: Restore command for importing YAML backups
// ABOUTME: Replaces the stored dataset and office settings from a backup file

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/officetime/internal/storage"
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore data from a YAML backup",
	Long: `Restore the dataset and office settings from a backup file created
with 'officetime backup'. Existing data is overwritten.

Examples:
  officetime restore officetime.yaml
  officetime restore officetime.yaml --confirm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path) //nolint:gosec // user-supplied path is the point
		if err != nil {
			return fmt.Errorf("failed to read backup: %w", err)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Printf("Restore from %s? Existing data will be overwritten. [y/N] ", path)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := storage.ImportBackup(repo, data); err != nil {
			return fmt.Errorf("failed to restore backup: %w", err)
		}

		color.Green("✓ Restored from %s", path)
		return nil
	},
}

func init() {
	restoreCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(restoreCmd)
}
