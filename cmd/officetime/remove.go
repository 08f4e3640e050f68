// ABOUTME: Remove command for clearing the stored dataset
// ABOUTME: Prompts for confirmation unless --confirm is given

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/officetime/internal/storage"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"rm"},
	Short:   "Remove the stored location history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := repo.GetDataset()
		if err != nil {
			if errors.Is(err, storage.ErrNoDataset) {
				fmt.Println("No location history loaded.")
				return nil
			}
			return fmt.Errorf("failed to load dataset: %w", err)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Printf("Remove %s (%d records)? [y/N] ", ds.FileName, ds.RecordCount)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := repo.DeleteDataset(); err != nil {
			return fmt.Errorf("failed to remove dataset: %w", err)
		}

		color.Green("✓ Removed %s", ds.FileName)
		return nil
	},
}

func init() {
	removeCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(removeCmd)
}
