// ABOUTME: Status command showing the loaded dataset and office settings
// ABOUTME: One-glance view of what an analysis run would use

package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/officetime/internal/storage"
	"github.com/harper/officetime/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show the loaded dataset and office settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		color.New(color.Bold).Println("Dataset")
		ds, err := repo.GetDataset()
		switch {
		case err == nil:
			fmt.Printf("  %s\n", ui.FormatDataset(ds))
		case errors.Is(err, storage.ErrNoDataset):
			fmt.Printf("  %s\n", ui.FormatDataset(nil))
		default:
			return fmt.Errorf("failed to load dataset: %w", err)
		}

		fmt.Println()
		color.New(color.Bold).Println("Office")
		office, err := repo.GetOffice()
		switch {
		case err == nil:
			fmt.Print(ui.FormatOffice(office))
		case errors.Is(err, storage.ErrNotFound):
			fmt.Printf("  %s\n", ui.FormatOffice(nil))
		default:
			return fmt.Errorf("failed to load office: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
