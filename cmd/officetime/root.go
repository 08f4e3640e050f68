// ABOUTME: Root Cobra command and global flags
// ABOUTME: Sets up CLI structure and opens the configured storage backend

package main

import (
	"fmt"

	"github.com/harper/officetime/internal/config"
	"github.com/harper/officetime/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg  *config.Config
	repo storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "officetime",
	Short: "Analyze how often you were at the office",
	Long: `
 ██████╗ ███████╗███████╗██╗ ██████╗███████╗████████╗██╗███╗   ███╗███████╗
██╔═══██╗██╔════╝██╔════╝██║██╔════╝██╔════╝╚══██╔══╝██║████╗ ████║██╔════╝
██║   ██║█████╗  █████╗  ██║██║     █████╗     ██║   ██║██╔████╔██║█████╗
██║   ██║██╔══╝  ██╔══╝  ██║██║     ██╔══╝     ██║   ██║██║╚██╔╝██║██╔══╝
╚██████╔╝██║     ██║     ██║╚██████╗███████╗   ██║   ██║██║ ╚═╝ ██║███████╗
 ╚═════╝ ╚═╝     ╚═╝     ╚═╝ ╚═════╝╚══════╝   ╚═╝   ╚═╝╚═╝     ╚═╝╚══════╝

     Turn location history exports into office attendance summaries

Examples:
  officetime load timeline.json
  officetime office set "HQ" --lat 41.8781 --lng -87.6298 --radius 150
  officetime analyze --year 2024 --month 3
  officetime analyze --year 2024 --month all`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
			cfg.DataDir = dataDir
		}
		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "override the data directory")
}
