// ABOUTME: Sync command group for pushing and pulling data through Charm Cloud
// ABOUTME: Pull merges cloud and local timelines by timestamp

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/officetime/internal/charm"
	"github.com/harper/officetime/internal/sync"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync data with Charm Cloud",
	Long: `Push local data to Charm Cloud or pull cloud data down and merge it.

Data is encrypted end-to-end by the Charm client. The first run will
create a Charm account keyed to this machine's SSH key.

Examples:
  officetime sync push
  officetime sync pull`,
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the local dataset and office to the cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, err := cloudClient()
		if err != nil {
			return err
		}

		res, err := sync.NewSyncer(repo, remote).Push()
		if err != nil {
			return fmt.Errorf("push failed: %w", err)
		}

		if !res.DatasetPushed && !res.OfficePushed {
			fmt.Println("Nothing to push.")
			return nil
		}
		if res.DatasetPushed {
			color.Green("✓ Dataset pushed")
		}
		if res.OfficePushed {
			color.Green("✓ Office settings pushed")
		}
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download cloud data and merge it with local data",
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, err := cloudClient()
		if err != nil {
			return err
		}

		res, err := sync.NewSyncer(repo, remote).Pull()
		if err != nil {
			return fmt.Errorf("pull failed: %w", err)
		}

		if res.RecordsAfter > 0 {
			color.Green("✓ Dataset merged")
			fmt.Printf("  %d records locally before, %d after\n",
				res.RecordsBefore, res.RecordsAfter)
		}
		if res.OfficePulled {
			color.Green("✓ Office settings pulled")
		}
		if res.RecordsAfter == 0 && !res.OfficePulled {
			fmt.Println("Nothing to pull.")
		}
		return nil
	},
}

func cloudClient() (*charm.Client, error) {
	client, err := charm.NewClient(&charm.Config{
		CharmHost: cfg.GetCharmHost(),
		AutoSync:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud client: %w", err)
	}
	return client, nil
}

func init() {
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncPullCmd)
	rootCmd.AddCommand(syncCmd)
}
