// ABOUTME: Office command group for managing the reference location
// ABOUTME: Supports direct coordinates or address lookup via geocoding

package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/officetime/internal/geocode"
	"github.com/harper/officetime/internal/models"
	"github.com/harper/officetime/internal/storage"
	"github.com/harper/officetime/internal/ui"
	"github.com/spf13/cobra"
)

var officeCmd = &cobra.Command{
	Use:   "office",
	Short: "Manage the office location",
}

var officeSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Set the office location",
	Long: `Set the office location used for visit analysis.

Give coordinates directly with --lat/--lng, or look up a US street
address with --address. Address lookup uses OpenStreetMap Nominatim and
picks the best match; pass --pick to choose from the candidates.

Examples:
  officetime office set "HQ" --lat 41.8781 --lng -87.6298
  officetime office set "HQ" --lat 41.8781 --lng -87.6298 --radius 150
  officetime office set "HQ" --address "233 S Wacker Dr, Chicago"
  officetime office set "HQ" --address "233 S Wacker Dr, Chicago" --pick`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := models.ValidateName(name); err != nil {
			return err
		}

		radius, _ := cmd.Flags().GetFloat64("radius")
		if radius == 0 {
			radius = cfg.DefaultRadiusMeters
		}
		address, _ := cmd.Flags().GetString("address")

		var office *models.Office
		if address != "" {
			result, err := lookupAddress(cmd, address)
			if err != nil {
				return err
			}
			office = models.NewOffice(name, result.DisplayName, result.Lat, result.Lng, radius)
		} else {
			lat, _ := cmd.Flags().GetFloat64("lat")
			lng, _ := cmd.Flags().GetFloat64("lng")
			if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lng") {
				return fmt.Errorf("provide --lat and --lng, or --address")
			}
			if err := models.ValidateCoordinates(lat, lng); err != nil {
				return err
			}
			office = models.NewOffice(name, "", lat, lng, radius)
		}

		if err := repo.SaveOffice(office); err != nil {
			return fmt.Errorf("failed to save office: %w", err)
		}

		color.Green("✓ Office saved")
		fmt.Print(ui.FormatOffice(office))
		return nil
	},
}

// lookupAddress geocodes a free-form address and returns the chosen candidate.
func lookupAddress(cmd *cobra.Command, address string) (*geocode.Result, error) {
	cache, err := geocode.OpenCache(cfg.GeocodeCacheDir())
	if err != nil {
		// fall back to uncached lookups
		cache = nil
	} else {
		defer cache.Close()
	}

	client := geocode.NewClient(cfg.GetNominatimURL(), cache)
	results, err := client.Search(cmd.Context(), address)
	if err != nil {
		return nil, fmt.Errorf("address lookup failed: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no matches for %q; try adding a city and state", address)
	}

	pick, _ := cmd.Flags().GetBool("pick")
	if !pick || len(results) == 1 {
		return &results[0], nil
	}

	fmt.Println("Multiple matches:")
	for i, r := range results {
		fmt.Printf("  [%d] %s (%.4f, %.4f)\n", i+1, r.DisplayName, r.Lat, r.Lng)
	}
	fmt.Print("Choose [1]: ")
	choice := 1
	if _, err := fmt.Scanln(&choice); err != nil {
		choice = 1
	}
	if choice < 1 || choice > len(results) {
		return nil, fmt.Errorf("choice out of range")
	}
	return &results[choice-1], nil
}

var officeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured office",
	RunE: func(cmd *cobra.Command, args []string) error {
		office, err := repo.GetOffice()
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Println(ui.FormatOffice(nil))
				return nil
			}
			return fmt.Errorf("failed to load office: %w", err)
		}
		fmt.Print(ui.FormatOffice(office))
		return nil
	},
}

var officeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the configured office",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteOffice(); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Println("No office configured.")
				return nil
			}
			return fmt.Errorf("failed to clear office: %w", err)
		}
		color.Green("✓ Office cleared")
		return nil
	},
}

func init() {
	officeSetCmd.Flags().Float64("lat", 0, "office latitude (-90 to 90)")
	officeSetCmd.Flags().Float64("lng", 0, "office longitude (-180 to 180)")
	officeSetCmd.Flags().Float64("radius", 0, "proximity radius in meters (default 100)")
	officeSetCmd.Flags().String("address", "", "US street address to geocode")
	officeSetCmd.Flags().Bool("pick", false, "choose interactively among geocoding matches")

	officeCmd.AddCommand(officeSetCmd)
	officeCmd.AddCommand(officeShowCmd)
	officeCmd.AddCommand(officeClearCmd)
	rootCmd.AddCommand(officeCmd)
}
