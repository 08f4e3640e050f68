// ABOUTME: Analyze command for computing office presence from the loaded dataset
// ABOUTME: Supports single-month and full-year runs with CSV and GeoJSON output

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harper/officetime/internal/geojson"
	"github.com/harper/officetime/internal/models"
	"github.com/harper/officetime/internal/storage"
	"github.com/harper/officetime/internal/timeline"
	"github.com/harper/officetime/internal/ui"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Aliases: []string{"an"},
	Short:   "Analyze office visits for a month or year",
	Long: `Analyze the loaded location history against the configured office.

A record counts as an office visit when its coordinates fall within the
office radius. Use --month all for a whole-year run with a monthly
breakdown.

Examples:
  officetime analyze --year 2024 --month 3
  officetime analyze --year 2024 --month all
  officetime analyze --year 2024 --month 3 --by-day
  officetime analyze --year 2024 --month 3 --csv visits.csv
  officetime analyze --year 2024 --month 3 --geojson visits.geojson`,
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		if year == 0 {
			year = time.Now().Year()
		}

		monthStr, _ := cmd.Flags().GetString("month")
		fullYear := strings.EqualFold(monthStr, "all")
		var month time.Month
		if !fullYear {
			m, err := strconv.Atoi(monthStr)
			if err != nil || m < 1 || m > 12 {
				return fmt.Errorf("invalid month %q (use 1-12 or 'all')", monthStr)
			}
			month = time.Month(m)
		}

		office, err := repo.GetOffice()
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("no office configured; run 'officetime office set' first")
			}
			return fmt.Errorf("failed to load office: %w", err)
		}

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

		opts := timeline.Options{
			Office:       office.Location(),
			RadiusMeters: office.RadiusMeters,
			Year:         year,
			Month:        month,
			FullYear:     fullYear,
		}
		if byDay, _ := cmd.Flags().GetBool("by-day"); byDay {
			opts.Aggregation = timeline.AggregatePerDay
		}

		result := timeline.Analyze(records, opts)

		if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
			data, err := storage.ExportVisitsCSV(result.Summaries)
			if err != nil {
				return fmt.Errorf("failed to generate CSV: %w", err)
			}
			if err := os.WriteFile(csvPath, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for data export files
				return fmt.Errorf("failed to write CSV: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(result.Summaries), csvPath)
		}

		if geoPath, _ := cmd.Flags().GetString("geojson"); geoPath != "" {
			fc := geojson.ToVisitsFeatureCollection(result.Events, office)
			data, err := fc.ToJSONIndent()
			if err != nil {
				return fmt.Errorf("failed to generate GeoJSON: %w", err)
			}
			if err := os.WriteFile(geoPath, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for data export files
				return fmt.Errorf("failed to write GeoJSON: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %d features to %s\n", len(fc.Features), geoPath)
		}

		printAnalysis(office, year, month, fullYear, result)
		return nil
	},
}

func printAnalysis(office *models.Office, year int, month time.Month, fullYear bool, result timeline.Result) {
	name := office.Name
	if name == "" {
		name = "Office"
	}

	if fullYear {
		color.New(color.Bold).Printf("%s - %d\n\n", name, year)
		fmt.Print(ui.FormatMonthlyBreakdown(result.Monthly, result.Totals))
		fmt.Printf("\n%d unique days on site\n", result.UniqueDays)
		return
	}

	color.New(color.Bold).Printf("%s - %s %d\n\n", name, month, year)
	fmt.Print(ui.FormatVisitTable(result.Summaries))
	if len(result.Summaries) > 0 {
		var total time.Duration
		for _, v := range result.Summaries {
			total += v.Duration
		}
		fmt.Printf("\n%d unique days, %s total\n",
			result.UniqueDays, models.FormatDuration(total))
	}
}

func init() {
	analyzeCmd.Flags().Int("year", 0, "target year (default: current year)")
	analyzeCmd.Flags().String("month", "", "target month 1-12, or 'all' for the whole year")
	analyzeCmd.Flags().Bool("by-day", false, "fold same-day visits into one row per day")
	analyzeCmd.Flags().String("csv", "", "write visit rows to a CSV file")
	analyzeCmd.Flags().String("geojson", "", "write qualifying visits to a GeoJSON file")
	_ = analyzeCmd.MarkFlagRequired("month")

	rootCmd.AddCommand(analyzeCmd)
}
