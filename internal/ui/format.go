// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for visits, rollups, and office settings

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harper/officetime/internal/models"
	"github.com/harper/officetime/internal/timeline"
)

// FormatVisit formats a single visit summary row for terminal display.
func FormatVisit(v *models.VisitSummary) string {
	if v == nil {
		return color.New(color.Faint).Sprint("(no visit)")
	}

	in := "N/A"
	out := "N/A"
	if !v.FirstVisit.Date.IsZero() {
		in = v.FirstVisit.Date.Local().Format("3:04 PM")
	}
	if !v.LastVisit.Date.IsZero() {
		out = timeline.VisitEnd(*v).Local().Format("3:04 PM")
	}

	return fmt.Sprintf("%s  %s  In: %s  Out: %s  %s",
		color.CyanString(v.Date.Format("Mon Jan 2, 2006")),
		color.New(color.Faint).Sprintf("(%d)", v.Visits),
		in,
		out,
		color.GreenString(models.FormatDuration(v.Duration)))
}

// FormatVisitTable formats visit summaries as an aligned table.
func FormatVisitTable(visits []models.VisitSummary) string {
	if len(visits) == 0 {
		return color.New(color.Faint).Sprint("No office visits found.")
	}

	var b strings.Builder
	header := fmt.Sprintf("%-16s %-10s %-10s %-12s %s", "Date", "Start", "End", "Duration", "Visits")
	b.WriteString(color.New(color.Bold).Sprint(header))
	b.WriteString("\n")

	for i := range visits {
		v := &visits[i]
		start := "N/A"
		end := "N/A"
		if !v.FirstVisit.Date.IsZero() {
			start = v.FirstVisit.Date.Local().Format("3:04 PM")
		}
		if !v.LastVisit.Date.IsZero() {
			end = timeline.VisitEnd(*v).Local().Format("3:04 PM")
		}
		b.WriteString(fmt.Sprintf("%-16s %-10s %-10s %-12s %d\n",
			v.Date.Format("1/2/2006"),
			start,
			end,
			models.FormatDuration(v.Duration),
			v.Visits))
	}

	return b.String()
}

// FormatMonthlyBreakdown formats per-month rollups with a totals row.
func FormatMonthlyBreakdown(months []models.MonthRollup, totals models.RollupTotals) string {
	var b strings.Builder

	header := fmt.Sprintf("%-12s %-8s %-8s %s", "Month", "Days", "Visits", "Time")
	b.WriteString(color.New(color.Bold).Sprint(header))
	b.WriteString("\n")

	for _, m := range months {
		b.WriteString(fmt.Sprintf("%-12s %-8d %-8d %s\n",
			m.Month.String(),
			m.UniqueDays,
			m.Visits,
			models.FormatDuration(m.Duration)))
	}

	b.WriteString(color.New(color.Bold).Sprintf("%-12s %-8d %-8d %s",
		"TOTAL",
		totals.UniqueDays,
		totals.Visits,
		models.FormatDuration(totals.Duration)))
	b.WriteString("\n")

	return b.String()
}

// FormatOffice formats office settings for terminal display.
func FormatOffice(office *models.Office) string {
	if office == nil {
		return color.New(color.Faint).Sprint("(no office configured)")
	}

	name := office.Name
	if name == "" {
		name = "Office"
	}

	var b strings.Builder
	b.WriteString(color.GreenString(name))
	b.WriteString("\n")
	if office.Address != "" {
		b.WriteString(fmt.Sprintf("  %s\n", office.Address))
	}
	b.WriteString(fmt.Sprintf("  %s\n",
		color.New(color.Faint).Sprintf("(%.4f, %.4f)", office.Lat, office.Lng)))
	b.WriteString(fmt.Sprintf("  Radius: %.0fm\n", office.RadiusMeters))
	b.WriteString(fmt.Sprintf("  Saved %s\n",
		color.New(color.Faint).Sprint(FormatRelativeTime(office.SavedAt))))

	return b.String()
}

// FormatDataset formats dataset info for terminal display.
func FormatDataset(ds *models.Dataset) string {
	if ds == nil {
		return color.New(color.Faint).Sprint("(no dataset loaded)")
	}

	return fmt.Sprintf("%s - %d records, %.1f MB - %s",
		color.CyanString(ds.FileName),
		ds.RecordCount,
		ds.SizeMB(),
		color.New(color.Faint).Sprint(FormatRelativeTime(ds.UploadedAt)))
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
