// ABOUTME: Visit analysis over normalized timeline records
// ABOUTME: Filters by period and office radius, summarizes visits and rollups

package timeline

import (
	"sort"
	"time"

	"github.com/harper/officetime/internal/geo"
	"github.com/harper/officetime/internal/models"
)

// Aggregation selects how qualifying events become summary rows. Both
// policies shipped in different revisions of the original tool, so the choice
// is an explicit option rather than a silent default.
type Aggregation int

const (
	// AggregatePerEvent emits one row per qualifying record.
	AggregatePerEvent Aggregation = iota
	// AggregatePerDay folds same-day events into one row with the earliest
	// start, latest end, and summed duration.
	AggregatePerDay
)

// Options parameterize one analysis run.
type Options struct {
	Office       models.LatLng
	RadiusMeters float64
	Year         int
	// Month is the target calendar month; ignored when FullYear is set.
	Month       time.Month
	FullYear    bool
	Aggregation Aggregation
}

// Result is the outcome of one analysis run. Events holds every qualifying
// record in chronological order. Monthly and Totals are populated only in
// full-year mode.
type Result struct {
	Summaries  []models.VisitSummary
	Events     []models.VisitEvent
	UniqueDays int
	Monthly    []models.MonthRollup
	Totals     models.RollupTotals
}

// Analyze walks the full record sequence and reports the on-site visits within
// the office radius during the target period. It is a pure transform: no state
// survives between invocations, and records that lack a parsable timestamp or
// coordinates are skipped without aborting the run. Calendar bucketing uses
// the machine's local timezone, inheriting the source data's own loose
// timezone handling.
func Analyze(records []models.RawRecord, opts Options) Result {
	var events []models.VisitEvent
	days := make(map[string]struct{})

	for _, rec := range records {
		ts := Timestamp(rec)
		if ts == "" {
			continue
		}
		when, ok := ParseWhen(ts)
		if !ok {
			continue
		}
		local := when.Local()
		if local.Year() != opts.Year {
			continue
		}
		if !opts.FullYear && local.Month() != opts.Month {
			continue
		}

		coords := Coordinates(rec)
		if coords == nil {
			continue
		}

		dist := geo.Distance(opts.Office, *coords)
		// Inclusive boundary; a NaN distance fails the comparison and the
		// record drops out, which is the intended fallback for junk coords.
		if !(dist <= opts.RadiusMeters) {
			continue
		}

		events = append(events, models.VisitEvent{
			Date:           local,
			Timestamp:      ts,
			DistanceMeters: dist,
			Coords:         *coords,
			Record:         rec,
		})
		days[dayKey(local)] = struct{}{}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	var summaries []models.VisitSummary
	if opts.Aggregation == AggregatePerDay {
		summaries = summarizePerDay(events)
	} else {
		summaries = summarizePerEvent(events)
	}

	result := Result{Summaries: summaries, Events: events, UniqueDays: len(days)}
	if opts.FullYear {
		result.Monthly, result.Totals = rollupMonths(summaries)
	}
	return result
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// EventDuration returns the visit length carried by a record's own
// startTime/endTime pair, or the default when the pair is absent or inverted.
func EventDuration(rec models.RawRecord) time.Duration {
	start, sok := rec.Fields["startTime"].(string)
	end, eok := rec.Fields["endTime"].(string)
	if sok && eok {
		st, ok1 := ParseWhen(start)
		et, ok2 := ParseWhen(end)
		if ok1 && ok2 {
			if d := et.Sub(st); d > 0 {
				return d
			}
		}
	}
	return models.DefaultVisitDuration
}

// VisitEnd returns the instant a summarized visit ended: the closing record's
// own endTime when it parses, otherwise the start plus the summary duration.
func VisitEnd(v models.VisitSummary) time.Time {
	if s, ok := v.LastVisit.Record.Fields["endTime"].(string); ok {
		if t, ok := ParseWhen(s); ok {
			return t
		}
	}
	return v.FirstVisit.Date.Add(v.Duration)
}

func summarizePerEvent(events []models.VisitEvent) []models.VisitSummary {
	summaries := make([]models.VisitSummary, 0, len(events))
	for _, ev := range events {
		summaries = append(summaries, models.VisitSummary{
			Date:       ev.Date,
			Visits:     1,
			Duration:   EventDuration(ev.Record),
			FirstVisit: ev,
			LastVisit:  ev,
		})
	}
	return summaries
}

// summarizePerDay relies on events arriving sorted ascending, so the first
// event of a day is the earliest and the last the latest.
func summarizePerDay(events []models.VisitEvent) []models.VisitSummary {
	var summaries []models.VisitSummary
	for _, ev := range events {
		if n := len(summaries); n > 0 && dayKey(summaries[n-1].Date) == dayKey(ev.Date) {
			summaries[n-1].Visits++
			summaries[n-1].Duration += EventDuration(ev.Record)
			summaries[n-1].LastVisit = ev
			continue
		}
		summaries = append(summaries, models.VisitSummary{
			Date:       ev.Date,
			Visits:     1,
			Duration:   EventDuration(ev.Record),
			FirstVisit: ev,
			LastVisit:  ev,
		})
	}
	return summaries
}

func rollupMonths(summaries []models.VisitSummary) ([]models.MonthRollup, models.RollupTotals) {
	type bucket struct {
		visits   int
		duration time.Duration
		days     map[string]struct{}
	}
	buckets := make(map[time.Month]*bucket)

	for _, s := range summaries {
		m := s.Date.Month()
		b := buckets[m]
		if b == nil {
			b = &bucket{days: make(map[string]struct{})}
			buckets[m] = b
		}
		b.visits += s.Visits
		b.duration += s.Duration
		b.days[dayKey(s.Date)] = struct{}{}
	}

	var rollups []models.MonthRollup
	var totals models.RollupTotals
	for m := time.January; m <= time.December; m++ {
		b := buckets[m]
		if b == nil {
			continue
		}
		rollups = append(rollups, models.MonthRollup{
			Month:      m,
			Visits:     b.visits,
			UniqueDays: len(b.days),
			Duration:   b.duration,
		})
		totals.Visits += b.visits
		totals.UniqueDays += len(b.days)
		totals.Duration += b.duration
	}
	return rollups, totals
}
