// Package aggregate derives counting views from cleaned incident records.
// Each function is pure: it reads its input and returns a freshly built,
// deterministically ordered slice. Combinations with zero incidents are
// simply absent; no view materializes zero counts.
package aggregate

import (
	"sort"
	"time"

	"github.com/daviddaadams/NYPDShootingIncidents/internal/dataset"
)

// DailyCount is the number of incidents on one calendar date.
type DailyCount struct {
	Date  time.Time
	Count int
}

// Daily groups incidents by exact date, in chronological order.
func Daily(incidents []dataset.Incident) []DailyCount {
	counts := make(map[time.Time]int)
	for _, in := range incidents {
		counts[in.Date]++
	}
	out := make([]DailyCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, DailyCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// BoroughTotal is the all-time incident count for one borough.
type BoroughTotal struct {
	Borough dataset.Borough
	Count   int
}

// BoroughTotals groups incidents by borough, ascending by count so a bar
// chart reads smallest to largest. Ties break by borough name.
func BoroughTotals(incidents []dataset.Incident) []BoroughTotal {
	counts := make(map[dataset.Borough]int)
	for _, in := range incidents {
		counts[in.Borough]++
	}
	out := make([]BoroughTotal, 0, len(counts))
	for b, n := range counts {
		out = append(out, BoroughTotal{Borough: b, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Borough < out[j].Borough
		}
		return out[i].Count < out[j].Count
	})
	return out
}

// MonthlyCount is the number of incidents in one (month, borough) pair,
// where the month is the date truncated to its first day.
type MonthlyCount struct {
	Month   time.Time
	Borough dataset.Borough
	Count   int
}

type monthBorough struct {
	month   time.Time
	borough dataset.Borough
}

// MonthlyByBorough groups incidents by (month, borough), sorted by month
// then borough. This is the table the regression model consumes; because
// zero-count pairs are absent, the model only ever sees months and boroughs
// with at least one recorded incident.
func MonthlyByBorough(incidents []dataset.Incident) []MonthlyCount {
	counts := make(map[monthBorough]int)
	for _, in := range incidents {
		counts[monthBorough{month: in.Month(), borough: in.Borough}]++
	}
	out := make([]MonthlyCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, MonthlyCount{Month: k.month, Borough: k.borough, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Month.Equal(out[j].Month) {
			return out[i].Month.Before(out[j].Month)
		}
		return out[i].Borough < out[j].Borough
	})
	return out
}

// SeasonalAverage is the mean citywide incident total for one calendar
// month, averaged across the years present in the data.
type SeasonalAverage struct {
	Month   time.Month
	PerYear float64
}

// CalendarMonthAverages computes the seasonality series from the monthly
// table: sum each (year, calendar month) across boroughs, then average each
// calendar month over its years. Calendar months with no data are absent.
func CalendarMonthAverages(monthly []MonthlyCount) []SeasonalAverage {
	type yearMonth struct {
		year  int
		month time.Month
	}
	totals := make(map[yearMonth]int)
	for _, mc := range monthly {
		totals[yearMonth{year: mc.Month.Year(), month: mc.Month.Month()}] += mc.Count
	}

	sums := make(map[time.Month]int)
	years := make(map[time.Month]int)
	for k, n := range totals {
		sums[k.month] += n
		years[k.month]++
	}

	out := make([]SeasonalAverage, 0, len(sums))
	for m, total := range sums {
		out = append(out, SeasonalAverage{Month: m, PerYear: float64(total) / float64(years[m])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// Total sums the monthly table; it equals the cleaned record count.
func Total(monthly []MonthlyCount) int {
	var n int
	for _, mc := range monthly {
		n += mc.Count
	}
	return n
}
