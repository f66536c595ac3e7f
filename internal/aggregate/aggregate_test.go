package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/daviddaadams/NYPDShootingIncidents/internal/dataset"
)

func incident(year int, month time.Month, day int, b dataset.Borough) dataset.Incident {
	return dataset.Incident{
		Date:      time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		TimeOfDay: 12 * time.Hour,
		Borough:   b,
		Precinct:  "40",
		PerpAge:   dataset.Age18To24,
		VicAge:    dataset.Age25To44,
	}
}

func sample() []dataset.Incident {
	return []dataset.Incident{
		incident(2020, time.January, 5, dataset.Bronx),
		incident(2020, time.January, 5, dataset.Bronx),
		incident(2020, time.January, 20, dataset.Brooklyn),
		incident(2020, time.February, 1, dataset.Bronx),
		incident(2021, time.January, 9, dataset.Brooklyn),
		incident(2021, time.January, 9, dataset.Brooklyn),
		incident(2021, time.January, 10, dataset.Queens),
	}
}

func TestDailyChronological(t *testing.T) {
	daily := Daily(sample())
	if len(daily) != 5 {
		t.Fatalf("days = %d, want 5", len(daily))
	}
	for i := 1; i < len(daily); i++ {
		if !daily[i-1].Date.Before(daily[i].Date) {
			t.Fatalf("days out of order at %d: %v >= %v", i, daily[i-1].Date, daily[i].Date)
		}
	}
	if daily[0].Count != 2 {
		t.Fatalf("first day count = %d, want 2", daily[0].Count)
	}
}

func TestBoroughTotalsAscending(t *testing.T) {
	totals := BoroughTotals(sample())
	if len(totals) != 3 {
		t.Fatalf("boroughs = %d, want 3", len(totals))
	}
	for i := 1; i < len(totals); i++ {
		if totals[i].Count < totals[i-1].Count {
			t.Fatalf("totals not non-decreasing: %#v", totals)
		}
	}
	if totals[0].Borough != dataset.Queens || totals[0].Count != 1 {
		t.Fatalf("smallest = %#v", totals[0])
	}
	if totals[2].Count != 3 {
		t.Fatalf("largest count = %d, want 3", totals[2].Count)
	}
}

func TestMonthlyByBoroughCounts(t *testing.T) {
	incidents := sample()
	monthly := MonthlyByBorough(incidents)

	// Every pair appears exactly once with count >= 1 and matches a recount.
	seen := make(map[string]bool)
	for _, mc := range monthly {
		key := mc.Month.Format("2006-01") + "/" + string(mc.Borough)
		if seen[key] {
			t.Fatalf("duplicate pair %s", key)
		}
		seen[key] = true
		if mc.Count < 1 {
			t.Fatalf("zero-count pair materialized: %#v", mc)
		}
		recount := 0
		for _, in := range incidents {
			if in.Month().Equal(mc.Month) && in.Borough == mc.Borough {
				recount++
			}
		}
		if recount != mc.Count {
			t.Fatalf("pair %s count = %d, recount = %d", key, mc.Count, recount)
		}
	}

	if Total(monthly) != len(incidents) {
		t.Fatalf("total = %d, want %d", Total(monthly), len(incidents))
	}

	for i := 1; i < len(monthly); i++ {
		a, b := monthly[i-1], monthly[i]
		if a.Month.After(b.Month) || (a.Month.Equal(b.Month) && a.Borough >= b.Borough) {
			t.Fatalf("monthly not sorted at %d", i)
		}
	}
}

func TestCalendarMonthAverages(t *testing.T) {
	// January totals: 3 in 2020, 3 in 2021 -> 3.0; February only in 2020 -> 1.0.
	avgs := CalendarMonthAverages(MonthlyByBorough(sample()))
	if len(avgs) != 2 {
		t.Fatalf("months = %d, want 2", len(avgs))
	}
	if avgs[0].Month != time.January || math.Abs(avgs[0].PerYear-3.0) > 1e-9 {
		t.Fatalf("january = %#v", avgs[0])
	}
	if avgs[1].Month != time.February || math.Abs(avgs[1].PerYear-1.0) > 1e-9 {
		t.Fatalf("february = %#v", avgs[1])
	}
}

func TestEmptyInput(t *testing.T) {
	if got := Daily(nil); len(got) != 0 {
		t.Fatalf("daily on empty input = %#v", got)
	}
	if got := BoroughTotals(nil); len(got) != 0 {
		t.Fatalf("totals on empty input = %#v", got)
	}
	if got := MonthlyByBorough(nil); len(got) != 0 {
		t.Fatalf("monthly on empty input = %#v", got)
	}
	if got := CalendarMonthAverages(nil); len(got) != 0 {
		t.Fatalf("averages on empty input = %#v", got)
	}
}
