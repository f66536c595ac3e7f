package model

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/daviddaadams/NYPDShootingIncidents/internal/aggregate"
	"github.com/daviddaadams/NYPDShootingIncidents/internal/dataset"
)

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

// linearTable builds 12 months x 2 boroughs with a known noiseless trend:
// count = 50 + 2*t for the Bronx, +30 for Brooklyn.
func linearTable() []aggregate.MonthlyCount {
	var out []aggregate.MonthlyCount
	for t := 0; t < 12; t++ {
		m := month(2021, time.January).AddDate(0, t, 0)
		out = append(out,
			aggregate.MonthlyCount{Month: m, Borough: dataset.Bronx, Count: 50 + 2*t},
			aggregate.MonthlyCount{Month: m, Borough: dataset.Brooklyn, Count: 80 + 2*t},
		)
	}
	return out
}

func TestFitRecoversExactLinearTrend(t *testing.T) {
	monthly := linearTable()
	m, err := Fit(monthly)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if m.Reference != dataset.Bronx {
		t.Fatalf("reference = %q", m.Reference)
	}
	if math.Abs(m.Intercept-50) > 1e-6 {
		t.Fatalf("intercept = %f, want 50", m.Intercept)
	}
	if math.Abs(m.Slope-2) > 1e-6 {
		t.Fatalf("slope = %f, want 2", m.Slope)
	}
	if eff := m.BoroughEffect[dataset.Brooklyn]; math.Abs(eff-30) > 1e-6 {
		t.Fatalf("brooklyn effect = %f, want 30", eff)
	}
	if math.Abs(m.R2-1) > 1e-9 {
		t.Fatalf("r2 = %f, want 1", m.R2)
	}

	for _, pr := range m.PredictAll(monthly) {
		if math.Abs(pr.Fitted-float64(pr.Count)) > 1e-6 {
			t.Fatalf("fitted %f != actual %d for %s %s", pr.Fitted, pr.Count, pr.Month.Format("2006-01"), pr.Borough)
		}
	}
}

func TestFitSingleBorough(t *testing.T) {
	var monthly []aggregate.MonthlyCount
	for i := 0; i < 6; i++ {
		monthly = append(monthly, aggregate.MonthlyCount{
			Month:   month(2022, time.March).AddDate(0, i, 0),
			Borough: dataset.Queens,
			Count:   10 + 3*i,
		})
	}
	m, err := Fit(monthly)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if len(m.BoroughEffect) != 0 {
		t.Fatalf("effects = %#v, want none", m.BoroughEffect)
	}
	got := m.Predict(month(2022, time.August), dataset.Queens)
	if math.Abs(got-25) > 1e-6 {
		t.Fatalf("prediction = %f, want 25", got)
	}
}

func TestFitInsufficientData(t *testing.T) {
	monthly := []aggregate.MonthlyCount{
		{Month: month(2022, time.January), Borough: dataset.Bronx, Count: 5},
		{Month: month(2022, time.January), Borough: dataset.Brooklyn, Count: 7},
	}
	// Two observations, three parameters (intercept, slope, one dummy).
	if _, err := Fit(monthly); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
	if _, err := Fit(nil); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestFitDegenerateDesignStillPredicts(t *testing.T) {
	// One borough observed in a single month alongside a well-populated one:
	// the dummy column is nearly collinear with the intercept for that row,
	// but the pseudo-inverse path must still produce finite predictions.
	monthly := linearTable()[:12]
	monthly = append(monthly, aggregate.MonthlyCount{
		Month: month(2021, time.March), Borough: dataset.StatenIsland, Count: 4,
	})
	m, err := Fit(monthly)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	for _, pr := range m.PredictAll(monthly) {
		if math.IsNaN(pr.Fitted) || math.IsInf(pr.Fitted, 0) {
			t.Fatalf("non-finite prediction for %s %s", pr.Month.Format("2006-01"), pr.Borough)
		}
	}
}

func TestPredictUnseenBoroughUsesReferenceLevel(t *testing.T) {
	m, err := Fit(linearTable())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	ref := m.Predict(month(2021, time.June), m.Reference)
	got := m.Predict(month(2021, time.June), dataset.StatenIsland)
	if math.Abs(ref-got) > 1e-9 {
		t.Fatalf("unseen borough prediction = %f, want reference level %f", got, ref)
	}
}
