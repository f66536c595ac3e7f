// Package model fits an ordinary least-squares regression of monthly
// incident counts on a month ordinal and borough dummies. It is a single
// full-data descriptive fit: no train/test split, no regularization.
package model

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/daviddaadams/NYPDShootingIncidents/internal/aggregate"
	"github.com/daviddaadams/NYPDShootingIncidents/internal/dataset"
)

// ErrInsufficientData means there are fewer observations than free
// parameters, so no fit is defined.
var ErrInsufficientData = errors.New("fewer observations than model parameters")

// Model holds the fitted coefficients. The reference borough is absorbed
// into the intercept; BoroughEffect maps every other observed borough to its
// additive offset.
type Model struct {
	Intercept     float64
	Slope         float64 // per month
	Reference     dataset.Borough
	BoroughEffect map[dataset.Borough]float64
	R2            float64

	base time.Time // earliest observed month; ordinal zero
}

// Predicted pairs one monthly observation with its fitted count.
type Predicted struct {
	aggregate.MonthlyCount
	Fitted float64
}

// Fit estimates the model from the monthly-by-borough table. Rank-deficient
// designs (for example a borough observed only once, collinear with its
// dummy) fall through to the SVD pseudo-inverse; only having fewer rows than
// parameters is reported as an error.
func Fit(monthly []aggregate.MonthlyCount) (*Model, error) {
	if len(monthly) == 0 {
		return nil, ErrInsufficientData
	}

	boroughs := observedBoroughs(monthly)
	base := monthly[0].Month
	for _, mc := range monthly {
		if mc.Month.Before(base) {
			base = mc.Month
		}
	}

	// Columns: intercept, month ordinal, one dummy per non-reference borough.
	ref := boroughs[0]
	params := 2 + len(boroughs) - 1
	n := len(monthly)
	if n < params {
		return nil, fmt.Errorf("%w: %d observations, %d parameters", ErrInsufficientData, n, params)
	}

	dummy := make(map[dataset.Borough]int, len(boroughs)-1)
	for i, b := range boroughs[1:] {
		dummy[b] = 2 + i
	}

	x := mat.NewDense(n, params, nil)
	y := mat.NewVecDense(n, nil)
	for i, mc := range monthly {
		x.Set(i, 0, 1)
		x.Set(i, 1, float64(monthsBetween(base, mc.Month)))
		if col, ok := dummy[mc.Borough]; ok {
			x.Set(i, col, 1)
		}
		y.SetVec(i, float64(mc.Count))
	}

	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, errors.New("svd factorization failed")
	}
	rank := effectiveRank(&svd, n)
	var beta mat.Dense
	svd.SolveTo(&beta, y, rank)

	m := &Model{
		Intercept:     beta.At(0, 0),
		Slope:         beta.At(1, 0),
		Reference:     ref,
		BoroughEffect: make(map[dataset.Borough]float64, len(dummy)),
		base:          base,
	}
	for b, col := range dummy {
		m.BoroughEffect[b] = beta.At(col, 0)
	}
	m.R2 = rSquared(m, monthly)
	return m, nil
}

// Predict returns the fitted count for a month and borough. Boroughs never
// seen during fitting get the reference level.
func (m *Model) Predict(month time.Time, b dataset.Borough) float64 {
	v := m.Intercept + m.Slope*float64(monthsBetween(m.base, month))
	if b != m.Reference {
		v += m.BoroughEffect[b]
	}
	return v
}

// PredictAll produces a fitted count for every row of the monthly table.
func (m *Model) PredictAll(monthly []aggregate.MonthlyCount) []Predicted {
	out := make([]Predicted, len(monthly))
	for i, mc := range monthly {
		out[i] = Predicted{MonthlyCount: mc, Fitted: m.Predict(mc.Month, mc.Borough)}
	}
	return out
}

func observedBoroughs(monthly []aggregate.MonthlyCount) []dataset.Borough {
	seen := make(map[dataset.Borough]bool)
	for _, mc := range monthly {
		seen[mc.Borough] = true
	}
	out := make([]dataset.Borough, 0, len(seen))
	for b := range seen {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// effectiveRank counts singular values above a scale-relative tolerance,
// which is what makes the solve behave as a pseudo-inverse on degenerate
// designs.
func effectiveRank(svd *mat.SVD, n int) int {
	values := svd.Values(nil)
	if len(values) == 0 || values[0] == 0 {
		return 0
	}
	tol := float64(n) * values[0] * 1e-14
	rank := 0
	for _, v := range values {
		if v > tol {
			rank++
		}
	}
	return rank
}

func rSquared(m *Model, monthly []aggregate.MonthlyCount) float64 {
	var sum float64
	for _, mc := range monthly {
		sum += float64(mc.Count)
	}
	mean := sum / float64(len(monthly))

	var ssRes, ssTot float64
	for _, mc := range monthly {
		res := float64(mc.Count) - m.Predict(mc.Month, mc.Borough)
		ssRes += res * res
		d := float64(mc.Count) - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return 1
	}
	return 1 - ssRes/ssTot
}
