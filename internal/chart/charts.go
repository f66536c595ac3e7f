// Package chart renders the report's PNG artifacts with gonum/plot.
package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/daviddaadams/NYPDShootingIncidents/internal/aggregate"
	"github.com/daviddaadams/NYPDShootingIncidents/internal/dataset"
	"github.com/daviddaadams/NYPDShootingIncidents/internal/model"
)

// Size is the rendered chart size in inches.
type Size struct {
	Width  float64
	Height float64
}

// DefaultSize fits the report layout.
var DefaultSize = Size{Width: 10, Height: 6}

var boroughColors = map[dataset.Borough]color.RGBA{
	dataset.Bronx:        {R: 178, G: 34, B: 34, A: 255},
	dataset.Brooklyn:     {R: 70, G: 130, B: 180, A: 255},
	dataset.Manhattan:    {R: 34, G: 139, B: 34, A: 255},
	dataset.Queens:       {R: 218, G: 165, B: 32, A: 255},
	dataset.StatenIsland: {R: 106, G: 90, B: 205, A: 255},
}

// DailyLine draws the incidents-over-time line chart.
func DailyLine(daily []aggregate.DailyCount, path string, size Size) error {
	p := plot.New()
	p.Title.Text = "Shooting incidents per day"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Incidents"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}

	pts := make(plotter.XYs, len(daily))
	for i, d := range daily {
		pts[i].X = float64(d.Date.Unix())
		pts[i].Y = float64(d.Count)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("daily line: %w", err)
	}
	line.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	p.Add(line, plotter.NewGrid())

	return save(p, path, size)
}

// BoroughBars draws the cross-borough totals bar chart. The input is already
// sorted ascending by count, which is the display order.
func BoroughBars(totals []aggregate.BoroughTotal, path string, size Size) error {
	p := plot.New()
	p.Title.Text = "Shooting incidents by borough"
	p.Y.Label.Text = "Incidents"

	values := make(plotter.Values, len(totals))
	labels := make([]string, len(totals))
	for i, t := range totals {
		values[i] = float64(t.Count)
		labels[i] = string(t.Borough)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("borough bars: %w", err)
	}
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	return save(p, path, size)
}

// SeasonalityBars draws the average-incidents-per-calendar-month chart.
func SeasonalityBars(avgs []aggregate.SeasonalAverage, path string, size Size) error {
	p := plot.New()
	p.Title.Text = "Average incidents per calendar month"
	p.Y.Label.Text = "Incidents per year"

	values := make(plotter.Values, len(avgs))
	labels := make([]string, len(avgs))
	for i, a := range avgs {
		values[i] = a.PerYear
		labels[i] = a.Month.String()[:3]
	}
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("seasonality bars: %w", err)
	}
	bars.Color = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	return save(p, path, size)
}

// ActualVsPredicted draws monthly counts as scatter points with the fitted
// model as a line, one color per borough.
func ActualVsPredicted(predicted []model.Predicted, path string, size Size) error {
	p := plot.New()
	p.Title.Text = "Monthly incidents by borough: actual vs fitted"
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Incidents"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Legend.Top = true

	byBorough := make(map[dataset.Borough][]model.Predicted)
	for _, pr := range predicted {
		byBorough[pr.Borough] = append(byBorough[pr.Borough], pr)
	}

	for _, b := range dataset.Boroughs() {
		rows := byBorough[b]
		if len(rows) == 0 {
			continue
		}
		actual := make(plotter.XYs, len(rows))
		fitted := make(plotter.XYs, len(rows))
		for i, r := range rows {
			x := float64(r.Month.Unix())
			actual[i] = plotter.XY{X: x, Y: float64(r.Count)}
			fitted[i] = plotter.XY{X: x, Y: r.Fitted}
		}

		scatter, err := plotter.NewScatter(actual)
		if err != nil {
			return fmt.Errorf("actual scatter: %w", err)
		}
		scatter.GlyphStyle.Color = boroughColors[b]
		scatter.GlyphStyle.Radius = vg.Points(2)

		line, err := plotter.NewLine(fitted)
		if err != nil {
			return fmt.Errorf("fitted line: %w", err)
		}
		line.Color = boroughColors[b]
		line.Width = vg.Points(1.5)

		p.Add(scatter, line)
		p.Legend.Add(string(b), line)
	}
	p.Add(plotter.NewGrid())

	return save(p, path, size)
}

func save(p *plot.Plot, path string, size Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}
	if err := p.Save(vg.Length(size.Width)*vg.Inch, vg.Length(size.Height)*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}
