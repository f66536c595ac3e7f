// Package report assembles the rendered analysis document.
package report

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daviddaadams/NYPDShootingIncidents/internal/aggregate"
	"github.com/daviddaadams/NYPDShootingIncidents/internal/dataset"
	"github.com/daviddaadams/NYPDShootingIncidents/internal/model"
)

// ChartPaths are the rendered chart files, relative to the report document.
type ChartPaths struct {
	Daily       string
	Boroughs    string
	Seasonality string
	Fit         string
}

// Data is everything the document renders from.
type Data struct {
	RunID       string
	GeneratedAt time.Time
	Source      string

	Summary     dataset.Summary
	Totals      []aggregate.BoroughTotal
	Seasonality []aggregate.SeasonalAverage
	Monthly     []aggregate.MonthlyCount

	Model     *model.Model // nil when the fit was degenerate
	Predicted []model.Predicted

	Charts ChartPaths
}

// New stamps run metadata onto the report data.
func New(source string) *Data {
	return &Data{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Source:      source,
	}
}

// Markdown renders the full report document.
func (d *Data) Markdown() string {
	var b strings.Builder
	b.WriteString("# NYPD Shooting Incidents\n\n")
	fmt.Fprintf(&b, "Generated %s · run `%s`\n\n", d.GeneratedAt.Format("2 January 2006 15:04 UTC"), d.RunID)
	fmt.Fprintf(&b, "Source: %s\n\n", d.Source)

	b.WriteString(d.Summary.Markdown())
	b.WriteString("\n")

	b.WriteString("## Incidents over time\n\n")
	fmt.Fprintf(&b, "![Incidents per day](%s)\n\n", d.Charts.Daily)

	b.WriteString("## Boroughs\n\n")
	fmt.Fprintf(&b, "![Incidents by borough](%s)\n\n", d.Charts.Boroughs)
	if len(d.Totals) > 0 {
		b.WriteString("| Borough | Incidents |\n|---|---|\n")
		for _, t := range d.Totals {
			fmt.Fprintf(&b, "| %s | %d |\n", t.Borough, t.Count)
		}
		b.WriteString("\n")
		low, high := d.Totals[0], d.Totals[len(d.Totals)-1]
		fmt.Fprintf(&b,
			"%s recorded the fewest incidents (%d) and %s the most (%d) over the covered period.\n\n",
			title(string(low.Borough)), low.Count, title(string(high.Borough)), high.Count)
	}

	b.WriteString("## Seasonality\n\n")
	fmt.Fprintf(&b, "![Average incidents per calendar month](%s)\n\n", d.Charts.Seasonality)
	if m, avg, ok := peakSeason(d.Seasonality); ok {
		fmt.Fprintf(&b, "Averaged across years, %s is the heaviest month (%.1f incidents per year).\n\n", m, avg)
	}

	b.WriteString("## Trend model\n\n")
	if d.Model == nil {
		b.WriteString("Too few monthly observations to fit the trend model; this section is omitted.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "![Actual vs fitted monthly counts](%s)\n\n", d.Charts.Fit)
	b.WriteString("Ordinary least squares of monthly incident count on month and borough:\n\n")
	b.WriteString("| Term | Coefficient |\n|---|---|\n")
	fmt.Fprintf(&b, "| Intercept (%s) | %.2f |\n", title(string(d.Model.Reference)), d.Model.Intercept)
	fmt.Fprintf(&b, "| Month (per month) | %.3f |\n", d.Model.Slope)
	for _, br := range sortedEffects(d.Model) {
		fmt.Fprintf(&b, "| %s | %+.2f |\n", title(string(br)), d.Model.BoroughEffect[br])
	}
	fmt.Fprintf(&b, "\nR² = %.3f. ", d.Model.R2)
	if d.Model.Slope < 0 {
		fmt.Fprintf(&b, "The fitted trend declines by about %.1f incidents per borough-month per year.\n", -d.Model.Slope*12)
	} else {
		fmt.Fprintf(&b, "The fitted trend rises by about %.1f incidents per borough-month per year.\n", d.Model.Slope*12)
	}
	b.WriteString("\nThe model is descriptive: a single full-data fit with borough as a dummy-coded factor, " +
		"so borough differences in level are captured but borough-specific trends are not.\n")
	return b.String()
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>NYPD Shooting Incidents</title>
<style>
body { font-family: Georgia, serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; }
img { max-width: 100%; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.3rem 0.7rem; text-align: left; }
pre { background: #f6f6f6; padding: 0.5rem; }
</style>
</head>
<body>
<pre>{{.Body}}</pre>
{{range .Images}}<p><img src="{{.}}" alt=""></p>
{{end}}</body>
</html>
`))

// HTML wraps the Markdown body in a minimal standalone page with the chart
// images inlined as <img> tags.
func (d *Data) HTML() (string, error) {
	images := []string{d.Charts.Daily, d.Charts.Boroughs, d.Charts.Seasonality}
	if d.Model != nil {
		images = append(images, d.Charts.Fit)
	}
	var b strings.Builder
	err := htmlTemplate.Execute(&b, struct {
		Body   string
		Images []string
	}{Body: d.Markdown(), Images: images})
	if err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return b.String(), nil
}

func peakSeason(avgs []aggregate.SeasonalAverage) (time.Month, float64, bool) {
	if len(avgs) == 0 {
		return 0, 0, false
	}
	best := avgs[0]
	for _, a := range avgs[1:] {
		if a.PerYear > best.PerYear {
			best = a
		}
	}
	return best.Month, best.PerYear, true
}

func sortedEffects(m *model.Model) []dataset.Borough {
	out := make([]dataset.Borough, 0, len(m.BoroughEffect))
	for b := range m.BoroughEffect {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func title(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
