package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/daviddaadams/NYPDShootingIncidents/internal/aggregate"
	"github.com/daviddaadams/NYPDShootingIncidents/internal/chart"
	"github.com/daviddaadams/NYPDShootingIncidents/internal/dataset"
	"github.com/daviddaadams/NYPDShootingIncidents/internal/model"
	"github.com/daviddaadams/NYPDShootingIncidents/internal/report"
)

var (
	repSource    string
	repOutputDir string
	repFormat    string
	repNoXLSX    bool
	repQuiet     bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full pipeline and render the analysis report",
	Example: `  nypdshootings report
  nypdshootings report --format html --output out/
  nypdshootings report --source ./rows.csv --no-xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		source := repSource
		if source == "" {
			source = c.SourceURL
		}
		outDir := repOutputDir
		if outDir == "" {
			outDir = c.OutputDir
		}
		format := repFormat
		if format == "" {
			format = c.ReportFormat
		}
		if format != "markdown" && format != "html" {
			return fmt.Errorf("unsupported --format: %s (use markdown|html)", format)
		}

		ctx := context.Background()
		timeout := time.Duration(c.HTTPTimeoutSec) * time.Second

		if !repQuiet {
			fmt.Printf("⚙ Fetching %s ...\n", source)
		}
		raw, err := dataset.Fetch(ctx, source, timeout)
		if err != nil {
			return err
		}

		incidents, summary := dataset.Clean(raw)
		if !repQuiet {
			fmt.Printf("✓ Cleaned: kept %d of %d rows (%d dropped)\n", summary.Kept, summary.RawRows, summary.Dropped())
		}
		if len(incidents) == 0 {
			return errors.New("no usable rows after cleaning")
		}

		daily := aggregate.Daily(incidents)
		totals := aggregate.BoroughTotals(incidents)
		monthly := aggregate.MonthlyByBorough(incidents)
		seasonality := aggregate.CalendarMonthAverages(monthly)

		data := report.New(source)
		data.Summary = summary
		data.Totals = totals
		data.Monthly = monthly
		data.Seasonality = seasonality

		m, err := model.Fit(monthly)
		switch {
		case errors.Is(err, model.ErrInsufficientData):
			fmt.Fprintf(os.Stderr, "⚠ Warning: %v; the report omits the trend model\n", err)
		case err != nil:
			return err
		default:
			data.Model = m
			data.Predicted = m.PredictAll(monthly)
		}

		chartsDir := filepath.Join(outDir, "charts")
		if err := os.MkdirAll(chartsDir, 0o755); err != nil {
			return fmt.Errorf("mkdir output dir: %w", err)
		}
		size := chart.Size{Width: c.ChartWidthIn, Height: c.ChartHeightIn}

		data.Charts = report.ChartPaths{
			Daily:       filepath.Join("charts", "daily.png"),
			Boroughs:    filepath.Join("charts", "boroughs.png"),
			Seasonality: filepath.Join("charts", "seasonality.png"),
			Fit:         filepath.Join("charts", "fit.png"),
		}
		if err := chart.DailyLine(daily, filepath.Join(outDir, data.Charts.Daily), size); err != nil {
			return err
		}
		if err := chart.BoroughBars(totals, filepath.Join(outDir, data.Charts.Boroughs), size); err != nil {
			return err
		}
		if err := chart.SeasonalityBars(seasonality, filepath.Join(outDir, data.Charts.Seasonality), size); err != nil {
			return err
		}
		if data.Model != nil {
			if err := chart.ActualVsPredicted(data.Predicted, filepath.Join(outDir, data.Charts.Fit), size); err != nil {
				return err
			}
		}

		var docPath, doc string
		if format == "html" {
			docPath = filepath.Join(outDir, "report.html")
			doc, err = data.HTML()
			if err != nil {
				return err
			}
		} else {
			docPath = filepath.Join(outDir, "report.md")
			doc = data.Markdown()
		}
		if err := os.WriteFile(docPath, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if !repQuiet {
			fmt.Printf("✓ Wrote %s\n", docPath)
		}

		if !repNoXLSX {
			wbPath := filepath.Join(outDir, "aggregates.xlsx")
			if err := report.WriteWorkbook(data, daily, wbPath); err != nil {
				return err
			}
			if !repQuiet {
				fmt.Printf("✓ Wrote %s\n", wbPath)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&repSource, "source", "", "CSV source URL or local file (default from config)")
	reportCmd.Flags().StringVarP(&repOutputDir, "output", "o", "", "output directory (default from config)")
	reportCmd.Flags().StringVar(&repFormat, "format", "", "report format: markdown|html (default from config)")
	reportCmd.Flags().BoolVar(&repNoXLSX, "no-xlsx", false, "skip the aggregates.xlsx workbook")
	reportCmd.Flags().BoolVar(&repQuiet, "quiet", false, "suppress non-essential output")
}
