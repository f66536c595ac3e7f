package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/daviddaadams/NYPDShootingIncidents/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		fmt.Printf("source_url: %s\n", c.SourceURL)
		fmt.Printf("output_dir: %s\n", c.OutputDir)
		fmt.Printf("report_format: %s\n", c.ReportFormat)
		fmt.Printf("http_timeout_sec: %d\n", c.HTTPTimeoutSec)
		fmt.Printf("chart_width_in: %.1f\n", c.ChartWidthIn)
		fmt.Printf("chart_height_in: %.1f\n", c.ChartHeightIn)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		switch key {
		case "source_url":
			c.SourceURL = val
		case "output_dir":
			c.OutputDir = val
		case "report_format":
			switch val {
			case "markdown", "html":
				c.ReportFormat = val
			default:
				return fmt.Errorf("invalid report_format: %s (use markdown or html)", val)
			}
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
			}
			c.HTTPTimeoutSec = i
		case "chart_width_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for chart_width_in: %v", val)
			}
			c.ChartWidthIn = f
		case "chart_height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for chart_height_in: %v", val)
			}
			c.ChartHeightIn = f
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
