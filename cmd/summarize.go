package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/daviddaadams/NYPDShootingIncidents/internal/dataset"
)

var (
	sumSource string
	sumOutput string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Fetch and clean the dataset, then print the cleaning diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		source := sumSource
		if source == "" {
			source = c.SourceURL
		}
		raw, err := dataset.Fetch(context.Background(), source, time.Duration(c.HTTPTimeoutSec)*time.Second)
		if err != nil {
			return err
		}
		_, summary := dataset.Clean(raw)
		md := summary.Markdown()

		if sumOutput != "" {
			if err := os.WriteFile(sumOutput, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote summary to %s\n", sumOutput)
			return nil
		}
		fmt.Println(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVar(&sumSource, "source", "", "CSV source URL or local file (default from config)")
	summarizeCmd.Flags().StringVarP(&sumOutput, "output", "o", "", "optional path to write the summary (Markdown)")
}
