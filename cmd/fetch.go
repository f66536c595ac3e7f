package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/daviddaadams/NYPDShootingIncidents/internal/dataset"
)

var (
	fetchSource string
	fetchOutput string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the raw incident CSV to a local file",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		source := fetchSource
		if source == "" {
			source = c.SourceURL
		}
		n, err := dataset.Download(context.Background(), source, fetchOutput, time.Duration(c.HTTPTimeoutSec)*time.Second)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s (%d bytes)\n", fetchOutput, n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchSource, "source", "", "CSV source URL (default from config)")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "nypd_shootings.csv", "path to write the raw CSV")
}
