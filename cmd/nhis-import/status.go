// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nhis-import/internal/report"
)

// stageNames lists the stages in pipeline order, matching their report names.
var stageNames = []string{"tariffs", "medicines", "labs", "procedures", "drugs"}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the last run of each stage from its saved report",
	Long: `Status reads the <stage>-report.yaml files in the report directory
(--report-dir or output.report_dir) and prints when each stage last ran and
how many rows it read, wrote and skipped.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("output.report_dir")
	if dir == "" {
		return fmt.Errorf("no report directory: set --report-dir or output.report_dir")
	}
	reports, err := report.Latest(dir, stageNames)
	if err != nil {
		return err
	}
	report.Status(os.Stdout, stageNames, reports)
	return nil
}
