// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nhis-import/internal/lab"
)

var labsCmd = &cobra.Command{
	Use:   "labs",
	Short: "Build the lab-service import file from INVESTIGATION tariffs",
	Long: `Labs keeps the INVESTIGATION rows of the tariff CSV and assigns each one
a test category, a sample type and a turnaround estimate. Prices are left
blank for the hospital to set.`,
	Args: cobra.NoArgs,
	RunE: runLabs,
}

func init() {
	stageFlags(labsCmd, "labs", "tariff CSV (default: tariffs output)", "output CSV")
	rootCmd.AddCommand(labsCmd)
}

func runLabs(cmd *cobra.Command, args []string) error {
	_, err := lab.Run(cmd.Context(), labsConfig(), os.Stdout, logger)
	return err
}
