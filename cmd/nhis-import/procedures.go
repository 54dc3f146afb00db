// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nhis-import/internal/procedure"
)

var proceduresCmd = &cobra.Command{
	Use:   "procedures",
	Short: "Build the procedure import file from surgical tariffs",
	Long: `Procedures keeps the tariff rows of the eight surgical and procedural MDC
categories, drops repeated codes, and types each procedure minor or major by
keyword and tariff. Prices are left blank for the hospital to set.`,
	Args: cobra.NoArgs,
	RunE: runProcedures,
}

func init() {
	stageFlags(proceduresCmd, "procedures", "tariff CSV (default: tariffs output)", "output CSV")
	rootCmd.AddCommand(proceduresCmd)
}

func runProcedures(cmd *cobra.Command, args []string) error {
	_, err := procedure.Run(cmd.Context(), proceduresConfig(), os.Stdout, logger)
	return err
}
