// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nhis-import/internal/drug"
)

var drugsCmd = &cobra.Command{
	Use:   "drugs",
	Short: "Normalize the medicines CSV into the drug import file",
	Long: `Drugs repairs names split across the name and unit columns of the
medicines CSV, then derives form, dispensing unit, generic name, strength,
bottle size and therapeutic category for each drug. Unit price and minimum
stock are left blank.`,
	Args: cobra.NoArgs,
	RunE: runDrugs,
}

func init() {
	stageFlags(drugsCmd, "drugs", "medicines CSV (default: medicines output)", "output CSV")
	rootCmd.AddCommand(drugsCmd)
}

func runDrugs(cmd *cobra.Command, args []string) error {
	_, err := drug.Run(cmd.Context(), drugsConfig(), os.Stdout, logger)
	return err
}
