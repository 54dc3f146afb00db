// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nhis-import/internal/docx"
	"github.com/pdiddy/nhis-import/internal/tariff"
)

var tariffsCmd = &cobra.Command{
	Use:   "tariffs",
	Short: "Extract priced G-DRG rows from the tariff DOCX",
	Long: `Tariffs reads every table of the G-DRG tariff document, tracks the MDC
category from each section header row, and writes one CSV row per priced
service with its age category. Rows without a code, name or usable price are
skipped.`,
	Args: cobra.NoArgs,
	RunE: runTariffs,
}

func init() {
	stageFlags(tariffsCmd, "tariffs", "tariff document (.docx)", "output CSV")
	rootCmd.AddCommand(tariffsCmd)
}

func runTariffs(cmd *cobra.Command, args []string) error {
	_, err := tariff.Run(cmd.Context(), tariffsConfig(), docx.FileReader{}, os.Stdout, logger)
	return err
}
