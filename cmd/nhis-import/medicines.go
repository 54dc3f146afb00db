// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nhis-import/internal/medicines"
	"github.com/pdiddy/nhis-import/internal/pdftext"
)

var medicinesCmd = &cobra.Command{
	Use:   "medicines",
	Short: "Extract the NHIS medicines list from its PDF",
	Long: `Medicines converts the medicines-list PDF to text with pdftotext, either
from PATH or inside a poppler container, and rebuilds one record per medicine
from the code, name, unit and price lines. Pages before --page-offset are
skipped.`,
	Args: cobra.NoArgs,
	RunE: runMedicines,
}

func init() {
	stageFlags(medicinesCmd, "medicines", "medicines list (.pdf)", "output CSV")
	medicinesCmd.Flags().Int("page-offset", defaultPageOffset, "zero-based page where the medicines table starts")
	medicinesCmd.Flags().String("backend", "pdftotext", "pdf text backend: pdftotext or container")
	medicinesCmd.Flags().String("image", pdftext.DefaultImage, "container image for the container backend")

	viper.BindPFlag("medicines.page_offset", medicinesCmd.Flags().Lookup("page-offset"))
	viper.BindPFlag("pdf.backend", medicinesCmd.Flags().Lookup("backend"))
	viper.BindPFlag("pdf.image", medicinesCmd.Flags().Lookup("image"))

	rootCmd.AddCommand(medicinesCmd)
}

func runMedicines(cmd *cobra.Command, args []string) error {
	cfg := medicinesConfig()
	ex, err := pdftext.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	_, err = medicines.Run(cmd.Context(), cfg, ex, os.Stdout, logger)
	return err
}
