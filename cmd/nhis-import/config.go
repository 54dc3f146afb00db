// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nhis-import/internal/catalog"
	"github.com/pdiddy/nhis-import/pkg/types"
)

// File names under the data directory.
const (
	tariffDocument    = "gdrg_tariffs.docx"
	medicinesDocument = "nhis_medicines_list.pdf"
	tariffCSV         = "gdrg_tariffs_import.csv"
	medicinesCSV      = "nhis_tariffs_import.csv"
	labsCSV           = "nhis_lab_services_for_import.csv"
	proceduresCSV     = "nhis_procedures_for_import.csv"
	drugsCSV          = "nhis_drugs_for_import.csv"
	catalogDB         = "catalog.db"

	defaultPageOffset = 2
)

// stageFlags registers --input and --output on cmd, bound to <key>.input
// and <key>.output.
func stageFlags(cmd *cobra.Command, key, inputHelp, outputHelp string) {
	cmd.Flags().String("input", "", inputHelp)
	cmd.Flags().String("output", "", outputHelp)
	viper.BindPFlag(key+".input", cmd.Flags().Lookup("input"))
	viper.BindPFlag(key+".output", cmd.Flags().Lookup("output"))
}

// dataPath returns the configured value of key, or name under the data
// directory when unset.
func dataPath(key, name string) string {
	return configuredOr(key, dataFile(name))
}

func dataFile(name string) string {
	return filepath.Join(viper.GetString("data_dir"), name)
}

func configuredOr(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

// stageConfig resolves a stage's paths. The input defaults to defaultInput,
// which for the classifier stages is the upstream stage's output.
func stageConfig(key, defaultInput, outputName string) types.StageConfig {
	return types.StageConfig{
		Input:     configuredOr(key+".input", defaultInput),
		Output:    dataPath(key+".output", outputName),
		XLSX:      viper.GetBool("output.xlsx"),
		ReportDir: viper.GetString("output.report_dir"),
	}
}

func tariffsConfig() types.StageConfig {
	return stageConfig("tariffs", dataFile(tariffDocument), tariffCSV)
}

func medicinesConfig() types.MedicinesConfig {
	viper.SetDefault("medicines.page_offset", defaultPageOffset)
	viper.SetDefault("pdf.backend", string(types.BackendPdftotext))
	return types.MedicinesConfig{
		StageConfig: stageConfig("medicines", dataFile(medicinesDocument), medicinesCSV),
		PageOffset:  viper.GetInt("medicines.page_offset"),
		Backend:     types.PDFBackend(viper.GetString("pdf.backend")),
		Image:       viper.GetString("pdf.image"),
	}
}

func labsConfig() types.StageConfig {
	return stageConfig("labs", tariffsConfig().Output, labsCSV)
}

func proceduresConfig() types.StageConfig {
	return stageConfig("procedures", tariffsConfig().Output, proceduresCSV)
}

func drugsConfig() types.StageConfig {
	return stageConfig("drugs", medicinesConfig().Output, drugsCSV)
}

func catalogConfig() types.CatalogConfig {
	return types.CatalogConfig{
		DBPath:     dataPath("catalog.db", catalogDB),
		MaxResults: viper.GetInt("catalog.max_results"),
	}
}

// catalogSources lists each stage output by kind.
func catalogSources() []catalog.Source {
	return []catalog.Source{
		{Kind: catalog.KindTariff, Path: tariffsConfig().Output},
		{Kind: catalog.KindMedicine, Path: medicinesConfig().Output},
		{Kind: catalog.KindLab, Path: labsConfig().Output},
		{Kind: catalog.KindProcedure, Path: proceduresConfig().Output},
		{Kind: catalog.KindDrug, Path: drugsConfig().Output},
	}
}
