// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nhis-import CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/nhis-import/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from the log.* settings before any subcommand runs.
var logger = zap.NewNop()

// rootCmd is the base command for the nhis-import CLI.
var rootCmd = &cobra.Command{
	Use:   "nhis-import",
	Short: "Convert Ghana NHIS tariff documents into catalog import files",
	Long: `nhis-import turns the NHIS G-DRG tariff document and medicines list into
CSV files for the hospital's lab service, procedure and drug catalogs.

Each stage is a subcommand and can be run on its own:

  tariffs     G-DRG DOCX       -> gdrg_tariffs_import.csv
  medicines   medicines PDF    -> nhis_tariffs_import.csv
  labs        tariff CSV       -> nhis_lab_services_for_import.csv
  procedures  tariff CSV       -> nhis_procedures_for_import.csv
  drugs       medicines CSV    -> nhis_drugs_for_import.csv

Paths default to files under the data directory (nhis-data).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}

		log, err := logging.New(viper.GetString("log.level"), viper.GetString("log.format"))
		if err != nil {
			return err
		}
		logger = log
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./nhis-import.yaml or ~/.config/nhis-import/config.yaml)")
	pf.String("env-file", ".env", "dotenv file loaded before reading NHIS_IMPORT_* variables")
	pf.String("data-dir", "nhis-data", "directory holding the source documents and CSV outputs")
	pf.Bool("xlsx", false, "also write an .xlsx workbook next to each CSV output")
	pf.String("report-dir", "", "write a <stage>-report.yaml run report into this directory")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")

	viper.SetDefault("data_dir", "nhis-data")
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "console")

	viper.BindPFlag("data_dir", pf.Lookup("data-dir"))
	viper.BindPFlag("output.xlsx", pf.Lookup("xlsx"))
	viper.BindPFlag("output.report_dir", pf.Lookup("report-dir"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.format", pf.Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nhis-import")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nhis-import"))
		}
	}

	viper.SetEnvPrefix("NHIS_IMPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
