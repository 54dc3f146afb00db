// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nhis-import/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Load, search and export the stage outputs (load, search, export)",
	Long: `Catalog keeps a local SQLite database of every stage output so tariffs,
medicines, lab services, procedures and drugs can be searched together. Use
subcommands to load the CSVs, query them, or export them.`,
}

// --- load subcommand ---

var catalogLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the stage output CSVs into the catalog",
	Long: `Load reads each stage output CSV and replaces the catalog rows of that
kind. Outputs that have not changed since the last load are skipped; outputs
that do not exist yet are reported as failed.`,
	Args: cobra.NoArgs,
	RunE: runCatalogLoad,
}

func runCatalogLoad(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Load(cmd.Context(), catalogSources(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed == summary.Total() {
		return fmt.Errorf("no stage outputs could be loaded")
	}
	return nil
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog by name",
	Long: `Search matches the query against entry names and categories, ranked by
relevance when the full-text index is available. Filter with --kind and
--category.`,
	RunE: runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	if opts.Query == "" && opts.Kind == "" && opts.Category == "" {
		return fmt.Errorf("query or filter required: provide a search query, --kind, or --category")
	}

	store, err := catalog.NewStore(catalogConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()
	if !store.FullText() && opts.Query != "" {
		fmt.Fprintln(os.Stderr, "note: full-text index unavailable, matching substrings (build with -tags sqlite_fts5)")
	}

	results, err := store.Search(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []catalog.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-9s  %-12s  %-50s  %s\n", "Rank", "Kind", "Code", "Name", "Category")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range results {
		name := r.Name
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-9s  %-12s  %-50s  %s\n", i+1, r.Kind, r.Code, name, r.Category)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the catalog (or a filtered subset) to catalog-export.yaml
or catalog-export.json next to the database. Supports the same filter flags
as search.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(catalogConfig(), logger)
	if err != nil {
		return err
	}
	defer store.Close()

	path, err := store.Export(cmd.Context(), format, opts)
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, args []string) (catalog.QueryOptions, error) {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}
	kindName, _ := cmd.Flags().GetString("kind")
	kind, err := catalog.ParseKind(kindName)
	if err != nil {
		return catalog.QueryOptions{}, err
	}
	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      queryText,
		Kind:       kind,
		Category:   category,
		MaxResults: limit,
	}, nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("db", "", "catalog database (default: <data-dir>/catalog.db)")
	catalogCmd.PersistentFlags().Int("max-results", 20, "maximum number of search results")
	viper.BindPFlag("catalog.db", catalogCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("catalog.max_results", catalogCmd.PersistentFlags().Lookup("max-results"))

	// Search flags.
	catalogSearchCmd.Flags().String("query", "", "full-text search query")
	catalogSearchCmd.Flags().String("kind", "", "filter by kind: tariff, medicine, lab, procedure, drug")
	catalogSearchCmd.Flags().String("category", "", "filter by exact category")
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogSearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", catalog.FormatYAML, "export format: yaml or json")
	catalogExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	catalogExportCmd.Flags().String("kind", "", "filter by kind for partial export")
	catalogExportCmd.Flags().String("category", "", "filter by category for partial export")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogLoadCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
