// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tariff extracts priced G-DRG tariff rows from the tables of the
// NHIS tariff document.
//
// The document lists services in three-column tables. A section begins with
// a header row ("G-DRG" | <MDC category> | "Tariff (GH₵)") and every priced
// row after it belongs to that category until the next header.
package tariff

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/nhis-import/internal/docx"
	"github.com/pdiddy/nhis-import/internal/logging"
	"github.com/pdiddy/nhis-import/internal/report"
	"github.com/pdiddy/nhis-import/internal/stage"
	"github.com/pdiddy/nhis-import/pkg/types"
)

const (
	// headerToken is the first cell of a section header row.
	headerToken = "G-DRG"

	// placeholderPrice marks a service with no national tariff.
	placeholderPrice = "-"
)

// currencyMarkers identify the price column title of a header row.
var currencyMarkers = []string{"GH₵", "GH¢", "GHS", "GHC"}

// rowKind is the outcome of scanning one table row.
type rowKind int

const (
	rowTariff rowKind = iota
	rowHeader
	rowIncomplete
	rowBadPrice
)

// Stats counts the rows Extract saw, by outcome.
type Stats struct {
	Rows       int
	Headers    int
	Incomplete int
	BadPrice   int
}

// scanState is the accumulator threaded through a table scan: the category
// of the most recent header row.
type scanState struct {
	category string
}

// next classifies one row. A header row returns the updated state; a valid
// tariff row returns the row under the current category.
func (s scanState) next(cells []string) (scanState, types.TariffRow, rowKind) {
	if len(cells) < 3 {
		return s, types.TariffRow{}, rowIncomplete
	}
	code, name, price := strings.TrimSpace(cells[0]), strings.TrimSpace(cells[1]), strings.TrimSpace(cells[2])

	if code == headerToken && hasCurrencyMarker(price) {
		return scanState{category: name}, types.TariffRow{}, rowHeader
	}
	if code == "" || name == "" || price == "" {
		return s, types.TariffRow{}, rowIncomplete
	}
	cleaned, ok := CleanPrice(price)
	if !ok {
		return s, types.TariffRow{}, rowBadPrice
	}
	return s, types.TariffRow{
		Code:        code,
		Name:        name,
		Category:    s.category,
		Price:       cleaned,
		AgeCategory: types.AgeCategoryFromCode(code),
	}, rowTariff
}

func hasCurrencyMarker(cell string) bool {
	upper := strings.ToUpper(cell)
	for _, m := range currencyMarkers {
		if strings.Contains(upper, m) {
			return true
		}
	}
	return false
}

// CleanPrice strips every character except digits and the decimal point.
// It reports false for placeholders and for anything that does not then
// parse as a number ("", "-", ".", "1.2.3").
func CleanPrice(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == placeholderPrice {
		return "", false
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
	if cleaned == "" || cleaned == "." {
		return "", false
	}
	if _, err := strconv.ParseFloat(cleaned, 64); err != nil {
		return "", false
	}
	return cleaned, true
}

// Extract scans tables in order and returns the priced rows. Malformed rows
// are skipped and counted, never reported as errors.
func Extract(tables []docx.Table, log *zap.Logger) ([]types.TariffRow, Stats) {
	log = logging.OrNop(log)

	var (
		state scanState
		rows  []types.TariffRow
		stats Stats
	)
	for ti, table := range tables {
		for ri, cells := range table.Rows {
			stats.Rows++
			var (
				row  types.TariffRow
				kind rowKind
			)
			state, row, kind = state.next(cells)
			switch kind {
			case rowTariff:
				rows = append(rows, row)
			case rowHeader:
				stats.Headers++
				log.Debug("tariff section", zap.String("category", state.category), zap.Int("table", ti))
			case rowIncomplete:
				stats.Incomplete++
				log.Debug("skipped incomplete row", zap.Int("table", ti), zap.Int("row", ri), zap.Strings("cells", cells))
			case rowBadPrice:
				stats.BadPrice++
				log.Debug("skipped unpriced row", zap.Int("table", ti), zap.Int("row", ri), zap.Strings("cells", cells))
			}
		}
	}
	return rows, stats
}

// Run reads the tariff document at cfg.Input, extracts its rows, and writes
// gdrg_tariffs_import.csv to cfg.Output.
func Run(ctx context.Context, cfg types.StageConfig, reader docx.Reader, w io.Writer, log *zap.Logger) (*report.Report, error) {
	log = logging.OrNop(log)
	rep := report.New("tariffs", cfg.Input, cfg.Output, "tariff rows")

	tables, err := reader.Tables(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("reading tariff document: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Info("read tariff document", zap.String("path", cfg.Input), zap.Int("tables", len(tables)))

	rows, stats := Extract(tables, log)
	rep.Read = stats.Rows
	rep.Skip("section headers", stats.Headers)
	rep.Skip("missing code, name or price", stats.Incomplete)
	rep.Skip("unparseable price", stats.BadPrice)

	categories, ages := report.Counter{}, report.Counter{}
	for _, r := range rows {
		categories.Add(r.Category)
		ages.Add(string(r.AgeCategory))
	}
	rep.AddBreakdown("MDC categories", categories)
	rep.AddBreakdown("Age categories", ages)

	if err := stage.Emit(cfg, "G-DRG Tariffs", types.TariffHeader, stage.Rows(rows), rep, w, log); err != nil {
		return nil, err
	}
	return rep, nil
}
