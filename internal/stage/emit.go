// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stage holds the output step shared by every pipeline stage:
// write the CSV, optionally an XLSX copy and a YAML report, then print the
// run summary.
package stage

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/nhis-import/internal/logging"
	"github.com/pdiddy/nhis-import/internal/report"
	"github.com/pdiddy/nhis-import/internal/sheet"
	"github.com/pdiddy/nhis-import/pkg/types"
)

// Rower is implemented by every output record type.
type Rower interface {
	Row() []string
}

// Rows converts records to CSV rows in column order.
func Rows[T Rower](records []T) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return rows
}

// Emit writes rows under header to cfg.Output, plus the optional XLSX copy
// (sheetName) and YAML report, then prints rep to w.
func Emit(cfg types.StageConfig, sheetName string, header []string, rows [][]string, rep *report.Report, w io.Writer, log *zap.Logger) error {
	log = logging.OrNop(log)

	if err := sheet.WriteCSV(cfg.Output, header, rows); err != nil {
		return err
	}
	rep.Written = len(rows)

	if cfg.XLSX {
		path := sheet.XLSXPath(cfg.Output)
		if err := sheet.WriteXLSX(path, sheetName, header, rows); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		log.Info("wrote workbook", zap.String("path", path))
	}

	rep.Print(w)

	if cfg.ReportDir != "" {
		path, err := rep.Save(cfg.ReportDir)
		if err != nil {
			return err
		}
		log.Info("wrote run report", zap.String("path", path), zap.String("run_id", rep.RunID))
	}
	return nil
}
