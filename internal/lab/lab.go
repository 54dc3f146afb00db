// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lab turns the INVESTIGATION rows of the tariff CSV into lab-service
// import records: a test category, a sample type and a turnaround estimate
// per investigation. Price is left blank for the hospital to set.
package lab

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/nhis-import/internal/logging"
	"github.com/pdiddy/nhis-import/internal/report"
	"github.com/pdiddy/nhis-import/internal/sheet"
	"github.com/pdiddy/nhis-import/internal/stage"
	"github.com/pdiddy/nhis-import/pkg/types"
)

// InvestigationCategory is the MDC category holding lab and imaging tests.
const InvestigationCategory = "INVESTIGATION"

// Category returns the lab category for a test name; General when no rule
// matches.
func Category(name string) string {
	return categoryRules.First(name, CategoryGeneral)
}

// SampleType returns the specimen for a test name: Blood when no rule
// matches, empty for tests that take no specimen.
func SampleType(name string) string {
	return sampleRules.First(name, SampleBlood)
}

// Turnaround returns the expected result time for a test in category.
func Turnaround(category, name string) string {
	if rules, ok := turnaroundOverrides[category]; ok {
		if t, ok := rules.Match(name); ok {
			return t
		}
	}
	if t, ok := turnaround[category]; ok {
		return t
	}
	return turnaround[CategoryGeneral]
}

// IsInvestigation reports whether an MDC category is the investigation one.
func IsInvestigation(category string) bool {
	return strings.EqualFold(strings.TrimSpace(category), InvestigationCategory)
}

// Stats counts the tariff rows Classify saw.
type Stats struct {
	Rows       int
	Other      int // rows outside the investigation category
	Incomplete int // investigation rows without code or name
}

// Classify converts the investigation rows of the tariff CSV.
func Classify(records []sheet.Record, log *zap.Logger) ([]types.LabService, Stats) {
	log = logging.OrNop(log)

	var (
		out   []types.LabService
		stats Stats
	)
	for _, rec := range records {
		stats.Rows++
		if !IsInvestigation(rec.Get("mdc_category")) {
			stats.Other++
			continue
		}
		code, name := rec.Get("code"), rec.Get("name")
		if code == "" || name == "" {
			stats.Incomplete++
			log.Debug("skipped investigation without code or name", zap.String("code", code))
			continue
		}
		category := Category(name)
		out = append(out, types.LabService{
			Code:           code,
			Name:           name,
			Category:       category,
			SampleType:     SampleType(name),
			TurnaroundTime: Turnaround(category, name),
			NHISCode:       code,
		})
	}
	return out, stats
}

// Run reads the tariff CSV at cfg.Input and writes the lab-service import
// file to cfg.Output.
func Run(ctx context.Context, cfg types.StageConfig, w io.Writer, log *zap.Logger) (*report.Report, error) {
	log = logging.OrNop(log)
	rep := report.New("labs", cfg.Input, cfg.Output, "lab services")

	records, err := sheet.ReadRecords(cfg.Input, "code", "name", "mdc_category")
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	services, stats := Classify(records, log)
	log.Info("classified investigations", zap.Int("rows", stats.Rows), zap.Int("services", len(services)))
	rep.Read = stats.Rows
	rep.Skip("not investigations", stats.Other)
	rep.Skip("missing code or name", stats.Incomplete)

	categories, samples := report.Counter{}, report.Counter{}
	for _, s := range services {
		categories.Add(s.Category)
		if s.SampleType == SampleNone {
			samples.Add("none")
		} else {
			samples.Add(s.SampleType)
		}
	}
	rep.AddBreakdown("Categories", categories)
	rep.AddBreakdown("Sample types", samples)

	if err := stage.Emit(cfg, "Lab Services", types.LabServiceHeader, stage.Rows(services), rep, w, log); err != nil {
		return nil, err
	}
	return rep, nil
}
