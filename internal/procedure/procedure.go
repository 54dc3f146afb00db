// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package procedure turns the surgical rows of the tariff CSV into procedure
// import records, typed minor or major.
package procedure

import (
	"context"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/nhis-import/internal/classify"
	"github.com/pdiddy/nhis-import/internal/logging"
	"github.com/pdiddy/nhis-import/internal/report"
	"github.com/pdiddy/nhis-import/internal/sheet"
	"github.com/pdiddy/nhis-import/internal/stage"
	"github.com/pdiddy/nhis-import/pkg/types"
)

// MinorPriceThreshold is the tariff below which an unmatched procedure is minor.
const MinorPriceThreshold = 400.0

// displayNames maps the procedural MDC categories to catalog labels. Its keys
// are also the allow-list: other categories are not procedures.
var displayNames = map[string]string{
	"ADULT SURGERY":            "General Surgery",
	"PAEDIATRIC SURGERY":       "Paediatric Surgery",
	"OBSTETRICS & GYNAECOLOGY": "Obstetrics & Gynaecology",
	"ENT":                      "ENT",
	"OPHTHALMOLOGY":            "Eye",
	"DENTAL":                   "Dental",
	"ORTHOPAEDICS":             "Orthopaedics",
	"RECONSTRUCTIVE SURGERY":   "Plastic Surgery",
}

// minorKeywords mark ward and clinic procedures regardless of price. Phrases
// are specific enough not to catch theatre operations such as open reductions
// or tumour removals, which fall through to the price check.
var minorKeywords = []string{
	"extraction", "filling", "dressing", "circumcision", "biopsy",
	"observation", "incision and drainage", "i & d", "suturing", "suture",
	"scaling", "aspiration", "catheterisation", "catheterization",
	"injection", "closed reduction", "manipulation", "cauterisation", "cautery",
	"wound toilet", "examination under", "syringing",
	"removal of stitches", "removal of pop", "removal of plaster",
	"foreign body from ear", "foreign body from nose", "foreign body from eye",
	"paracentesis", "splint", "plaster", "pop ",
}

// Allowed reports whether an MDC category is procedural.
func Allowed(category string) bool {
	_, ok := displayNames[normalizeCategory(category)]
	return ok
}

// DisplayCategory returns the catalog label for an MDC category, or the
// category unchanged when no label is mapped.
func DisplayCategory(category string) string {
	if name, ok := displayNames[normalizeCategory(category)]; ok {
		return name
	}
	return category
}

func normalizeCategory(category string) string {
	return strings.ToUpper(strings.Join(strings.Fields(category), " "))
}

// Type classifies a procedure. A minor keyword decides first; otherwise a
// price below MinorPriceThreshold is minor. A price that does not parse
// counts as major.
func Type(name, price string) types.ProcedureType {
	if classify.ContainsAny(classify.Normalize(name), minorKeywords) {
		return types.ProcedureMinor
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(price), 64); err == nil && v < MinorPriceThreshold {
		return types.ProcedureMinor
	}
	return types.ProcedureMajor
}

// Description carries the age band of age-specific tariffs.
func Description(age types.AgeCategory) string {
	switch age {
	case types.AgeAdult, types.AgeChild:
		return "Age category: " + string(age)
	}
	return ""
}

// Stats counts the tariff rows Classify saw.
type Stats struct {
	Rows       int
	Other      int // rows outside the procedural categories
	Duplicates int
	Incomplete int
}

// Classify converts the procedural rows of the tariff CSV, keeping the first
// row for each code.
func Classify(records []sheet.Record, log *zap.Logger) ([]types.Procedure, Stats) {
	log = logging.OrNop(log)

	var (
		out   []types.Procedure
		seen  = make(map[string]bool)
		stats Stats
	)
	for _, rec := range records {
		stats.Rows++
		category := rec.Get("mdc_category")
		if !Allowed(category) {
			stats.Other++
			continue
		}
		code, name := rec.Get("code"), rec.Get("name")
		if code == "" || name == "" {
			stats.Incomplete++
			continue
		}
		if seen[code] {
			stats.Duplicates++
			log.Debug("skipped duplicate procedure code", zap.String("code", code), zap.String("category", category))
			continue
		}
		seen[code] = true

		age := types.AgeCategory(rec.Get("age_category"))
		if age == "" {
			age = types.AgeCategoryFromCode(code)
		}
		out = append(out, types.Procedure{
			Code:        code,
			Name:        name,
			Category:    DisplayCategory(category),
			Type:        Type(name, rec.Get("tariff_price")),
			Description: Description(age),
			NHISCode:    code,
		})
	}
	return out, stats
}

// Run reads the tariff CSV at cfg.Input and writes the procedure import file
// to cfg.Output.
func Run(ctx context.Context, cfg types.StageConfig, w io.Writer, log *zap.Logger) (*report.Report, error) {
	log = logging.OrNop(log)
	rep := report.New("procedures", cfg.Input, cfg.Output, "procedures")

	records, err := sheet.ReadRecords(cfg.Input, "code", "name", "mdc_category", "tariff_price")
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	procs, stats := Classify(records, log)
	log.Info("classified procedures", zap.Int("rows", stats.Rows), zap.Int("procedures", len(procs)))
	rep.Read = stats.Rows
	rep.Skip("not procedural categories", stats.Other)
	rep.Skip("duplicate codes", stats.Duplicates)
	rep.Skip("missing code or name", stats.Incomplete)

	categories, kinds := report.Counter{}, report.Counter{}
	for _, p := range procs {
		categories.Add(p.Category)
		kinds.Add(string(p.Type))
	}
	rep.AddBreakdown("Categories", categories)
	rep.AddBreakdown("Types", kinds)

	if err := stage.Emit(cfg, "Procedures", types.ProcedureHeader, stage.Rows(procs), rep, w, log); err != nil {
		return nil, err
	}
	return rep, nil
}
