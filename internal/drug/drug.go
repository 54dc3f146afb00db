// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package drug normalizes medicines-list records into drug catalog entries:
// it repairs names split across the name and unit columns, then derives the
// dosage form, dispensing unit, generic name, strength, bottle size and
// therapeutic category from the name.
package drug

import (
	"context"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/nhis-import/internal/logging"
	"github.com/pdiddy/nhis-import/internal/report"
	"github.com/pdiddy/nhis-import/internal/sheet"
	"github.com/pdiddy/nhis-import/internal/stage"
	"github.com/pdiddy/nhis-import/internal/textnorm"
	"github.com/pdiddy/nhis-import/pkg/types"
)

var (
	// rePackSize matches "(24's)", "(6s)", "(12 tabs)" and apostrophe variants.
	rePackSize = regexp.MustCompile("(?i)(\\(\\d+['`\\x{2019}]?s?\\)|\\(\\d+\\s*tabs?\\))")

	// reContinuation matches a unit column that carries the tail of a
	// strength cut off in the name column ("mg (24's) 1 Course").
	reContinuation = regexp.MustCompile(`(?i)^(mg|mcg|ml|iu|g)\b[^(]*`)

	reFormSuffix = regexp.MustCompile(`(?i)\s*(Tablet|Capsule|Injection|Syrup|Suspension|Cream|Ointment|Drops|Inhaler).*`)
	reStrength   = regexp.MustCompile(`(?i)(\d+\.?\d*\s*(mg|g|mcg|iu|%|microgram)[/\d\s]*(ml|g)?)`)
	reBottleSize = regexp.MustCompile(`(?i)(?:^|[,\s])(\d+\.?\d*)\s*ml\s*$`)
)

// Reconstruct rebuilds the full drug name from the name and unit columns.
// When unit carries a pack size, any strength continuation at the start of
// unit is appended to name, then the pack size unless name already has it.
func Reconstruct(name, unit string) string {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return name
	}
	pack := rePackSize.FindString(unit)
	if pack == "" {
		return name
	}
	pack = textnorm.Quotes(pack)

	if cont := reContinuation.FindString(unit); cont != "" {
		name += " " + strings.TrimSpace(cont)
	}
	if !strings.Contains(name, pack) {
		name += " " + pack
	}
	return name
}

// Form returns the dosage form named in a drug name, FormOther when none is.
func Form(name string) types.DrugForm {
	return types.DrugForm(formRules.First(name, string(types.FormOther)))
}

// UnitTypeFor returns the dispensing unit for a dosage form.
func UnitTypeFor(form types.DrugForm) types.UnitType {
	if u, ok := unitTypes[form]; ok {
		return u
	}
	return types.UnitPiece
}

// GenericName is the first word of name without a dosage-form suffix.
func GenericName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return reFormSuffix.ReplaceAllString(fields[0], "")
}

// Strength returns the first concentration in name ("500 mg", "125 mg/5 mL"),
// or "" when there is none.
func Strength(name string) string {
	return strings.TrimSpace(reStrength.FindString(name))
}

// BottleSize returns the container volume in mL when name ends in a
// standalone volume ("..., 100 mL"). The mL of a concentration such as
// "125 mg/5 mL" does not count.
func BottleSize(name string) *int {
	m := reBottleSize.FindStringSubmatch(name)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || int(v) == 0 {
		return nil
	}
	size := int(v)
	return &size
}

// Category returns the therapeutic class of a drug name.
func Category(name string) string {
	return categoryRules.First(name, CategoryOther)
}

// Normalize builds a catalog entry from one medicines-list record.
func Normalize(code, name, unit string) types.Drug {
	full := Reconstruct(name, unit)
	form := Form(full)
	return types.Drug{
		DrugCode:    code,
		Name:        full,
		GenericName: GenericName(full),
		Form:        form,
		Strength:    Strength(full),
		UnitType:    UnitTypeFor(form),
		BottleSize:  BottleSize(full),
		Category:    Category(full),
		NHISCode:    code,
	}
}

// Stats counts the medicines rows NormalizeAll saw.
type Stats struct {
	Rows       int
	Incomplete int
}

// NormalizeAll converts every medicines-list row with a code and a name.
func NormalizeAll(records []sheet.Record, log *zap.Logger) ([]types.Drug, Stats) {
	log = logging.OrNop(log)

	var (
		out   []types.Drug
		stats Stats
	)
	for _, rec := range records {
		stats.Rows++
		code, name := rec.Get("nhis_code"), rec.Get("name")
		if code == "" || name == "" {
			stats.Incomplete++
			log.Debug("skipped medicine without code or name", zap.String("code", code))
			continue
		}
		out = append(out, Normalize(code, name, rec.Get("unit")))
	}
	return out, stats
}

// Run reads the medicines CSV at cfg.Input and writes the drug import file to
// cfg.Output.
func Run(ctx context.Context, cfg types.StageConfig, w io.Writer, log *zap.Logger) (*report.Report, error) {
	log = logging.OrNop(log)
	rep := report.New("drugs", cfg.Input, cfg.Output, "drugs")

	records, err := sheet.ReadRecords(cfg.Input, "nhis_code", "name")
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Info("read medicines", zap.String("path", cfg.Input), zap.Int("rows", len(records)))

	drugs, stats := NormalizeAll(records, log)
	rep.Read = stats.Rows
	rep.Skip("missing code or name", stats.Incomplete)

	categories, forms, units := report.Counter{}, report.Counter{}, report.Counter{}
	for _, d := range drugs {
		categories.Add(d.Category)
		forms.Add(string(d.Form))
		units.Add(string(d.UnitType))
	}
	rep.AddBreakdown("Categories", categories)
	rep.AddBreakdown("Forms", forms)
	rep.AddBreakdown("Unit types", units)

	if err := stage.Emit(cfg, "Drugs", types.DrugHeader, stage.Rows(drugs), rep, w, log); err != nil {
		return nil, err
	}
	return rep, nil
}
