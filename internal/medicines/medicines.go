// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package medicines rebuilds NHIS medicines-list records from the text of
// the medicines PDF.
//
// pdftotext emits each table cell on its own line, so one record spans
// several lines: "<CODE> <name>", an optional unit-of-pricing line, and a
// price line. Lines are classified one at a time and folded into the record
// in progress, which is flushed when the next record starts.
package medicines

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/nhis-import/internal/logging"
	"github.com/pdiddy/nhis-import/internal/pdftext"
	"github.com/pdiddy/nhis-import/internal/report"
	"github.com/pdiddy/nhis-import/internal/stage"
	"github.com/pdiddy/nhis-import/internal/textnorm"
	"github.com/pdiddy/nhis-import/pkg/types"
)

// maxUnitLen bounds unit-of-pricing lines; longer lines are name fragments.
const maxUnitLen = 30

var (
	reRecordStart = regexp.MustCompile(`^([A-Z0-9]{2,})\s+(.+)$`)
	reHasLetter   = regexp.MustCompile(`[A-Z]`)
	rePrice       = regexp.MustCompile(`^(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)(?:\s*[A-Za-z0-9]{1,3})?$`)

	rePageMarker = regexp.MustCompile(`(?i)^(page\s+\d+(\s+of\s+\d+)?|\d+\s+of\s+\d+|-\s*\d+\s*-)$`)
)

// boilerplatePrefixes are lowercase prefixes of titles and column headings.
var boilerplatePrefixes = []string{
	"code",
	"medicine name",
	"name of medicine",
	"generic name",
	"unit of pricing",
	"price",
	"level of prescribing",
	"nhis medicines list",
	"national health insurance",
	"ghana health service",
	"ministry of health",
}

// unitKeywords mark unit-of-pricing lines (lowercase substrings).
var unitKeywords = []string{
	"tablet", "tabs", "capsule", "caps", "vial", "ampoule", "amp", "bottle",
	"tube", "sachet", "pessary", "suppositor", "course", "pack", "'s)",
	"ml", "mg", "dose", "inhaler", "piece", "kit", "bag", "pen", "cartridge",
}

// recordState tags how much of the record in progress has been seen.
type recordState int

const (
	stateIdle   recordState = iota // no record started
	stateNamed                     // code and name seen, no price yet
	statePriced                    // code, name and price seen
)

// inProgress is the partially built record.
type inProgress struct {
	state recordState
	rec   types.MedicineRecord
}

// complete reports whether code, name and price have all been observed.
func (p inProgress) complete() bool {
	return p.state == statePriced
}

// lineKind is the classification of one text line.
type lineKind int

const (
	lineBoilerplate lineKind = iota
	lineRecordStart
	lineUnit
	linePrice
	lineOther
)

// Stats counts what Parse did with the text.
type Stats struct {
	Lines       int
	Boilerplate int
	Dropped     int // lines matching no rule, or unit/price lines with no record started
	Incomplete  int // records flushed without a price
}

// classify decides what one cleaned line is. The rules are tested in order.
func classify(line string) (lineKind, []string) {
	if isBoilerplate(line) {
		return lineBoilerplate, nil
	}
	if m := reRecordStart.FindStringSubmatch(line); m != nil && reHasLetter.MatchString(m[1]) {
		return lineRecordStart, m
	}
	if len(line) < maxUnitLen && containsAny(strings.ToLower(line), unitKeywords) {
		return lineUnit, nil
	}
	if m := rePrice.FindStringSubmatch(line); m != nil {
		return linePrice, m
	}
	return lineOther, nil
}

func isBoilerplate(line string) bool {
	if line == "" || rePageMarker.MatchString(line) {
		return true
	}
	lower := strings.ToLower(line)
	for _, p := range boilerplatePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Parse rebuilds records from page texts, starting at page pageOffset
// (zero-based). Lines that fit no rule are dropped; records that never saw a
// price are discarded when flushed.
func Parse(pages []string, pageOffset int, log *zap.Logger) ([]types.MedicineRecord, Stats) {
	log = logging.OrNop(log)

	var (
		out   []types.MedicineRecord
		cur   inProgress
		stats Stats
	)
	flush := func() {
		switch {
		case cur.complete():
			out = append(out, cur.rec)
		case cur.state == stateNamed:
			stats.Incomplete++
			log.Debug("discarded record without price", zap.String("code", cur.rec.Code), zap.String("name", cur.rec.Name))
		}
		cur = inProgress{}
	}

	for pi := max(pageOffset, 0); pi < len(pages); pi++ {
		for _, line := range textnorm.Lines(pages[pi]) {
			stats.Lines++
			kind, m := classify(line)
			switch kind {
			case lineBoilerplate:
				stats.Boilerplate++
			case lineRecordStart:
				flush()
				cur = inProgress{
					state: stateNamed,
					rec:   types.MedicineRecord{Code: m[1], Name: strings.TrimSpace(m[2])},
				}
			case lineUnit:
				if cur.state == stateIdle {
					stats.Dropped++
					continue
				}
				cur.rec.Unit = line
			case linePrice:
				if cur.state == stateIdle {
					stats.Dropped++
					continue
				}
				cur.rec.Price = strings.ReplaceAll(m[1], ",", "")
				cur.state = statePriced
			default:
				stats.Dropped++
				log.Debug("dropped line", zap.Int("page", pi), zap.String("line", line))
			}
		}
	}
	flush()

	return out, stats
}

// Run extracts the medicines PDF at cfg.Input and writes
// nhis_tariffs_import.csv to cfg.Output.
func Run(ctx context.Context, cfg types.MedicinesConfig, ex pdftext.Extractor, w io.Writer, log *zap.Logger) (*report.Report, error) {
	log = logging.OrNop(log)
	rep := report.New("medicines", cfg.Input, cfg.Output, "medicines")

	pages, err := ex.Pages(ctx, cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("reading medicines list: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg.PageOffset >= len(pages) {
		log.Warn("page offset is past the last page",
			zap.Int("page_offset", cfg.PageOffset), zap.Int("pages", len(pages)))
	}
	log.Info("read medicines list", zap.String("path", cfg.Input), zap.Int("pages", len(pages)))

	records, stats := Parse(pages, cfg.PageOffset, log)
	rep.Read = stats.Lines
	rep.Skip("boilerplate lines", stats.Boilerplate)
	rep.Skip("unrecognized lines", stats.Dropped)
	rep.Skip("records without price", stats.Incomplete)

	withUnit := report.Counter{}
	for _, r := range records {
		if r.Unit != "" {
			withUnit.Add("with unit")
		} else {
			withUnit.Add("without unit")
		}
	}
	rep.AddBreakdown("Units", withUnit)

	if err := stage.Emit(cfg.StageConfig, "NHIS Medicines", types.MedicineHeader, stage.Rows(records), rep, w, log); err != nil {
		return nil, err
	}
	return rep, nil
}
