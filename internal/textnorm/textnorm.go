// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm cleans text pulled out of office documents and PDFs:
// canonical normalization, whitespace collapsing, and quote folding.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var quoteReplacer = strings.NewReplacer(
	"\u2019", "'", // right single quotation mark
	"\u2018", "'", // left single quotation mark
	"`", "'",
	"\u00b4", "'", // acute accent
)

// foldReplacer maps the layout artifacts PDF and Word text carries to plain
// text: no-break spaces become spaces, Latin ligatures are spelled out, and
// soft hyphens and zero-width spaces are dropped. Other compatibility
// characters ("m²", "½") are kept as written.
var foldReplacer = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u2007", " ", // figure space
	"\u202f", " ", // narrow no-break space
	"\u00ad", "", // soft hyphen
	"\u200b", "", // zero-width space
	"\ufb00", "ff",
	"\ufb01", "fi",
	"\ufb02", "fl",
	"\ufb03", "ffi",
	"\ufb04", "ffl",
	"\ufb05", "st",
	"\ufb06", "st",
)

// Clean applies NFC normalization, folds layout artifacts (see foldReplacer),
// collapses runs of whitespace to one space, and trims.
func Clean(s string) string {
	if s == "" {
		return s
	}
	s = foldReplacer.Replace(norm.NFC.String(s))
	return strings.Join(strings.Fields(s), " ")
}

// Quotes folds typographic apostrophe variants to a plain apostrophe.
func Quotes(s string) string {
	return quoteReplacer.Replace(s)
}

// Lines splits text into lines, cleaning each one. Blank lines are kept as
// empty strings so callers can still see paragraph breaks.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	raw := strings.Split(text, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = Clean(l)
	}
	return out
}
