// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify evaluates ordered keyword tables against item names.
// A table is a list of rules; the first rule with a keyword contained in the
// lowercased name wins.
package classify

import "strings"

// Rule assigns Label to any name containing one of Keywords.
// Keywords are lowercase. A keyword may carry leading or trailing spaces to
// match whole words only ("ct " matches "CT Scan" but not "Direct").
type Rule struct {
	Label    string
	Keywords []string
}

// Rules is an ordered keyword table. Order is priority.
type Rules []Rule

// Normalize lowercases name and pads it with a space on both sides so that
// space-delimited keywords also match at the start and end of the name.
func Normalize(name string) string {
	return " " + strings.ToLower(strings.Join(strings.Fields(name), " ")) + " "
}

// Match returns the label of the first rule that matches name.
func (r Rules) Match(name string) (string, bool) {
	s := Normalize(name)
	for _, rule := range r {
		if ContainsAny(s, rule.Keywords) {
			return rule.Label, true
		}
	}
	return "", false
}

// First returns the label of the first matching rule, or fallback when no
// rule matches.
func (r Rules) First(name, fallback string) string {
	if label, ok := r.Match(name); ok {
		return label
	}
	return fallback
}

// Labels lists rule labels in priority order.
func (r Rules) Labels() []string {
	out := make([]string, len(r))
	for i, rule := range r {
		out[i] = rule.Label
	}
	return out
}

// ContainsAny reports whether s contains any of the keywords.
func ContainsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
