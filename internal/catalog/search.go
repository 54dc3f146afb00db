// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is free text matched against names and categories.
	Query string

	// Kind restricts results to one stage output.
	Kind Kind

	// Category restricts results to an exact category.
	Category string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// Entry is one catalog row. Fields holds every column of the source CSV.
type Entry struct {
	Kind     Kind              `json:"kind" yaml:"kind"`
	Code     string            `json:"code" yaml:"code"`
	Name     string            `json:"name" yaml:"name"`
	Category string            `json:"category,omitempty" yaml:"category,omitempty"`
	Fields   map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// ftsQuery turns free text into an FTS5 query of quoted terms, so input
// such as "X-Ray" or "C/S" cannot be read as query syntax. Terms are ANDed.
func ftsQuery(q string) string {
	terms := strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, t := range terms {
		terms[i] = `"` + t + `"`
	}
	return strings.Join(terms, " ")
}

// Search queries the catalog. Text queries are ranked by relevance when the
// FTS5 index is available; otherwise, and for filter-only queries, results
// are ordered by kind and code.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		match  = ftsQuery(opts.Query)
		useFTS = s.fts && match != ""
	)

	switch {
	case useFTS:
		qb.WriteString(
			`SELECT e.kind, e.code, e.name, e.category, e.fields
			FROM entries_fts
			JOIN entries e ON e.rowid = entries_fts.rowid
			WHERE entries_fts MATCH ?`)
		args = append(args, match)
	default:
		qb.WriteString(
			`SELECT e.kind, e.code, e.name, e.category, e.fields
			FROM entries e
			WHERE 1=1`)
		for _, term := range strings.Fields(opts.Query) {
			qb.WriteString(` AND (e.name LIKE ? OR e.category LIKE ?)`)
			like := "%" + term + "%"
			args = append(args, like, like)
		}
	}

	if opts.Kind != "" {
		qb.WriteString(` AND e.kind = ?`)
		args = append(args, string(opts.Kind))
	}
	if opts.Category != "" {
		qb.WriteString(` AND e.category = ?`)
		args = append(args, opts.Category)
	}

	if useFTS {
		qb.WriteString(` ORDER BY entries_fts.rank, e.rowid`)
	} else {
		qb.WriteString(` ORDER BY e.rowid`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var (
			e        Entry
			kind     string
			category sql.NullString
			fields   sql.NullString
		)
		if err := rows.Scan(&kind, &e.Code, &e.Name, &category, &fields); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.Kind = Kind(kind)
		e.Category = category.String
		if fields.Valid {
			json.Unmarshal([]byte(fields.String), &e.Fields)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

// Counts returns the number of entries per kind.
func (s *Store) Counts(ctx context.Context) (map[Kind]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, count(*) FROM entries GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("counting entries: %w", err)
	}
	defer rows.Close()

	out := make(map[Kind]int)
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out[Kind(kind)] = n
	}
	return out, rows.Err()
}
