// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report summarizes a stage run: output counts, per-label breakdowns
// printed most-common first, and skip counters. A report can be printed for
// the console and saved as YAML.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"
)

// Count is one label and how many records carried it.
type Count struct {
	Label string `yaml:"label"`
	Count int    `yaml:"count"`
}

// Counter tallies labels.
type Counter map[string]int

// Add counts one occurrence of label.
func (c Counter) Add(label string) {
	c[label]++
}

// MostCommon returns counts sorted by descending count, ties broken by label
// so output is stable across runs.
func (c Counter) MostCommon() []Count {
	out := make([]Count, 0, len(c))
	for label, n := range c {
		out = append(out, Count{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Breakdown is a titled tally, e.g. "Categories" or "Forms".
type Breakdown struct {
	Title  string  `yaml:"title"`
	Counts []Count `yaml:"counts"`
}

// Report describes one stage run.
type Report struct {
	RunID      string         `yaml:"run_id"`
	Stage      string         `yaml:"stage"`
	StartedAt  time.Time      `yaml:"started_at"`
	Input      string         `yaml:"input"`
	Output     string         `yaml:"output"`
	Noun       string         `yaml:"-"`
	Read       int            `yaml:"read"`
	Written    int            `yaml:"written"`
	Skipped    map[string]int `yaml:"skipped,omitempty"`
	Breakdowns []Breakdown    `yaml:"breakdowns,omitempty"`
}

// New starts a report for stage with a fresh run id.
func New(stage, input, output, noun string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Stage:     stage,
		StartedAt: time.Now().UTC(),
		Input:     input,
		Output:    output,
		Noun:      noun,
	}
}

// Skip records n rows skipped for reason. Zero counts are not recorded.
func (r *Report) Skip(reason string, n int) {
	if n == 0 {
		return
	}
	if r.Skipped == nil {
		r.Skipped = make(map[string]int)
	}
	r.Skipped[reason] += n
}

// AddBreakdown appends a titled tally.
func (r *Report) AddBreakdown(title string, c Counter) {
	r.Breakdowns = append(r.Breakdowns, Breakdown{Title: title, Counts: c.MostCommon()})
}

// Print writes the human-readable summary.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Created %s with %d %s\n", r.Output, r.Written, r.Noun)
	for _, b := range r.Breakdowns {
		fmt.Fprintf(w, "\n%s breakdown:\n", b.Title)
		for _, c := range b.Counts {
			fmt.Fprintf(w, "  %s: %d\n", c.Label, c.Count)
		}
	}
	if len(r.Skipped) > 0 {
		reasons := make([]string, 0, len(r.Skipped))
		for k := range r.Skipped {
			reasons = append(reasons, k)
		}
		sort.Strings(reasons)
		fmt.Fprintln(w, "\nSkipped:")
		for _, k := range reasons {
			fmt.Fprintf(w, "  %s: %d\n", k, r.Skipped[k])
		}
	}
}

// Save writes the report to dir/<stage>-report.yaml and returns the path.
func (r *Report) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	path := Path(dir, r.Stage)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// Load reads a report saved by Save.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	return &r, nil
}

// Path returns where Save writes the report of stage in dir.
func Path(dir, stage string) string {
	return filepath.Join(dir, stage+"-report.yaml")
}

// Latest reads the saved report of each stage from dir, in stage order.
// A stage that has not written a report yet yields a nil entry.
func Latest(dir string, stages []string) ([]*Report, error) {
	out := make([]*Report, len(stages))
	for i, stage := range stages {
		r, err := Load(Path(dir, stage))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// Status writes one line per stage: when it last ran and what it wrote.
func Status(w io.Writer, stages []string, reports []*Report) {
	for i, stage := range stages {
		r := reports[i]
		if r == nil {
			fmt.Fprintf(w, "%-10s  not run\n", stage)
			continue
		}
		skipped := 0
		for _, n := range r.Skipped {
			skipped += n
		}
		fmt.Fprintf(w, "%-10s  %s  read %d, wrote %d, skipped %d  -> %s\n",
			stage, r.StartedAt.Format(time.RFC3339), r.Read, r.Written, skipped, r.Output)
	}
}
