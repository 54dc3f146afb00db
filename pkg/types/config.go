package types

// StageConfig holds the settings shared by every stage: where it reads,
// where it writes, and which optional artifacts it produces.
type StageConfig struct {
	// Input is the source document or intermediate CSV.
	Input string `json:"input" yaml:"input"`

	// Output is the CSV file written by the stage.
	Output string `json:"output" yaml:"output"`

	// XLSX also writes a styled workbook next to the CSV output.
	XLSX bool `json:"xlsx" yaml:"xlsx"`

	// ReportDir, when set, receives a <stage>-report.yaml after each run.
	ReportDir string `json:"report_dir,omitempty" yaml:"report_dir,omitempty"`
}

// PDFBackend identifies the tool used to pull text out of the medicines PDF.
type PDFBackend string

const (
	BackendPdftotext PDFBackend = "pdftotext"
	BackendContainer PDFBackend = "container"
)

// MedicinesConfig holds settings for the medicines-list extraction stage.
type MedicinesConfig struct {
	StageConfig `yaml:",inline"`

	// PageOffset is the zero-based page where the medicines table begins.
	// Front matter before it is skipped.
	PageOffset int `json:"page_offset" yaml:"page_offset"`

	// Backend selects pdftotext on PATH or pdftotext inside a container.
	Backend PDFBackend `json:"backend" yaml:"backend"`

	// Image is the container image used by the container backend.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// CatalogConfig holds settings for the SQLite catalog.
type CatalogConfig struct {
	// DBPath is the SQLite database file.
	DBPath string `json:"db" yaml:"db"`

	// MaxResults caps search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
