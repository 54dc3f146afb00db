// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tariff

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nhis-import/internal/docx"
	"github.com/pdiddy/nhis-import/pkg/types"
)

// fakeReader returns canned tables or an error.
type fakeReader struct {
	tables []docx.Table
	err    error
}

func (f *fakeReader) Tables(string) ([]docx.Table, error) {
	return f.tables, f.err
}

func sampleTables() []docx.Table {
	return []docx.Table{
		{Rows: [][]string{
			{"G-DRG", "ADULT SURGERY", "Tariff (GH₵)"},
			{"ASUR01A", "Appendicectomy", "1,250.50"},
			{"ASUR02C", "Herniotomy", "GH₵ 980"},
			{"ASUR03", "Incision and Drainage", "-"},
			{"", "Orphan name", "100"},
			{"ASUR04A", "No price", ""},
			{"ASUR05A", "Two cells only"},
		}},
		{Rows: [][]string{
			{"G-DRG", "INVESTIGATION", "Tariff GHS"},
			{"INVE01", "Full Blood Count", "25.00"},
			{"INVE02", "Urine R/E", "1.2.3"},
		}},
	}
}

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"1,250.50", "1250.50", true},
		{"GH₵ 980", "980", true},
		{" 25.00 ", "25.00", true},
		{"-", "", false},
		{" - ", "", false},
		{"N/A", "", false},
		{".", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := CleanPrice(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract(t *testing.T) {
	rows, stats := Extract(sampleTables(), nil)

	assert.Equal(t, []types.TariffRow{
		{Code: "ASUR01A", Name: "Appendicectomy", Category: "ADULT SURGERY", Price: "1250.50", AgeCategory: types.AgeAdult},
		{Code: "ASUR02C", Name: "Herniotomy", Category: "ADULT SURGERY", Price: "980", AgeCategory: types.AgeChild},
		{Code: "INVE01", Name: "Full Blood Count", Category: "INVESTIGATION", Price: "25.00", AgeCategory: types.AgeAll},
	}, rows)
	assert.Equal(t, Stats{Rows: 10, Headers: 2, Incomplete: 3, BadPrice: 2}, stats)
}

func TestExtract_RowsBeforeFirstHeaderHaveEmptyCategory(t *testing.T) {
	rows, _ := Extract([]docx.Table{{Rows: [][]string{{"MED01", "Consultation", "40"}}}}, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Category)
}

func TestExtract_HeaderNeedsCurrencyMarker(t *testing.T) {
	rows, stats := Extract([]docx.Table{{Rows: [][]string{
		{"G-DRG", "NOT A HEADER", "Description"},
		{"ENT01A", "Tonsillectomy", "700"},
	}}}, nil)
	assert.Equal(t, 0, stats.Headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Category)
}

func TestExtract_PricesAreNonNegativeNumbers(t *testing.T) {
	rows, _ := Extract(sampleTables(), nil)
	for _, r := range rows {
		v, err := strconv.ParseFloat(r.Price, 64)
		require.NoError(t, err, r.Code)
		assert.GreaterOrEqual(t, v, 0.0, r.Code)
	}
}

func TestAgeCategoryFromCode(t *testing.T) {
	assert.Equal(t, types.AgeAdult, types.AgeCategoryFromCode("ASUR01A"))
	assert.Equal(t, types.AgeChild, types.AgeCategoryFromCode("PSUR01C"))
	assert.Equal(t, types.AgeAll, types.AgeCategoryFromCode("INVE01"))
	assert.Equal(t, types.AgeAll, types.AgeCategoryFromCode(""))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := types.StageConfig{Input: "tariffs.docx", Output: filepath.Join(dir, "gdrg_tariffs_import.csv")}

	var buf bytes.Buffer
	rep, err := Run(context.Background(), cfg, &fakeReader{tables: sampleTables()}, &buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Written)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t,
		"code,name,mdc_category,tariff_price,age_category\n"+
			"ASUR01A,Appendicectomy,ADULT SURGERY,1250.50,adult\n"+
			"ASUR02C,Herniotomy,ADULT SURGERY,980,child\n"+
			"INVE01,Full Blood Count,INVESTIGATION,25.00,all\n",
		string(data))
	assert.Contains(t, buf.String(), "ADULT SURGERY: 2")
}

func TestRun_Idempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := types.StageConfig{Input: "tariffs.docx", Output: filepath.Join(dir, "out.csv")}
	reader := &fakeReader{tables: sampleTables()}

	_, err := Run(context.Background(), cfg, reader, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	first, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	_, err = Run(context.Background(), cfg, reader, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	second, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_ReaderError(t *testing.T) {
	dir := t.TempDir()
	cfg := types.StageConfig{Input: "missing.docx", Output: filepath.Join(dir, "out.csv")}

	_, err := Run(context.Background(), cfg, &fakeReader{err: errors.New("no such file")}, &bytes.Buffer{}, nil)
	require.Error(t, err)
	assert.NoFileExists(t, cfg.Output)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := types.StageConfig{Output: filepath.Join(t.TempDir(), "out.csv")}

	_, err := Run(ctx, cfg, &fakeReader{tables: sampleTables()}, &bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
