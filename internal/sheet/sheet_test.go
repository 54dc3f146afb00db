// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDecodeRecords(t *testing.T) {
	in := "\ufeffcode,name,mdc_category,tariff_price\n" +
		"ASUR01A,Appendicectomy,ADULT SURGERY,980\n" +
		"INVE01, Full Blood Count ,INVESTIGATION\n"

	recs, err := DecodeRecords(strings.NewReader(in), "code", "name")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "ASUR01A", recs[0].Get("code"))
	assert.Equal(t, "980", recs[0].Get("tariff_price"))
	assert.Equal(t, "Full Blood Count", recs[1].Get("name"))
	assert.Equal(t, "", recs[1].Get("tariff_price"), "short row yields empty value")
	assert.Equal(t, "", recs[1].Get("no_such_column"))
}

func TestDecodeRecords_MissingColumn(t *testing.T) {
	_, err := DecodeRecords(strings.NewReader("code,name\nA,B\n"), "code", "mdc_category")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "mdc_category")

	_, err = DecodeRecords(strings.NewReader(""), "code")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadRecords_MissingFile(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "drugs.csv")
	header := []string{"drug_code", "name"}
	rows := [][]string{
		{"ARTLUMTA1", "Artemether + Lumefantrine Tablet, 20 mg + 120 mg (24's)"},
		{"PARACETA1", `Paracetamol "500" mg`},
	}

	require.NoError(t, WriteCSV(path, header, rows))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t,
		"drug_code,name\n"+
			"ARTLUMTA1,\"Artemether + Lumefantrine Tablet, 20 mg + 120 mg (24's)\"\n"+
			"PARACETA1,\"Paracetamol \"\"500\"\" mg\"\n",
		string(first))

	// Rewriting the same rows is byte-identical and leaves no temp files.
	require.NoError(t, WriteCSV(path, header, rows))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	recs, err := ReadRecords(path, "drug_code", "name")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, rows[1][1], recs[1].Get("name"))
}

func TestXLSXPath(t *testing.T) {
	assert.Equal(t, "nhis-data/drugs.xlsx", XLSXPath("nhis-data/drugs.csv"))
	assert.Equal(t, "drugs.xlsx", XLSXPath("drugs"))
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labs.xlsx")
	header := []string{"code", "name", "category"}
	rows := [][]string{
		{"INVE01", "Full Blood Count", "Hematology"},
		{"INVE02", "Chest X-Ray", "Imaging"},
	}
	require.NoError(t, WriteXLSX(path, "Lab Services", header, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Lab Services"}, f.GetSheetList())
	got, err := f.GetRows("Lab Services")
	require.NoError(t, err)
	assert.Equal(t, [][]string{header, rows[0], rows[1]}, got)
}
