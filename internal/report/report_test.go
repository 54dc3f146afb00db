package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterMostCommon(t *testing.T) {
	c := Counter{}
	for _, l := range []string{"tablet", "syrup", "tablet", "other", "syrup", "tablet", "cream"} {
		c.Add(l)
	}
	assert.Equal(t, []Count{
		{"tablet", 3},
		{"syrup", 2},
		{"cream", 1},
		{"other", 1},
	}, c.MostCommon())
}

func TestPrint(t *testing.T) {
	r := New("drugs", "in.csv", "nhis_drugs_for_import.csv", "drugs")
	r.Written = 3
	r.AddBreakdown("Categories", Counter{"antibiotics": 2, "other": 1})
	r.Skip("missing code", 2)
	r.Skip("unused", 0)

	var buf bytes.Buffer
	r.Print(&buf)

	assert.Equal(t,
		"Created nhis_drugs_for_import.csv with 3 drugs\n"+
			"\nCategories breakdown:\n"+
			"  antibiotics: 2\n"+
			"  other: 1\n"+
			"\nSkipped:\n"+
			"  missing code: 2\n",
		buf.String())
}

func TestSaveLoad(t *testing.T) {
	r := New("labs", "gdrg.csv", "labs.csv", "lab services")
	r.Read = 10
	r.Written = 4
	r.Skip("not an investigation", 6)
	r.AddBreakdown("Categories", Counter{"Hematology": 3, "Imaging": 1})

	dir := filepath.Join(t.TempDir(), "reports")
	path, err := r.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "labs-report.yaml"), path)

	got, err := Load(path)
	require.NoError(t, err)
	_, err = uuid.Parse(got.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 4, got.Written)
	assert.Equal(t, map[string]int{"not an investigation": 6}, got.Skipped)
	require.Len(t, got.Breakdowns, 1)
	assert.Equal(t, Count{"Hematology", 3}, got.Breakdowns[0].Counts[0])
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	r := New("labs", "gdrg_tariffs_import.csv", "nhis_lab_services_for_import.csv", "lab services")
	r.StartedAt = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	r.Read = 10
	r.Written = 4
	r.Skip("not investigations", 6)
	_, err := r.Save(dir)
	require.NoError(t, err)

	stages := []string{"tariffs", "labs"}
	reports, err := Latest(dir, stages)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Nil(t, reports[0])
	require.NotNil(t, reports[1])
	assert.Equal(t, r.RunID, reports[1].RunID)

	var buf bytes.Buffer
	Status(&buf, stages, reports)
	assert.Equal(t,
		"tariffs     not run\n"+
			"labs        2026-03-01T09:30:00Z  read 10, wrote 4, skipped 6  -> nhis_lab_services_for_import.csv\n",
		buf.String())
}

func TestLatest_CorruptReport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir, "drugs"), []byte("read: [unterminated"), 0o644))
	_, err := Latest(dir, []string{"drugs"})
	assert.Error(t, err)
}
