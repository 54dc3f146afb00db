// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package drug

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nhis-import/internal/sheet"
	"github.com/pdiddy/nhis-import/pkg/types"
)

func intPtr(v int) *int { return &v }

func TestReconstruct(t *testing.T) {
	tests := []struct {
		desc string
		name string
		unit string
		want string
	}{
		{
			desc: "strength continuation and pack size",
			name: "Artemether + Lumefantrine Tablet, 20 mg + 120",
			unit: "mg (24's) 1 Course",
			want: "Artemether + Lumefantrine Tablet, 20 mg + 120 mg (24's)",
		},
		{
			desc: "curly apostrophe normalized",
			name: "Artemether + Lumefantrine Tablet, 20 mg + 120",
			unit: "mg (24\u2019s) 1 Course",
			want: "Artemether + Lumefantrine Tablet, 20 mg + 120 mg (24's)",
		},
		{
			desc: "backtick normalized",
			name: "Amodiaquine Tablet, 200 mg",
			unit: "(6`s)",
			want: "Amodiaquine Tablet, 200 mg (6's)",
		},
		{
			desc: "tabs form",
			name: "Quinine Tablet, 300 mg",
			unit: "(12 tabs)",
			want: "Quinine Tablet, 300 mg (12 tabs)",
		},
		{
			desc: "pack already in name",
			name: "Paracetamol Tablet, 500 mg (100's)",
			unit: "(100's)",
			want: "Paracetamol Tablet, 500 mg (100's)",
		},
		{
			desc: "unit without pack size is ignored",
			name: "Amoxicillin Capsule, 250 mg",
			unit: "Capsule",
			want: "Amoxicillin Capsule, 250 mg",
		},
		{
			desc: "empty unit",
			name: "  Metformin Tablet, 500 mg ",
			unit: "",
			want: "Metformin Tablet, 500 mg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconstruct(tt.name, tt.unit))
		})
	}
}

func TestForm(t *testing.T) {
	tests := []struct {
		name string
		want types.DrugForm
	}{
		{"Paracetamol Tablet, 500 mg", types.FormTablet},
		{"Amoxicillin Caps, 250 mg", types.FormCapsule},
		{"Paracetamol Syrup, 120 mg/5 mL", types.FormSyrup},
		{"Amoxicillin Suspension, 125 mg/5 mL", types.FormSuspension},
		{"Ceftriaxone Injection, 1 g", types.FormInjection},
		{"Clotrimazole Cream, 1%", types.FormCream},
		{"Tetracycline Eye Ointment, 1%", types.FormOintment},
		{"Chloramphenicol Eye Drops, 0.5%", types.FormDrops},
		{"Salbutamol Inhaler, 100 mcg", types.FormInhaler},
		{"Nicotine Patch", types.FormPatch},
		{"Oral Rehydration Salts Powder", types.FormOther},
		{"Calamine Lotion", types.FormOther},
		{"Diclofenac Suppository, 100 mg", types.FormOther},
		{"Benzyl Benzoate Emulsion", types.FormOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Form(tt.name))
		})
	}
}

func TestUnitTypeFor(t *testing.T) {
	assert.Equal(t, types.UnitPiece, UnitTypeFor(types.FormTablet))
	assert.Equal(t, types.UnitPiece, UnitTypeFor(types.FormCapsule))
	assert.Equal(t, types.UnitBottle, UnitTypeFor(types.FormSyrup))
	assert.Equal(t, types.UnitBottle, UnitTypeFor(types.FormSuspension))
	assert.Equal(t, types.UnitBottle, UnitTypeFor(types.FormDrops))
	assert.Equal(t, types.UnitVial, UnitTypeFor(types.FormInjection))
	assert.Equal(t, types.UnitTube, UnitTypeFor(types.FormCream))
	assert.Equal(t, types.UnitTube, UnitTypeFor(types.FormOintment))
	assert.Equal(t, types.UnitPiece, UnitTypeFor(types.FormInhaler))
	assert.Equal(t, types.UnitBox, UnitTypeFor(types.FormPatch))
	assert.Equal(t, types.UnitPiece, UnitTypeFor(types.FormOther))
}

func TestGenericName(t *testing.T) {
	assert.Equal(t, "Artemether", GenericName("Artemether + Lumefantrine Tablet, 20 mg"))
	assert.Equal(t, "Paracetamol", GenericName("Paracetamol Tablet, 500 mg"))
	assert.Equal(t, "Amoxicillin", GenericName("AmoxicillinCapsule 250 mg"))
	assert.Equal(t, "", GenericName("Tablet"))
	assert.Equal(t, "", GenericName(""))
}

func TestStrength(t *testing.T) {
	assert.Equal(t, "20 mg", Strength("Artemether + Lumefantrine Tablet, 20 mg + 120 mg (24's)"))
	assert.Equal(t, "125 mg/5 mL", Strength("Amoxicillin Suspension, 125 mg/5 mL"))
	assert.Equal(t, "100 mcg", Strength("Salbutamol Inhaler, 100 mcg"))
	assert.Equal(t, "1%", Strength("Clotrimazole Cream, 1%"))
	assert.Equal(t, "", Strength("Oral Rehydration Salts"))
}

func TestBottleSize(t *testing.T) {
	tests := []struct {
		name string
		want *int
	}{
		{"Paracetamol Syrup, 120 mg/5 mL, 100 mL", intPtr(100)},
		{"Water for Injection 10ml", intPtr(10)},
		{"Lidocaine Injection 2%, 2.5 mL", intPtr(2)},
		{"Amoxicillin Suspension, 125 mg/5 mL", nil},
		{"Paracetamol Tablet, 500 mg", nil},
		{"Sterile Water 0 mL", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BottleSize(tt.name))
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Amoxicillin Capsule, 250 mg", "antibiotics"},
		{"Paracetamol Tablet, 500 mg", "analgesics"},
		{"Tenofovir + Lamivudine Tablet", "antivirals"},
		{"Fluconazole Capsule, 150 mg", "antifungals"},
		{"Amlodipine Tablet, 5 mg", "cardiovascular"},
		{"Metformin Tablet, 500 mg", "diabetes"},
		{"Salbutamol Inhaler", "respiratory"},
		{"Omeprazole Capsule, 20 mg", "gastrointestinal"},
		{"Carbamazepine Tablet, 200 mg", "neurological"},
		{"Haloperidol Injection, 5 mg", "psychiatric"},
		{"Calamine Lotion", "dermatological"},
		{"Tetanus Toxoid Vaccine", "vaccines"},
		{"Ferrous Sulphate Tablet, 200 mg", "vitamins"},
		{"Artemether + Lumefantrine Tablet", CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Category(tt.name))
		})
	}
}

func TestCategory_OverlapsResolveByListOrder(t *testing.T) {
	// aspirin is in both analgesics and cardiovascular.
	assert.Equal(t, "analgesics", Category("Aspirin Tablet, 75 mg"))
	// "hydrocortisone cream" is shadowed by respiratory's "hydrocortisone".
	assert.Equal(t, "respiratory", Category("Hydrocortisone Cream, 1%"))
}

func TestNormalize(t *testing.T) {
	d := Normalize("ARTEMELU1", "Artemether + Lumefantrine Tablet, 20 mg + 120", "mg (24's) 1 Course")

	assert.Equal(t, types.Drug{
		DrugCode:    "ARTEMELU1",
		Name:        "Artemether + Lumefantrine Tablet, 20 mg + 120 mg (24's)",
		GenericName: "Artemether",
		Form:        types.FormTablet,
		Strength:    "20 mg",
		UnitType:    types.UnitPiece,
		Category:    CategoryOther,
		NHISCode:    "ARTEMELU1",
	}, d)
	assert.Empty(t, d.UnitPrice)
	assert.Empty(t, d.MinStock)
}

func TestNormalizeAll(t *testing.T) {
	records := []sheet.Record{
		{"nhis_code": "PARACETA", "name": "Paracetamol Tablet, 500 mg", "unit": "Tablet"},
		{"nhis_code": "", "name": "No code"},
	}
	drugs, stats := NormalizeAll(records, nil)
	require.Len(t, drugs, 1)
	assert.Equal(t, "PARACETA", drugs[0].DrugCode)
	assert.Equal(t, Stats{Rows: 2, Incomplete: 1}, stats)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "nhis_tariffs_import.csv")
	require.NoError(t, os.WriteFile(in, []byte(
		"nhis_code,name,category,price,unit\n"+
			"ARTEMELU1,\"Artemether + Lumefantrine Tablet, 20 mg + 120\",medicine,9.60,mg (24's) 1 Course\n"+
			"PARACESY,\"Paracetamol Syrup, 120 mg/5 mL, 100 mL\",medicine,3.10,Bottle\n"), 0o644))

	cfg := types.StageConfig{Input: in, Output: filepath.Join(dir, "nhis_drugs_for_import.csv")}
	var buf bytes.Buffer
	rep, err := Run(context.Background(), cfg, &buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Written)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t,
		"drug_code,name,generic_name,form,strength,unit_price,unit_type,bottle_size,category,min_stock,nhis_code\n"+
			"ARTEMELU1,\"Artemether + Lumefantrine Tablet, 20 mg + 120 mg (24's)\",Artemether,tablet,20 mg,,piece,,other,,ARTEMELU1\n"+
			"PARACESY,\"Paracetamol Syrup, 120 mg/5 mL, 100 mL\",Paracetamol,syrup,120 mg/5 mL,,bottle,100,analgesics,,PARACESY\n",
		string(data))

	out := buf.String()
	assert.Contains(t, out, "Created "+cfg.Output+" with 2 drugs")
	assert.Contains(t, out, "Categories breakdown:")
	assert.Contains(t, out, "Forms breakdown:")
	assert.Contains(t, out, "Unit types breakdown:")
}
