// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strconv"

// AgeCategory is the patient age band a G-DRG tariff line applies to.
type AgeCategory string

const (
	AgeAll   AgeCategory = "all"
	AgeAdult AgeCategory = "adult"
	AgeChild AgeCategory = "child"
)

// AgeCategoryFromCode derives the age band from the last character of a
// G-DRG code: "A" is adult, "C" is child, anything else applies to all ages.
func AgeCategoryFromCode(code string) AgeCategory {
	if code == "" {
		return AgeAll
	}
	switch code[len(code)-1] {
	case 'A':
		return AgeAdult
	case 'C':
		return AgeChild
	}
	return AgeAll
}

// TariffRow is one priced line of the G-DRG tariff document.
type TariffRow struct {
	// Code is the G-DRG code (e.g. "ASUR01A").
	Code string `json:"code" yaml:"code"`

	// Name is the service description.
	Name string `json:"name" yaml:"name"`

	// Category is the MDC section header the row was listed under.
	Category string `json:"mdc_category" yaml:"mdc_category"`

	// Price is the tariff as a plain decimal string (e.g. "1250.50").
	Price string `json:"tariff_price" yaml:"tariff_price"`

	// AgeCategory is derived from the code suffix.
	AgeCategory AgeCategory `json:"age_category" yaml:"age_category"`
}

// TariffHeader is the column order of gdrg_tariffs_import.csv.
var TariffHeader = []string{"code", "name", "mdc_category", "tariff_price", "age_category"}

// Row returns the record in TariffHeader order.
func (t TariffRow) Row() []string {
	return []string{t.Code, t.Name, t.Category, t.Price, string(t.AgeCategory)}
}

// MedicineCategory is the category written for every medicines-list row.
const MedicineCategory = "medicine"

// MedicineRecord is one entry of the NHIS medicines list.
type MedicineRecord struct {
	Code  string `json:"nhis_code" yaml:"nhis_code"`
	Name  string `json:"name" yaml:"name"`
	Unit  string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Price string `json:"price" yaml:"price"`
}

// MedicineHeader is the column order of nhis_tariffs_import.csv.
var MedicineHeader = []string{"nhis_code", "name", "category", "price", "unit"}

// Row returns the record in MedicineHeader order.
func (m MedicineRecord) Row() []string {
	return []string{m.Code, m.Name, MedicineCategory, m.Price, m.Unit}
}

// LabService is a lab or imaging investigation ready for import.
// Price is always blank: pricing is a local hospital decision.
type LabService struct {
	Code           string `json:"code" yaml:"code"`
	Name           string `json:"name" yaml:"name"`
	Price          string `json:"price" yaml:"price"`
	Category       string `json:"category" yaml:"category"`
	SampleType     string `json:"sample_type" yaml:"sample_type"`
	TurnaroundTime string `json:"turnaround_time" yaml:"turnaround_time"`
	NHISCode       string `json:"nhis_code" yaml:"nhis_code"`
}

// LabServiceHeader is the column order of nhis_lab_services_for_import.csv.
var LabServiceHeader = []string{"code", "name", "price", "category", "sample_type", "turnaround_time", "nhis_code"}

// Row returns the record in LabServiceHeader order.
func (l LabService) Row() []string {
	return []string{l.Code, l.Name, l.Price, l.Category, l.SampleType, l.TurnaroundTime, l.NHISCode}
}

// ProcedureType separates minor (ward/clinic) procedures from major (theatre) ones.
type ProcedureType string

const (
	ProcedureMinor ProcedureType = "minor"
	ProcedureMajor ProcedureType = "major"
)

// Procedure is a surgical or procedural service ready for import.
type Procedure struct {
	Code        string        `json:"code" yaml:"code"`
	Name        string        `json:"name" yaml:"name"`
	Category    string        `json:"category" yaml:"category"`
	Type        ProcedureType `json:"type" yaml:"type"`
	Price       string        `json:"price" yaml:"price"`
	Description string        `json:"description" yaml:"description"`
	NHISCode    string        `json:"nhis_code" yaml:"nhis_code"`
}

// ProcedureHeader is the column order of nhis_procedures_for_import.csv.
var ProcedureHeader = []string{"code", "name", "category", "type", "price", "description", "nhis_code"}

// Row returns the record in ProcedureHeader order.
func (p Procedure) Row() []string {
	return []string{p.Code, p.Name, p.Category, string(p.Type), p.Price, p.Description, p.NHISCode}
}

// DrugForm is the dosage form of a drug.
type DrugForm string

const (
	FormTablet     DrugForm = "tablet"
	FormCapsule    DrugForm = "capsule"
	FormSyrup      DrugForm = "syrup"
	FormSuspension DrugForm = "suspension"
	FormInjection  DrugForm = "injection"
	FormCream      DrugForm = "cream"
	FormOintment   DrugForm = "ointment"
	FormDrops      DrugForm = "drops"
	FormInhaler    DrugForm = "inhaler"
	FormPatch      DrugForm = "patch"
	FormOther      DrugForm = "other"
)

// UnitType is the dispensing unit used for prescription quantity calculations.
type UnitType string

const (
	UnitPiece  UnitType = "piece"
	UnitBottle UnitType = "bottle"
	UnitVial   UnitType = "vial"
	UnitTube   UnitType = "tube"
	UnitBox    UnitType = "box"
)

// Drug is a normalized drug catalog entry. UnitPrice and MinStock are left
// blank for manual entry.
type Drug struct {
	DrugCode    string   `json:"drug_code" yaml:"drug_code"`
	Name        string   `json:"name" yaml:"name"`
	GenericName string   `json:"generic_name" yaml:"generic_name"`
	Form        DrugForm `json:"form" yaml:"form"`
	Strength    string   `json:"strength" yaml:"strength"`
	UnitPrice   string   `json:"unit_price" yaml:"unit_price"`
	UnitType    UnitType `json:"unit_type" yaml:"unit_type"`

	// BottleSize is the container volume in mL, nil when the name carries none.
	BottleSize *int `json:"bottle_size,omitempty" yaml:"bottle_size,omitempty"`

	Category string `json:"category" yaml:"category"`
	MinStock string `json:"min_stock" yaml:"min_stock"`
	NHISCode string `json:"nhis_code" yaml:"nhis_code"`
}

// DrugHeader is the column order of nhis_drugs_for_import.csv.
var DrugHeader = []string{
	"drug_code", "name", "generic_name", "form", "strength", "unit_price",
	"unit_type", "bottle_size", "category", "min_stock", "nhis_code",
}

// Row returns the record in DrugHeader order.
func (d Drug) Row() []string {
	bottle := ""
	if d.BottleSize != nil {
		bottle = strconv.Itoa(*d.BottleSize)
	}
	return []string{
		d.DrugCode, d.Name, d.GenericName, string(d.Form), d.Strength, d.UnitPrice,
		string(d.UnitType), bottle, d.Category, d.MinStock, d.NHISCode,
	}
}
