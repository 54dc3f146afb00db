// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package drug

import (
	"github.com/pdiddy/nhis-import/internal/classify"
	"github.com/pdiddy/nhis-import/pkg/types"
)

// CategoryOther is the therapeutic category of drugs no list matches.
const CategoryOther = "other"

// formRules are scanned in order. Abbreviations match as plain substrings,
// so "tab" also catches "Tablet" and "cap" catches "Capsule".
var formRules = classify.Rules{
	{Label: string(types.FormTablet), Keywords: []string{"tablet", "tab"}},
	{Label: string(types.FormCapsule), Keywords: []string{"capsule", "cap"}},
	{Label: string(types.FormSyrup), Keywords: []string{"syrup", "syr"}},
	{Label: string(types.FormSuspension), Keywords: []string{"suspension", "susp"}},
	{Label: string(types.FormInjection), Keywords: []string{"injection", "inj"}},
	{Label: string(types.FormCream), Keywords: []string{"cream"}},
	{Label: string(types.FormOintment), Keywords: []string{"ointment"}},
	{Label: string(types.FormDrops), Keywords: []string{"drops", "drop"}},
	{Label: string(types.FormInhaler), Keywords: []string{"inhaler"}},
	{Label: string(types.FormPatch), Keywords: []string{"patch"}},
	{Label: string(types.FormOther), Keywords: []string{"powder", "granul"}},
	{Label: string(types.FormOther), Keywords: []string{"lotion", "solution"}},
	{Label: string(types.FormOther), Keywords: []string{"suppository", "supp"}},
}

// unitTypes maps a dosage form to its dispensing unit. Unlisted forms are
// dispensed by the piece.
var unitTypes = map[types.DrugForm]types.UnitType{
	types.FormTablet:     types.UnitPiece,
	types.FormCapsule:    types.UnitPiece,
	types.FormSyrup:      types.UnitBottle,
	types.FormSuspension: types.UnitBottle,
	types.FormDrops:      types.UnitBottle,
	types.FormInjection:  types.UnitVial,
	types.FormCream:      types.UnitTube,
	types.FormOintment:   types.UnitTube,
	types.FormInhaler:    types.UnitPiece,
	types.FormPatch:      types.UnitBox,
}

// categoryRules are the therapeutic classes, scanned in order.
//
// Some keywords appear in more than one list and resolve to the earlier one:
// "aspirin" is listed under cardiovascular but always lands in analgesics,
// and "hydrocortisone cream" lands in respiratory through "hydrocortisone".
var categoryRules = classify.Rules{
	{Label: "antibiotics", Keywords: []string{
		"amoxicillin", "ampicillin", "penicillin", "cephalosporin", "cefuroxime",
		"ceftriaxone", "azithromycin", "erythromycin", "metronidazole",
		"ciprofloxacin", "gentamicin", "cloxacillin", "flucloxacillin",
		"doxycycline", "tetracycline", "cotrimoxazole", "chloramphenicol",
	}},
	{Label: "analgesics", Keywords: []string{
		"paracetamol", "ibuprofen", "diclofenac", "aspirin", "tramadol",
		"morphine", "codeine", "pethidine", "acetylsalicylic",
	}},
	{Label: "antivirals", Keywords: []string{
		"acyclovir", "zidovudine", "lamivudine", "efavirenz", "nevirapine",
		"tenofovir", "abacavir",
	}},
	{Label: "antifungals", Keywords: []string{
		"fluconazole", "ketoconazole", "nystatin", "clotrimazole", "miconazole",
		"griseofulvin",
	}},
	{Label: "cardiovascular", Keywords: []string{
		"amlodipine", "atenolol", "propranolol", "nifedipine", "lisinopril",
		"enalapril", "losartan", "digoxin", "furosemide", "hydrochlorothiazide",
		"aspirin", "warfarin", "heparin", "clopidogrel",
	}},
	{Label: "diabetes", Keywords: []string{
		"metformin", "glibenclamide", "gliclazide", "insulin", "glimepiride",
	}},
	{Label: "respiratory", Keywords: []string{
		"salbutamol", "aminophylline", "theophylline", "beclomethasone",
		"budesonide", "prednisolone", "hydrocortisone",
	}},
	{Label: "gastrointestinal", Keywords: []string{
		"omeprazole", "ranitidine", "antacid", "magnesium trisilicate",
		"metoclopramide", "domperidone", "loperamide", "oral rehydration",
	}},
	{Label: "neurological", Keywords: []string{
		"diazepam", "phenytoin", "carbamazepine", "phenobarbital", "valproate",
		"levodopa",
	}},
	{Label: "psychiatric", Keywords: []string{
		"amitriptyline", "fluoxetine", "haloperidol", "chlorpromazine",
		"risperidone", "olanzapine",
	}},
	{Label: "dermatological", Keywords: []string{
		"hydrocortisone cream", "betamethasone", "calamine", "benzoyl peroxide",
		"permethrin", "benzyl benzoate",
	}},
	{Label: "vaccines", Keywords: []string{
		"vaccine", "immunoglobulin", "tetanus", "hepatitis",
	}},
	{Label: "vitamins", Keywords: []string{
		"vitamin", "folic acid", "ferrous", "iron", "calcium", "zinc",
		"multivitamin",
	}},
}
