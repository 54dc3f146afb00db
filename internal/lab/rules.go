// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lab

import "github.com/pdiddy/nhis-import/internal/classify"

// Lab categories, in classification priority order.
const (
	CategoryImaging        = "Imaging"
	CategoryHematology     = "Hematology"
	CategoryBiochemistry   = "Biochemistry"
	CategoryMicrobiology   = "Microbiology"
	CategorySerology       = "Serology"
	CategoryImmunology     = "Immunology"
	CategoryHormones       = "Hormones"
	CategoryTumorMarkers   = "Tumor Markers"
	CategoryParasitology   = "Parasitology"
	CategoryHistopathology = "Histopathology"
	CategoryCardiac        = "Cardiac"
	CategorySpecialTests   = "Special Tests"
	CategoryUrinalysis     = "Urinalysis"
	CategoryGeneral        = "General"
)

// Sample types. SampleNone is written for investigations that take no
// physical specimen (imaging, ECG, echo, EEG, EMG).
const (
	SampleUrine  = "Urine"
	SampleStool  = "Stool"
	SampleCSF    = "CSF"
	SampleSwab   = "Swab"
	SampleSputum = "Sputum"
	SampleTissue = "Tissue"
	SampleSkin   = "Skin"
	SampleSemen  = "Semen"
	SampleNone   = ""
	SampleBlood  = "Blood"
)

// imagingKeywords are shared by the category and sample-type tables.
var imagingKeywords = []string{
	"x-ray", "xray", "x ray", "radiograph", "ultrasound", "ultrasonograph",
	"sonograph", "doppler", " ct ", " ct-", " ct/", "computed tomograph", "mri",
	"magnetic resonance", "mammogra", "fluoroscop", "barium", "ivu",
	"intravenous urogra", "hysterosalpingogra", " hsg ", "angiogra",
	"venogra", "myelogra", "urethrogra", "cystogra", "imaging", " scan ",
}

var categoryRules = classify.Rules{
	{Label: CategoryImaging, Keywords: imagingKeywords},
	{Label: CategoryHematology, Keywords: []string{
		"blood count", " fbc ", " cbc ", " hb ", "haemoglobin estimation",
		"hemoglobin estimation", "haemoglobin electrophoresis", "hb electrophoresis",
		"sickling", "sickle", " esr ", "sedimentation", "platelet", "reticulocyte",
		"bleeding time", "clotting", "prothrombin", " inr ", "aptt", "coagulation",
		"blood group", "grouping", "cross match", "crossmatch", "g6pd",
		"white cell", " wbc ", "differential count", "packed cell", " pcv ",
		"film comment", "peripheral smear", "haematocrit", "hematocrit", "ferritin",
	}},
	{Label: CategoryBiochemistry, Keywords: []string{
		"glucose", "sugar", "ogtt", "tolerance test", "hba1c", "glycated",
		"urea", "creatinine", "electrolyte", "sodium", "potassium", "chloride",
		"bicarbonate", "liver function", " lft", "renal function", "kidney function",
		" rft", "lipid", "cholesterol", "triglyceride", "bilirubin", "albumin",
		"protein", "uric acid", "calcium", "phosphate", "magnesium", "amylase",
		"lipase", "phosphatase", "transaminase", "sgot", "sgpt", " ggt",
		"gamma gt", " ldh", "lactate", " iron ", "serum iron",
	}},
	{Label: CategoryMicrobiology, Keywords: []string{
		"culture", "sensitivity", " c/s", "gram stain", "gram's", "microscopy",
		" afb", "zn stain", "ziehl", "genexpert", "gene xpert", "india ink",
		"wet mount", "wet prep", " koh ",
	}},
	{Label: CategorySerology, Keywords: []string{
		" hiv", "hepatitis", "hbsag", " hcv", "vdrl", " rpr", "tpha", "syphilis",
		"widal", "typhoid", "aso titre", "antistreptolysin", "rheumatoid",
		"pylori", "brucella", "toxoplasm", "rubella", " cmv", "chlamydia",
		"c-reactive", " crp", "serolog",
	}},
	{Label: CategoryImmunology, Keywords: []string{
		"antinuclear", " ana ", "anti-dsdna", "anti dsdna", "anti-ccp",
		"immunoglobulin", " igg", " ige", " iga", " igm", "complement",
		" cd4", "cd 4", "allergy", "autoantibod", " hla",
	}},
	{Label: CategoryHormones, Keywords: []string{
		"thyroid", " tsh", " t3", " t4", " ft4", " ft3", "prolactin",
		"testosterone", "oestrogen", "estrogen", "oestradiol", "estradiol",
		"progesterone", " fsh", " lh ", "cortisol", "insulin", "growth hormone",
		" hcg", "pregnancy", " pth", "acth", "hormone",
	}},
	{Label: CategoryTumorMarkers, Keywords: []string{
		" psa", "prostate specific", " cea", "carcinoembryonic", " afp",
		"alpha feto", "alpha-feto", "ca 125", "ca-125", "ca125", "ca 19-9",
		"ca 15-3", "tumour marker", "tumor marker", "microglobulin",
	}},
	{Label: CategoryParasitology, Keywords: []string{
		"malaria", "parasite", " mps", "stool", "ova ", "microfilaria",
		"trypanosom", "schistosom", "skin snip",
	}},
	{Label: CategoryHistopathology, Keywords: []string{
		"histolog", "histopath", "biopsy", "cytolog", "pap smear", "pap's smear",
		"fnac", "fine needle", "frozen section", "tissue", "immunohistochem",
		"bone marrow",
	}},
	{Label: CategoryCardiac, Keywords: []string{
		" ecg", "electrocardiogra", "echocardiogra", " echo", "troponin",
		"ck-mb", "ckmb", " bnp", "cardiac", "holter", "stress test", "treadmill",
	}},
	{Label: CategorySpecialTests, Keywords: []string{
		"genetic", "karyotyp", "chromosom", " pcr", " dna", "drug level",
		"toxicolog", "semen", "seminal", "sweat", "spirometr", " eeg",
		" emg", "nerve conduction", "audiometr", "electrophoresis",
	}},
	{Label: CategoryUrinalysis, Keywords: []string{
		"urinalysis", "urine", "urinary",
	}},
}

var sampleRules = classify.Rules{
	{Label: SampleUrine, Keywords: []string{"urine", "urinalysis", "urinary"}},
	{Label: SampleStool, Keywords: []string{"stool", "faeces", "feces", "faecal", "fecal", "occult blood"}},
	{Label: SampleCSF, Keywords: []string{" csf", "cerebrospinal", "lumbar puncture"}},
	{Label: SampleSwab, Keywords: []string{"swab", " hvs", "urethral", "endocervical", "wound", "conjunctival"}},
	{Label: SampleSputum, Keywords: []string{"sputum"}},
	{Label: SampleTissue, Keywords: []string{
		"biopsy", "tissue", "histolog", "histopath", "cytolog", "pap smear",
		"pap's smear", "fnac", "fine needle", "bone marrow", "frozen section",
	}},
	{Label: SampleSkin, Keywords: []string{"skin", "nail", "scraping"}},
	{Label: SampleSemen, Keywords: []string{"semen", "seminal", "sperm"}},
	{Label: SampleNone, Keywords: append([]string{" ecg", "electrocardiogra", "echocardiogra", " echo ", " eeg", " emg", "audiometr", "spirometr"}, imagingKeywords...)},
}

// turnaround is the default duration per category.
var turnaround = map[string]string{
	CategoryImaging:        "2 hours",
	CategoryHematology:     "2 hours",
	CategoryBiochemistry:   "4 hours",
	CategoryMicrobiology:   "72 hours",
	CategorySerology:       "2 hours",
	CategoryImmunology:     "24 hours",
	CategoryHormones:       "24 hours",
	CategoryTumorMarkers:   "48 hours",
	CategoryParasitology:   "1 hour",
	CategoryHistopathology: "7 days",
	CategoryCardiac:        "4 hours",
	CategorySpecialTests:   "48 hours",
	CategoryUrinalysis:     "1 hour",
	CategoryGeneral:        "24 hours",
}

// turnaroundOverrides replace the category default for specific tests.
var turnaroundOverrides = map[string]classify.Rules{
	CategoryImaging: {
		{Label: "24 hours", Keywords: []string{"mri", "magnetic resonance", " ct ", " ct-", " ct/", "computed tomograph"}},
	},
	CategoryCardiac: {
		{Label: "30 minutes", Keywords: []string{" ecg", "electrocardiogra"}},
	},
}
