//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import "github.com/magefile/mage/mg"

// Tariffs extracts the G-DRG tariff document into gdrg_tariffs_import.csv.
func Tariffs() error {
	return run("tariffs", "--report-dir", "reports")
}

// Medicines extracts the NHIS medicines list PDF into nhis_tariffs_import.csv.
func Medicines() error {
	return run("medicines", "--report-dir", "reports")
}

// Labs classifies investigation tariffs into lab services.
func Labs() error {
	return run("labs", "--report-dir", "reports")
}

// Procedures classifies surgical tariffs into procedures.
func Procedures() error {
	return run("procedures", "--report-dir", "reports")
}

// Drugs normalizes the medicines CSV into the drug catalog import.
func Drugs() error {
	return run("drugs", "--report-dir", "reports")
}

// Catalog loads every stage output into the searchable catalog.
func Catalog() error {
	return run("catalog", "load")
}

// All runs the pipeline in order, then loads the catalog.
func All() {
	mg.SerialDeps(Init, Tariffs, Medicines, Labs, Procedures, Drugs, Catalog)
}
