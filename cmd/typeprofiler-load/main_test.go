package main

import "testing"

func TestSchemaAndTableFromPathAtRoot(t *testing.T) {
	schema, table := schemaAndTableFromPath("patients.csv")
	if schema != "public" {
		t.Errorf("schema = %q, want public", schema)
	}
	if table != "patients" {
		t.Errorf("table = %q, want patients", table)
	}
}

func TestSchemaAndTableFromPathNested(t *testing.T) {
	schema, table := schemaAndTableFromPath("clinical/encounters/visits.csv")
	if schema != "clinical_encounters" {
		t.Errorf("schema = %q, want clinical_encounters", schema)
	}
	if table != "visits" {
		t.Errorf("table = %q, want visits", table)
	}
}

func TestSchemaAndTableFromPathStripsAllExtensions(t *testing.T) {
	_, table := schemaAndTableFromPath("exports/labs.csv.gz")
	if table != "labs" {
		t.Errorf("table = %q, want labs", table)
	}
}
