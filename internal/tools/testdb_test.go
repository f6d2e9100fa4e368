package tools

import (
	"path/filepath"
	"testing"

	"healthchat/internal/storage"
)

// newTestDB builds a throwaway store shaped like the loaded CSV exports:
// every column TEXT, one table per entity.
func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "synthea_test.db")
	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	defer db.Close()

	seed := []struct {
		table   string
		columns []string
		rows    [][]string
	}{
		{
			table:   "patients",
			columns: []string{"Id", "BIRTHDATE", "DEATHDATE", "FIRST", "LAST", "GENDER"},
			rows: [][]string{
				{"p1", "1954-03-02", "", "Ada", "Meyer", "F"},
				{"p2", "1987-11-20", "", "Noah", "Frey", "M"},
			},
		},
		{
			table:   "medications",
			columns: []string{"START", "STOP", "PATIENT", "DESCRIPTION", "REASONDESCRIPTION"},
			rows: [][]string{
				{"2020-01-15", "2020-03-15", "p1", "Lisinopril 10 MG Oral Tablet", "Hypertension"},
				{"2022-06-10", "", "p1", "Metformin 500 MG Oral Tablet", "Diabetes"},
				{"2021-02-01", "", "p2", "Ibuprofen 200 MG Oral Tablet", ""},
			},
		},
		{
			table:   "observations",
			columns: []string{"DATE", "PATIENT", "CATEGORY", "DESCRIPTION", "VALUE", "UNITS"},
			rows: [][]string{
				{"2022-06-10", "p1", "laboratory", "Hemoglobin A1c", "6.8", "%"},
				{"2022-06-10", "p1", "vital-signs", "Body Weight", "82", "kg"},
				{"2023-01-05", "p1", "laboratory", "Glucose", "110", "mg/dL"},
			},
		},
		{
			table:   "conditions",
			columns: []string{"START", "STOP", "PATIENT", "DESCRIPTION"},
			rows: [][]string{
				{"2019-08-01", "2019-09-01", "p1", "Viral sinusitis"},
				{"2022-06-10", "", "p1", "Diabetes mellitus type 2"},
			},
		},
		{
			table:   "allergies",
			columns: []string{"START", "STOP", "PATIENT", "DESCRIPTION"},
			rows:    nil,
		},
	}

	for _, s := range seed {
		if err := storage.ReplaceTable(db, s.table, s.columns); err != nil {
			t.Fatalf("create %s: %v", s.table, err)
		}
		if err := storage.InsertRows(db, s.table, s.columns, s.rows); err != nil {
			t.Fatalf("seed %s: %v", s.table, err)
		}
	}
	return path
}
