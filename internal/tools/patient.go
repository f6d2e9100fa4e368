package tools

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"healthchat/internal/storage"
)

const canonicalDateLayout = "2006-01-02"

// tableTemplate is one entry of the closed retrieval registry. The query text
// is static apart from a single slot for the optional date predicate; the
// predicate itself binds the range bounds as parameters, never as text.
type tableTemplate struct {
	query        string
	dateFiltered bool
	dateColumn   string
}

func (t tableTemplate) datePredicate() string {
	return fmt.Sprintf(" AND date(%s) BETWEEN date(?) AND date(?)", t.dateColumn)
}

// patientTableNames is the enumerated order the templates are advertised in.
var patientTableNames = []string{
	"demographics",
	"medications",
	"labs",
	"lab_tests_only",
	"imaging",
	"procedures",
	"conditions",
	"problem_list",
	"encounters",
	"allergies",
	"immunizations",
	"careplans",
	"devices",
}

var patientTables = map[string]tableTemplate{
	"demographics": {
		query: "SELECT * FROM patients WHERE Id = ?%s",
	},
	"medications": {
		query:        "SELECT START, STOP, DESCRIPTION, REASONDESCRIPTION FROM medications WHERE PATIENT = ?%s ORDER BY START",
		dateFiltered: true,
		dateColumn:   "START",
	},
	"labs": {
		query:        "SELECT DATE, DESCRIPTION, VALUE, UNITS FROM observations WHERE PATIENT = ? AND CATEGORY = 'laboratory'%s ORDER BY DATE",
		dateFiltered: true,
		dateColumn:   "DATE",
	},
	"lab_tests_only": {
		query:        "SELECT DISTINCT DESCRIPTION FROM observations WHERE PATIENT = ? AND CATEGORY = 'laboratory'%s ORDER BY DESCRIPTION",
		dateFiltered: true,
		dateColumn:   "DATE",
	},
	"imaging": {
		query:        "SELECT DATE, BODYSITE_DESCRIPTION, MODALITY_DESCRIPTION, SOP_DESCRIPTION FROM imaging_studies WHERE PATIENT = ?%s ORDER BY DATE",
		dateFiltered: true,
		dateColumn:   "DATE",
	},
	"procedures": {
		query:        "SELECT START, DESCRIPTION, REASONDESCRIPTION FROM procedures WHERE PATIENT = ?%s ORDER BY START",
		dateFiltered: true,
		dateColumn:   "START",
	},
	"conditions": {
		query:        "SELECT START, STOP, DESCRIPTION FROM conditions WHERE PATIENT = ?%s ORDER BY START",
		dateFiltered: true,
		dateColumn:   "START",
	},
	"problem_list": {
		query:        "SELECT START, DESCRIPTION FROM conditions WHERE PATIENT = ? AND (STOP IS NULL OR STOP = '')%s ORDER BY START",
		dateFiltered: true,
		dateColumn:   "START",
	},
	"encounters": {
		query:        "SELECT START, STOP, ENCOUNTERCLASS, DESCRIPTION, REASONDESCRIPTION FROM encounters WHERE PATIENT = ?%s ORDER BY START",
		dateFiltered: true,
		dateColumn:   "START",
	},
	"allergies": {
		query:        "SELECT START, STOP, DESCRIPTION FROM allergies WHERE PATIENT = ?%s ORDER BY START",
		dateFiltered: true,
		dateColumn:   "START",
	},
	"immunizations": {
		query:        "SELECT DATE, DESCRIPTION FROM immunizations WHERE PATIENT = ?%s ORDER BY DATE",
		dateFiltered: true,
		dateColumn:   "DATE",
	},
	"careplans": {
		query:        "SELECT START, STOP, DESCRIPTION, REASONDESCRIPTION FROM careplans WHERE PATIENT = ?%s ORDER BY START",
		dateFiltered: true,
		dateColumn:   "START",
	},
	"devices": {
		query:        "SELECT START, STOP, DESCRIPTION FROM devices WHERE PATIENT = ?%s ORDER BY START",
		dateFiltered: true,
		dateColumn:   "START",
	},
}

// GetPatientData retrieves the requested logical tables for one patient, in
// the caller's order, optionally restricted to a date range. Unknown names and
// per-table query failures each produce their own block without aborting the
// remaining tables.
func GetPatientData(ctx context.Context, patientID string, tables []string, startDate, endDate, dbPath string) (string, error) {
	if patientID == "" {
		return "", validationf("patient_id is required")
	}
	if len(tables) == 0 {
		return "", validationf("at least one table must be requested; valid tables: %s", strings.Join(patientTableNames, ", "))
	}

	hasRange := false
	if (startDate == "") != (endDate == "") {
		return "", validationf("start_date and end_date must be provided together")
	}
	if startDate != "" {
		start, err := time.Parse(canonicalDateLayout, startDate)
		if err != nil {
			return "", validationf("invalid start_date %q: expected format %s", startDate, canonicalDateLayout)
		}
		end, err := time.Parse(canonicalDateLayout, endDate)
		if err != nil {
			return "", validationf("invalid end_date %q: expected format %s", endDate, canonicalDateLayout)
		}
		if start.After(end) {
			return "", validationf("start_date %s is after end_date %s", startDate, endDate)
		}
		startDate = start.Format(canonicalDateLayout)
		endDate = end.Format(canonicalDateLayout)
		hasRange = true
	}

	db, err := storage.OpenReadOnly(dbPath)
	if err != nil {
		return "", fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	var blocks []string
	for _, name := range tables {
		blocks = append(blocks, patientTableBlock(ctx, db, name, patientID, startDate, endDate, hasRange))
	}
	return strings.Join(blocks, "\n\n"), nil
}

func patientTableBlock(ctx context.Context, db *sql.DB, name, patientID, startDate, endDate string, hasRange bool) string {
	title := fmt.Sprintf("--- %s ---", strings.ToUpper(name))

	tmpl, ok := patientTables[name]
	if !ok {
		return fmt.Sprintf("%s\nTable %q not found. Valid tables: %s",
			title, name, strings.Join(patientTableNames, ", "))
	}

	predicate := ""
	args := []any{patientID}
	if tmpl.dateFiltered && hasRange {
		predicate = tmpl.datePredicate()
		args = append(args, startDate, endDate)
	}
	query := fmt.Sprintf(tmpl.query, predicate)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Sprintf("%s\nError retrieving %s: %v", title, name, err)
	}
	defer rows.Close()

	cols, records, err := readRows(rows)
	if err != nil {
		return fmt.Sprintf("%s\nError retrieving %s: %v", title, name, err)
	}
	if len(records) == 0 {
		return fmt.Sprintf("%s\nNo %s found.", title, name)
	}
	return fmt.Sprintf("%s\n%s", title, renderTable(cols, records))
}
