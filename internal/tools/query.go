package tools

import (
	"context"
	"fmt"
	"strings"

	"healthchat/internal/storage"
)

// forbiddenKeywords are the write/DDL verbs rejected by the lexical guard.
// The check is best-effort only: the authoritative control is the read-only
// connection mode the query runs under.
var forbiddenKeywords = []string{"INSERT", "UPDATE", "DELETE", "DROP", "CREATE", "ALTER", "TRUNCATE"}

// checkReadOnly rejects queries carrying a forbidden keyword as a standalone
// token of the whitespace-normalized, uppercased query text.
func checkReadOnly(query string) error {
	normalized := strings.Join(strings.Fields(strings.ToUpper(query)), " ")
	for _, kw := range forbiddenKeywords {
		if strings.HasPrefix(normalized, kw+" ") || strings.Contains(normalized, " "+kw+" ") {
			return validationf("query contains forbidden keyword %s; this is a read-only function", kw)
		}
	}
	return nil
}

// QueryDB executes a free-form read query against the store and renders the
// result as a column-aligned table. The store is opened read-only, so a write
// statement that slips past the keyword guard is still rejected by the
// connection. Execution failures are rendered as diagnostic text; only a
// validation rejection is returned as an error.
func QueryDB(ctx context.Context, query, dbPath string) (string, error) {
	if err := checkReadOnly(query); err != nil {
		return "", err
	}

	db, err := storage.OpenReadOnly(dbPath)
	if err != nil {
		return fmt.Sprintf("Error executing query: %v", err), nil
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return execErrorText(err), nil
	}
	defer rows.Close()

	cols, records, err := readRows(rows)
	if err != nil {
		return execErrorText(err), nil
	}
	if len(records) == 0 {
		return "No results found.", nil
	}
	return renderTable(cols, records), nil
}

func execErrorText(err error) string {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "readonly") || strings.Contains(msg, "read-only") || strings.Contains(msg, "database is locked") {
		return fmt.Sprintf("Error: Database is read-only or locked. %v", err)
	}
	return fmt.Sprintf("Error executing query: %v", err)
}
