package tools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"healthchat/internal/storage"
)

func TestGetDBSchemaListsTablesAndColumns(t *testing.T) {
	path := newTestDB(t)
	out, err := GetDBSchema(context.Background(), path)
	if err != nil {
		t.Fatalf("get schema: %v", err)
	}

	for _, table := range []string{"patients", "medications", "observations", "conditions", "allergies"} {
		if !strings.Contains(out, "--- Schema for table "+table+" ---") {
			t.Fatalf("missing block for table %s in:\n%s", table, out)
		}
	}
	if !strings.Contains(out, "Column: BIRTHDATE | Type: TEXT | Not Null: 0 | Default: None | PK: 0") {
		t.Fatalf("missing column line for BIRTHDATE in:\n%s", out)
	}
	blocks := strings.Split(out, "\n\n")
	if len(blocks) != 5 {
		t.Fatalf("expected 5 blocks separated by blank lines, got %d", len(blocks))
	}
}

func TestGetDBSchemaEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Touch the file so the read-only open succeeds against a real, empty
	// catalog.
	if _, err := db.Exec("CREATE TABLE scratch (x TEXT)"); err != nil {
		t.Fatalf("create scratch: %v", err)
	}
	if _, err := db.Exec("DROP TABLE scratch"); err != nil {
		t.Fatalf("drop scratch: %v", err)
	}
	db.Close()

	out, err := GetDBSchema(context.Background(), path)
	if err != nil {
		t.Fatalf("get schema: %v", err)
	}
	if out != "No tables found." {
		t.Fatalf("expected empty-catalog literal, got %q", out)
	}
}
