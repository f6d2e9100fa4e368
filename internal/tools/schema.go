package tools

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"healthchat/internal/storage"
)

// GetDBSchema lists every base table in the store's catalog with its column
// names, declared types, not-null flags, default values and primary-key flags.
func GetDBSchema(ctx context.Context, dbPath string) (string, error) {
	db, err := storage.OpenReadOnly(dbPath)
	if err != nil {
		return "", fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}
	if len(tables) == 0 {
		return "No tables found.", nil
	}

	var blocks []string
	for _, table := range tables {
		block, err := describeTable(ctx, db, table)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n"), nil
}

func describeTable(ctx context.Context, db *sql.DB, table string) (string, error) {
	// Table names come from sqlite_master, not caller input; quoting guards
	// against unusual identifiers, not injection.
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return "", fmt.Errorf("describe table %s: %w", table, err)
	}
	defer rows.Close()

	lines := []string{fmt.Sprintf("--- Schema for table %s ---", table)}
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return "", fmt.Errorf("scan column of %s: %w", table, err)
		}
		dfltText := "None"
		if dflt.Valid {
			dfltText = dflt.String
		}
		lines = append(lines, fmt.Sprintf("Column: %s | Type: %s | Not Null: %d | Default: %s | PK: %d",
			name, colType, notNull, dfltText, pk))
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("describe table %s: %w", table, err)
	}
	return strings.Join(lines, "\n"), nil
}
