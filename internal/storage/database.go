package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the SQLite database at the provided path with write access.
// Only the ingestion command uses this; every agent-facing query goes through
// OpenReadOnly.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path must be provided")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// OpenReadOnly connects to the SQLite database in read-only mode. The mode=ro
// URI parameter rejects every mutating statement at the connection level,
// regardless of the statement text.
func OpenReadOnly(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path must be provided")
	}
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// ReplaceTable drops and recreates the named table with TEXT columns. CSV
// exports carry no type information, so every column is loaded as text.
func ReplaceTable(db *sql.DB, name string, columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("table %s has no columns", name)
	}
	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(name))); err != nil {
		return fmt.Errorf("drop table %s: %w", name, err)
	}
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("%s TEXT", quoteIdent(col))
	}
	stmt := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}
	return nil
}

// InsertRows bulk-inserts rows into the named table inside one transaction.
func InsertRows(db *sql.DB, name string, columns []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
		placeholders[i] = "?"
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert into %s: %w", name, err)
	}
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(name), strings.Join(quoted, ", "), strings.Join(placeholders, ", ")))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert into %s: %w", name, err)
	}
	defer stmt.Close()
	for _, row := range rows {
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert into %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert into %s: %w", name, err)
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
