package main

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"healthchat/internal/storage"
)

// loadcsv performs the one-shot ingestion of a directory of CSV exports into
// the SQLite store, one table per file named after the file.
func main() {
	csvDir := flag.String("csv", "./csvs", "directory containing the CSV files to load")
	dbPath := flag.String("db", "./synthea_data.db", "path to the SQLite database file")
	flag.Parse()

	db, err := storage.Open(*dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	entries, err := os.ReadDir(*csvDir)
	if err != nil {
		log.Fatalf("read csv directory: %v", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		table := strings.TrimSuffix(entry.Name(), ".csv")
		if err := loadFile(db, filepath.Join(*csvDir, entry.Name()), table); err != nil {
			log.Fatalf("load %s: %v", entry.Name(), err)
		}
		log.Printf("Loaded %s into table %s", entry.Name(), table)
		loaded++
	}
	log.Printf("Loaded %d CSV files into %s", loaded, *dbPath)
}

func loadFile(db *sql.DB, path, table string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	headers, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}

	if err := storage.ReplaceTable(db, table, headers); err != nil {
		return err
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, record)
	}
	return storage.InsertRows(db, table, headers, rows)
}
