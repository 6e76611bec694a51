package sheet

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/sheettrans/internal/table"
)

func loadSQLite(path string) (*table.Workbook, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, formatError(path, fmt.Errorf("failed to open database: %w", err))
	}
	defer db.Close()

	names, err := tableNames(db)
	if err != nil {
		return nil, formatError(path, err)
	}
	if len(names) == 0 {
		return nil, formatError(path, fmt.Errorf("database has no tables"))
	}

	wb := table.NewWorkbook()
	for _, name := range names {
		ds, err := readTable(db, name)
		if err != nil {
			return nil, formatError(path, fmt.Errorf("table %s: %w", name, err))
		}
		wb.Add(name, ds)
	}
	return wb, nil
}

func tableNames(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func readTable(db *sql.DB, name string) (*table.Dataset, error) {
	rows, err := db.Query("SELECT * FROM " + quoteIdent(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var records [][]table.Cell
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make([]table.Cell, len(columns))
		for i, v := range values {
			if v.Valid {
				rec[i] = table.Text(v.String)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return table.FromRecords(NormalizeHeader(columns), records)
}

func saveSQLite(path string, wb *table.Workbook) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, name := range wb.Names() {
		ds, _ := wb.Sheet(name)
		if err := writeTable(tx, name, ds); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to write table %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func writeTable(tx *sql.Tx, name string, ds *table.Dataset) error {
	columns := ds.Columns()
	if len(columns) == 0 {
		return nil
	}

	defs := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdent(c) + " TEXT"
		marks[i] = "?"
	}

	if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))); err != nil {
		return err
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(name), strings.Join(marks, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range ds.Records() {
		args := make([]interface{}, len(rec))
		for i, cell := range rec {
			if cell.Valid {
				args[i] = cell.Value
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
