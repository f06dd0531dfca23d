// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package table

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// rowColumn keeps record order in SQLite tables.
const rowColumn = "_codematch_row"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// OpenSQLite opens (creating if needed) the SQLite database at path.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	return db, nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func checkTableName(name string) error {
	if !tableNamePattern.MatchString(name) || strings.HasPrefix(strings.ToLower(name), "sqlite_") {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

// ListSQLite returns the names of the user tables in db, sorted.
func ListSQLite(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sqlite tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to list sqlite tables: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// SaveSQLite replaces table name in db with t, one row per record and one
// column per field in t.Columns. Fields a record lacks are stored as NULL.
func SaveSQLite(ctx context.Context, db *sql.DB, name string, t Table) error {
	if err := checkTableName(name); err != nil {
		return err
	}
	cols := t.Columns()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}

	defs := []string{quoteIdent(rowColumn) + " INTEGER PRIMARY KEY"}
	for _, c := range cols {
		defs = append(defs, quoteIdent(c))
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}

	if len(t) > 0 {
		quoted := []string{quoteIdent(rowColumn)}
		marks := []string{"?"}
		for _, c := range cols {
			quoted = append(quoted, quoteIdent(c))
			marks = append(marks, "?")
		}
		stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			quoteIdent(name), strings.Join(quoted, ", "), strings.Join(marks, ", ")))
		if err != nil {
			return fmt.Errorf("failed to prepare insert for %s: %w", name, err)
		}
		defer stmt.Close()

		for i, r := range t {
			args := make([]any, 0, len(cols)+1)
			args = append(args, i)
			for _, c := range cols {
				v, err := sqlValue(r[c])
				if err != nil {
					return fmt.Errorf("record %d field %s: %w", i, c, err)
				}
				args = append(args, v)
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("failed to insert record %d into %s: %w", i, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit table %s: %w", name, err)
	}
	slog.Debug("saved table to sqlite", "table", name, "records", len(t), "columns", len(cols))
	return nil
}

func sqlValue(v any) (any, error) {
	switch x := v.(type) {
	case nil, string, int, int32, int64, float32, float64, bool:
		return x, nil
	case json.Number:
		return x.String(), nil
	case time.Time:
		return x.Format(time.RFC3339), nil
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
}

// LoadSQLite reads table name from db in stored order. NULL columns are
// left out of the record.
func LoadSQLite(ctx context.Context, db *sql.DB, name string) (Table, error) {
	if err := checkTableName(name); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", quoteIdent(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", name, err)
	}

	type indexed struct {
		pos int64
		rec Record
	}
	var out []indexed
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", name, err)
		}

		item := indexed{pos: -1, rec: make(Record, len(cols))}
		for i, c := range cols {
			v := vals[i]
			if c == rowColumn {
				if n, ok := v.(int64); ok {
					item.pos = n
				}
				continue
			}
			if v == nil {
				continue
			}
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			item.rec[c] = v
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	// Tables not written by SaveSQLite have no row column and keep scan order.
	t := make(Table, len(out))
	ordered := true
	for _, it := range out {
		if it.pos < 0 || it.pos >= int64(len(out)) || t[it.pos] != nil {
			ordered = false
			break
		}
		t[it.pos] = it.rec
	}
	if !ordered {
		for i, it := range out {
			t[i] = it.rec
		}
	}
	return t, nil
}
