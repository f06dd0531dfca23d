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


package library

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/energycodes/codematch/pkg/defaults"
	cmerrors "github.com/energycodes/codematch/pkg/errors"
	"github.com/energycodes/codematch/pkg/serializer"
	"github.com/energycodes/codematch/pkg/table"
	"github.com/energycodes/codematch/pkg/template"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// EmbeddedSource is the Source of the library returned by Default.
const EmbeddedSource = "embedded"

//go:embed data/*.json data/*.yaml
var dataFS embed.FS

var (
	defaultOnce    sync.Once
	cachedLibrary  *Library
	cachedLoadErr  error
	tableFileExts  = []string{".json", ".yaml", ".yml"}
	sqliteFileExts = []string{".db", ".sqlite", ".sqlite3"}
)

// Library is a named set of standards tables. A Library is read-only after
// construction and safe for concurrent use.
type Library struct {
	source string
	tables map[string]table.Table
}

// TableInfo summarizes one table of a Library.
type TableInfo struct {
	Name    string   `json:"name" yaml:"name"`
	Records int      `json:"records" yaml:"records"`
	Columns []string `json:"columns" yaml:"columns"`
	// Templates lists the distinct template values in edition order.
	Templates []string `json:"templates,omitempty" yaml:"templates,omitempty"`
}

// New returns a Library over tables. The map is copied; the tables are not.
func New(source string, tables map[string]table.Table) *Library {
	l := &Library{source: source, tables: make(map[string]table.Table, len(tables))}
	maps.Copy(l.tables, tables)
	return l
}

// Default returns the library compiled into the binary. It is decoded once
// per process.
func Default(_ context.Context) (*Library, error) {
	defaultOnce.Do(func() {
		libraryCacheMisses.Inc()

		tables := make(map[string]table.Table)
		err := fs.WalkDir(dataFS, "data", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isTableFile(p) {
				return nil
			}

			content, readErr := dataFS.ReadFile(p)
			if readErr != nil {
				return fmt.Errorf("failed to read %s: %w", p, readErr)
			}

			var raw any
			if parseErr := yaml.Unmarshal(content, &raw); parseErr != nil {
				return cmerrors.Wrap(cmerrors.ErrCodeMalformedTable, fmt.Sprintf("failed to parse %s", p), parseErr)
			}

			t, normErr := table.Normalize(raw)
			if normErr != nil {
				return fmt.Errorf("embedded table %s: %w", p, normErr)
			}
			tables[tableName(p)] = t
			return nil
		})
		if err != nil {
			cachedLoadErr = err
			return
		}

		cachedLibrary = New(EmbeddedSource, tables)
	})

	if cachedLoadErr != nil {
		return nil, cachedLoadErr
	}
	if cachedLibrary == nil {
		return nil, cmerrors.New(cmerrors.ErrCodeInternal, "embedded library not initialized")
	}
	libraryCacheHits.Inc()
	return cachedLibrary, nil
}

// Load opens a library from src: the embedded library when src is empty,
// a SQLite database by file extension, a directory of table files, or a
// single table file (local, http(s) or cm://) named after its base name.
func Load(ctx context.Context, src string) (*Library, error) {
	switch {
	case src == "":
		return Default(ctx)
	case hasExt(src, sqliteFileExts):
		return LoadSQLite(ctx, src)
	}

	if info, err := os.Stat(src); err == nil && info.IsDir() {
		return LoadDir(ctx, src)
	}

	if !isTableFile(src) && !strings.HasPrefix(src, serializer.ConfigMapURIScheme) {
		return nil, cmerrors.NewWithContext(cmerrors.ErrCodeInvalidRequest,
			"unsupported library source, expected a directory, a SQLite database or a table file",
			map[string]any{"source": src})
	}

	t, err := table.LoadFile(ctx, src)
	if err != nil {
		return nil, err
	}
	return New(src, map[string]table.Table{tableName(src): t}), nil
}

// LoadDir loads every JSON and YAML file in dir (not recursively). Each file
// becomes a table named after the file without its extension.
func LoadDir(ctx context.Context, dir string) (*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, cmerrors.Wrap(cmerrors.ErrCodeNotFound, fmt.Sprintf("failed to read library directory %s", dir), err)
	}

	files := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !isTableFile(e.Name()) {
			continue
		}
		name := tableName(e.Name())
		if prev, dup := files[name]; dup {
			return nil, cmerrors.NewWithContext(cmerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("table %s is defined by more than one file", name),
				map[string]any{"files": []string{prev, e.Name()}})
		}
		files[name] = e.Name()
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.LibraryLoadTimeout)
	defer cancel()

	var mu sync.Mutex
	tables := make(map[string]table.Table, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaults.LibraryLoadConcurrency)
	for name, file := range files {
		g.Go(func() error {
			t, err := table.LoadFile(gctx, filepath.Join(dir, file))
			if err != nil {
				return err
			}
			mu.Lock()
			tables[name] = t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("library loaded", "source", dir, "tables", len(tables))
	return New(dir, tables), nil
}

// LoadSQLite loads every user table of the SQLite database at path.
func LoadSQLite(ctx context.Context, path string) (*Library, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, cmerrors.Wrap(cmerrors.ErrCodeNotFound, fmt.Sprintf("sqlite database %s not found", path), err)
	}

	db, err := table.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	names, err := table.ListSQLite(ctx, db)
	if err != nil {
		return nil, err
	}

	tables := make(map[string]table.Table, len(names))
	for _, name := range names {
		t, err := table.LoadSQLite(ctx, db, name)
		if err != nil {
			return nil, err
		}
		tables[name] = t
	}

	slog.Debug("library loaded", "source", path, "tables", len(tables))
	return New(path, tables), nil
}

// SaveSQLite writes every table of the library into the SQLite database at
// path, replacing tables of the same name.
func (l *Library) SaveSQLite(ctx context.Context, path string) error {
	db, err := table.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, name := range l.Names() {
		if err := table.SaveSQLite(ctx, db, name, l.tables[name]); err != nil {
			return err
		}
	}
	return nil
}

// Merge returns a new Library holding the tables of l and overlay. Overlay
// tables replace tables of the same name.
func (l *Library) Merge(overlay *Library) *Library {
	if overlay == nil {
		return l
	}
	merged := New(l.source+"+"+overlay.source, l.tables)
	maps.Copy(merged.tables, overlay.tables)
	return merged
}

// Source describes where the library was loaded from.
func (l *Library) Source() string { return l.source }

// Names returns the table names, sorted.
func (l *Library) Names() []string {
	return table.SortedKeys(l.tables)
}

// Table returns the named table or a NOT_FOUND error.
func (l *Library) Table(name string) (table.Table, error) {
	t, ok := l.tables[name]
	if !ok {
		return nil, cmerrors.NewWithContext(cmerrors.ErrCodeNotFound,
			fmt.Sprintf("table not found: %s", name),
			map[string]any{"source": l.source, "available": l.Names()})
	}
	return t, nil
}

// Summary describes every table, sorted by name.
func (l *Library) Summary() []TableInfo {
	out := make([]TableInfo, 0, len(l.tables))
	for _, name := range l.Names() {
		t := l.tables[name]
		out = append(out, TableInfo{Name: name, Records: len(t), Columns: t.Columns(), Templates: templates(t)})
	}
	return out
}

// Templates returns the distinct template values of the named table in
// edition order.
func (l *Library) Templates(name string) ([]string, error) {
	t, err := l.Table(name)
	if err != nil {
		return nil, err
	}
	return templates(t), nil
}

func templates(t table.Table) []string {
	var names []string
	for _, r := range t {
		if s, ok := r[table.FieldTemplate].(string); ok && s != "" {
			names = append(names, s)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return template.Sort(names)
}

func tableName(p string) string {
	base := path.Base(filepath.ToSlash(p))
	return strings.TrimSuffix(base, path.Ext(base))
}

func isTableFile(p string) bool {
	return hasExt(p, tableFileExts)
}

func hasExt(p string, exts []string) bool {
	return slices.Contains(exts, strings.ToLower(path.Ext(p)))
}
