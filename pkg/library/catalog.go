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
	"fmt"
	"strings"

	"github.com/energycodes/codematch/pkg/header"
)

// Catalog is the document listing the tables of a Library.
type Catalog struct {
	header.Header `json:",inline" yaml:",inline"`

	Source string      `json:"source" yaml:"source"`
	Tables []TableInfo `json:"tables" yaml:"tables"`
}

// Catalog returns the table listing of l stamped with version.
func (l *Library) Catalog(version string) *Catalog {
	c := &Catalog{Source: l.source, Tables: l.Summary()}
	c.Init(header.KindLibrary, header.APIVersion, version)
	return c
}

// GetHeader returns the document header.
func (c *Catalog) GetHeader() *header.Header {
	return &c.Header
}

// Columns implements serializer.Tabular.
func (c *Catalog) Columns() []string {
	return []string{"name", "records", "templates", "columns"}
}

// Rows implements serializer.Tabular.
func (c *Catalog) Rows() [][]string {
	rows := make([][]string, 0, len(c.Tables))
	for _, t := range c.Tables {
		rows = append(rows, []string{t.Name, fmt.Sprint(t.Records), strings.Join(t.Templates, ","), strings.Join(t.Columns, ",")})
	}
	return rows
}
