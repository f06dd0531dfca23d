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
	"errors"
	"fmt"
	"slices"
	"time"

	cmerrors "github.com/energycodes/codematch/pkg/errors"
	"github.com/spf13/cast"
)

// ContainerKey is the key of the one-level wrapper some table documents use.
const ContainerKey = "table"

// FieldTemplate names the energy code edition of a record, e.g. "90.1-2019".
const FieldTemplate = "template"

// Range-bound field names recognized by the matcher and validator.
const (
	FieldMinimumCapacity = "minimum_capacity"
	FieldMaximumCapacity = "maximum_capacity"
	FieldMinimumStorage  = "minimum_storage"
	FieldMaximumStorage  = "maximum_storage"
	FieldMinimumArea     = "minimum_area"
	FieldMaximumArea     = "maximum_area"
	FieldMinimumFloors   = "minimum_floors"
	FieldMaximumFloors   = "maximum_floors"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
)

// RangePair names the lower and upper field of one range dimension.
type RangePair struct {
	Min string
	Max string
}

// NumericRanges lists the numeric range pairs, in matching order.
var NumericRanges = []RangePair{
	{FieldMinimumCapacity, FieldMaximumCapacity},
	{FieldMinimumStorage, FieldMaximumStorage},
	{FieldMinimumArea, FieldMaximumArea},
	{FieldMinimumFloors, FieldMaximumFloors},
}

// DateRange is the validity window pair.
var DateRange = RangePair{FieldStartDate, FieldEndDate}

// ErrMalformedTable is the cause of every error returned for input that is
// not a sequence of records.
var ErrMalformedTable = errors.New("malformed table")

// Record is one row of a standards table. Records are shared between callers
// and must not be modified after loading.
type Record map[string]any

// Table is an ordered sequence of records with no fixed schema.
type Table []Record

// Has reports whether the record defines field, even with a nil value.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Bounded reports whether the record defines both fields of p with non-nil
// values.
func (r Record) Bounded(p RangePair) bool {
	return r[p.Min] != nil && r[p.Max] != nil
}

// Float returns field as a float64, coercing like a lenient number parse:
// numbers as-is, numeric strings parsed, everything else 0.
func (r Record) Float(field string) float64 {
	return Float(r[field])
}

// Float coerces v to a float64. Values that do not parse as numbers are 0.
func Float(v any) float64 {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

// IsNumeric reports whether v parses as a number.
func IsNumeric(v any) bool {
	if v == nil {
		return false
	}
	_, err := cast.ToFloat64E(v)
	return err == nil
}

// Date parses v as a calendar date or timestamp.
func Date(v any) (time.Time, error) {
	if v == nil {
		return time.Time{}, fmt.Errorf("date is nil")
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %v: %w", v, err)
	}
	return t, nil
}

// Columns returns the union of field names across the table, sorted.
func (t Table) Columns() []string {
	seen := make(map[string]struct{})
	for _, r := range t {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	return SortedKeys(seen)
}

// Rows renders every record against Columns. Absent fields are empty.
func (t Table) Rows() [][]string {
	cols := t.Columns()
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		row := make([]string, len(cols))
		for i, c := range cols {
			if v, ok := r[c]; ok && v != nil {
				row[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Clone returns a table with copied records, for callers that need to edit.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for i, r := range t {
		c := make(Record, len(r))
		for k, v := range r {
			c[k] = v
		}
		out[i] = c
	}
	return out
}

// Normalize turns a raw table reference into a Table. A map holding the
// "table" key is unwrapped one level first. Sequences of maps are accepted
// in any of the shapes JSON and YAML decoders produce. Anything else,
// including nil, returns a MALFORMED_TABLE error wrapping ErrMalformedTable.
func Normalize(v any) (Table, error) {
	v = unwrap(v)

	switch t := v.(type) {
	case Table:
		if t == nil {
			return Table{}, nil
		}
		return t, nil
	case []Record:
		return Table(t), nil
	case []map[string]any:
		out := make(Table, len(t))
		for i, m := range t {
			out[i] = Record(m)
		}
		return out, nil
	case []any:
		out := make(Table, 0, len(t))
		for i, e := range t {
			r, ok := asRecord(e)
			if !ok {
				return nil, malformed(v, fmt.Sprintf("element %d is %T, not a record", i, e))
			}
			out = append(out, r)
		}
		return out, nil
	default:
		return nil, malformed(v, fmt.Sprintf("%T is not a sequence of records", v))
	}
}

func unwrap(v any) any {
	switch m := v.(type) {
	case map[string]any:
		if inner, ok := m[ContainerKey]; ok {
			return inner
		}
	case Record:
		if inner, ok := m[ContainerKey]; ok {
			return inner
		}
	case map[any]any:
		if inner, ok := m[ContainerKey]; ok {
			return inner
		}
	}
	return v
}

func asRecord(e any) (Record, bool) {
	switch m := e.(type) {
	case Record:
		return m, true
	case map[string]any:
		return Record(m), true
	case map[any]any:
		r := make(Record, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			r[ks] = val
		}
		return r, true
	default:
		return nil, false
	}
}

func malformed(v any, reason string) error {
	return cmerrors.WrapWithContext(cmerrors.ErrCodeMalformedTable, reason, ErrMalformedTable,
		map[string]any{"value": truncate(fmt.Sprintf("%v", v), 256)})
}

// Malformed returns a MALFORMED_TABLE error for a record field that cannot
// be interpreted.
func Malformed(field string, value any, cause error) error {
	return cmerrors.WrapWithContext(cmerrors.ErrCodeMalformedTable,
		fmt.Sprintf("field %s: %v", field, cause), ErrMalformedTable,
		map[string]any{"field": field, "value": fmt.Sprintf("%v", value)})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
