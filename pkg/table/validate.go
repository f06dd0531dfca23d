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
	"fmt"
	"time"

	"github.com/energycodes/codematch/pkg/header"
)

// ValidationStatus is the overall outcome of validating a table.
type ValidationStatus string

const (
	ValidationStatusPass ValidationStatus = "pass"
	ValidationStatusFail ValidationStatus = "fail"
)

// Issue describes one field of one record that the matcher cannot use.
type Issue struct {
	Record  int    `json:"record" yaml:"record"`
	Field   string `json:"field" yaml:"field"`
	Value   string `json:"value" yaml:"value"`
	Message string `json:"message" yaml:"message"`
}

// ValidationSummary aggregates a validation run.
type ValidationSummary struct {
	Records  int              `json:"records" yaml:"records"`
	Invalid  int              `json:"invalid" yaml:"invalid"`
	Issues   int              `json:"issues" yaml:"issues"`
	Status   ValidationStatus `json:"status" yaml:"status"`
	Duration time.Duration    `json:"duration" yaml:"duration"`
}

// ValidationResult is the report produced by Validate.
type ValidationResult struct {
	header.Header `json:",inline" yaml:",inline"`

	Table   string            `json:"table" yaml:"table"`
	Summary ValidationSummary `json:"summary" yaml:"summary"`
	Issues  []Issue           `json:"issues" yaml:"issues"`
}

// GetHeader returns the document header.
func (r *ValidationResult) GetHeader() *header.Header {
	return &r.Header
}

// Columns implements serializer.Tabular.
func (r *ValidationResult) Columns() []string {
	return []string{"record", "field", "value", "message"}
}

// Rows implements serializer.Tabular.
func (r *ValidationResult) Rows() [][]string {
	rows := make([][]string, 0, len(r.Issues))
	for _, is := range r.Issues {
		rows = append(rows, []string{fmt.Sprint(is.Record), is.Field, is.Value, is.Message})
	}
	return rows
}

// Validate checks that every range bound in t is numeric, that every date
// bound parses, and that no lower bound exceeds its upper bound. Nil bounds
// are allowed; the matcher skips those records.
func Validate(name string, t Table, version string) *ValidationResult {
	start := time.Now()
	res := &ValidationResult{Table: name, Issues: make([]Issue, 0)}
	res.Init(header.KindTableValidation, header.APIVersion, version)

	invalid := 0
	for i, r := range t {
		before := len(res.Issues)
		res.Issues = append(res.Issues, validateRecord(i, r)...)
		if len(res.Issues) > before {
			invalid++
		}
	}

	res.Summary = ValidationSummary{
		Records:  len(t),
		Invalid:  invalid,
		Issues:   len(res.Issues),
		Status:   ValidationStatusPass,
		Duration: time.Since(start),
	}
	if invalid > 0 {
		res.Summary.Status = ValidationStatusFail
	}
	return res
}

func validateRecord(idx int, r Record) []Issue {
	var issues []Issue
	add := func(field string, v any, msg string) {
		issues = append(issues, Issue{Record: idx, Field: field, Value: fmt.Sprint(v), Message: msg})
	}

	for _, p := range NumericRanges {
		okMin, okMax := true, true
		for _, f := range []string{p.Min, p.Max} {
			v := r[f]
			if v == nil || IsNumeric(v) {
				continue
			}
			add(f, v, "requires a numeric value")
			if f == p.Min {
				okMin = false
			} else {
				okMax = false
			}
		}
		if okMin && okMax && r.Bounded(p) && r.Float(p.Min) > r.Float(p.Max) {
			add(p.Min, r[p.Min], fmt.Sprintf("exceeds %s %v", p.Max, r[p.Max]))
		}
	}

	var dates [2]time.Time
	parsed := 0
	for i, f := range []string{DateRange.Min, DateRange.Max} {
		v := r[f]
		if v == nil {
			continue
		}
		d, err := Date(v)
		if err != nil {
			add(f, v, "requires a date")
			continue
		}
		dates[i] = d
		parsed++
	}
	if parsed == 2 && dates[0].After(dates[1]) {
		add(DateRange.Min, r[DateRange.Min], fmt.Sprintf("is after %s", DateRange.Max))
	}
	return issues
}
