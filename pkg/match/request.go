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


package match

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	cmerrors "github.com/energycodes/codematch/pkg/errors"
	"github.com/energycodes/codematch/pkg/header"
	"github.com/energycodes/codematch/pkg/serializer"
	"github.com/energycodes/codematch/pkg/table"
)

// Request is a find request against a named table, as accepted over HTTP.
type Request struct {
	Table       string   `json:"table" yaml:"table"`
	Criteria    Criteria `json:"criteria,omitempty" yaml:"criteria,omitempty"`
	Capacity    *float64 `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Volume      *float64 `json:"volume,omitempty" yaml:"volume,omitempty"`
	FanMotorBHP *float64 `json:"fanMotorBhp,omitempty" yaml:"fanMotorBhp,omitempty"`
	// Date is YYYY-MM-DD or RFC 3339.
	Date      string   `json:"date,omitempty" yaml:"date,omitempty"`
	Area      *float64 `json:"area,omitempty" yaml:"area,omitempty"`
	NumFloors *float64 `json:"numFloors,omitempty" yaml:"numFloors,omitempty"`
}

// Validate checks that the request names a table.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Table) == "" {
		return cmerrors.New(cmerrors.ErrCodeInvalidRequest, "table is required")
	}
	return nil
}

// Probes returns the probe values of the request.
func (r *Request) Probes() (Probes, error) {
	p := Probes{
		Capacity:    r.Capacity,
		Volume:      r.Volume,
		FanMotorBHP: r.FanMotorBHP,
		Area:        r.Area,
		NumFloors:   r.NumFloors,
	}
	if s := strings.TrimSpace(r.Date); s != "" {
		d, err := table.Date(s)
		if err != nil {
			return Probes{}, cmerrors.WrapWithContext(cmerrors.ErrCodeInvalidRequest,
				"invalid date value", err, map[string]any{"date": s})
		}
		p.Date = &d
	}
	return p, nil
}

// ParseRequestFromValues reads a request from query parameters: table,
// criteria.<field>=value and the probe parameters.
func ParseRequestFromValues(values url.Values) (*Request, error) {
	p, err := ParseProbesFromValues(values)
	if err != nil {
		return nil, err
	}
	return &Request{
		Table:       strings.TrimSpace(values.Get("table")),
		Criteria:    ParseCriteriaFromValues(values),
		Capacity:    p.Capacity,
		Volume:      p.Volume,
		FanMotorBHP: p.FanMotorBHP,
		Date:        strings.TrimSpace(values.Get("date")),
		Area:        p.Area,
		NumFloors:   p.NumFloors,
	}, nil
}

// ParseRequestFromBody decodes a JSON or YAML request body. YAML is used
// when contentType mentions yaml.
func ParseRequestFromBody(body io.Reader, contentType string) (*Request, error) {
	if body == nil {
		return nil, cmerrors.New(cmerrors.ErrCodeInvalidRequest, "request body is empty")
	}

	format := serializer.FormatJSON
	if strings.Contains(strings.ToLower(contentType), "yaml") {
		format = serializer.FormatYAML
	}

	r, err := serializer.NewReader(format, io.NopCloser(body))
	if err != nil {
		return nil, cmerrors.Wrap(cmerrors.ErrCodeInternal, "failed to create request reader", err)
	}

	var req Request
	if err := r.Deserialize(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, cmerrors.New(cmerrors.ErrCodeInvalidRequest, "request body is empty")
		}
		return nil, cmerrors.Wrap(cmerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to decode %s request", format), err)
	}
	return &req, nil
}

// Result is the document returned for a find request.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Table    string         `json:"table" yaml:"table"`
	Criteria Criteria       `json:"criteria" yaml:"criteria"`
	Probes   Probes         `json:"probes" yaml:"probes"`
	Count    int            `json:"count" yaml:"count"`
	Records  []table.Record `json:"records" yaml:"records"`
}

// NewResult wraps the records found in tableName.
func NewResult(tableName string, criteria Criteria, p Probes, records []table.Record, version string) *Result {
	if records == nil {
		records = []table.Record{}
	}
	if criteria == nil {
		criteria = Criteria{}
	}
	res := &Result{
		Table:    tableName,
		Criteria: criteria,
		Probes:   p,
		Count:    len(records),
		Records:  records,
	}
	res.Init(header.KindMatchResult, header.APIVersion, version)
	return res
}

// GetHeader returns the document header.
func (r *Result) GetHeader() *header.Header {
	return &r.Header
}

// Columns implements serializer.Tabular.
func (r *Result) Columns() []string {
	return table.Table(r.Records).Columns()
}

// Rows implements serializer.Tabular.
func (r *Result) Rows() [][]string {
	return table.Table(r.Records).Rows()
}
