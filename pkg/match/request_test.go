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
	"net/url"
	"strings"
	"testing"
	"time"

	cmerrors "github.com/energycodes/codematch/pkg/errors"
	"github.com/energycodes/codematch/pkg/header"
	"github.com/energycodes/codematch/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestParseRequestFromBody(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		body := `{"table":"motors","criteria":{"template":"90.1-2019","number_of_poles":4},"fanMotorBhp":7.5,"date":"2024-06-01"}`
		req, err := ParseRequestFromBody(strings.NewReader(body), "application/json")
		require.NoError(t, err)
		require.NoError(t, req.Validate())

		assert.Equal(t, "motors", req.Table)
		assert.Equal(t, "90.1-2019", req.Criteria["template"])
		assert.Equal(t, 4.0, req.Criteria["number_of_poles"])

		p, err := req.Probes()
		require.NoError(t, err)
		assert.Equal(t, ptr.To(7.5), p.FanMotorBHP)
		require.NotNil(t, p.Date)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), p.Date.UTC())
	})

	t.Run("yaml", func(t *testing.T) {
		body := "table: unitary_acs\ncriteria:\n  subcategory: Split System\ncapacity: 60000\n"
		req, err := ParseRequestFromBody(strings.NewReader(body), "application/x-yaml")
		require.NoError(t, err)
		assert.Equal(t, "unitary_acs", req.Table)
		assert.Equal(t, "Split System", req.Criteria["subcategory"])
		assert.Equal(t, ptr.To(60000.0), req.Capacity)
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := ParseRequestFromBody(strings.NewReader(""), "application/json")
		require.Error(t, err)
		assert.True(t, cmerrors.HasCode(err, cmerrors.ErrCodeInvalidRequest))
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := ParseRequestFromBody(strings.NewReader("{"), "application/json")
		require.Error(t, err)
		assert.True(t, cmerrors.HasCode(err, cmerrors.ErrCodeInvalidRequest))
	})

	t.Run("nil body", func(t *testing.T) {
		_, err := ParseRequestFromBody(nil, "")
		assert.True(t, cmerrors.HasCode(err, cmerrors.ErrCodeInvalidRequest))
	})
}

func TestRequestValidation(t *testing.T) {
	err := (&Request{}).Validate()
	assert.True(t, cmerrors.HasCode(err, cmerrors.ErrCodeInvalidRequest))

	_, err = (&Request{Table: "motors", Date: "someday"}).Probes()
	assert.True(t, cmerrors.HasCode(err, cmerrors.ErrCodeInvalidRequest))
}

func TestParseRequestFromValues(t *testing.T) {
	values := url.Values{
		"table":              {"water_heaters"},
		"criteria.fuel_type": {"Electricity"},
		"volume":             {"50"},
		"capacity":           {"15000"},
		"date":               {"2020-01-01"},
		"unrelated":          {"ignored"},
	}
	req, err := ParseRequestFromValues(values)
	require.NoError(t, err)

	assert.Equal(t, "water_heaters", req.Table)
	assert.Equal(t, Criteria{"fuel_type": "Electricity"}, req.Criteria)
	assert.Equal(t, ptr.To(50.0), req.Volume)
	assert.Equal(t, ptr.To(15000.0), req.Capacity)
	assert.Equal(t, "2020-01-01", req.Date)

	_, err = ParseRequestFromValues(url.Values{"capacity": {"lots"}})
	assert.True(t, cmerrors.HasCode(err, cmerrors.ErrCodeInvalidRequest))
}

func TestNewResult(t *testing.T) {
	recs := []table.Record{
		{"template": "90.1-2019", "efficiency": 0.9},
		{"template": "90.1-2013"},
	}
	res := NewResult("motors", Criteria{"template": AnyValue}, BuildProbes(WithCapacity(5)), recs, "v1.0.0")

	assert.Equal(t, header.KindMatchResult, res.GetHeader().Kind)
	assert.Equal(t, header.APIVersion, res.APIVersion)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []string{"efficiency", "template"}, res.Columns())
	assert.Equal(t, [][]string{{"0.9", "90.1-2019"}, {"", "90.1-2013"}}, res.Rows())

	empty := NewResult("motors", nil, Probes{}, nil, "")
	assert.NotNil(t, empty.Records)
	assert.NotNil(t, empty.Criteria)
	assert.Zero(t, empty.Count)
}
