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
	"testing"

	"github.com/energycodes/codematch/pkg/header"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tbl := Table{
		{"minimum_capacity": 0, "maximum_capacity": 65000, "start_date": "2019-01-01", "end_date": "2999-09-09"},
		{"minimum_capacity": "abc", "maximum_capacity": 10},
		{"minimum_area": 500, "maximum_area": 100},
		{"start_date": "2020-01-01", "end_date": "2019-01-01"},
		{"start_date": "sometime", "minimum_floors": nil, "maximum_floors": 3},
	}

	res := Validate("unitary_acs", tbl, "v1.0.0")
	assert.Equal(t, header.KindTableValidation, res.Kind)
	assert.Equal(t, "unitary_acs", res.Table)
	assert.Equal(t, 5, res.Summary.Records)
	assert.Equal(t, 4, res.Summary.Invalid)
	assert.Equal(t, ValidationStatusFail, res.Summary.Status)

	byRecord := map[int][]string{}
	for _, is := range res.Issues {
		byRecord[is.Record] = append(byRecord[is.Record], is.Field)
	}
	assert.NotContains(t, byRecord, 0)
	assert.Equal(t, []string{"minimum_capacity"}, byRecord[1])
	assert.Equal(t, []string{"minimum_area"}, byRecord[2])
	assert.Equal(t, []string{"start_date"}, byRecord[3])
	assert.Equal(t, []string{"start_date"}, byRecord[4])

	require.Len(t, res.Rows(), len(res.Issues))
	assert.Equal(t, res.Columns(), []string{"record", "field", "value", "message"})
}

func TestValidatePass(t *testing.T) {
	res := Validate("motors", Table{{"type": "Enclosed"}}, "")
	assert.Equal(t, ValidationStatusPass, res.Summary.Status)
	assert.Empty(t, res.Issues)
	assert.Same(t, &res.Header, res.GetHeader())
}
