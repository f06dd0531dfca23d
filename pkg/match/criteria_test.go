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
	"encoding/json"
	"net/url"
	"testing"
	"time"

	cmerrors "github.com/energycodes/codematch/pkg/errors"
	"github.com/energycodes/codematch/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	preds := Compile(Criteria{"template": "90.1-2019", "region": AnyValue, "poles": 4})
	require.Len(t, preds, 3)

	assert.Equal(t, "poles", preds[0].Field)
	assert.Equal(t, PredicateExact, preds[0].Kind)
	assert.Equal(t, "region", preds[1].Field)
	assert.Equal(t, PredicateWildcard, preds[1].Kind)
	assert.Equal(t, "template", preds[2].Field)
	for _, p := range preds {
		assert.True(t, p.AbsentOK)
	}
	assert.Equal(t, "wildcard", PredicateWildcard.String())
}

func TestPredicateMatches(t *testing.T) {
	rec := table.Record{"template": "90.1-2019", "poles": 4, "region": "Any"}

	tests := []struct {
		name      string
		pred      Predicate
		recordAny bool
		want      bool
	}{
		{"exact string", Exact("template", "90.1-2019"), false, true},
		{"exact string mismatch", Exact("template", "90.1-2016"), false, false},
		{"number across kinds", Exact("poles", 4.0), false, true},
		{"no string to number coercion", Exact("poles", "4"), false, false},
		{"absent field ok", Exact("fuel", "Electricity"), false, true},
		{"absent field required", Predicate{Field: "fuel", Kind: PredicateExact, Value: "x"}, false, false},
		{"wildcard", Wildcard("template"), false, true},
		{"record Any off by default", Exact("region", "north"), false, false},
		{"record Any when enabled", Exact("region", "north"), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Matches(rec, tt.recordAny))
		})
	}
}

func TestEqual(t *testing.T) {
	d := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, Equal(int64(4), 4.0))
	assert.True(t, Equal(json.Number("2.5"), float32(2.5)))
	assert.True(t, Equal(uint8(1), 1))
	assert.False(t, Equal(4, "4"))
	assert.False(t, Equal("4", 4))
	assert.True(t, Equal("a", "a"))
	assert.True(t, Equal(true, true))
	assert.False(t, Equal(true, "true"))
	assert.True(t, Equal(d, d.In(time.FixedZone("x", 3600))))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, "x"))
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, 4.0, ParseValue("4"))
	assert.Equal(t, 2.5, ParseValue(" 2.5 "))
	assert.Equal(t, "4", ParseValue(`"4"`))
	assert.Equal(t, "90.1-2019", ParseValue("90.1-2019"))
	assert.Equal(t, "NaN", ParseValue("NaN"))
	assert.Equal(t, "Inf", ParseValue("Inf"))
	assert.Equal(t, AnyValue, ParseValue("Any"))
}

func TestParseCriteriaPairs(t *testing.T) {
	c, err := ParseCriteriaPairs([]string{"template=90.1-2019", "number_of_poles=4", "type = Enclosed"})
	require.NoError(t, err)
	assert.Equal(t, Criteria{"template": "90.1-2019", "number_of_poles": 4.0, "type": "Enclosed"}, c)

	_, err = ParseCriteriaPairs([]string{"template"})
	require.Error(t, err)
	assert.True(t, cmerrors.HasCode(err, cmerrors.ErrCodeInvalidRequest))

	_, err = ParseCriteriaPairs([]string{"=x"})
	require.Error(t, err)
}

func TestParseCriteriaFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("table", "motors")
	v.Set("criteria.template", "90.1-2019")
	v.Set("criteria.number_of_poles", "4")
	v.Set("criteria.", "ignored")

	assert.Equal(t, Criteria{"template": "90.1-2019", "number_of_poles": 4.0}, ParseCriteriaFromValues(v))
}

func TestCriteriaString(t *testing.T) {
	assert.Equal(t, "{a=1, b=x}", Criteria{"b": "x", "a": 1}.String())
	assert.Equal(t, "{}", Criteria{}.String())
}
