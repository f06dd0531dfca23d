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


package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		family string
		year   int
		sep    string
		err    error
	}{
		{"90.1-2019", "90.1", 2019, "-", nil},
		{"90.1-PRM-2019", "90.1-PRM", 2019, "-", nil},
		{"NECB2011", "NECB", 2011, "", nil},
		{"DOE Ref Pre-1980", "DOE Ref Pre", 1980, "-", nil},
		{"DOE Ref 1980-2004", "DOE Ref 1980", 2004, "-", nil},
		{"ComStock 90.1-2013", "ComStock 90.1", 2013, "-", nil},
		{"  90.1-2013  ", "90.1", 2013, "-", nil},
		{"", "", 0, "", ErrEmptyTemplate},
		{"   ", "", 0, "", ErrEmptyTemplate},
		{"NECB", "", 0, "", ErrNoYear},
		{"90.1-20x9", "", 0, "", ErrNoYear},
		{"ABC12019", "", 0, "", ErrNoYear},
		{"2019", "", 0, "", ErrNoFamily},
		{"-2019", "", 0, "", ErrNoFamily},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.family, got.Family)
			assert.Equal(t, tt.year, got.Year)
			assert.Equal(t, tt.sep, got.Sep)
		})
	}
}

func TestString(t *testing.T) {
	for _, s := range []string{"90.1-2019", "NECB2011", "DOE Ref Pre-1980", "90.1-PRM-2019"} {
		assert.Equal(t, s, MustParse(s).String())
	}
	assert.Equal(t, "90.1-2004", New("90.1", 2004).String())
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("NECB") })
}

func TestCompare(t *testing.T) {
	a := MustParse("90.1-2013")
	b := MustParse("90.1-2019")
	n := MustParse("NECB2011")

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(MustParse("90.1-2013")))
	assert.Equal(t, -1, b.Compare(n), "families order before years")

	assert.True(t, b.IsNewer(a))
	assert.False(t, a.IsNewer(b))
	assert.False(t, n.IsNewer(a), "different families are never newer")
	assert.True(t, a.SameFamily(b))
	assert.False(t, a.SameFamily(n))
}

func TestSort(t *testing.T) {
	in := []string{"NECB2015", "90.1-2019", "custom", "90.1-2004", "NECB2011", "90.1-2019", "90.1-2013"}
	assert.Equal(t, []string{"90.1-2004", "90.1-2013", "90.1-2019", "NECB2011", "NECB2015", "custom"}, Sort(in))
	assert.Empty(t, Sort(nil))
}

func TestLatest(t *testing.T) {
	names := []string{"90.1-2013", "NECB2020", "90.1-2019", "90.1-2004", "bad"}

	got, ok := Latest(names, "90.1")
	require.True(t, ok)
	assert.Equal(t, "90.1-2019", got.String())

	_, ok = Latest(names, "90.1-PRM")
	assert.False(t, ok)
}
