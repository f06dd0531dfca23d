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


package buildingtype

import (
	"bytes"
	"log/slog"
	"testing"

	cmerrors "github.com/energycodes/codematch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupName(t *testing.T) {
	tests := map[string]string{
		"SmallOffice":         Office,
		"MediumOffice":        Office,
		"LargeOfficeDetailed": Office,
		"RetailStripmall":     StripMall,
		"RetailStandalone":    Retail,
		"Office":              Office,
		"Warehouse":           "Warehouse",
		"":                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, LookupName(in), in)
	}
}

func TestPrimary(t *testing.T) {
	tests := []struct {
		name     string
		building Building
		want     string
	}{
		{
			name: "largest area wins",
			building: Building{SpaceTypes: []SpaceType{
				{Name: "Office A", StandardsBuildingType: "Office", FloorAreaM2: 400},
				{Name: "Storage", StandardsBuildingType: "Warehouse", FloorAreaM2: 900},
			}},
			want: "Warehouse",
		},
		{
			name: "prototype names aggregate",
			building: Building{SpaceTypes: []SpaceType{
				{Name: "Open", StandardsBuildingType: "SmallOffice", FloorAreaM2: 500},
				{Name: "Closed", StandardsBuildingType: "Office", FloorAreaM2: 500},
				{Name: "Bulk", StandardsBuildingType: "Warehouse", FloorAreaM2: 800},
			}},
			want: Office,
		},
		{
			name: "tie goes to first space type by name",
			building: Building{SpaceTypes: []SpaceType{
				{Name: "Zeta", StandardsBuildingType: "Retail", FloorAreaM2: 100},
				{Name: "Alpha", StandardsBuildingType: "Warehouse", FloorAreaM2: 100},
			}},
			want: "Warehouse",
		},
		{
			name: "untyped space types are skipped",
			building: Building{SpaceTypes: []SpaceType{
				{Name: "Plenum", FloorAreaM2: 5000},
				{Name: "Sales", StandardsBuildingType: "RetailStandalone", FloorAreaM2: 10},
			}},
			want: Retail,
		},
		{
			name:     "building level fallback",
			building: Building{StandardsBuildingType: "RetailStripmall", SpaceTypes: []SpaceType{{Name: "Plenum"}}},
			want:     StripMall,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Primary(tt.building)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrimaryNotFound(t *testing.T) {
	_, err := Primary(Building{ID: "m1", SpaceTypes: []SpaceType{{Name: "Plenum"}}})
	require.Error(t, err)
	assert.True(t, cmerrors.HasCode(err, cmerrors.ErrCodeNotFound))
}

func TestPrimaryBuildingDisagreementWarns(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	got, err := Primary(Building{
		StandardsBuildingType: "Warehouse",
		SpaceTypes:            []SpaceType{{Name: "Open", StandardsBuildingType: "MediumOffice", FloorAreaM2: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, Office, got)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"buildingLevel":"Warehouse"`)
}

func TestRemapOffice(t *testing.T) {
	tests := []struct {
		area    float64
		stories int
		want    string
	}{
		{10_000, 1, SmallOffice},
		{10_000, 3, SmallOffice},
		{10_000, 4, MediumOffice},
		{25_000, 1, MediumOffice},
		{100_000, 5, MediumOffice},
		{100_000, 6, LargeOffice},
		{150_000, 1, LargeOffice},
		{500_000, 40, LargeOffice},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RemapOffice(tt.area, tt.stories), "%v ft2 %d stories", tt.area, tt.stories)
	}
}

func office(areaM2 float64, stories int) Building {
	return Building{
		ID:          "office",
		FloorAreaM2: areaM2,
		NumStories:  stories,
		SpaceTypes:  []SpaceType{{Name: "Open", StandardsBuildingType: "Office", FloorAreaM2: areaM2}},
	}
}

func TestResolve(t *testing.T) {
	// 1000 m2 is about 10,764 ft2; 5000 m2 about 53,820 ft2
	got, err := Resolve(office(1000, 2), Options{RemapOffice: true})
	require.NoError(t, err)
	assert.Equal(t, SmallOffice, got)

	got, err = Resolve(office(5000, 3), Options{RemapOffice: true})
	require.NoError(t, err)
	assert.Equal(t, MediumOffice, got)

	got, err = Resolve(office(5000, 3), Options{})
	require.NoError(t, err)
	assert.Equal(t, Office, got)

	strip := Building{SpaceTypes: []SpaceType{{Name: "Shop", StandardsBuildingType: "RetailStripmall", FloorAreaM2: 100}}}
	got, err = Resolve(strip, Options{RemapRetail: true})
	require.NoError(t, err)
	assert.Equal(t, RetailStripmall, got)

	standalone := Building{StandardsBuildingType: "Retail"}
	got, err = Resolve(standalone, Options{RemapOffice: true, RemapRetail: true})
	require.NoError(t, err)
	assert.Equal(t, RetailStandalone, got)

	_, err = Resolve(Building{}, Options{})
	assert.Error(t, err)
}

func TestFloorAreaFt2FallsBackToSpaceTypes(t *testing.T) {
	b := Building{SpaceTypes: []SpaceType{{FloorAreaM2: 60}, {FloorAreaM2: 40}}}
	assert.InDelta(t, 1076.391, b.FloorAreaFt2(), 0.001)
}

func TestWholeBuildingSpaceTypeName(t *testing.T) {
	assert.Equal(t, "WholeBuilding - Sm Office", WholeBuildingSpaceTypeName(office(1000, 2), Office))
	assert.Equal(t, "WholeBuilding - Md Office", WholeBuildingSpaceTypeName(office(1000, 4), Office))
	assert.Equal(t, "WholeBuilding - Lg Office", WholeBuildingSpaceTypeName(office(20000, 4), LargeOffice))
	assert.Equal(t, WholeBuildingSpaceType, WholeBuildingSpaceTypeName(office(1000, 2), Retail))
}

func TestCache(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)

	b := office(1000, 2)
	got, err := c.Primary(b)
	require.NoError(t, err)
	assert.Equal(t, Office, got)
	assert.Equal(t, 1, c.Len())

	// the cached answer is keyed by ID, not recomputed from the new content
	b.SpaceTypes = []SpaceType{{Name: "Bulk", StandardsBuildingType: "Warehouse", FloorAreaM2: 1}}
	got, err = c.Primary(b)
	require.NoError(t, err)
	assert.Equal(t, Office, got)

	resolved, err := c.Resolve(b, Options{RemapOffice: true})
	require.NoError(t, err)
	assert.Equal(t, SmallOffice, resolved)

	c.Purge()
	assert.Equal(t, 0, c.Len())
	got, err = c.Primary(b)
	require.NoError(t, err)
	assert.Equal(t, "Warehouse", got)

	// no ID, no caching
	anon := office(1000, 2)
	anon.ID = ""
	_, err = c.Primary(anon)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	// errors are not cached
	_, err = c.Primary(Building{ID: "empty"})
	require.Error(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestNewCacheDefaultSize(t *testing.T) {
	c, err := NewCache(0)
	require.NoError(t, err)
	assert.NotNil(t, c)
}
