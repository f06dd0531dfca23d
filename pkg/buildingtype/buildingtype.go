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
	"fmt"
	"log/slog"
	"slices"
	"strings"

	cmerrors "github.com/energycodes/codematch/pkg/errors"
)

// sqFtPerM2 converts square meters to square feet.
const sqFtPerM2 = 10.763910416709722

// Building type names produced by this package.
const (
	Office           = "Office"
	SmallOffice      = "SmallOffice"
	MediumOffice     = "MediumOffice"
	LargeOffice      = "LargeOffice"
	Retail           = "Retail"
	StripMall        = "StripMall"
	RetailStandalone = "RetailStandalone"
	RetailStripmall  = "RetailStripmall"
)

// Whole-building office size limits, in square feet and stories.
const (
	smallOfficeMaxFt2      = 25_000
	mediumOfficeMaxFt2     = 150_000
	smallOfficeMaxStories  = 3
	mediumOfficeMaxStories = 5
)

// WholeBuildingSpaceType is the space type name of non-office buildings.
const WholeBuildingSpaceType = "WholeBuilding"

var officeSpaceTypes = map[string]string{
	SmallOffice:  "WholeBuilding - Sm Office",
	MediumOffice: "WholeBuilding - Md Office",
	LargeOffice:  "WholeBuilding - Lg Office",
}

var lookupNames = map[string]string{
	"SmallOffice":          Office,
	"MediumOffice":         Office,
	"LargeOffice":          Office,
	"SmallOfficeDetailed":  Office,
	"MediumOfficeDetailed": Office,
	"LargeOfficeDetailed":  Office,
	"RetailStandalone":     Retail,
	"RetailStripmall":      StripMall,
}

// SpaceType is one space type of a building model.
type SpaceType struct {
	Name                  string  `json:"name" yaml:"name"`
	StandardsBuildingType string  `json:"standardsBuildingType,omitempty" yaml:"standardsBuildingType,omitempty"`
	FloorAreaM2           float64 `json:"floorAreaM2" yaml:"floorAreaM2"`
}

// Building is the part of a building model that building type detection
// reads. ID must be stable for the life of the model when a Cache is used.
type Building struct {
	ID                    string      `json:"id,omitempty" yaml:"id,omitempty"`
	StandardsBuildingType string      `json:"standardsBuildingType,omitempty" yaml:"standardsBuildingType,omitempty"`
	FloorAreaM2           float64     `json:"floorAreaM2,omitempty" yaml:"floorAreaM2,omitempty"`
	NumStories            int         `json:"numStories,omitempty" yaml:"numStories,omitempty"`
	SpaceTypes            []SpaceType `json:"spaceTypes,omitempty" yaml:"spaceTypes,omitempty"`
}

// FloorAreaFt2 returns the building floor area in square feet. When the
// building carries no area, the space type areas are summed.
func (b Building) FloorAreaFt2() float64 {
	area := b.FloorAreaM2
	if area <= 0 {
		for _, st := range b.SpaceTypes {
			area += st.FloorAreaM2
		}
	}
	return area * sqFtPerM2
}

// Options controls the remapping applied by Resolve.
type Options struct {
	// RemapOffice turns Office into SmallOffice, MediumOffice or LargeOffice.
	RemapOffice bool
	// RemapRetail turns StripMall and Retail into their prototype names.
	RemapRetail bool
}

// LookupName turns a prototype building type into the name standards
// tables are keyed by, e.g. SmallOffice into Office.
func LookupName(bt string) string {
	if name, ok := lookupNames[bt]; ok {
		return name
	}
	return bt
}

// Primary returns the building type covering the largest floor area across
// the space types of b. Ties go to the type seen first in space type name
// order. Without any typed space type the building-level type is used.
func Primary(b Building) (string, error) {
	buildingLevel := ""
	if b.StandardsBuildingType != "" {
		buildingLevel = LookupName(b.StandardsBuildingType)
	}

	spaceTypes := slices.Clone(b.SpaceTypes)
	slices.SortStableFunc(spaceTypes, func(x, y SpaceType) int {
		return strings.Compare(x.Name, y.Name)
	})

	areas := make(map[string]float64)
	var order []string
	for _, st := range spaceTypes {
		if st.StandardsBuildingType == "" {
			continue
		}
		bt := LookupName(st.StandardsBuildingType)
		if bt != st.StandardsBuildingType {
			slog.Debug("sanitizing space type building type for aggregation",
				"spaceType", st.Name, "buildingType", st.StandardsBuildingType, "lookupName", bt)
		}
		if _, seen := areas[bt]; !seen {
			order = append(order, bt)
		}
		areas[bt] += st.FloorAreaM2
	}

	if len(order) == 0 {
		if buildingLevel == "" {
			return "", cmerrors.NewWithContext(cmerrors.ErrCodeNotFound,
				fmt.Sprintf("no primary building type: none of %d space types and not the building carry a standards building type", len(b.SpaceTypes)),
				map[string]any{"building": b.ID})
		}
		slog.Debug("no typed space types, using building level type", "building", b.ID, "buildingType", buildingLevel)
		return buildingLevel, nil
	}

	primary := order[0]
	for _, bt := range order[1:] {
		if areas[bt] > areas[primary] {
			primary = bt
		}
	}

	if buildingLevel != "" && buildingLevel != primary {
		slog.Warn("building type differs from space type area determination, using space types",
			"building", b.ID, "buildingLevel", buildingLevel, "spaceTypeLevel", primary)
	}
	return primary, nil
}

// RemapOffice picks the office prototype for a floor area in square feet
// and a story count.
func RemapOffice(areaFt2 float64, stories int) string {
	switch {
	case areaFt2 < smallOfficeMaxFt2:
		if stories <= smallOfficeMaxStories {
			return SmallOffice
		}
		return MediumOffice
	case areaFt2 < mediumOfficeMaxFt2:
		if stories <= mediumOfficeMaxStories {
			return MediumOffice
		}
		return LargeOffice
	default:
		return LargeOffice
	}
}

// Resolve returns the primary building type of b with the remapping in opts
// applied.
func Resolve(b Building, opts Options) (string, error) {
	primary, err := Primary(b)
	if err != nil {
		return "", err
	}
	return remap(b, primary, opts), nil
}

func remap(b Building, primary string, opts Options) string {
	if opts.RemapOffice && primary == Office {
		return RemapOffice(b.FloorAreaFt2(), b.NumStories)
	}
	if opts.RemapRetail {
		switch primary {
		case StripMall:
			return RetailStripmall
		case Retail:
			return RetailStandalone
		}
	}
	return primary
}

// WholeBuildingSpaceTypeName returns the whole-building space type row name
// for b: the sized office name for office buildings, WholeBuilding otherwise.
func WholeBuildingSpaceTypeName(b Building, primary string) string {
	if LookupName(primary) != Office {
		return WholeBuildingSpaceType
	}
	return officeSpaceTypes[RemapOffice(b.FloorAreaFt2(), b.NumStories)]
}
