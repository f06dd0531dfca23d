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


package compliance

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/energycodes/codematch/pkg/buildingtype"
	cmerrors "github.com/energycodes/codematch/pkg/errors"
	"github.com/energycodes/codematch/pkg/library"
	"github.com/energycodes/codematch/pkg/match"
	"github.com/energycodes/codematch/pkg/table"
)

// Table names read by Lookup.
const (
	TableMotors           = "motors"
	TableUnitaryACs       = "unitary_acs"
	TableWaterHeaters     = "water_heaters"
	TableSWHBuildingTypes = "prm_swh_bldg_type"
	TableSpaceTypes       = "space_types"
)

// Water heater fuel types.
const (
	FuelNaturalGas  = "NaturalGas"
	FuelElectricity = "Electricity"
)

const gasStorage = "Gas Storage"

// Lookup answers equipment and space type questions from a library of
// standards tables.
type Lookup struct {
	lib    *library.Library
	engine *match.Engine
	cache  *buildingtype.Cache
}

// Option configures a Lookup.
type Option func(*Lookup)

// WithEngine sets the engine used for every search.
func WithEngine(e *match.Engine) Option {
	return func(l *Lookup) {
		l.engine = e
	}
}

// WithBuildingTypeCache memoizes primary building types across calls.
func WithBuildingTypeCache(c *buildingtype.Cache) Option {
	return func(l *Lookup) {
		l.cache = c
	}
}

// NewLookup returns a Lookup over lib.
func NewLookup(lib *library.Library, opts ...Option) *Lookup {
	l := &Lookup{lib: lib}
	for _, opt := range opts {
		opt(l)
	}
	if l.engine == nil {
		l.engine = match.NewEngine()
	}
	return l
}

func (l *Lookup) findOne(name string, criteria match.Criteria, opts ...match.Option) (table.Record, error) {
	t, err := l.lib.Table(name)
	if err != nil {
		return nil, err
	}
	rec, err := l.engine.FindOne(t, criteria, opts...)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, cmerrors.NewWithContext(cmerrors.ErrCodeNotFound,
			fmt.Sprintf("no %s record matches %s", name, criteria),
			map[string]any{"table": name})
	}
	return rec, nil
}

func numberField(name string, rec table.Record, field string) (float64, error) {
	v, ok := rec[field]
	if !ok || !table.IsNumeric(v) {
		return 0, cmerrors.NewWithContext(cmerrors.ErrCodeMalformedTable,
			fmt.Sprintf("%s record has no numeric %s", name, field),
			map[string]any{"table": name, "field": field, "value": fmt.Sprint(v)})
	}
	return table.Float(v), nil
}

// MotorEfficiency returns the nominal full-load efficiency (0-1) of a motor
// with the given pole count and enclosure type ("Enclosed" or "Open")
// driving bhp brake horsepower.
func (l *Lookup) MotorEfficiency(template string, poles float64, enclosure string, bhp float64) (float64, error) {
	rec, err := l.findOne(TableMotors, match.Criteria{
		"template":        template,
		"number_of_poles": poles,
		"type":            enclosure,
	}, match.WithFanMotorBHP(bhp))
	if err != nil {
		return 0, err
	}
	return numberField(TableMotors, rec, "nominal_full_load_efficiency")
}

// UnitaryACEfficiency returns the minimum efficiency record for a unitary
// air conditioner of capacityBtuH installed on date. Depending on size the
// record carries minimum_seasonal_efficiency or the EER and IEER fields.
func (l *Lookup) UnitaryACEfficiency(template, coolingType, heatingType, subcategory string,
	capacityBtuH float64, date time.Time) (table.Record, error) {

	return l.findOne(TableUnitaryACs, match.Criteria{
		"template":     template,
		"cooling_type": coolingType,
		"heating_type": heatingType,
		"subcategory":  subcategory,
	}, match.WithCapacity(capacityBtuH), match.WithDate(date))
}

// WaterHeaterFuel returns the baseline water heater fuel for a service
// water heating building area type.
func (l *Lookup) WaterHeaterFuel(swhBuildingType string) (string, error) {
	rec, err := l.findOne(TableSWHBuildingTypes, match.Criteria{"swh_building_type": swhBuildingType})
	if err != nil {
		return "", err
	}
	if rec["baseline_heating_method"] == gasStorage {
		return FuelNaturalGas, nil
	}
	return FuelElectricity, nil
}

// WaterHeaterRequirement is the minimum efficiency of a water heater.
type WaterHeaterRequirement struct {
	ProductClass string `json:"productClass" yaml:"productClass"`
	// EnergyFactor is set for rows rated by energy factor, derated by volume.
	EnergyFactor float64 `json:"energyFactor,omitempty" yaml:"energyFactor,omitempty"`
	// ThermalEfficiency is set for rows rated by thermal efficiency.
	ThermalEfficiency float64      `json:"thermalEfficiency,omitempty" yaml:"thermalEfficiency,omitempty"`
	Record            table.Record `json:"record" yaml:"record"`
}

// WaterHeaterEfficiency returns the minimum efficiency of a storage water
// heater burning fuel with volumeGal of storage and capacityBtuH input.
func (l *Lookup) WaterHeaterEfficiency(template, fuel string, volumeGal, capacityBtuH float64) (*WaterHeaterRequirement, error) {
	rec, err := l.findOne(TableWaterHeaters, match.Criteria{
		"template":  template,
		"fuel_type": fuel,
	}, match.WithVolume(volumeGal), match.WithCapacity(capacityBtuH))
	if err != nil {
		return nil, err
	}

	req := &WaterHeaterRequirement{Record: rec}
	if pc, ok := rec["product_class"].(string); ok {
		req.ProductClass = pc
	}
	if rec.Has("energy_factor_base") {
		base, err := numberField(TableWaterHeaters, rec, "energy_factor_base")
		if err != nil {
			return nil, err
		}
		derate := 0.0
		if rec.Has("energy_factor_volume_derate") {
			if derate, err = numberField(TableWaterHeaters, rec, "energy_factor_volume_derate"); err != nil {
				return nil, err
			}
		}
		req.EnergyFactor = base - derate*volumeGal
	}
	if rec.Has("thermal_efficiency") {
		if req.ThermalEfficiency, err = numberField(TableWaterHeaters, rec, "thermal_efficiency"); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (l *Lookup) primary(b buildingtype.Building) (string, error) {
	if l.cache != nil {
		return l.cache.Primary(b)
	}
	return buildingtype.Primary(b)
}

// SpaceTypeProperties returns the whole-building space_types row for b.
// When no row matches, it returns an empty record and logs a warning, or a
// NOT_FOUND error when throwIfNotFound is set.
func (l *Lookup) SpaceTypeProperties(template string, b buildingtype.Building, throwIfNotFound bool) (table.Record, error) {
	bt, err := l.primary(b)
	if err != nil {
		return nil, err
	}

	criteria := match.Criteria{
		"template":      template,
		"building_type": bt,
		"space_type":    buildingtype.WholeBuildingSpaceTypeName(b, bt),
	}
	rec, err := l.findOne(TableSpaceTypes, criteria)
	if err == nil {
		return rec, nil
	}
	if throwIfNotFound || !cmerrors.HasCode(err, cmerrors.ErrCodeNotFound) {
		return nil, err
	}
	slog.Warn("space type properties lookup failed", "criteria", criteria.String(), "building", b.ID)
	return table.Record{}, nil
}

// BuildingAreaLimits returns the space_types rows whose area and floor
// limits admit a building of areaFt2 square feet and floors stories.
func (l *Lookup) BuildingAreaLimits(template string, areaFt2 float64, floors int) ([]table.Record, error) {
	t, err := l.lib.Table(TableSpaceTypes)
	if err != nil {
		return nil, err
	}
	return l.engine.Find(t, match.Criteria{"template": template},
		match.WithArea(areaFt2), match.WithNumFloors(float64(floors)))
}
