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
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	cmerrors "github.com/energycodes/codematch/pkg/errors"
	"github.com/energycodes/codematch/pkg/table"
	"k8s.io/utils/ptr"
)

// Probes holds the optional scalar values that activate range passes.
// A nil field leaves its pass off.
type Probes struct {
	Capacity    *float64   `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Volume      *float64   `json:"volume,omitempty" yaml:"volume,omitempty"`
	FanMotorBHP *float64   `json:"fanMotorBhp,omitempty" yaml:"fanMotorBhp,omitempty"`
	Date        *time.Time `json:"date,omitempty" yaml:"date,omitempty"`
	Area        *float64   `json:"area,omitempty" yaml:"area,omitempty"`
	NumFloors   *float64   `json:"numFloors,omitempty" yaml:"numFloors,omitempty"`
}

// Option sets a probe for a single Find or FindOne call.
type Option func(*Probes)

// WithCapacity narrows to records whose capacity bin holds c.
// Do not combine with WithFanMotorBHP; both read the capacity bounds.
func WithCapacity(c float64) Option {
	return func(p *Probes) { p.Capacity = ptr.To(c) }
}

// WithVolume narrows on minimum_storage/maximum_storage.
func WithVolume(v float64) Option {
	return func(p *Probes) { p.Volume = ptr.To(v) }
}

// WithFanMotorBHP narrows motors by brake horsepower.
func WithFanMotorBHP(bhp float64) Option {
	return func(p *Probes) { p.FanMotorBHP = ptr.To(bhp) }
}

// WithDate narrows to records whose validity window holds d.
func WithDate(d time.Time) Option {
	return func(p *Probes) { p.Date = &d }
}

// WithArea narrows on minimum_area/maximum_area.
func WithArea(a float64) Option {
	return func(p *Probes) { p.Area = ptr.To(a) }
}

// WithNumFloors narrows on minimum_floors/maximum_floors, inclusive.
func WithNumFloors(n float64) Option {
	return func(p *Probes) { p.NumFloors = ptr.To(n) }
}

// WithProbes copies every set field of src.
func WithProbes(src Probes) Option {
	return func(p *Probes) {
		if src.Capacity != nil {
			p.Capacity = ptr.To(*src.Capacity)
		}
		if src.Volume != nil {
			p.Volume = ptr.To(*src.Volume)
		}
		if src.FanMotorBHP != nil {
			p.FanMotorBHP = ptr.To(*src.FanMotorBHP)
		}
		if src.Date != nil {
			p.Date = ptr.To(*src.Date)
		}
		if src.Area != nil {
			p.Area = ptr.To(*src.Area)
		}
		if src.NumFloors != nil {
			p.NumFloors = ptr.To(*src.NumFloors)
		}
	}
}

// BuildProbes applies opts to an empty Probes.
func BuildProbes(opts ...Option) Probes {
	var p Probes
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}

// LogValue implements slog.LogValuer, listing only the set probes.
func (p Probes) LogValue() slog.Value {
	var attrs []slog.Attr
	add := func(k string, v *float64) {
		if v != nil {
			attrs = append(attrs, slog.Float64(k, *v))
		}
	}
	add("capacity", p.Capacity)
	add("volume", p.Volume)
	add("fan_motor_bhp", p.FanMotorBHP)
	if p.Date != nil {
		attrs = append(attrs, slog.String("date", p.Date.Format(time.DateOnly)))
	}
	add("area", p.Area)
	add("num_floors", p.NumFloors)
	return slog.GroupValue(attrs...)
}

// probe query parameter names, with accepted aliases.
var probeParams = map[string][]string{
	"capacity":    {"capacity"},
	"volume":      {"volume"},
	"fanMotorBhp": {"fanMotorBhp", "fan_motor_bhp"},
	"area":        {"area"},
	"numFloors":   {"numFloors", "num_floors"},
}

// ParseProbesFromValues reads probe query parameters. Dates use
// YYYY-MM-DD or RFC 3339.
func ParseProbesFromValues(values url.Values) (Probes, error) {
	var p Probes
	targets := map[string]**float64{
		"capacity":    &p.Capacity,
		"volume":      &p.Volume,
		"fanMotorBhp": &p.FanMotorBHP,
		"area":        &p.Area,
		"numFloors":   &p.NumFloors,
	}

	for name, aliases := range probeParams {
		for _, alias := range aliases {
			s := strings.TrimSpace(values.Get(alias))
			if s == "" {
				continue
			}
			v, ok := ParseValue(s).(float64)
			if !ok {
				return Probes{}, cmerrors.NewWithContext(cmerrors.ErrCodeInvalidRequest,
					fmt.Sprintf("invalid %s value: %s", alias, s), map[string]any{alias: s})
			}
			*targets[name] = ptr.To(v)
			break
		}
	}

	if s := strings.TrimSpace(values.Get("date")); s != "" {
		d, err := table.Date(s)
		if err != nil {
			return Probes{}, cmerrors.WrapWithContext(cmerrors.ErrCodeInvalidRequest,
				"invalid date value", err, map[string]any{"date": s})
		}
		p.Date = &d
	}
	return p, nil
}
