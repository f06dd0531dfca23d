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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"runtime"
	"strings"
	"time"

	cmerrors "github.com/energycodes/codematch/pkg/errors"
	"github.com/energycodes/codematch/pkg/table"
	"golang.org/x/text/cases"
)

// Relaxation factors for numeric range passes.
const (
	// integerBump widens an integer-valued probe before the first pass.
	integerBump = 1.01
	// relaxFactor scales the original probe for the single retry.
	relaxFactor = 0.99
)

// Dimension names used in logs and metrics.
const (
	DimensionCapacity    = "capacity"
	DimensionVolume      = "volume"
	DimensionFanMotorBHP = "fan_motor_bhp"
	DimensionDate        = "date"
	DimensionArea        = "area"
	DimensionNumFloors   = "num_floors"
)

// typeField is the criteria field the fan motor pass also filters on.
const typeField = "type"

var typeFold = cases.Fold()

// Engine finds records in standards tables. It holds no per-call state and
// is safe for concurrent use.
type Engine struct {
	logger          *slog.Logger
	recordWildcards bool
	metrics         bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger. Without it the engine logs to slog.Default()
// as of each call.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// WithRecordWildcards lets a record value of "Any" satisfy any expected
// value for that field. Off by default.
func WithRecordWildcards(enabled bool) EngineOption {
	return func(e *Engine) { e.recordWildcards = enabled }
}

// WithMetrics turns Prometheus instrumentation on or off. On by default.
func WithMetrics(enabled bool) EngineOption {
	return func(e *Engine) { e.metrics = enabled }
}

// NewEngine creates an Engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{metrics: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Find runs Engine.Find on the default engine.
func Find(tbl any, criteria Criteria, opts ...Option) ([]table.Record, error) {
	return defaultEngine.find(context.Background(), tbl, criteria, BuildProbes(opts...))
}

// FindOne runs Engine.FindOne on the default engine.
func FindOne(tbl any, criteria Criteria, opts ...Option) (table.Record, error) {
	return defaultEngine.findOne(context.Background(), tbl, criteria, BuildProbes(opts...))
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

// Find returns every record of tbl that satisfies criteria and the probes,
// in table order. tbl is anything table.Normalize accepts. No match is an
// empty result, not an error; only a malformed table or date bound fails.
//
// Passes run in a fixed order, each narrowing the last: criteria, capacity,
// volume, fan motor bhp, date, area, floors.
func (e *Engine) Find(tbl any, criteria Criteria, opts ...Option) ([]table.Record, error) {
	return e.find(context.Background(), tbl, criteria, BuildProbes(opts...))
}

// FindOne returns the first record Find would return, or nil when there is
// none. More than one match logs a warning listing all of them.
func (e *Engine) FindOne(tbl any, criteria Criteria, opts ...Option) (table.Record, error) {
	return e.findOne(context.Background(), tbl, criteria, BuildProbes(opts...))
}

// FindContext is Find bounded by ctx. The context is checked between passes;
// a done context fails the call with a TIMEOUT or UNAVAILABLE error.
func (e *Engine) FindContext(ctx context.Context, tbl any, criteria Criteria, p Probes) ([]table.Record, error) {
	return e.find(ctx, tbl, criteria, p)
}

// FindOneContext is FindOne bounded by ctx.
func (e *Engine) FindOneContext(ctx context.Context, tbl any, criteria Criteria, p Probes) (table.Record, error) {
	return e.findOne(ctx, tbl, criteria, p)
}

// aborted maps a done context to a structured error, or nil while ctx is live.
func aborted(ctx context.Context) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return cmerrors.Wrap(cmerrors.ErrCodeTimeout, "find timed out", err)
	}
	return cmerrors.Wrap(cmerrors.ErrCodeUnavailable, "find canceled", err)
}

func (e *Engine) findOne(ctx context.Context, tbl any, criteria Criteria, p Probes) (table.Record, error) {
	matches, err := e.find(ctx, tbl, criteria, p)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		e.log().Warn("find returned multiple results, using the first",
			"count", len(matches),
			"criteria", criteria.String(),
			"probes", p,
			"matches", matches,
			"caller", callerName())
		return matches[0], nil
	}
}

func (e *Engine) find(ctx context.Context, tbl any, criteria Criteria, p Probes) ([]table.Record, error) {
	start := time.Now()

	if err := aborted(ctx); err != nil {
		return nil, err
	}
	records, err := table.Normalize(tbl)
	if err != nil {
		return nil, err
	}

	preds := Compile(criteria)
	out := make([]table.Record, 0, len(records))
	for _, r := range records {
		if e.matchesAll(r, preds) {
			out = append(out, r)
		}
	}

	if err := aborted(ctx); err != nil {
		return nil, err
	}
	if p.Capacity != nil {
		out = e.narrowRange(out, DimensionCapacity, capacityPair, *p.Capacity, true, nil)
	}
	if p.Volume != nil {
		out = e.narrowRange(out, DimensionVolume, storagePair, *p.Volume, true, nil)
	}
	if p.FanMotorBHP != nil {
		out = e.narrowRange(out, DimensionFanMotorBHP, capacityPair, *p.FanMotorBHP, false, typeFilter(criteria))
	}
	if err := aborted(ctx); err != nil {
		return nil, err
	}
	if p.Date != nil {
		if out, err = narrowDate(out, *p.Date); err != nil {
			return nil, err
		}
	}
	if p.Area != nil {
		out = bounded(out, areaPair, func(lo, hi float64) bool { return lo < *p.Area && *p.Area <= hi })
	}
	if p.NumFloors != nil {
		out = bounded(out, floorsPair, func(lo, hi float64) bool { return lo <= *p.NumFloors && *p.NumFloors <= hi })
	}

	if len(out) == 0 {
		e.log().Debug("find returned no results",
			"criteria", criteria.String(),
			"probes", p,
			"caller", callerName())
	}
	if e.metrics {
		findTotal.WithLabelValues(resultLabel(len(out))).Inc()
		findDuration.Observe(time.Since(start).Seconds())
	}
	return out, nil
}

func (e *Engine) matchesAll(r table.Record, preds []Predicate) bool {
	for _, p := range preds {
		if !p.Matches(r, e.recordWildcards) {
			return false
		}
	}
	return true
}

var (
	capacityPair = table.RangePair{Min: table.FieldMinimumCapacity, Max: table.FieldMaximumCapacity}
	storagePair  = table.RangePair{Min: table.FieldMinimumStorage, Max: table.FieldMaximumStorage}
	areaPair     = table.RangePair{Min: table.FieldMinimumArea, Max: table.FieldMaximumArea}
	floorsPair   = table.RangePair{Min: table.FieldMinimumFloors, Max: table.FieldMaximumFloors}
)

// bounded keeps records defining both bounds of pair for which keep holds.
func bounded(in []table.Record, pair table.RangePair, keep func(lo, hi float64) bool) []table.Record {
	out := make([]table.Record, 0, len(in))
	for _, r := range in {
		if r.Bounded(pair) && keep(r.Float(pair.Min), r.Float(pair.Max)) {
			out = append(out, r)
		}
	}
	return out
}

// narrowRange applies an exclusive-lower, inclusive-upper range pass. With
// bump, an integer-valued probe is first raised by 1%. An empty first pass
// is retried once on the same bounded pool at 99% of the original probe,
// without the extra filter.
func (e *Engine) narrowRange(in []table.Record, dim string, pair table.RangePair, probe float64,
	bump bool, extra func(table.Record) bool) []table.Record {

	pool := bounded(in, pair, func(_, _ float64) bool { return true })

	first := probe
	if bump && first == math.Trunc(first) {
		first *= integerBump
	}
	within := func(v float64) func(lo, hi float64) bool {
		return func(lo, hi float64) bool { return lo < v && v <= hi }
	}

	out := bounded(pool, pair, within(first))
	if extra != nil {
		out = filter(out, extra)
	}
	if len(out) > 0 {
		return out
	}

	retry := probe * relaxFactor
	e.log().Debug("range pass empty, retrying with relaxed probe",
		"dimension", dim,
		"probe", probe,
		"first", first,
		"retry", retry)
	if e.metrics {
		relaxationRetries.WithLabelValues(dim).Inc()
	}
	return bounded(pool, pair, within(retry))
}

func filter(in []table.Record, keep func(table.Record) bool) []table.Record {
	out := make([]table.Record, 0, len(in))
	for _, r := range in {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// typeFilter returns the case-insensitive motor type filter, or nil when the
// criteria carry no concrete type. Records without a type are dropped.
func typeFilter(c Criteria) func(table.Record) bool {
	want, ok := c[typeField]
	if !ok || want == nil {
		return nil
	}
	if s, ok := want.(string); ok && s == AnyValue {
		return nil
	}
	folded := typeFold.String(fmt.Sprint(want))
	return func(r table.Record) bool {
		got, ok := r[typeField]
		if !ok {
			return false
		}
		return typeFold.String(fmt.Sprint(got)) == folded
	}
}

// narrowDate keeps records whose window holds d, comparing calendar days:
// start_date < d <= end_date.
func narrowDate(in []table.Record, d time.Time) ([]table.Record, error) {
	day := civil(d)
	out := make([]table.Record, 0, len(in))
	for _, r := range in {
		if r[table.FieldStartDate] == nil || r[table.FieldEndDate] == nil {
			continue
		}
		start, err := table.Date(r[table.FieldStartDate])
		if err != nil {
			return nil, table.Malformed(table.FieldStartDate, r[table.FieldStartDate], err)
		}
		end, err := table.Date(r[table.FieldEndDate])
		if err != nil {
			return nil, table.Malformed(table.FieldEndDate, r[table.FieldEndDate], err)
		}
		if civil(start).Before(day) && !day.After(civil(end)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// callerName names the first function outside this package on the stack.
func callerName() string {
	pcs := make([]uintptr, 8)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !isOwnFrame(f.Function) {
			return f.Function
		}
		if !more {
			return ""
		}
	}
}

var ownPackage = reflect.TypeOf(Engine{}).PkgPath() + "."

func isOwnFrame(fn string) bool {
	return strings.HasPrefix(fn, ownPackage) && !strings.HasPrefix(fn[len(ownPackage):], "Test")
}
