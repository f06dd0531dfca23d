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
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	cmerrors "github.com/energycodes/codematch/pkg/errors"
	"github.com/energycodes/codematch/pkg/table"
)

// AnyValue is the criteria wildcard. A criterion set to AnyValue never
// excludes a record.
const AnyValue = "Any"

// criteriaQueryPrefix marks criteria in URL query parameters:
// ?criteria.template=90.1-2019.
const criteriaQueryPrefix = "criteria."

// Criteria maps record fields to expected values.
type Criteria map[string]any

// PredicateKind tags how a compiled criterion matches.
type PredicateKind int

const (
	// PredicateExact requires the record value to equal the expected value.
	PredicateExact PredicateKind = iota
	// PredicateWildcard accepts any record value.
	PredicateWildcard
)

// String returns the kind name.
func (k PredicateKind) String() string {
	switch k {
	case PredicateExact:
		return "exact"
	case PredicateWildcard:
		return "wildcard"
	default:
		return fmt.Sprintf("PredicateKind(%d)", int(k))
	}
}

// Predicate is one compiled criterion. AbsentOK makes a record that lacks
// Field satisfy the predicate; compiled criteria always set it.
type Predicate struct {
	Field    string
	Kind     PredicateKind
	Value    any
	AbsentOK bool
}

// Exact returns an absent-is-ok equality predicate.
func Exact(field string, value any) Predicate {
	return Predicate{Field: field, Kind: PredicateExact, Value: value, AbsentOK: true}
}

// Wildcard returns a predicate that accepts every record.
func Wildcard(field string) Predicate {
	return Predicate{Field: field, Kind: PredicateWildcard, AbsentOK: true}
}

// Compile turns criteria into predicates ordered by field name.
func Compile(c Criteria) []Predicate {
	preds := make([]Predicate, 0, len(c))
	for _, field := range table.SortedKeys(c) {
		v := c[field]
		if s, ok := v.(string); ok && s == AnyValue {
			preds = append(preds, Wildcard(field))
			continue
		}
		preds = append(preds, Exact(field, v))
	}
	return preds
}

// Matches reports whether r satisfies p. With recordWildcards, a record
// value of AnyValue also satisfies an exact predicate.
func (p Predicate) Matches(r table.Record, recordWildcards bool) bool {
	v, ok := r[p.Field]
	if !ok {
		return p.AbsentOK
	}
	if p.Kind == PredicateWildcard {
		return true
	}
	if recordWildcards {
		if s, ok := v.(string); ok && s == AnyValue {
			return true
		}
	}
	return Equal(v, p.Value)
}

// Equal compares a record value with an expected value. Numbers compare by
// value across Go numeric kinds, strings compare exactly and nothing is
// coerced between strings and numbers.
func Equal(a, b any) bool {
	if fa, ok := number(a); ok {
		fb, ok := number(b)
		return ok && fa == fb
	}
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		return ok && sa == sb
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// ParseValue types a textual criteria value: numbers become float64,
// a double-quoted value stays a string without its quotes, and anything
// else is a string.
func ParseValue(s string) any {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}

// ParseCriteriaPairs parses field=value pairs as given on a command line.
func ParseCriteriaPairs(pairs []string) (Criteria, error) {
	c := make(Criteria, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, cmerrors.NewWithContext(cmerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid criteria %q, expected field=value", p),
				map[string]any{"criteria": p})
		}
		c[k] = ParseValue(v)
	}
	return c, nil
}

// ParseCriteriaFromValues collects criteria.<field>=value query parameters.
func ParseCriteriaFromValues(values url.Values) Criteria {
	c := make(Criteria)
	for k, vs := range values {
		field, ok := strings.CutPrefix(k, criteriaQueryPrefix)
		if !ok || field == "" || len(vs) == 0 {
			continue
		}
		c[field] = ParseValue(vs[0])
	}
	return c
}

// String renders criteria in field order, for logs.
func (c Criteria) String() string {
	parts := make([]string, 0, len(c))
	for _, k := range table.SortedKeys(c) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
