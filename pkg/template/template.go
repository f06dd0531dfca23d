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
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Error types for template parsing failures
var (
	ErrEmptyTemplate = errors.New("template name is empty")
	ErrNoYear        = errors.New("template name does not end in a four digit year")
	ErrNoFamily      = errors.New("template name has no standard family")
)

// Template is an energy code edition such as "90.1-2019", "90.1-PRM-2019",
// "NECB2011" or "DOE Ref Pre-1980": a standard family followed by a year.
type Template struct {
	// Family is the standard name without the year, e.g. "90.1" or "NECB".
	Family string `json:"family" yaml:"family"`

	// Year is the trailing four digit edition year.
	Year int `json:"year" yaml:"year"`

	// Sep separates Family and Year in the original name: "-", " " or "".
	Sep string `json:"-" yaml:"-"`
}

// New returns the template family-year with a dash separator.
func New(family string, year int) Template {
	return Template{Family: family, Year: year, Sep: "-"}
}

// String returns the template name as it appears in standards tables.
func (t Template) String() string {
	return fmt.Sprintf("%s%s%04d", t.Family, t.Sep, t.Year)
}

// Parse splits a template name into its family and edition year.
// Leading and trailing whitespace is ignored.
func Parse(s string) (Template, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Template{}, ErrEmptyTemplate
	}

	if len(s) < 4 {
		return Template{}, fmt.Errorf("%w: %q", ErrNoYear, s)
	}
	digits := s[len(s)-4:]
	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			return Template{}, fmt.Errorf("%w: %q", ErrNoYear, s)
		}
	}
	rest := s[:len(s)-4]
	// A fifth digit means the number is not a year, e.g. "ABC12019".
	if rest != "" && rest[len(rest)-1] >= '0' && rest[len(rest)-1] <= '9' {
		return Template{}, fmt.Errorf("%w: %q", ErrNoYear, s)
	}
	year, err := strconv.Atoi(digits)
	if err != nil {
		return Template{}, fmt.Errorf("%w: %q", ErrNoYear, s)
	}

	var t Template
	t.Year = year
	t.Family = strings.TrimRight(rest, "- ")
	t.Sep = rest[len(t.Family):]
	if t.Family == "" {
		return Template{}, fmt.Errorf("%w: %q", ErrNoFamily, s)
	}
	return t, nil
}

// MustParse parses a template name and panics if parsing fails.
// Only use this for hardcoded names or in tests.
func MustParse(s string) Template {
	t, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse: %v", err))
	}
	return t
}

// SameFamily reports whether t and other are editions of the same standard.
func (t Template) SameFamily(other Template) bool {
	return t.Family == other.Family
}

// IsNewer returns true if t is a later edition of the same standard.
func (t Template) IsNewer(other Template) bool {
	return t.SameFamily(other) && t.Year > other.Year
}

// Compare orders templates by family name, then by year:
// -1 if t < other, 0 if equal, 1 if t > other.
func (t Template) Compare(other Template) int {
	if c := strings.Compare(t.Family, other.Family); c != 0 {
		return c
	}
	switch {
	case t.Year < other.Year:
		return -1
	case t.Year > other.Year:
		return 1
	default:
		return 0
	}
}

// Sort returns the distinct names sorted by family then year. Names that do
// not parse follow in lexical order.
func Sort(names []string) []string {
	var parsed []Template
	var other []string
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		t, err := Parse(n)
		if err != nil || t.String() != n {
			other = append(other, n)
			continue
		}
		parsed = append(parsed, t)
	}

	slices.SortFunc(parsed, Template.Compare)
	slices.Sort(other)

	out := make([]string, 0, len(parsed)+len(other))
	for _, t := range parsed {
		out = append(out, t.String())
	}
	return append(out, other...)
}

// Latest returns the newest edition of family among names.
func Latest(names []string, family string) (Template, bool) {
	var best Template
	found := false
	for _, n := range names {
		t, err := Parse(n)
		if err != nil || t.Family != family {
			continue
		}
		if !found || t.Year > best.Year {
			best, found = t, true
		}
	}
	return best, found
}
