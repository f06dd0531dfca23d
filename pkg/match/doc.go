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

// Package match finds the rows of a standards table that apply to a piece
// of equipment, a space or a building.
//
// A search has two parts. Criteria are field/value pairs compared for
// equality; a value of "Any" is a wildcard and a record that lacks a field
// is never excluded by a criterion on it. Probes are optional scalars that
// each narrow the result by a range-bound field pair:
//
//	capacity       minimum_capacity < c <= maximum_capacity
//	volume         minimum_storage  < v <= maximum_storage
//	fan motor bhp  minimum_capacity < b <= maximum_capacity
//	date           start_date       < d <= end_date
//	area           minimum_area     < a <= maximum_area
//	floors         minimum_floors  <= n <= maximum_floors
//
// Capacity and volume probes that are whole numbers are raised by 1% before
// matching, because tables are authored with bins whose edges are round
// numbers. When the capacity, volume or bhp pass comes back empty it is
// retried once at 99% of the probe. Date, area and floor passes never retry.
//
// Usage:
//
//	rec, err := match.FindOne(motors, match.Criteria{
//	    "template":        "90.1-2019",
//	    "number_of_poles": 4.0,
//	    "type":            "Enclosed",
//	}, match.WithFanMotorBHP(7.5))
//
// No match is a nil record and a debug log. Several matches return the
// first with a warning. Only a table that is not a sequence of records, or
// a date bound that does not parse, is an error.
package match
