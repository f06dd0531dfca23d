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


// Package library groups standards tables by name and loads them from the
// binary, a directory of JSON or YAML files, or a SQLite database.
//
// The embedded library carries representative rows of the motors,
// unitary_acs, water_heaters, prm_swh_bldg_type and space_types tables:
//
//	lib, err := library.Default(ctx)
//	motors, err := lib.Table("motors")
//
// A user directory can be laid over the embedded tables with Merge; tables
// of the same name are replaced, not merged row by row.
package library
