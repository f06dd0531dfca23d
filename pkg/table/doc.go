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

// Package table holds standards tables: ordered sequences of schema-less
// records such as motor efficiencies or unitary AC requirements.
//
// Normalize accepts the shapes produced by JSON and YAML decoders, with or
// without a one-level {"table": [...]} wrapper, and rejects anything else
// with a MALFORMED_TABLE error whose cause is ErrMalformedTable:
//
//	t, err := table.Normalize(raw)
//	if errors.Is(err, table.ErrMalformedTable) { ... }
//
// Tables are loaded from files, URLs or ConfigMaps with LoadFile and
// stored in or read from SQLite with SaveSQLite and LoadSQLite. Validate
// reports range and date fields the matcher would misread.
//
// Records are shared, read-only values. Use Clone before editing.
package table
