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

// Package serializer reads standards tables and writes codematch output in
// JSON, YAML or table form.
//
// # Sources
//
// FromFile decodes a value from a local path, an http(s) URL or a
// cm://namespace/name ConfigMap URI:
//
//	rows, err := serializer.FromFile[[]map[string]any](ctx, "cm://energy/motors")
//
// ConfigMaps store the table under the "table.yaml" or "table.json" data key.
//
// # Destinations
//
// NewFileWriterOrStdout picks stdout, a file or a ConfigMap from the path:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatTable, out)
//	if c, ok := w.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	err := w.Serialize(ctx, result)
//
// The table format flattens nested values into FIELD/VALUE rows, or prints
// one row per record for values implementing Tabular. It cannot be read back.
//
// For HTTP handlers, RespondJSON encodes the body before writing the status.
package serializer
