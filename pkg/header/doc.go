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

// Package header provides the common document header for codematch output.
//
// Match results, table validation reports and library listings all start
// with a Header so consumers can tell documents apart and check the schema
// version before decoding the rest:
//
//	kind: MatchResult
//	apiVersion: codematch.energycodes.dev/v1alpha1
//	metadata:
//	  timestamp: "2026-01-02T15:04:05Z"
//	  version: v0.4.0
//
// # Usage
//
//	var res MatchResult
//	res.Init(header.KindMatchResult, header.APIVersion, version)
//
// Or with options:
//
//	h := header.New(
//	    header.WithKind(header.KindLibrary),
//	    header.WithAPIVersion(header.APIVersion),
//	    header.WithMetadata("source", "embedded"),
//	)
package header
