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

// Package defaults provides centralized configuration constants for codematch.
//
// This package defines timeout values, concurrency limits and cache sizes used
// across the codebase. Centralizing these values ensures consistency and makes
// tuning easier.
//
// # Categories
//
//   - Library: loading standards tables from directories and databases
//   - Handler: HTTP request processing
//   - Server: HTTP server configuration
//   - Kubernetes: ConfigMap table sources and result sinks
//   - HTTP client: downloading remote tables
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.LibraryLoadTimeout)
//	defer cancel()
package defaults
