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


// Package cli implements the codematch command-line interface.
//
// # Commands
//
// find - search a standards table:
//
//	codematch find -T motors -c template=90.1-2019 -c number_of_poles=4 -c type=Enclosed --capacity 5
//
// Exact criteria are given as repeatable field=value pairs. Range probes
// (--capacity, --volume, --fan-motor-bhp, --date, --area, --num-floors)
// narrow the result; --one returns only the first record.
//
// tables - list the tables of the loaded library.
//
// validate - check a library table (--table) or a table file (--file) for
// non-numeric or inverted range bounds and unparseable dates.
//
// export - write the loaded library to a SQLite database (--sqlite).
//
// serve - run the HTTP API (see pkg/api).
//
// # Global Flags
//
//	--data, -d     Table library: directory, SQLite file, table file or URI (default: embedded)
//	--log-level    Logging level: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// Per-command output flags:
//
//	--output, -o   Output file path or cm://namespace/name (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//
// # Environment Variables
//
//	CODEMATCH_DATA  Default for --data
//	LOG_LEVEL       Default for --log-level
//	KUBECONFIG      Kubeconfig for ConfigMap table sources
//	PORT            Default for serve --port
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Interrupted
package cli
