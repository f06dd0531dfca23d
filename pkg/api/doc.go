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


// Package api serves the find engine over HTTP.
//
// Serve loads a table library (the embedded tables by default), wires the
// find handlers into pkg/server and blocks until shutdown.
//
//	if err := api.Serve(ctx, api.Options{DataSource: "./tables"}); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET|POST /v1/find     - every record of a table matching the request
//   - GET|POST /v1/find-one - the first matching record, or none
//   - GET /v1/tables        - tables in the loaded library
//
// System endpoints are provided by pkg/server: /health, /ready and /metrics.
//
// # Query Parameters (GET)
//
//   - table: table name (required)
//   - criteria.<field>: exact match on field; numbers compare numerically
//   - capacity, volume, fanMotorBhp, area, numFloors: range probes
//   - date: YYYY-MM-DD or RFC 3339
//
// Example:
//
//	curl 'http://localhost:8080/v1/find?table=motors&criteria.template=90.1-2019&criteria.number_of_poles=4&criteria.type=Enclosed&capacity=5'
//
// # Request Body (POST)
//
// JSON by default, YAML when Content-Type mentions yaml:
//
//	table: unitary_acs
//	criteria:
//	  template: 90.1-2019
//	  cooling_type: AirCooled
//	capacity: 100000
//	date: 2024-06-01
//
// No match is a 200 with an empty records list. Unknown tables are 404 and
// malformed tables are 422.
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/energycodes/codematch/pkg/api.version=1.0.0'"
package api
