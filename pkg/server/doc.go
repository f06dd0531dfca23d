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


// Package server runs the codematch HTTP API.
//
// # Architecture
//
// The server is stateless. API handlers are supplied by the caller and run
// behind a fixed middleware chain:
//
//   - Prometheus RED metrics per route
//   - API version negotiation (Accept: application/vnd.codematch.v1+json)
//   - Request ID tracking (X-Request-Id, UUID)
//   - Panic recovery
//   - Rate limiting using a token bucket (golang.org/x/time/rate)
//   - Request body size limits
//   - Debug request logging
//
// System routes skip the chain:
//
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 until serving and again during shutdown
//	GET /metrics  Prometheus exposition
//
// # Usage
//
//	s := server.New(
//	    server.WithName("codematchd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/find": h.HandleFind,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run returns after SIGINT, SIGTERM or cancellation of ctx, once in-flight
// requests have drained or Config.ShutdownTimeout has passed.
//
// # Configuration
//
// PORT sets the listen port (default 8080). SHUTDOWN_TIMEOUT_SECONDS sets
// the drain timeout, to match a Kubernetes termination grace period.
//
// # Error Handling
//
// All errors return a consistent JSON structure:
//
//	{
//	  "code": "NOT_FOUND",
//	  "message": "table not found: boilers",
//	  "details": {"available": ["motors", "unitary_acs"]},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-12-22T12:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr maps structured error codes onto HTTP status codes:
// INVALID_REQUEST 400, NOT_FOUND 404, METHOD_NOT_ALLOWED 405,
// MALFORMED_TABLE 422, RATE_LIMIT_EXCEEDED 429, SERVICE_UNAVAILABLE 503,
// TIMEOUT 504 and anything else 500.
package server
