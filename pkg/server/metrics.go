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


package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// API route metrics. The route label is the registered pattern, so find,
// find-one and tables each get a series regardless of query strings.
var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codematch_http_requests_total",
			Help: "API requests served, by route, method and response status",
		},
		[]string{"route", "method", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codematch_http_request_duration_seconds",
			Help:    "API request latency in seconds, including table load and matching",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	apiRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "codematch_http_requests_in_flight",
			Help: "API requests currently being matched",
		},
	)

	rateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codematch_rate_limit_rejects_total",
			Help: "API requests answered 429 by the server rate limiter",
		},
	)

	panicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codematch_panic_recoveries_total",
			Help: "API handler panics turned into 500 responses",
		},
	)
)

// metricsMiddleware counts and times requests to route.
func (s *Server) metricsMiddleware(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		apiRequestsInFlight.Inc()
		defer apiRequestsInFlight.Dec()

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		apiRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rw.Status())).Inc()
		apiRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	}
}
