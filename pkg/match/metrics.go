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

package match

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// find result labels
const (
	resultNone = "none"
	resultOne  = "one"
	resultMany = "many"
)

var (
	findTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codematch_find_total",
			Help: "Total number of find calls by result cardinality",
		},
		[]string{"result"},
	)
	relaxationRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codematch_relaxation_retries_total",
			Help: "Total number of range passes retried with a relaxed probe",
		},
		[]string{"dimension"},
	)
	findDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codematch_find_duration_seconds",
			Help:    "Duration of find calls in seconds",
			Buckets: []float64{.00001, .0001, .001, .01, .1, 1},
		},
	)
)

func resultLabel(n int) string {
	switch {
	case n == 0:
		return resultNone
	case n == 1:
		return resultOne
	default:
		return resultMany
	}
}
