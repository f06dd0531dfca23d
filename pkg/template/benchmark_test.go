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


package template

import (
	"testing"
)

func BenchmarkParse(b *testing.B) {
	names := []string{"90.1-2019", "90.1-PRM-2019", "NECB2011", "DOE Ref Pre-1980"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parse(names[i%len(names)])
	}
}

func BenchmarkSort(b *testing.B) {
	names := []string{"NECB2015", "90.1-2019", "90.1-2004", "NECB2011", "90.1-2013", "90.1-2010", "90.1-2007"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Sort(names)
	}
}
