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

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindIsValid(t *testing.T) {
	for _, k := range []Kind{KindMatchResult, KindTableValidation, KindLibrary, KindTableExport} {
		assert.True(t, k.IsValid(), k.String())
	}
	bogus := Kind("Snapshot")
	assert.False(t, bogus.IsValid())
}

func TestNewWithOptions(t *testing.T) {
	h := New(
		WithKind(KindLibrary),
		WithAPIVersion(APIVersion),
		WithMetadata("source", "embedded"),
	)
	assert.Equal(t, KindLibrary, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "embedded", h.Metadata["source"])
}

func TestWithMetadataOnNilMap(t *testing.T) {
	h := &Header{}
	WithMetadata("k", "v")(h)
	assert.Equal(t, "v", h.Metadata["k"])
}

func TestInit(t *testing.T) {
	h := New(WithMetadata("stale", "x"))
	h.Init(KindMatchResult, APIVersion, "v1.2.3")

	assert.Equal(t, KindMatchResult, h.Kind)
	assert.Equal(t, "v1.2.3", h.Metadata["version"])
	assert.NotContains(t, h.Metadata, "stale")

	ts, err := time.Parse(time.RFC3339, h.Metadata["timestamp"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)

	h.Init(KindMatchResult, APIVersion, "")
	assert.NotContains(t, h.Metadata, "version")
}
