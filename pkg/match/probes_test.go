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
	"bytes"
	"log/slog"
	"net/url"
	"testing"
	"time"

	cmerrors "github.com/energycodes/codematch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestBuildProbes(t *testing.T) {
	d := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	p := BuildProbes(WithCapacity(1), WithVolume(2), WithFanMotorBHP(3), WithDate(d), WithArea(4), WithNumFloors(5), nil)

	assert.Equal(t, ptr.To(1.0), p.Capacity)
	assert.Equal(t, ptr.To(2.0), p.Volume)
	assert.Equal(t, ptr.To(3.0), p.FanMotorBHP)
	assert.Equal(t, &d, p.Date)
	assert.Equal(t, ptr.To(4.0), p.Area)
	assert.Equal(t, ptr.To(5.0), p.NumFloors)

	empty := BuildProbes()
	assert.Nil(t, empty.Capacity)
	assert.Nil(t, empty.Date)
}

func TestWithProbesCopies(t *testing.T) {
	src := Probes{Capacity: ptr.To(10.0), Date: ptr.To(time.Now())}
	p := BuildProbes(WithArea(3), WithProbes(src))

	require.NotNil(t, p.Capacity)
	assert.NotSame(t, src.Capacity, p.Capacity)
	assert.Equal(t, 10.0, *p.Capacity)
	assert.NotSame(t, src.Date, p.Date)
	assert.Equal(t, 3.0, *p.Area)
	assert.Nil(t, p.Volume)
}

func TestParseProbesFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("capacity", "65000")
	v.Set("fan_motor_bhp", "7.5")
	v.Set("numFloors", "3")
	v.Set("date", "2019-06-01")

	p, err := ParseProbesFromValues(v)
	require.NoError(t, err)
	assert.Equal(t, 65000.0, *p.Capacity)
	assert.Equal(t, 7.5, *p.FanMotorBHP)
	assert.Equal(t, 3.0, *p.NumFloors)
	assert.Nil(t, p.Volume)
	assert.Nil(t, p.Area)
	require.NotNil(t, p.Date)
	assert.Equal(t, time.June, p.Date.Month())

	_, err = ParseProbesFromValues(url.Values{"area": {"big"}})
	require.Error(t, err)
	assert.True(t, cmerrors.HasCode(err, cmerrors.ErrCodeInvalidRequest))

	_, err = ParseProbesFromValues(url.Values{"date": {"tomorrow-ish"}})
	require.Error(t, err)
	assert.True(t, cmerrors.HasCode(err, cmerrors.ErrCodeInvalidRequest))
}

func TestProbesLogValue(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	l.Info("probe", "probes", BuildProbes(WithCapacity(12.5), WithDate(time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC))))

	out := buf.String()
	assert.Contains(t, out, "probes.capacity=12.5")
	assert.Contains(t, out, "probes.date=2019-01-02")
	assert.NotContains(t, out, "volume")
}
