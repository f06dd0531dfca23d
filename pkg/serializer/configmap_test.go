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

package serializer

import (
	"context"
	"testing"

	"github.com/energycodes/codematch/pkg/header"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{name: "valid URI", uri: "cm://energy/motors", wantNamespace: "energy", wantName: "motors"},
		{name: "valid URI with spaces", uri: "cm://energy / motors ", wantNamespace: "energy", wantName: "motors"},
		{name: "missing scheme", uri: "energy/motors", wantErr: true},
		{name: "wrong scheme", uri: "http://energy/motors", wantErr: true},
		{name: "missing name", uri: "cm://energy/", wantErr: true},
		{name: "missing namespace", uri: "cm:///motors", wantErr: true},
		{name: "missing separator", uri: "cm://energy", wantErr: true},
		{name: "empty URI", uri: "", wantErr: true},
		{name: "only scheme", uri: "cm://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			namespace, name, err := parseConfigMapURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseConfigMapURI() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if namespace != tt.wantNamespace {
					t.Errorf("parseConfigMapURI() namespace = %v, want %v", namespace, tt.wantNamespace)
				}
				if name != tt.wantName {
					t.Errorf("parseConfigMapURI() name = %v, want %v", name, tt.wantName)
				}
			}
		})
	}
}

func TestNewConfigMapWriterUnknownFormat(t *testing.T) {
	w := NewConfigMapWriter("default", "out", Format("xml"))
	assert.Equal(t, FormatJSON, w.format)
}

type headedDoc struct {
	header.Header `json:",inline" yaml:",inline"`
	Count         int `json:"count" yaml:"count"`
}

func (d *headedDoc) GetHeader() *header.Header { return &d.Header }

func TestConfigMapWriterApply(t *testing.T) {
	cs := fake.NewClientset()
	doc := &headedDoc{Count: 3}
	doc.Init(header.KindMatchResult, header.APIVersion, "v0.1.0")

	w := NewConfigMapWriter("energy", "result", FormatYAML, WithKubeClient(cs))
	require.NoError(t, w.Serialize(context.Background(), doc))

	cm, err := cs.CoreV1().ConfigMaps("energy").Get(context.Background(), "result", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "yaml", cm.Data["format"])
	assert.Contains(t, cm.Data["table.yaml"], "count: 3")
	assert.Equal(t, doc.Metadata["timestamp"], cm.Data["timestamp"])
	assert.Equal(t, "MatchResult", cm.Labels["app.kubernetes.io/component"])
	assert.Equal(t, "v0.1.0", cm.Labels["app.kubernetes.io/version"])
}

func TestFromConfigMap(t *testing.T) {
	type row struct {
		Template string `json:"template" yaml:"template"`
	}

	cs := fake.NewClientset(
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Namespace: "energy", Name: "yaml-table"},
			Data:       map[string]string{"table.yaml": "- template: 90.1-2019\n"},
		},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Namespace: "energy", Name: "json-table"},
			Data: map[string]string{
				"format":     "json",
				"table.json": `[{"template":"90.1-2016"}]`,
			},
		},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Namespace: "energy", Name: "empty"},
			Data:       map[string]string{"other": "x"},
		},
	)
	ctx := context.Background()

	rows, err := FromConfigMap[[]row](ctx, cs, "energy", "yaml-table")
	require.NoError(t, err)
	assert.Equal(t, []row{{Template: "90.1-2019"}}, *rows)

	rows, err = FromConfigMap[[]row](ctx, cs, "energy", "json-table")
	require.NoError(t, err)
	assert.Equal(t, []row{{Template: "90.1-2016"}}, *rows)

	_, err = FromConfigMap[[]row](ctx, cs, "energy", "empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no table data")

	_, err = FromConfigMap[[]row](ctx, cs, "energy", "missing")
	require.Error(t, err)
}
