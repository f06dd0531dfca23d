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
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/energycodes/codematch/pkg/defaults"
	"github.com/energycodes/codematch/pkg/header"
	"github.com/energycodes/codematch/pkg/k8s/client"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
)

// ConfigMapURIScheme prefixes ConfigMap locations: cm://namespace/name.
const ConfigMapURIScheme = "cm://"

// fieldManager owns the fields written by server-side apply.
const fieldManager = "codematch"

// ConfigMapWriter publishes serialized output to a ConfigMap, creating or
// updating it with server-side apply.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	client    client.Interface
}

// ConfigMapWriterOption configures a ConfigMapWriter.
type ConfigMapWriterOption func(*ConfigMapWriter)

// WithKubeClient sets the client used instead of the shared one.
func WithKubeClient(cs client.Interface) ConfigMapWriterOption {
	return func(w *ConfigMapWriter) {
		w.client = cs
	}
}

// NewConfigMapWriter creates a writer for namespace/name. Unknown formats
// fall back to JSON.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapWriterOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    knownOrJSON(format),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Serialize writes v under the key table.<ext> together with "format" and
// "timestamp" keys. Values carrying a header.Header label the ConfigMap with
// their kind and version.
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs := w.client
	if cs == nil {
		shared, config, err := client.Shared()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		cs = shared
		slog.Info("configmap operation",
			"namespace", w.namespace,
			"name", w.name,
			"auth_method", client.AuthMethod(config),
			"format", w.format)
	}

	content, err := encode(w.format, v)
	if err != nil {
		return fmt.Errorf("failed to serialize ConfigMap content: %w", err)
	}

	ext := string(w.format)
	if w.format == FormatTable {
		ext = "txt"
	}

	kind, version, timestamp := headerLabels(v)
	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "codematch",
			"app.kubernetes.io/component": kind,
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			ConfigMapDataPrefix + "." + ext: string(content),
			"format":                        string(w.format),
			"timestamp":                     timestamp,
		})

	if _, err := cs.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: fieldManager,
		Force:        true,
	}); err != nil {
		return fmt.Errorf("failed to apply ConfigMap: %w", err)
	}
	return nil
}

type headed interface {
	GetHeader() *header.Header
}

func headerLabels(v any) (kind, version, timestamp string) {
	kind, version = "output", "unknown"
	timestamp = time.Now().UTC().Format(time.RFC3339)

	h, ok := v.(headed)
	if !ok || h.GetHeader() == nil {
		return kind, version, timestamp
	}
	hdr := h.GetHeader()
	if hdr.Kind != "" {
		kind = hdr.Kind.String()
	}
	if s := hdr.Metadata["version"]; s != "" {
		version = s
	}
	if s := hdr.Metadata["timestamp"]; s != "" {
		timestamp = s
	}
	return kind, version, timestamp
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, nil
}
