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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/energycodes/codematch/pkg/defaults"
	"github.com/energycodes/codematch/pkg/k8s/client"
	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ConfigMapDataPrefix is the data key prefix holding a serialized table in a
// ConfigMap, e.g. "table.yaml".
const ConfigMapDataPrefix = "table"

// FormatFromPath maps a file extension to a Format, case-insensitively.
// Unknown extensions default to JSON.
func FormatFromPath(filePath string) Format {
	lower := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".table"), strings.HasSuffix(lower, ".txt"):
		return FormatTable
	default:
		slog.Warn("unknown file extension, defaulting to JSON", "filePath", filePath)
		return FormatJSON
	}
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Reader decodes JSON or YAML from an io.Reader. Table format is write-only.
type Reader struct {
	format  Format
	input   io.Reader
	closer  io.Closer
	tmpPath string
}

// NewReader creates a Reader for input. If input is an io.Closer it is
// closed by Reader.Close.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
	}
	r := &Reader{format: format, input: input}
	if c, ok := input.(io.Closer); ok {
		r.closer = c
	}
	return r, nil
}

func checkReadable(format Format) error {
	if format.IsUnknown() {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return fmt.Errorf("table format does not support deserialization")
	}
	return nil
}

// NewFileReader opens a local file or downloads an http(s) URL to a
// temporary file that is removed on Close.
func NewFileReader(ctx context.Context, format Format, filePath string) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
	}

	path := filePath
	var tmp string
	if isRemote(filePath) {
		f, err := os.CreateTemp("", "codematch-*.tmp")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
		tmp = f.Name()
		f.Close()

		if err := NewHttpReader().DownloadWithContext(ctx, filePath, tmp); err != nil {
			os.Remove(tmp)
			return nil, fmt.Errorf("failed to download remote file: %w", err)
		}
		path = tmp
	}

	file, err := os.Open(path)
	if err != nil {
		if tmp != "" {
			os.Remove(tmp)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return &Reader{format: format, input: file, closer: file, tmpPath: tmp}, nil
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases the input and removes any downloaded temp file.
// Safe to call more than once.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}
	var err error
	if r.closer != nil {
		err = r.closer.Close()
		r.closer = nil
	}
	if r.tmpPath != "" {
		if rmErr := os.Remove(r.tmpPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
		r.tmpPath = ""
	}
	return err
}

// FromFile loads a T from a local path, an http(s) URL or a
// cm://namespace/name ConfigMap URI.
func FromFile[T any](ctx context.Context, path string) (*T, error) {
	return FromFileWithKubeconfig[T](ctx, path, "")
}

// FromFileWithKubeconfig is FromFile with an explicit kubeconfig used for
// ConfigMap URIs.
func FromFileWithKubeconfig[T any](ctx context.Context, path, kubeconfig string) (*T, error) {
	if strings.HasPrefix(path, ConfigMapURIScheme) {
		namespace, name, err := parseConfigMapURI(path)
		if err != nil {
			return nil, fmt.Errorf("invalid ConfigMap URI: %w", err)
		}
		cs, _, err := client.ForKubeconfig(kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		return FromConfigMap[T](ctx, cs, namespace, name)
	}

	format := FormatFromPath(path)
	slog.Debug("determined file format", "path", path, "format", format)

	r, err := NewFileReader(ctx, format, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %q: %w", path, err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr)
		}
	}()

	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", path, err)
	}
	return &v, nil
}

// FromConfigMap reads a T from the table data key of a ConfigMap. The
// "format" data key selects table.json or table.yaml; without it the first
// present of table.yaml, table.yml and table.json is used.
func FromConfigMap[T any](ctx context.Context, cs client.Interface, namespace, name string) (*T, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := cs.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	format, content, ok := configMapContent(cm.Data)
	if !ok {
		return nil, fmt.Errorf("ConfigMap %s/%s has no %s data", namespace, name, ConfigMapDataPrefix)
	}

	slog.Debug("reading from ConfigMap",
		"namespace", namespace,
		"name", name,
		"format", format,
		"size", len(content))

	r, err := NewReader(format, strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for ConfigMap data: %w", err)
	}
	var v T
	if err := r.Deserialize(&v); err != nil {
		return nil, fmt.Errorf("failed to deserialize ConfigMap data: %w", err)
	}
	return &v, nil
}

func configMapContent(data map[string]string) (Format, string, bool) {
	if f, ok := data["format"]; ok {
		if content, ok := data[ConfigMapDataPrefix+"."+f]; ok {
			return Format(f), content, true
		}
	}
	for _, ext := range []string{"yaml", "yml", "json"} {
		if content, ok := data[ConfigMapDataPrefix+"."+ext]; ok {
			return FormatFromPath("."+ext), content, true
		}
	}
	return "", "", false
}
