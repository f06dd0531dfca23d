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

package table

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/energycodes/codematch/pkg/serializer"
)

// LoadFile reads a table from a JSON or YAML file, an http(s) URL or a
// cm://namespace/name ConfigMap and normalizes it.
func LoadFile(ctx context.Context, path string) (Table, error) {
	return LoadFileWithKubeconfig(ctx, path, "")
}

// LoadFileWithKubeconfig is LoadFile with an explicit kubeconfig for
// ConfigMap sources.
func LoadFileWithKubeconfig(ctx context.Context, path, kubeconfig string) (Table, error) {
	raw, err := serializer.FromFileWithKubeconfig[any](ctx, path, kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load table from %s: %w", path, err)
	}

	t, err := Normalize(*raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load table from %s: %w", path, err)
	}

	slog.Debug("loaded table", "path", path, "records", len(t))
	return t, nil
}
