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


package buildingtype

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/energycodes/codematch/pkg/defaults"
)

// Cache memoizes Primary by Building.ID. It is owned by the caller; drop
// it, or call Purge, when the models it describes change.
type Cache struct {
	primary *lru.Cache[string, string]
}

// NewCache returns a Cache holding up to size buildings. A size of zero or
// less uses defaults.BuildingTypeCacheSize.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = defaults.BuildingTypeCacheSize
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create building type cache: %w", err)
	}
	return &Cache{primary: c}, nil
}

// Primary is the memoized form of the package-level Primary. Buildings
// without an ID are never cached. Errors are not cached.
func (c *Cache) Primary(b Building) (string, error) {
	if b.ID == "" {
		return Primary(b)
	}
	if bt, ok := c.primary.Get(b.ID); ok {
		return bt, nil
	}
	bt, err := Primary(b)
	if err != nil {
		return "", err
	}
	c.primary.Add(b.ID, bt)
	return bt, nil
}

// Resolve is Resolve using the cached primary type.
func (c *Cache) Resolve(b Building, opts Options) (string, error) {
	primary, err := c.Primary(b)
	if err != nil {
		return "", err
	}
	return remap(b, primary, opts), nil
}

// Len returns the number of cached buildings.
func (c *Cache) Len() int { return c.primary.Len() }

// Purge drops every cached entry.
func (c *Cache) Purge() { c.primary.Purge() }
